package utils

import (
	"fmt"
	"os"
	"path"
	"strings"
)

//InSlice returns true if given string appears in given slice
func InSlice(lookingFor string, slice []string) bool {
	for _, s := range slice {
		if s == lookingFor {
			return true
		}
	}

	return false
}

//ListDir returns a list of files/ directories in given path
func ListDir(path string) ([]string, error) {
	names := make([]string, 0)
	if files, err := os.ReadDir(path); err != nil {
		return nil, fmt.Errorf("ListDir: Error, got '%v'", err)
	} else {
		for _, f := range files {
			names = append(names, f.Name())
		}
	}

	return names, nil
}

//AllowedVideoFile returns true if the file name carries one of the allowed extensions (case insensitive)
func AllowedVideoFile(filename string, allowed []string) bool {
	ext := strings.TrimPrefix(strings.ToLower(path.Ext(filename)), ".")
	if ext == "" {
		return false
	}

	normalized := make([]string, 0, len(allowed))
	for _, a := range allowed {
		normalized = append(normalized, strings.TrimPrefix(strings.ToLower(a), "."))
	}

	return InSlice(ext, normalized)
}

//CachePath returns where the detections of videoName are cached inside dir
func CachePath(dir, videoName string) string {
	base := path.Base(videoName)
	return path.Join(dir, strings.TrimSuffix(base, path.Ext(base))+DetectionsCacheExt)
}
