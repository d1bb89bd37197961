package cache

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/chenBenjamin97/player-tracker/pkg/tracking"
)

//FileStore keeps the sequence as a single CBOR blob on disk
type FileStore struct {
	Path string
}

//NewFileStore returns a store writing to path
func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

func (s *FileStore) Load(key Key) ([]tracking.FrameDetections, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("FileStore.Load: '%s': %w", s.Path, ErrCacheMiss)
		}
		return nil, fmt.Errorf("FileStore.Load: Error reading '%s', got '%v'", s.Path, err)
	}

	env, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("FileStore.Load: Error decoding '%s', got '%v'", s.Path, err)
	}

	frames, err := env.check(key)
	if err != nil {
		return nil, fmt.Errorf("FileStore.Load: '%s' holds %s, want %s: %w", s.Path, env.Key, key, err)
	}

	return frames, nil
}

//Save writes to a temporary file next to Path and renames it over the old content
func (s *FileStore) Save(key Key, frames []tracking.FrameDetections) error {
	data, err := encode(key, frames)
	if err != nil {
		return fmt.Errorf("FileStore.Save: Error encoding, got '%v'", err)
	}

	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("FileStore.Save: Error creating '%s', got '%v'", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.Path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("FileStore.Save: Error, got '%v'", err)
	}
	defer os.Remove(tmp.Name()) //no-op once renamed

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("FileStore.Save: Error writing '%s', got '%v'", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("FileStore.Save: Error, got '%v'", err)
	}

	if err := os.Rename(tmp.Name(), s.Path); err != nil {
		return fmt.Errorf("FileStore.Save: Error replacing '%s', got '%v'", s.Path, err)
	}

	return nil
}
