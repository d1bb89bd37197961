package cache

import (
	"fmt"
	"io"
	"os"

	"github.com/cespare/xxhash/v2"
)

//Key identifies the video a cached detection sequence was computed from
type Key struct {
	Checksum   string `cbor:"checksum"`
	FrameCount int    `cbor:"frame_count"`
}

func (k Key) String() string {
	return fmt.Sprintf("%s-%d", k.Checksum, k.FrameCount)
}

//KeyForFile hashes the video file at path with xxhash64 and pairs it with the decoded frame count
func KeyForFile(path string, frameCount int) (Key, error) {
	f, err := os.Open(path)
	if err != nil {
		return Key{}, fmt.Errorf("KeyForFile: Error, got '%v'", err)
	}
	defer f.Close()

	return KeyForReader(f, frameCount)
}

//KeyForReader is KeyForFile over an already opened stream
func KeyForReader(r io.Reader, frameCount int) (Key, error) {
	h := xxhash.New()
	if _, err := io.Copy(h, r); err != nil {
		return Key{}, fmt.Errorf("KeyForReader: Error, got '%v'", err)
	}

	return Key{Checksum: fmt.Sprintf("%016x", h.Sum64()), FrameCount: frameCount}, nil
}
