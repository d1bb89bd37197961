package cache

import (
	"errors"

	"github.com/chenBenjamin97/player-tracker/pkg/tracking"
	"github.com/fxamacker/cbor/v2"
)

//ErrCacheMiss means nothing is stored at the location, or what is stored belongs to another video
var ErrCacheMiss = errors.New("detection cache miss")

//formatVersion is bumped whenever the stored layout changes; older blobs are treated as misses
const formatVersion = 1

//Store persists one detection sequence per cache location
type Store interface {
	//Load returns the stored sequence when it was saved under key, ErrCacheMiss otherwise
	Load(key Key) ([]tracking.FrameDetections, error)
	//Save replaces whatever is stored at the location
	Save(key Key, frames []tracking.FrameDetections) error
}

type envelope struct {
	Version int                        `cbor:"version"`
	Key     Key                        `cbor:"key"`
	Frames  []tracking.FrameDetections `cbor:"frames"`
}

func encode(key Key, frames []tracking.FrameDetections) ([]byte, error) {
	return cbor.Marshal(envelope{Version: formatVersion, Key: key, Frames: frames})
}

func decode(data []byte) (envelope, error) {
	var env envelope
	err := cbor.Unmarshal(data, &env)
	return env, err
}

//check validates a decoded envelope against the key the caller expects
func (env envelope) check(key Key) ([]tracking.FrameDetections, error) {
	if env.Version != formatVersion || env.Key != key {
		return nil, ErrCacheMiss
	}
	if env.Frames == nil {
		return []tracking.FrameDetections{}, nil
	}

	return env.Frames, nil
}
