package cache

import (
	"errors"
	"fmt"
	"log"

	"github.com/chenBenjamin97/player-tracker/pkg/tracking"
)

//Tracker is the external detection/tracking model. Track IDs it returns must stay stable across
//calls made for the same video; that state belongs to the tracker, not to this package.
type Tracker[F any] interface {
	TrackFrame(frame F) ([]tracking.Detection, error)
}

//Options selects between recomputing and reusing a stored sequence
type Options struct {
	//Store is the cache location; nil disables caching
	Store Store
	//Key identifies the video being processed
	Key Key
	//Reuse loads the stored sequence instead of running the tracker
	Reuse bool
	//RecomputeOnMiss runs the tracker when Reuse finds nothing usable, instead of failing
	RecomputeOnMiss bool
}

//DetectFrames returns one FrameDetections per frame, in input order. fromCache reports whether the
//tracker was skipped. A recompute always overwrites the store.
func DetectFrames[F any](tracker Tracker[F], frames []F, opts Options) (detections []tracking.FrameDetections, fromCache bool, err error) {
	if opts.Reuse && opts.Store != nil {
		detections, err := opts.Store.Load(opts.Key)
		if err == nil {
			return detections, true, nil
		}
		if !errors.Is(err, ErrCacheMiss) || !opts.RecomputeOnMiss {
			return nil, false, fmt.Errorf("DetectFrames: %w", err)
		}
		log.Printf("DetectFrames: %v, recomputing", err)
	}

	detections = make([]tracking.FrameDetections, 0, len(frames))
	for i, frame := range frames {
		raw, err := tracker.TrackFrame(frame)
		if err != nil {
			return nil, false, fmt.Errorf("DetectFrames: frame %d: %w", i, err)
		}
		detections = append(detections, tracking.PersonDetections(raw))
	}

	if opts.Store != nil {
		if err := opts.Store.Save(opts.Key, detections); err != nil {
			return nil, false, fmt.Errorf("DetectFrames: %w", err)
		}
	}

	return detections, false, nil
}
