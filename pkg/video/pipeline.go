package video

import (
	"fmt"
	"log"

	"github.com/chenBenjamin97/player-tracker/pkg/cache"
	"github.com/chenBenjamin97/player-tracker/pkg/metrics"
	"github.com/chenBenjamin97/player-tracker/pkg/tracking"
	"gocv.io/x/gocv"
)

//Options configures one pipeline run
type Options struct {
	//Tracker runs detection when the cache cannot answer. May be nil when the cache is expected to hit.
	Tracker cache.Tracker[gocv.Mat]
	//Store is the detection cache location, nil disables caching
	Store           cache.Store
	Reuse           bool
	RecomputeOnMiss bool

	Policy tracking.Policy

	//OutputPath receives the rendered video; empty skips rendering
	OutputPath string
	TempDir    string

	Metrics *metrics.Metrics
}

//Result is what one pipeline run produced
type Result struct {
	Mapping    tracking.RoleMapping
	Detections []tracking.RoleDetections
	Distances  []tracking.TrackDistance
	FromCache  bool
	OutputPath string
}

//Process tracks the players of videoPath: it detects tracks on every frame (or reuses the cache), assigns
//the two roles on the first frame, relabels the whole sequence and optionally renders the overlay video.
func Process(videoPath string, kps tracking.CourtKeypoints, opts Options) (res *Result, err error) {
	defer func() { opts.Metrics.RunFinished(err) }()

	frames, fps, err := ReadFrames(videoPath)
	if err != nil {
		return nil, fmt.Errorf("Process: %w", err)
	}
	defer CloseFrames(frames)

	key, err := cache.KeyForFile(videoPath, len(frames))
	if err != nil {
		return nil, fmt.Errorf("Process: %w", err)
	}

	tracker := opts.Tracker
	if tracker == nil {
		tracker = noTracker{}
	}

	raw, fromCache, err := cache.DetectFrames(tracker, frames, cache.Options{
		Store:           opts.Store,
		Key:             key,
		Reuse:           opts.Reuse,
		RecomputeOnMiss: opts.RecomputeOnMiss,
	})
	if err != nil {
		return nil, fmt.Errorf("Process: %w", err)
	}
	opts.Metrics.Detected(len(raw), fromCache)
	log.Printf("Process: '%s' - %d frames, key %s, from cache: %v", videoPath, len(raw), key, fromCache)

	mapping, detections, err := tracking.ChooseAndFilter(kps, raw, opts.Policy)
	if err != nil {
		return nil, fmt.Errorf("Process: %w", err)
	}
	opts.Metrics.RolesAssigned(len(mapping))

	res = &Result{
		Mapping:    mapping,
		Detections: detections,
		FromCache:  fromCache,
	}
	if len(raw) > 0 {
		res.Distances = tracking.Distances(kps, raw[0])
	}
	for _, d := range res.Distances {
		log.Printf("Process: track %d - %.2f pixels from player 1 keypoints, %.2f pixels from player 2 keypoints", d.ID, d.PlayerOne, d.PlayerTwo)
	}
	log.Printf("Process: selected players %v", mapping)

	if opts.OutputPath == "" {
		return res, nil
	}

	plotted, err := DrawBoxes(frames, detections)
	if err != nil {
		return nil, fmt.Errorf("Process: %w", err)
	}
	defer CloseFrames(plotted)

	if err := WriteFrames(opts.OutputPath, opts.TempDir, plotted, fps); err != nil {
		return nil, fmt.Errorf("Process: %w", err)
	}
	res.OutputPath = opts.OutputPath

	return res, nil
}

//noTracker stands in when the caller relies on the cache alone
type noTracker struct{}

func (noTracker) TrackFrame(gocv.Mat) ([]tracking.Detection, error) {
	return nil, fmt.Errorf("no tracker configured")
}
