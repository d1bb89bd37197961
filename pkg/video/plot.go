package video

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"sort"

	"github.com/chenBenjamin97/player-tracker/pkg/tracking"
	"gocv.io/x/gocv"
)

//ErrLengthMismatch is returned when frames and detections do not pair up one to one
var ErrLengthMismatch = errors.New("frames and detections have different lengths")

var playerColor = color.RGBA{255, 0, 0, 0}

//DrawBoxes returns a copy of every frame with a rectangle and a "Player ID" label per detection.
//Keys may be canonical roles or raw track IDs. Input frames are left untouched; the caller owns
//the returned Mats and must Close them.
func DrawBoxes[K ~int, M ~map[K]tracking.BoundingBox](frames []gocv.Mat, detections []M) ([]gocv.Mat, error) {
	if len(frames) != len(detections) {
		return nil, fmt.Errorf("DrawBoxes: %d frames, %d detection maps: %w", len(frames), len(detections), ErrLengthMismatch)
	}

	out := make([]gocv.Mat, 0, len(frames))
	for i, frame := range frames {
		plotted := frame.Clone()
		for _, key := range sortedKeys[K](detections[i]) {
			plotPlayerOnFrame(&plotted, int(key), detections[i][key])
		}
		out = append(out, plotted)
	}

	return out, nil
}

//plotPlayerOnFrame plots given bounding box and writes the ID above its top left corner
func plotPlayerOnFrame(frame *gocv.Mat, id int, box tracking.BoundingBox) {
	rect := fixRect(box.Rect(), frame.Rows(), frame.Cols())

	gocv.PutText(frame, fmt.Sprintf("Player ID: %d", id), image.Pt(rect.Min.X, rect.Min.Y-10), gocv.FontHersheySimplex, 0.9, playerColor, 2)
	gocv.Rectangle(frame, rect, playerColor, 2)
}

func sortedKeys[K ~int, M ~map[K]tracking.BoundingBox](m M) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	return keys
}

//fixRect clamps a rectangle to the frame, boxes may reach outside when a player leaves the picture
func fixRect(r image.Rectangle, frameHeight, frameWidth int) image.Rectangle {
	clamp := func(v, limit int) int {
		if v < 0 {
			return 0
		}
		if v > limit {
			return limit
		}
		return v
	}

	return image.Rect(clamp(r.Min.X, frameWidth), clamp(r.Min.Y, frameHeight), clamp(r.Max.X, frameWidth), clamp(r.Max.Y, frameHeight))
}
