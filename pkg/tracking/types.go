package tracking

import (
	"errors"
	"fmt"
	"image"
	"math"
	"strconv"
	"strings"
)

//KeypointsNum is the number of reference points describing the court
const KeypointsNum = 14

//PersonClass is the only detector class label accepted as a player
const PersonClass = "person"

//ErrKeypointCount is returned when court geometry does not hold KeypointsNum (x, y) pairs
var ErrKeypointCount = errors.New("court geometry must hold 28 numbers (14 keypoints)")

//BoundingBox is an axis-aligned box in frame pixel space: left, top, right, bottom
type BoundingBox [4]float64

//Center returns the midpoint of the box
func (b BoundingBox) Center() Point {
	return Point{X: (b[0] + b[2]) / 2, Y: (b[1] + b[3]) / 2}
}

//Rect converts the box to integer pixel coordinates for drawing
func (b BoundingBox) Rect() image.Rectangle {
	return image.Rect(int(b[0]), int(b[1]), int(b[2]), int(b[3]))
}

//Point is a location in frame pixel space
type Point struct {
	X float64
	Y float64
}

//Distance returns the euclidean distance between p and q
func (p Point) Distance(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

//Role is a canonical player identity, fixed for the lifetime of one video
type Role int

const (
	//PlayerOne is the player on the near baseline
	PlayerOne Role = 1
	//PlayerTwo is the player on the far baseline
	PlayerTwo Role = 2
)

func (r Role) String() string {
	return strconv.Itoa(int(r))
}

//Detection is one object reported by the detector/tracker on one frame
type Detection struct {
	ID    int         `json:"ID"`
	Class string      `json:"Class"`
	Box   BoundingBox `json:"Box"`
}

//FrameDetections maps tracker-assigned track IDs to their box on one frame
type FrameDetections map[int]BoundingBox

//RoleDetections maps canonical roles to their box on one frame
type RoleDetections map[Role]BoundingBox

//RoleMapping translates track IDs into canonical roles. Holds at most two entries.
type RoleMapping map[int]Role

//CourtKeypoints is the static court geometry, in the same pixel space as detections
type CourtKeypoints [KeypointsNum]Point

//NewCourtKeypoints builds keypoints from a flat list where index i has x at 2i and y at 2i+1
func NewCourtKeypoints(flat []float64) (CourtKeypoints, error) {
	var kps CourtKeypoints
	if len(flat) != KeypointsNum*2 {
		return kps, fmt.Errorf("NewCourtKeypoints: got %d numbers: %w", len(flat), ErrKeypointCount)
	}

	for i := range kps {
		kps[i] = Point{X: flat[2*i], Y: flat[2*i+1]}
	}

	return kps, nil
}

//ParseCourtKeypoints parses comma or whitespace separated numbers into keypoints
func ParseCourtKeypoints(s string) (CourtKeypoints, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '[' || r == ']'
	})

	flat := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return CourtKeypoints{}, fmt.Errorf("ParseCourtKeypoints: bad number %q: %w", f, err)
		}
		flat = append(flat, v)
	}

	return NewCourtKeypoints(flat)
}

//PersonDetections keeps the detections labeled as a person and indexes them by track ID.
//A track ID reported twice on the same frame keeps its last box.
func PersonDetections(detections []Detection) FrameDetections {
	frame := make(FrameDetections)
	for _, d := range detections {
		if d.Class != PersonClass {
			continue
		}
		frame[d.ID] = d.Box
	}

	return frame
}
