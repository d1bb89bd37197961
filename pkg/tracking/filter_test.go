package tracking

import (
	"reflect"
	"testing"
)

func TestFilterDetections(t *testing.T) {
	mapping := RoleMapping{7: PlayerOne, 1: PlayerTwo}
	frames := []FrameDetections{
		{7: {443.0236, 806.1839, 505.0568, 907.4980}, 1: {1024.6578, 147.7072, 1068.7899, 272.3576}},
		{7: {444.0236, 807.1839, 506.0568, 908.4980}, 1: {1025.6578, 148.7072, 1069.7899, 273.3576}, 3: {1, 2, 3, 4}},
		{1: {1026.6578, 149.7072, 1070.7899, 274.3576}},
	}

	got := FilterDetections(mapping, frames)

	want := []RoleDetections{
		{PlayerOne: {443.0236, 806.1839, 505.0568, 907.4980}, PlayerTwo: {1024.6578, 147.7072, 1068.7899, 272.3576}},
		{PlayerOne: {444.0236, 807.1839, 506.0568, 908.4980}, PlayerTwo: {1025.6578, 148.7072, 1069.7899, 273.3576}},
		{PlayerTwo: {1026.6578, 149.7072, 1070.7899, 274.3576}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("FilterDetections mismatch: got %#v want %#v", got, want)
	}
}

func TestFilterDetectionsUnmatchedFrame(t *testing.T) {
	mapping := RoleMapping{7: PlayerOne, 1: PlayerTwo}
	frames := []FrameDetections{
		{7: {1, 1, 2, 2}},
		{11: {1, 1, 2, 2}, 12: {3, 3, 4, 4}},
		{},
	}

	got := FilterDetections(mapping, frames)
	if len(got) != 3 {
		t.Fatalf("expected 3 frames, got %d", len(got))
	}
	if got[1] == nil || len(got[1]) != 0 {
		t.Errorf("expected empty non-nil map for unmatched frame, got %#v", got[1])
	}
	if got[2] == nil || len(got[2]) != 0 {
		t.Errorf("expected empty non-nil map for empty frame, got %#v", got[2])
	}
}

func TestFilterDetectionsEmpty(t *testing.T) {
	got := FilterDetections(RoleMapping{7: PlayerOne}, nil)
	if len(got) != 0 {
		t.Errorf("expected empty sequence, got %d frames", len(got))
	}

	got = FilterDetections(RoleMapping{}, []FrameDetections{{7: {1, 2, 3, 4}}, {1: {1, 2, 3, 4}}})
	if len(got) != 2 || len(got[0]) != 0 || len(got[1]) != 0 {
		t.Errorf("empty mapping should drop every track, got %#v", got)
	}
}

func TestFilterDetectionsIdempotentAndPure(t *testing.T) {
	mapping := RoleMapping{7: PlayerOne, 1: PlayerTwo}
	frames := []FrameDetections{
		{7: {1, 2, 3, 4}, 1: {5, 6, 7, 8}, 9: {9, 9, 9, 9}},
		{9: {9, 9, 9, 9}},
	}
	mappingCopy := RoleMapping{7: PlayerOne, 1: PlayerTwo}
	framesCopy := []FrameDetections{
		{7: {1, 2, 3, 4}, 1: {5, 6, 7, 8}, 9: {9, 9, 9, 9}},
		{9: {9, 9, 9, 9}},
	}

	first := FilterDetections(mapping, frames)
	second := FilterDetections(mapping, frames)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated filtering differs: %#v vs %#v", first, second)
	}
	if !reflect.DeepEqual(mapping, mappingCopy) {
		t.Errorf("mapping was modified: %#v", mapping)
	}
	if !reflect.DeepEqual(frames, framesCopy) {
		t.Errorf("frames were modified: %#v", frames)
	}

	for i, frame := range first {
		for role := range frame {
			if role != PlayerOne && role != PlayerTwo {
				t.Errorf("frame %d: unexpected role %d", i, role)
			}
		}
	}
}

func TestChooseAndFilter(t *testing.T) {
	kps := testCourt(t)
	frames := []FrameDetections{
		{7: {443.0236, 806.1839, 505.0568, 907.4980}, 1: {1024.6578, 147.7072, 1068.7899, 272.3576}},
		{7: {445.0236, 808.1839, 507.0568, 909.4980}, 1: {1026.6578, 149.7072, 1070.7899, 274.3576}},
	}

	mapping, filtered, err := ChooseAndFilter(kps, frames, PolicyGreedy)
	if err != nil {
		t.Fatalf("ChooseAndFilter: %v", err)
	}
	if want := (RoleMapping{7: PlayerOne, 1: PlayerTwo}); !reflect.DeepEqual(mapping, want) {
		t.Errorf("mapping: got %v want %v", mapping, want)
	}
	if len(filtered) != 2 {
		t.Fatalf("expected 2 frames, got %d", len(filtered))
	}
	if filtered[1][PlayerOne] != frames[1][7] || filtered[1][PlayerTwo] != frames[1][1] {
		t.Errorf("boxes not carried over: %#v", filtered[1])
	}

	mapping, filtered, err = ChooseAndFilter(kps, nil, PolicyMatching)
	if err != nil {
		t.Fatalf("ChooseAndFilter on empty input: %v", err)
	}
	if len(mapping) != 0 || len(filtered) != 0 {
		t.Errorf("expected empty results, got %v %v", mapping, filtered)
	}
}
