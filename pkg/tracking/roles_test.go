package tracking

import (
	"errors"
	"reflect"
	"testing"
)

var courtFlat = []float64{
	649.34, 273.87,
	1259.18, 274.36,
	414.30, 797.75,
	1472.60, 800.00,
	726.17, 273.85,
	546.36, 797.99,
	1182.92, 274.27,
	1339.34, 799.63,
	699.26, 349.78,
	1206.16, 350.28,
	607.14, 615.64,
	1286.25, 616.84,
	952.81, 349.94,
	945.77, 616.25,
}

func testCourt(t *testing.T) CourtKeypoints {
	t.Helper()
	kps, err := NewCourtKeypoints(courtFlat)
	if err != nil {
		t.Fatalf("NewCourtKeypoints: %v", err)
	}
	return kps
}

func TestAssignRolesScenario(t *testing.T) {
	kps := testCourt(t)
	frame := FrameDetections{
		7: {443.02, 806.18, 505.06, 907.50},
		1: {1024.66, 147.71, 1068.79, 272.36},
	}

	for _, policy := range []Policy{PolicyGreedy, PolicyStrict, PolicyMatching} {
		got, err := AssignRoles(kps, frame, policy)
		if err != nil {
			t.Fatalf("%s: AssignRoles: %v", policy, err)
		}
		want := RoleMapping{7: PlayerOne, 1: PlayerTwo}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("%s: got %v, want %v", policy, got, want)
		}
	}
}

func TestAssignRolesCrowdedFrame(t *testing.T) {
	kps := testCourt(t)
	frame := FrameDetections{
		1:  {1024.6578, 147.7072, 1068.7899, 272.3576},
		2:  {1219.9573, 966.6572, 1311.2650, 1042.9421},
		4:  {1113.9965, 980.6678, 1197.5819, 1041.9597},
		5:  {1369.0159, 101.3881, 1392.9397, 189.3555},
		7:  {443.0236, 806.1839, 505.0568, 907.4980},
		8:  {1514.1956, 1010.7090, 1615.7367, 1079.9553},
		9:  {295.4647, 387.0532, 349.1214, 452.6509},
		10: {720.1429, 985.2456, 800.0311, 1079.6555},
	}

	for _, policy := range []Policy{PolicyGreedy, PolicyMatching} {
		got, err := AssignRoles(kps, frame, policy)
		if err != nil {
			t.Fatalf("%s: AssignRoles: %v", policy, err)
		}
		if len(got) != 2 {
			t.Fatalf("%s: expected 2 roles, got %v", policy, got)
		}
		if got[7] != PlayerOne || got[1] != PlayerTwo {
			t.Errorf("%s: got %v, want 7->1 and 1->2", policy, got)
		}
	}
}

func TestAssignRolesEmpty(t *testing.T) {
	kps := testCourt(t)
	for _, policy := range []Policy{PolicyGreedy, PolicyStrict, PolicyMatching} {
		got, err := AssignRoles(kps, FrameDetections{}, policy)
		if err != nil {
			t.Fatalf("%s: AssignRoles: %v", policy, err)
		}
		if len(got) != 0 {
			t.Errorf("%s: expected empty mapping, got %v", policy, got)
		}
	}
}

func TestAssignRolesCollision(t *testing.T) {
	kps := testCourt(t)
	//track 3 sits between the baselines and is nearest to both groups
	frame := FrameDetections{
		3: {510, 500, 550, 570},
		9: {1880, 960, 1920, 1040},
	}

	greedy, err := AssignRoles(kps, frame, PolicyGreedy)
	if err != nil {
		t.Fatalf("greedy: %v", err)
	}
	if want := (RoleMapping{3: PlayerTwo}); !reflect.DeepEqual(greedy, want) {
		t.Errorf("greedy: got %v, want %v", greedy, want)
	}

	if _, err := AssignRoles(kps, frame, PolicyStrict); !errors.Is(err, ErrRoleCollision) {
		t.Errorf("strict: expected ErrRoleCollision, got %v", err)
	}

	matched, err := AssignRoles(kps, frame, PolicyMatching)
	if err != nil {
		t.Fatalf("matching: %v", err)
	}
	if want := (RoleMapping{9: PlayerOne, 3: PlayerTwo}); !reflect.DeepEqual(matched, want) {
		t.Errorf("matching: got %v, want %v", matched, want)
	}
}

func TestAssignRolesSingleTrack(t *testing.T) {
	kps := testCourt(t)
	frame := FrameDetections{4: {400, 780, 430, 820}}

	for _, policy := range []Policy{PolicyStrict, PolicyMatching} {
		got, err := AssignRoles(kps, frame, policy)
		if err != nil {
			t.Fatalf("%s: %v", policy, err)
		}
		if want := (RoleMapping{4: PlayerOne}); !reflect.DeepEqual(got, want) {
			t.Errorf("%s: got %v, want %v", policy, got, want)
		}
	}

	got, err := AssignRoles(kps, frame, PolicyGreedy)
	if err != nil {
		t.Fatalf("greedy: %v", err)
	}
	if want := (RoleMapping{4: PlayerTwo}); !reflect.DeepEqual(got, want) {
		t.Errorf("greedy: got %v, want %v", got, want)
	}
}

func TestAssignRolesSingleFarTrack(t *testing.T) {
	kps := testCourt(t)
	frame := FrameDetections{1: {1024.66, 147.71, 1068.79, 272.36}}

	got, err := AssignRoles(kps, frame, PolicyStrict)
	if err != nil {
		t.Fatalf("strict: %v", err)
	}
	if want := (RoleMapping{1: PlayerTwo}); !reflect.DeepEqual(got, want) {
		t.Errorf("strict: got %v, want %v", got, want)
	}
}

func TestAssignRolesTieBreakByID(t *testing.T) {
	kps := testCourt(t)
	box := BoundingBox{400, 780, 430, 820}
	frame := FrameDetections{12: box, 5: box, 30: box}

	for i := 0; i < 20; i++ {
		got, err := AssignRoles(kps, frame, PolicyGreedy)
		if err != nil {
			t.Fatalf("AssignRoles: %v", err)
		}
		if want := (RoleMapping{5: PlayerTwo}); !reflect.DeepEqual(got, want) {
			t.Fatalf("run %d: got %v, want %v", i, got, want)
		}
	}

	got, err := AssignRoles(kps, frame, PolicyMatching)
	if err != nil {
		t.Fatalf("AssignRoles: %v", err)
	}
	if want := (RoleMapping{5: PlayerOne, 12: PlayerTwo}); !reflect.DeepEqual(got, want) {
		t.Errorf("matching: got %v, want %v", got, want)
	}
}

func TestAssignRolesUnknownPolicy(t *testing.T) {
	kps := testCourt(t)
	if _, err := AssignRoles(kps, FrameDetections{}, Policy("nearest")); !errors.Is(err, ErrUnknownPolicy) {
		t.Errorf("expected ErrUnknownPolicy, got %v", err)
	}
}

func TestParsePolicy(t *testing.T) {
	cases := map[string]Policy{
		"":         PolicyMatching,
		"greedy":   PolicyGreedy,
		"strict":   PolicyStrict,
		"matching": PolicyMatching,
	}
	for name, want := range cases {
		got, err := ParsePolicy(name)
		if err != nil {
			t.Fatalf("ParsePolicy(%q): %v", name, err)
		}
		if got != want {
			t.Errorf("ParsePolicy(%q) = %q, want %q", name, got, want)
		}
	}

	if _, err := ParsePolicy("hungarian"); !errors.Is(err, ErrUnknownPolicy) {
		t.Errorf("expected ErrUnknownPolicy, got %v", err)
	}
}

func TestDistancesOrderedByID(t *testing.T) {
	kps := testCourt(t)
	frame := FrameDetections{
		7: {443.02, 806.18, 505.06, 907.50},
		1: {1024.66, 147.71, 1068.79, 272.36},
	}

	got := Distances(kps, frame)
	if len(got) != 2 || got[0].ID != 1 || got[1].ID != 7 {
		t.Fatalf("unexpected order: %+v", got)
	}
	if got[1].PlayerOne >= got[1].PlayerTwo {
		t.Errorf("track 7 should be nearer the near baseline: %+v", got[1])
	}
	if got[0].PlayerTwo >= got[0].PlayerOne {
		t.Errorf("track 1 should be nearer the far baseline: %+v", got[0])
	}
}
