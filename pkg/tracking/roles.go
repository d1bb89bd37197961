package tracking

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

//ErrRoleCollision is returned by PolicyStrict when one track is nearest to both keypoint groups
var ErrRoleCollision = errors.New("one track is nearest to both keypoint groups")

//ErrUnknownPolicy is returned for a policy name that is not one of the Policy constants
var ErrUnknownPolicy = errors.New("unknown role assignment policy")

//Policy decides how role conflicts on the reference frame are resolved
type Policy string

const (
	//PolicyGreedy picks the nearest track for each role independently. When the same track wins both,
	//the mapping collapses to that single track holding PlayerTwo.
	PolicyGreedy Policy = "greedy"
	//PolicyStrict picks like PolicyGreedy but fails with ErrRoleCollision instead of collapsing.
	//A single track is not a collision and gets the role of the group it is nearer to.
	PolicyStrict Policy = "strict"
	//PolicyMatching picks the pair of distinct tracks with the lowest total distance
	PolicyMatching Policy = "matching"
)

//ParsePolicy validates a policy name coming from configuration. An empty name selects PolicyMatching,
//not the greedy two-pass selection.
func ParsePolicy(name string) (Policy, error) {
	switch p := Policy(name); p {
	case PolicyGreedy, PolicyStrict, PolicyMatching:
		return p, nil
	case "":
		return PolicyMatching, nil
	default:
		return "", fmt.Errorf("ParsePolicy: %q: %w", name, ErrUnknownPolicy)
	}
}

//keypoint indices of the baseline each player starts on
var (
	playerOneKeypoints = [4]int{2, 5, 7, 3}
	playerTwoKeypoints = [4]int{0, 4, 6, 1}
)

//TrackDistance holds the distance from one track's box center to the nearest keypoint of each role's group
type TrackDistance struct {
	ID        int
	PlayerOne float64
	PlayerTwo float64
}

//Distances computes TrackDistance for every track on the frame, ordered by track ID
func Distances(kps CourtKeypoints, frame FrameDetections) []TrackDistance {
	ids := make([]int, 0, len(frame))
	for id := range frame {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	res := make([]TrackDistance, 0, len(ids))
	for _, id := range ids {
		center := frame[id].Center()
		res = append(res, TrackDistance{
			ID:        id,
			PlayerOne: minDistance(kps, center, playerOneKeypoints),
			PlayerTwo: minDistance(kps, center, playerTwoKeypoints),
		})
	}

	return res
}

func minDistance(kps CourtKeypoints, p Point, group [4]int) float64 {
	best := math.Inf(1)
	for _, idx := range group {
		if d := p.Distance(kps[idx]); d < best {
			best = d
		}
	}

	return best
}

//AssignRoles decides once, from the reference frame, which track becomes which player.
//An empty frame yields an empty mapping; a single track yields a mapping of one entry.
func AssignRoles(kps CourtKeypoints, referenceFrame FrameDetections, policy Policy) (RoleMapping, error) {
	switch policy {
	case "":
		policy = PolicyMatching
	case PolicyGreedy, PolicyStrict, PolicyMatching:
	default:
		return nil, fmt.Errorf("AssignRoles: %q: %w", policy, ErrUnknownPolicy)
	}

	distances := Distances(kps, referenceFrame)
	mapping := make(RoleMapping)
	if len(distances) == 0 {
		return mapping, nil
	}

	//a lone track can not collide with another one, it takes the group it is nearer to
	if len(distances) == 1 && policy != PolicyGreedy {
		d := distances[0]
		if d.PlayerOne <= d.PlayerTwo {
			mapping[d.ID] = PlayerOne
		} else {
			mapping[d.ID] = PlayerTwo
		}
		return mapping, nil
	}

	switch policy {
	case PolicyGreedy, PolicyStrict:
		one := nearest(distances, func(d TrackDistance) float64 { return d.PlayerOne })
		two := nearest(distances, func(d TrackDistance) float64 { return d.PlayerTwo })
		if one == two && policy == PolicyStrict {
			return nil, fmt.Errorf("AssignRoles: track %d: %w", one, ErrRoleCollision)
		}
		mapping[one] = PlayerOne
		mapping[two] = PlayerTwo

	case PolicyMatching:
		one, two := matchPair(distances)
		mapping[one] = PlayerOne
		mapping[two] = PlayerTwo
	}

	return mapping, nil
}

//nearest returns the ID with the smallest distance; distances are ID-ordered so ties go to the lower ID
func nearest(distances []TrackDistance, dist func(TrackDistance) float64) int {
	ranked := make([]TrackDistance, len(distances))
	copy(ranked, distances)
	sort.SliceStable(ranked, func(i, j int) bool {
		return dist(ranked[i]) < dist(ranked[j])
	})

	return ranked[0].ID
}

//matchPair evaluates every ordered pair of distinct tracks and returns the cheapest one.
//Needs at least two tracks.
func matchPair(distances []TrackDistance) (one, two int) {
	best := math.Inf(1)
	for i, a := range distances {
		for j, b := range distances {
			if i == j {
				continue
			}
			if cost := a.PlayerOne + b.PlayerTwo; cost < best {
				best = cost
				one, two = a.ID, b.ID
			}
		}
	}

	return one, two
}
