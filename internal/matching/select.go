// Package matching selects descriptor matches for homography estimation.
package matching

import (
	"math"
	"sort"
)

// Match is a single descriptor correspondence between a query (template)
// keypoint and a train (scene) keypoint.
type Match struct {
	Query    int
	Train    int
	Distance float64
}

// Stats summarises the distances of a match set.
type Stats struct {
	Count int
	Min   float64
	Max   float64
}

// DistanceStats returns the count and distance range of matches. Min and
// Max are zero for an empty set.
func DistanceStats(matches []Match) Stats {
	if len(matches) == 0 {
		return Stats{}
	}
	s := Stats{Count: len(matches), Min: math.Inf(1), Max: math.Inf(-1)}
	for _, m := range matches {
		s.Min = math.Min(s.Min, m.Distance)
		s.Max = math.Max(s.Max, m.Distance)
	}
	return s
}

// SelectBest returns at most k matches with the smallest distances, in
// increasing distance order. Matches farther than maxDistance are dropped;
// maxDistance <= 0 disables that limit. Equal distances keep input order.
// The input is not modified.
func SelectBest(matches []Match, k int, maxDistance float64) []Match {
	if k <= 0 {
		return nil
	}
	kept := make([]Match, 0, len(matches))
	for _, m := range matches {
		if maxDistance > 0 && m.Distance > maxDistance {
			continue
		}
		kept = append(kept, m)
	}
	sort.SliceStable(kept, func(i, j int) bool { return kept[i].Distance < kept[j].Distance })
	if len(kept) > k {
		kept = kept[:k]
	}
	return kept
}

// RelativeLimit returns factor times the smallest distance, the usual
// "good match" cutoff. Zero distances are floored at floor so a perfect
// match does not reject everything else.
func RelativeLimit(matches []Match, factor, floor float64) float64 {
	s := DistanceStats(matches)
	if s.Count == 0 {
		return 0
	}
	return math.Max(s.Min, floor) * factor
}
