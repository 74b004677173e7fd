// Package align merges two subtitle tracks into a single sequence of
// time-aligned pairs. Tracks rarely line up one to one, so either side of a
// pair may be absent.
package align

import (
	"sort"

	"subsrs/internal/srt"
)

// Pair holds the foreign and native cues occupying one aligned position.
// Either pointer may be nil when the corresponding track has no cue there.
type Pair struct {
	Foreign *srt.Subtitle
	Native  *srt.Subtitle
}

// Begin returns the pair's position on the timeline: the foreign cue's start
// when present, otherwise the native cue's.
func (p Pair) Begin() float64 {
	if p.Foreign != nil {
		return p.Foreign.Period.Start
	}
	if p.Native != nil {
		return p.Native.Period.Start
	}
	return 0
}

// Tracks pairs each foreign cue with the not-yet-claimed native cue it
// overlaps most, in time. Native cues claimed by no foreign cue surface as
// pairs with a nil foreign side. The result is ordered by Begin. Ties on
// overlap go to the earlier native cue, so the pairing is deterministic.
func Tracks(foreign, native []srt.Subtitle) []Pair {
	claimed := make([]bool, len(native))
	pairs := make([]Pair, 0, len(foreign)+len(native))

	for i := range foreign {
		pair := Pair{Foreign: &foreign[i]}
		best := -1
		bestOverlap := 0.0
		for j := range native {
			if claimed[j] {
				continue
			}
			overlap := foreign[i].Period.Overlap(native[j].Period)
			if overlap > bestOverlap {
				bestOverlap = overlap
				best = j
			}
		}
		if best >= 0 {
			claimed[best] = true
			pair.Native = &native[best]
		}
		pairs = append(pairs, pair)
	}

	for j := range native {
		if !claimed[j] {
			pairs = append(pairs, Pair{Native: &native[j]})
		}
	}

	sort.SliceStable(pairs, func(a, b int) bool {
		return pairs[a].Begin() < pairs[b].Begin()
	})
	return pairs
}
