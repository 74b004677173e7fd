package srt

// Period is a half-open time interval [Start, End) in fractional seconds.
type Period struct {
	Start float64
	End   float64
}

// Duration returns the length of the period in seconds.
func (p Period) Duration() float64 {
	return p.End - p.Start
}

// Midpoint returns the instant halfway through the period.
func (p Period) Midpoint() float64 {
	return p.Start + p.Duration()/2
}

// Grow pads the period proportionally to its own duration: before and after
// are multipliers applied to the duration and subtracted from Start and added
// to End respectively. The result is not clamped to zero; callers that hand
// the period to a media tool clamp at that boundary.
func (p Period) Grow(before, after float64) Period {
	d := p.Duration()
	return Period{
		Start: p.Start - d*before,
		End:   p.End + d*after,
	}
}

// Overlap returns the length in seconds of the intersection of two periods,
// or a non-positive value when they do not intersect.
func (p Period) Overlap(other Period) float64 {
	start := p.Start
	if other.Start > start {
		start = other.Start
	}
	end := p.End
	if other.End < end {
		end = other.End
	}
	return end - start
}
