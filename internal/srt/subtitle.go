package srt

import (
	"regexp"
	"strings"
)

// Subtitle is a single cue: a time period plus the raw text that appears
// on screen during it.
type Subtitle struct {
	Index  int
	Period Period
	Text   string
}

var (
	markupTagRe  = regexp.MustCompile(`<[^>]*>`)
	assOverrider = regexp.MustCompile(`\{\\[^}]*\}`)
)

// PlainText returns the cue text with SRT/ASS markup stripped and whitespace
// collapsed to single spaces, suitable for display in a deck row.
func (s Subtitle) PlainText() string {
	text := assOverrider.ReplaceAllString(s.Text, "")
	text = markupTagRe.ReplaceAllString(text, "")
	return strings.Join(strings.Fields(text), " ")
}
