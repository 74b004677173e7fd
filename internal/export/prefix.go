package export

import (
	"regexp"
	"strings"
)

var episodeSuffixRe = regexp.MustCompile(`[0-9][-_.0-9]+$`)

// EpisodePrefix guesses an episode/volume number from a file stem by taking
// the trailing numeric group, normalizing its separators to periods, and
// appending a space so it can be concatenated onto a timestamp sort key:
// "series_01_02" becomes "01.02 ". Stems with no trailing numeric group
// return "". The matching rule is deliberately frozen; decks already in the
// wild sort by keys built from it.
func EpisodePrefix(stem string) string {
	match := episodeSuffixRe.FindString(stem)
	if match == "" {
		return ""
	}
	replacer := strings.NewReplacer("-", ".", "_", ".")
	return replacer.Replace(match) + " "
}
