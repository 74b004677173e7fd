package srt

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatSortable renders seconds as a fixed-width, zero-padded
// HH:MM:SS.mmm string. Equal-length output means lexicographic order agrees
// with chronological order, which is what deck sort keys rely on. Negative
// inputs format as zero.
func FormatSortable(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	millis := int64(math.Round(seconds * 1000))
	return fmt.Sprintf("%02d:%02d:%02d.%03d",
		millis/3600000,
		millis%3600000/60000,
		millis%60000/1000,
		millis%1000)
}

// ParseTimestamp converts an SRT timestamp (HH:MM:SS,mmm; a period before
// the milliseconds is tolerated) into fractional seconds.
func ParseTimestamp(value string) (float64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("empty timestamp")
	}
	value = strings.ReplaceAll(value, ".", ",")
	timeParts := strings.Split(value, ",")
	if len(timeParts) != 2 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hms := strings.Split(timeParts[0], ":")
	if len(hms) != 3 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hours, errH := strconv.Atoi(hms[0])
	minutes, errM := strconv.Atoi(hms[1])
	seconds, errS := strconv.Atoi(hms[2])
	millis, errMS := strconv.Atoi(timeParts[1])
	if errH != nil || errM != nil || errS != nil || errMS != nil {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	return float64(hours*3600+minutes*60+seconds) + float64(millis)/1000, nil
}
