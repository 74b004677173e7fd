package media

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ProbeResult represents the parsed output from an ffprobe inspection.
type ProbeResult struct {
	Streams []Stream `json:"streams"`
	Format  Format   `json:"format"`
}

// Stream describes a single stream in the media container.
type Stream struct {
	Index      int               `json:"index"`
	CodecName  string            `json:"codec_name"`
	CodecType  string            `json:"codec_type"`
	Width      int               `json:"width"`
	Height     int               `json:"height"`
	SampleRate string            `json:"sample_rate"`
	Channels   int               `json:"channels"`
	Tags       map[string]string `json:"tags"`
}

// Format captures container-level metadata extracted by ffprobe.
type Format struct {
	Filename   string `json:"filename"`
	Duration   string `json:"duration"`
	FormatName string `json:"format_name"`
}

// Probe executes ffprobe against path and decodes the JSON response.
func Probe(ctx context.Context, run Runner, binary, path string) (ProbeResult, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffprobe"
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return ProbeResult{}, errors.New("probe: empty path")
	}

	output, err := run.Run(ctx, binary,
		"-v", "error", "-hide_banner",
		"-show_format", "-show_streams",
		"-of", "json", "--", path)
	if err != nil {
		return ProbeResult{}, fmt.Errorf("probe %s: %w", path, err)
	}

	var result ProbeResult
	if err := json.Unmarshal(output, &result); err != nil {
		return ProbeResult{}, fmt.Errorf("probe parse: %w", err)
	}
	return result, nil
}

// DurationSeconds returns the container duration in seconds, or 0 when
// unavailable.
func (r ProbeResult) DurationSeconds() float64 {
	value, err := strconv.ParseFloat(strings.TrimSpace(r.Format.Duration), 64)
	if err != nil {
		return 0
	}
	return value
}

// HasVideo reports whether the container holds at least one video stream.
func (r ProbeResult) HasVideo() bool {
	return r.countStreams("video") > 0
}

// HasAudio reports whether the container holds at least one audio stream.
func (r ProbeResult) HasAudio() bool {
	return r.countStreams("audio") > 0
}

func (r ProbeResult) countStreams(codecType string) int {
	count := 0
	for _, stream := range r.Streams {
		if strings.EqualFold(stream.CodecType, codecType) {
			count++
		}
	}
	return count
}

// Language returns the language tag of the stream, if any.
func (s Stream) Language() string {
	for key, value := range s.Tags {
		if strings.EqualFold(key, "language") {
			return value
		}
	}
	return ""
}
