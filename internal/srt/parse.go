package srt

import (
	"fmt"
	"os"
	"strings"
)

// ParseFile reads an SRT file and returns its cues in file order.
func ParseFile(path string) ([]Subtitle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read srt: %w", err)
	}
	subs, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return subs, nil
}

// Parse decodes SRT content. Malformed blocks are skipped rather than
// failing the whole track; subtitle files in the wild are messy and a
// dropped cue is better than no deck.
func Parse(data []byte) ([]Subtitle, error) {
	content := strings.ReplaceAll(string(data), "\r\n", "\n")
	content = strings.TrimPrefix(content, "\ufeff")
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, nil
	}

	blocks := strings.Split(content, "\n\n")
	var subs []Subtitle

	for _, block := range blocks {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}

		lines := strings.Split(block, "\n")
		if len(lines) < 2 {
			continue
		}

		var index int
		if _, err := fmt.Sscanf(lines[0], "%d", &index); err != nil {
			continue
		}

		if !strings.Contains(lines[1], "-->") {
			continue
		}
		parts := strings.Split(lines[1], "-->")
		if len(parts) != 2 {
			continue
		}

		start, err := ParseTimestamp(parts[0])
		if err != nil {
			continue
		}
		end, err := ParseTimestamp(parts[1])
		if err != nil {
			continue
		}
		if end < start {
			continue
		}

		text := strings.Join(lines[2:], "\n")
		if strings.TrimSpace(text) == "" {
			continue
		}

		subs = append(subs, Subtitle{
			Index:  index,
			Period: Period{Start: start, End: end},
			Text:   text,
		})
	}

	return subs, nil
}
