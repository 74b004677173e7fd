// Package srt parses SubRip subtitle tracks into timed cues and provides
// the time-period arithmetic the deck exporter builds on.
package srt
