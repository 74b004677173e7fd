// Package media implements the export.Exporter collaborator against a real
// video file using ffmpeg and ffprobe. Clip extraction is two-phase: rows
// schedule clips by stable file name during assembly, and FinishExports runs
// the actual (expensive) extractions afterwards, consulting the media cache
// to skip clips produced by earlier runs.
package media
