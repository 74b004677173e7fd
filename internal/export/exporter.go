package export

import (
	"subsrs/internal/align"
	"subsrs/internal/srt"
)

// Exporter is the collaborator that owns everything outside row assembly:
// source metadata, track alignment, media-clip extraction, and file writes.
// Schedule calls register deferred extraction work and return a stable file
// name usable immediately in row text; the actual clipping happens inside
// FinishExports, which must be invoked exactly once after all scheduling.
type Exporter interface {
	ForeignLanguage() string
	Title() string
	FileStem() string
	Align() []align.Pair
	ScheduleImageExport(at float64) string
	ScheduleAudioExport(lang string, period srt.Period) string
	ExportDataFile(name string, data []byte) error
	FinishExports() error
}
