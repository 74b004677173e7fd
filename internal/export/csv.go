package export

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"subsrs/internal/align"
	"subsrs/internal/contexts"
	"subsrs/internal/srt"
)

// DeckFileName is the logical name of the deck table handed to the Exporter.
const DeckFileName = "cards.csv"

// contextPadding is how far the subtitle period is padded on each side,
// as a multiple of its own duration, before clipping media. Spoken lines
// tend to bleed past their cue timings, so the clips carry generous
// lead-in and lead-out.
const contextPadding = 1.5

// Note is one deck row. The four string fields are always set; the six
// context fields are nil when the corresponding cue is absent.
type Note struct {
	Sound       string
	Time        string
	Source      string
	Image       string
	ForeignCurr *string
	NativeCurr  *string
	ForeignPrev *string
	NativePrev  *string
	ForeignNext *string
	NativeNext  *string
}

// deckHeader fixes the column order of the exported table. Anki note types
// built against this layout map fields by position, so it must not change.
var deckHeader = []string{
	"sound", "time", "source", "image",
	"foreign_curr", "native_curr",
	"foreign_prev", "native_prev",
	"foreign_next", "native_next",
}

// BuildNotes walks the aligned pairs and assembles one Note per position
// that has foreign-language text. Positions without it are dropped before
// windowing: cards lacking foreign text make lousy SRS material, and
// dropping them first means prev/next context comes from the surviving
// neighbors. Media extraction for each row is scheduled on the Exporter as
// a side effect.
func BuildNotes(exp Exporter) []Note {
	prefix := EpisodePrefix(exp.FileStem())
	lang := exp.ForeignLanguage()
	title := exp.Title()

	aligned := exp.Align()
	filtered := make([]align.Pair, 0, len(aligned))
	for _, pair := range aligned {
		if pair.Foreign != nil {
			filtered = append(filtered, pair)
		}
	}

	notes := make([]Note, 0, len(filtered))
	for _, view := range contexts.Window(filtered) {
		foreign := contexts.Project(view, func(p align.Pair) *srt.Subtitle { return p.Foreign })
		native := contexts.Project(view, func(p align.Pair) *srt.Subtitle { return p.Native })

		// Foreign.Curr is guaranteed by the filter above.
		curr := foreign.Curr
		if curr == nil {
			continue
		}
		period := curr.Period.Grow(contextPadding, contextPadding)

		imagePath := exp.ScheduleImageExport(period.Midpoint())
		audioPath := exp.ScheduleAudioExport(lang, period)

		notes = append(notes, Note{
			Sound:       fmt.Sprintf("[sound:%s]", audioPath),
			Time:        prefix + srt.FormatSortable(period.Start),
			Source:      title,
			Image:       fmt.Sprintf("<img src=\"%s\" />", imagePath),
			ForeignCurr: plainText(foreign.Curr),
			NativeCurr:  plainText(native.Curr),
			ForeignPrev: plainText(foreign.Prev),
			NativePrev:  plainText(native.Prev),
			ForeignNext: plainText(foreign.Next),
			NativeNext:  plainText(native.Next),
		})
	}
	return notes
}

// WriteDeck builds all notes, encodes the full table in memory, writes it
// through the Exporter, and only then finalizes the scheduled media
// extractions. A failure at any step aborts the export: a partially written
// deck, or a deck whose rows reference media that was never extracted, is
// worse than no deck at all.
func WriteDeck(exp Exporter) error {
	notes := BuildNotes(exp)

	buf, err := encodeNotes(notes)
	if err != nil {
		return fmt.Errorf("encode deck table: %w", err)
	}
	if err := exp.ExportDataFile(DeckFileName, buf); err != nil {
		return fmt.Errorf("write deck file: %w", err)
	}
	if err := exp.FinishExports(); err != nil {
		return fmt.Errorf("extract media: %w", err)
	}
	return nil
}

func encodeNotes(notes []Note) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(deckHeader); err != nil {
		return nil, err
	}
	for _, note := range notes {
		record := []string{
			note.Sound, note.Time, note.Source, note.Image,
			deref(note.ForeignCurr), deref(note.NativeCurr),
			deref(note.ForeignPrev), deref(note.NativePrev),
			deref(note.ForeignNext), deref(note.NativeNext),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func plainText(s *srt.Subtitle) *string {
	if s == nil {
		return nil
	}
	text := s.PlainText()
	return &text
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
