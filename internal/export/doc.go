// Package export assembles spaced-repetition deck rows from aligned subtitle
// pairs and encodes them as a CSV table compatible with Anki import. Media
// extraction and file writes belong to the Exporter collaborator; this
// package only schedules them and hands over bytes.
package export
