// Package language normalizes user-supplied language identifiers ("ja",
// "jpn", "Japanese") into BCP 47 base codes and display names.
package language

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Language is a resolved language: its shortest ISO 639 code and an English
// display name for logs and messages.
type Language struct {
	Code string
	Name string
}

// wordForms maps full English language names to codes, for inputs that the
// BCP 47 parser does not accept.
var wordForms = map[string]string{
	"english":    "en",
	"spanish":    "es",
	"french":     "fr",
	"german":     "de",
	"italian":    "it",
	"portuguese": "pt",
	"japanese":   "ja",
	"korean":     "ko",
	"chinese":    "zh",
	"russian":    "ru",
	"arabic":     "ar",
	"hindi":      "hi",
	"dutch":      "nl",
	"polish":     "pl",
	"swedish":    "sv",
	"danish":     "da",
	"norwegian":  "no",
	"finnish":    "fi",
}

// Resolve parses value as a 2-letter code, 3-letter code, full BCP 47 tag,
// or English language name.
func Resolve(value string) (Language, error) {
	trimmed := strings.ToLower(strings.TrimSpace(value))
	if trimmed == "" {
		return Language{}, fmt.Errorf("language: empty value")
	}
	if code, ok := wordForms[trimmed]; ok {
		trimmed = code
	}
	tag, err := language.Parse(trimmed)
	if err != nil {
		return Language{}, fmt.Errorf("language: unrecognized %q: %w", value, err)
	}
	base, _ := tag.Base()
	return Language{
		Code: base.String(),
		Name: display.English.Languages().Name(tag),
	}, nil
}
