package text

import (
	"sort"

	"gitlab.com/tozd/go/errors"
)

// ErrUnknownPreset is returned by LookupPreset for a name with no built-in rules
var ErrUnknownPreset = errors.Base("unknown preset")

// 📦 Preset is a named, ready-made rule list
type Preset struct {
	Name        string
	Description string
	Rules       Rules
}

// Patterns below are written as escapes because they are themselves mis-decoded
// text; spelling them out keeps editors from "fixing" them.
var presets = map[string]Preset{
	"css": {
		Name:        "css",
		Description: "remove empty background and color declarations",
		Rules: Rules{
			{Old: "background:;", New: ""},
			{Old: "color:}", New: "}"},
		},
	},
	"mojibake": {
		Name:        "mojibake",
		Description: "repair UTF-8 text that was decoded as Windows-1252 and encoded again",
		// longest pattern first
		Rules: Rules{
			{Old: "\u00c3\u00a2\u00e2\u201a\u00ac\u00e2\u201e\u00a2", New: "'"},      // right single quote
			{Old: "\u00c3\u00a2\u00e2\u201a\u00ac\u00e2\u20ac\u0153", New: "\u2014"}, // em dash
			{Old: "\u00c3\u00a2\u00e2\u201a\u00ac\u00e2\u20ac\"", New: "\u2013"},     // en dash
			{Old: "\u00c3\u00a2\u00e2\u201a\u00ac\u00cb\u0153", New: "'"},            // left single quote
			{Old: "\u00c3\u00a2\u00e2\u201a\u00ac\u00c5\"", New: "\""},               // left double quote
			{Old: "\u00c3\u00a2\u00e2\u201a\u00ac\u00c2\u00a6", New: "\u2026"},       // ellipsis
			{Old: "\u00c3\u00a2\u00e2\u201a\u00ac\u00c2\u00a2", New: "\u2022"},       // bullet
			{Old: "\u00c3\u00a2\u00e2\u20ac\u017e\u00c2\u00a2", New: "\u2122"},       // trademark
			{Old: "\u00c3\u00a2\u00e2\u201a\u00ac\u00c2", New: "\""},                 // right double quote
			{Old: "\u00c3\u201a\u00c2\u00a9", New: "\u00a9"},                         // copyright
			{Old: "\u00c3\u201a\u00c2 ", New: " "},                                   // space
			{Old: "\u00c3\u201a\u00c2\u00bb", New: "\u00bb"},                         // right guillemet
			{Old: "\u00c3\u201a\u00c2\u00ae", New: "\u00ae"},                         // registered
			{Old: "\u00c2\u00a9", New: "\u00a9"},
			{Old: "\u00c2 ", New: " "},
			{Old: "\u00c2\u00bb", New: "\u00bb"},
		},
	},
}

// 🎯 LookupPreset returns a copy of the named preset
func LookupPreset(name string) (Preset, error) {
	p, ok := presets[name]
	if !ok {
		return Preset{}, errors.Errorf("%w: %q (available: %v)", ErrUnknownPreset, name, PresetNames())
	}
	p.Rules = append(Rules(nil), p.Rules...)
	return p, nil
}

// PresetNames returns the built-in preset names in sorted order
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
