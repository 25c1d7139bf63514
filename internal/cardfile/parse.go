// Package cardfile extracts card details from art file names.
//
// Art files follow a loose tagging convention, e.g.
//
//	Damnation (Seb McKinnon) [TSR] {MyName}.png
//	Aberrant Researcher [SOI123].jpg
//
// where every tag is optional: (...) holds the artist, [...] the set
// code with an optional collector number, and {...} the proxy creator.
package cardfile

import (
	"path/filepath"
	"regexp"
	"strings"
)

// CardDetails holds everything recoverable from an art file name.
// Produced exactly once per input file and read-only afterwards.
type CardDetails struct {
	Filename string // full path to the art file
	Name     string // card name, always present
	Set      string // set code, e.g. "MH2"
	Artist   string
	Number   string // collector number, only set when Set is
	Creator  string
}

var (
	creatorRe = regexp.MustCompile(`\{([^}]*)\}`)
	artistRe  = regexp.MustCompile(`\(([^)]*)\)`)
	setTagRe  = regexp.MustCompile(`\[([^\]]*)\]`)
	// Set codes are 3-5 alphanumerics; a collector number may trail
	// them inside the same bracket, e.g. [SOI123] or [MH2 50].
	setNumRe = regexp.MustCompile(`^([A-Za-z0-9]{3,5}?)[\s.-]*(\d*)$`)
)

// Parse pulls card details out of an art file path. It is a total
// function: any string yields a usable CardDetails, a file with no
// bracket tags simply has every optional field empty.
func Parse(path string) CardDetails {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	details := CardDetails{
		Filename: path,
		Name:     nameBeforeTags(stem),
	}

	if m := creatorRe.FindStringSubmatch(stem); m != nil {
		details.Creator = strings.TrimSpace(m[1])
	}
	if m := artistRe.FindStringSubmatch(stem); m != nil {
		details.Artist = strings.TrimSpace(m[1])
	}
	if m := setTagRe.FindStringSubmatch(stem); m != nil {
		details.Set, details.Number = splitSetTag(m[1])
	}

	return details
}

// nameBeforeTags isolates the bare card name: everything before the
// first bracket opener, trimmed.
func nameBeforeTags(stem string) string {
	if i := strings.IndexAny(stem, "{[("); i >= 0 {
		stem = stem[:i]
	}
	return strings.TrimSpace(stem)
}

// splitSetTag separates a bracket tag into set code and collector
// number. The code match is non-greedy, so [SOI123] yields SOI + 123
// while a digit-bearing code like MH2 alone stays intact.
func splitSetTag(tag string) (code, number string) {
	m := setNumRe.FindStringSubmatch(strings.TrimSpace(tag))
	if m == nil {
		return "", ""
	}
	return m[1], m[2]
}
