package scryfall

import (
	"errors"
	"fmt"
	"strings"
)

// CardError is the typed "card not found" value. It carries the query
// that failed and the URL attempted so it can render a useful message,
// and it is the only error kind the card resolver ever returns:
// transport faults, malformed responses and semantic misses all
// collapse into it at the request boundary.
type CardError struct {
	Name   string
	Set    string
	Number string
	Lang   string
	URL    string
	Err    error // underlying cause, nil for a clean not-found
}

func (e *CardError) Error() string {
	var b strings.Builder
	b.WriteString("Scryfall: couldn't find card")
	if e.Name != "" {
		fmt.Fprintf(&b, " %q", e.Name)
	}
	if e.Set != "" {
		fmt.Fprintf(&b, " [%s]", strings.ToUpper(e.Set))
	}
	if e.Number != "" {
		fmt.Fprintf(&b, " #%s", e.Number)
	}
	if e.Lang != "" {
		fmt.Fprintf(&b, " (lang:%s)", e.Lang)
	}
	if e.URL != "" {
		fmt.Fprintf(&b, ", tried %s", e.URL)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *CardError) Unwrap() error {
	return e.Err
}

// NewCardError creates a CardError for the given query parameters.
func NewCardError(url, name, set, number, lang string) *CardError {
	return &CardError{Name: name, Set: set, Number: number, Lang: lang, URL: url}
}

// IsNotFound reports whether err is a CardError (even when wrapped).
func IsNotFound(err error) bool {
	var cardErr *CardError
	return errors.As(err, &cardErr)
}
