package render

import (
	"errors"
	"fmt"

	"github.com/lmancini/MTG-Proxyshop/internal/scryfall"
)

// UnsupportedLayoutError means the resolved card has a layout no
// builder covers. Fatal to the job; the caller decides whether it is
// fatal to the run.
type UnsupportedLayoutError struct {
	Layout scryfall.Layout
}

func (e *UnsupportedLayoutError) Error() string {
	return fmt.Sprintf("layout %q is not supported", e.Layout)
}

// IsUnsupportedLayout reports whether err is an UnsupportedLayoutError
// (even when wrapped).
func IsUnsupportedLayout(err error) bool {
	var unsupported *UnsupportedLayoutError
	return errors.As(err, &unsupported)
}

// NoTemplateError means no template is registered for the layout
// class, neither the requested one nor a default.
type NoTemplateError struct {
	Template string
	Class    string
}

func (e *NoTemplateError) Error() string {
	return fmt.Sprintf("no template found for layout class %q", e.Class)
}

// IsNoTemplate reports whether err is a NoTemplateError (even when wrapped).
func IsNoTemplate(err error) bool {
	var noTemplate *NoTemplateError
	return errors.As(err, &noTemplate)
}
