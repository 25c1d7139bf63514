// Package console prints user-facing messages for interactive runs.
// Log output goes through slog; this package is only for the few
// messages a person at the keyboard is meant to read and act on.
package console

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"github.com/lmancini/MTG-Proxyshop/internal/config"
)

var (
	// Out and In are swappable for tests.
	Out io.Writer = os.Stdout
	In  io.Reader = os.Stdin

	warnColor = color.New(color.FgYellow, color.Bold)
)

// Warn prints a highlighted warning. Suppressed in test mode.
func Warn(format string, args ...any) {
	if config.TestMode {
		return
	}
	warnColor.Fprintf(Out, "WARNING: "+format+"\n", args...)
}

// AwaitExit prints a message and blocks until the user presses enter.
// Used for failures that should stop an interactive run dead, like an
// unsupported card layout.
func AwaitExit(format string, args ...any) {
	if config.TestMode {
		return
	}
	fmt.Fprintf(Out, format+"\nPress enter to exit...", args...)
	_, _ = bufio.NewReader(In).ReadString('\n')
}
