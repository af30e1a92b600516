// Package terminal prepares and checks the controlling terminal before
// interactive mode starts.
package terminal

import (
	"errors"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// DefaultTERM replaces an unset or dumb terminal type
const DefaultTERM = "xterm-256color"

// ErrNotTerminal is returned when stdin or stdout is not a terminal
var ErrNotTerminal = errors.New("interactive mode requires a terminal")

// NormalizeTERM sets TERM to a capable default when it is unset or "dumb".
// It returns the value now in effect.
func NormalizeTERM() string {
	v := os.Getenv("TERM")
	if v == "" || v == "dumb" {
		_ = os.Setenv("TERM", DefaultTERM)
		return DefaultTERM
	}
	return v
}

// IsInteractive reports whether both stdin and stdout are terminals
func IsInteractive() bool {
	return isTTY(os.Stdin.Fd()) && isTTY(os.Stdout.Fd())
}

func isTTY(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// TooSmallError reports a terminal below the minimum usable size
type TooSmallError struct {
	Width, Height       int
	MinWidth, MinHeight int
}

func (e *TooSmallError) Error() string {
	return fmt.Sprintf("terminal is %dx%d, need at least %dx%d", e.Width, e.Height, e.MinWidth, e.MinHeight)
}

// CheckSize verifies the size of the terminal on stdout
func CheckSize(minWidth, minHeight int) error {
	if !IsInteractive() {
		return ErrNotTerminal
	}
	w, h, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return fmt.Errorf("failed to read terminal size: %w", err)
	}
	return checkDimensions(w, h, minWidth, minHeight)
}

func checkDimensions(w, h, minWidth, minHeight int) error {
	if w < minWidth || h < minHeight {
		return &TooSmallError{Width: w, Height: h, MinWidth: minWidth, MinHeight: minHeight}
	}
	return nil
}
