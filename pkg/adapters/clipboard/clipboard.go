// Package clipboard writes copied narrative text to the system clipboard.
package clipboard

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
)

// ErrUnsupported is returned when the host has no clipboard utility
// (e.g. a headless Linux without xclip, xsel or wl-copy).
var ErrUnsupported = errors.New("system clipboard unavailable")

// System implements ports.Clipboard on top of the OS clipboard.
type System struct{}

// New returns the system clipboard adapter.
func New() *System {
	return &System{}
}

// Available reports whether a clipboard utility was found.
func (s *System) Available() bool {
	return !clipboard.Unsupported
}

// WriteText replaces the clipboard contents.
func (s *System) WriteText(text string) error {
	if clipboard.Unsupported {
		return ErrUnsupported
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("clipboard write failed: %w", err)
	}
	return nil
}

// ReadText returns the clipboard contents.
func (s *System) ReadText() (string, error) {
	if clipboard.Unsupported {
		return "", ErrUnsupported
	}
	text, err := clipboard.ReadAll()
	if err != nil {
		return "", fmt.Errorf("clipboard read failed: %w", err)
	}
	return text, nil
}

// Memory is an in-process clipboard, used when no system clipboard exists
// and in tests.
type Memory struct {
	text string
}

// WriteText stores text.
func (m *Memory) WriteText(text string) error {
	m.text = text
	return nil
}

// Text returns the last written text.
func (m *Memory) Text() string {
	return m.text
}
