// Package clipboard provides string access to the system pasteboard.
package clipboard

import "errors"

// ErrUnsupported is returned on platforms without a pasteboard backend.
var ErrUnsupported = errors.New("clipboard not supported on this platform")

// GetText returns the clipboard's current string content. An empty
// clipboard (or one holding non-string content) returns "" with no error.
func GetText() (string, error) {
	return getText()
}

// SetText replaces the clipboard's string content.
func SetText(text string) error {
	return setText(text)
}
