//go:build !darwin

package inject

import "errors"

var errUnsupported = errors.New("keystroke synthesis not supported on this platform")

type stubKeystroker struct{}

func newKeystroker() Keystroker {
	return stubKeystroker{}
}

func (stubKeystroker) PasteCombo() error {
	return errUnsupported
}

func (stubKeystroker) TypeKey(uint16, bool) error {
	return errUnsupported
}
