//go:build darwin

package inject

/*
#cgo LDFLAGS: -framework ApplicationServices -framework CoreFoundation

extern int pressPasteCombo(void);
extern int typeKeystroke(unsigned short keyCode, int shift);
*/
import "C"

import "errors"

// cgKeystroker posts synthesized key events at the session level via
// CGEventPost.
type cgKeystroker struct{}

func newKeystroker() Keystroker {
	return cgKeystroker{}
}

func (cgKeystroker) PasteCombo() error {
	if C.pressPasteCombo() != 0 {
		return errors.New("CGEventPost paste combo failed")
	}
	return nil
}

func (cgKeystroker) TypeKey(keyCode uint16, shift bool) error {
	cShift := C.int(0)
	if shift {
		cShift = 1
	}
	if C.typeKeystroke(C.ushort(keyCode), cShift) != 0 {
		return errors.New("CGEventPost keystroke failed")
	}
	return nil
}
