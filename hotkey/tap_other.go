//go:build !darwin

package hotkey

import (
	hook "github.com/robotn/gohook"
)

// libuiohook modifier mask bits (left | right variants).
const (
	hookMaskShift   = 0x0001 | 0x0010
	hookMaskControl = 0x0002 | 0x0020
	hookMaskCommand = 0x0004 | 0x0040 // meta / win
	hookMaskOption  = 0x0008 | 0x0080 // alt
)

// hookTap is the non-macOS interceptor built on gohook. It can observe
// global key events but cannot swallow them, so matched hotkey presses also
// reach the focused application on these platforms.
type hookTap struct {
	stop chan struct{}
	done chan struct{}
}

func newTap() tap {
	return &hookTap{}
}

func (t *hookTap) install(handler func(keyCode uint16, held Modifier, down bool) bool) error {
	t.stop = make(chan struct{})
	t.done = make(chan struct{})

	events := hook.Start()

	go func() {
		defer close(t.done)
		for {
			select {
			case <-t.stop:
				return
			case ev, ok := <-events:
				if !ok {
					return
				}
				var down bool
				switch ev.Kind {
				case hook.KeyDown, hook.KeyHold:
					down = true
				case hook.KeyUp:
					down = false
				default:
					continue
				}
				handler(ev.Rawcode, heldFromMask(ev.Mask), down)
			}
		}
	}()

	return nil
}

func (t *hookTap) release() {
	close(t.stop)
	hook.End()
	<-t.done
}

func heldFromMask(mask uint16) Modifier {
	var held Modifier
	if mask&hookMaskControl != 0 {
		held |= ModControl
	}
	if mask&hookMaskOption != 0 {
		held |= ModOption
	}
	if mask&hookMaskShift != 0 {
		held |= ModShift
	}
	if mask&hookMaskCommand != 0 {
		held |= ModCommand
	}
	return held
}
