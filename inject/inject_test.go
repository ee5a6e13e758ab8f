package inject

import (
	"errors"
	"testing"
)

type fakePerm struct {
	granted   bool
	requested int
}

func (p *fakePerm) MicrophoneGranted() bool      { return true }
func (p *fakePerm) RequestMicrophone()           {}
func (p *fakePerm) InputMonitoringGranted() bool { return p.granted }
func (p *fakePerm) RequestInputMonitoring()      { p.requested++ }

type fakeKeys struct {
	pasteErr error
	typeErr  error
	pastes   int
	typed    []keyStroke
}

func (k *fakeKeys) PasteCombo() error {
	k.pastes++
	return k.pasteErr
}

func (k *fakeKeys) TypeKey(code uint16, shift bool) error {
	if k.typeErr != nil {
		return k.typeErr
	}
	k.typed = append(k.typed, keyStroke{code, shift})
	return nil
}

type fakeBoard struct {
	content string
	history []string
	setErr  error
	getErr  error
}

func (b *fakeBoard) GetText() (string, error) {
	return b.content, b.getErr
}

func (b *fakeBoard) SetText(s string) error {
	if b.setErr != nil {
		return b.setErr
	}
	b.content = s
	b.history = append(b.history, s)
	return nil
}

func newTestInjector(keys *fakeKeys, board *fakeBoard, perm *fakePerm) *Injector {
	return &Injector{perm: perm, keys: keys, board: board}
}

func TestInsertPermissionDenied(t *testing.T) {
	perm := &fakePerm{granted: false}
	board := &fakeBoard{content: "precious"}
	in := newTestInjector(&fakeKeys{}, board, perm)

	if err := in.Insert("hello"); !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("Insert = %v, want ErrPermissionDenied", err)
	}
	// Checked before any clipboard mutation.
	if board.content != "precious" {
		t.Errorf("clipboard touched despite missing permission: %q", board.content)
	}
	if perm.requested != 1 {
		t.Errorf("permission requests = %d, want 1", perm.requested)
	}
}

func TestInsertViaPaste(t *testing.T) {
	keys := &fakeKeys{}
	board := &fakeBoard{content: "before"}
	in := newTestInjector(keys, board, &fakePerm{granted: true})

	if err := in.Insert("hello world"); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if keys.pastes != 1 {
		t.Errorf("pastes = %d, want 1", keys.pastes)
	}
	if board.content != "before" {
		t.Errorf("clipboard = %q, want restored %q", board.content, "before")
	}
	// Write-then-restore order.
	if len(board.history) != 2 || board.history[0] != "hello world" {
		t.Errorf("clipboard history = %v", board.history)
	}
	if len(keys.typed) != 0 {
		t.Error("typed fallback used although paste succeeded")
	}
}

func TestPasteFailureRestoresClipboard(t *testing.T) {
	keys := &fakeKeys{pasteErr: errors.New("synthesis blocked"), typeErr: errors.New("also blocked")}
	board := &fakeBoard{content: "before"}
	in := newTestInjector(keys, board, &fakePerm{granted: true})

	err := in.Insert("hello")
	if !errors.Is(err, ErrInjectionFailed) {
		t.Fatalf("Insert = %v, want ErrInjectionFailed", err)
	}
	if board.content != "before" {
		t.Errorf("clipboard = %q, want restored %q after failed paste", board.content, "before")
	}
}

func TestPasteFailureFallsBackToTyping(t *testing.T) {
	keys := &fakeKeys{pasteErr: errors.New("synthesis blocked")}
	board := &fakeBoard{content: "before"}
	in := newTestInjector(keys, board, &fakePerm{granted: true})

	if err := in.Insert("hi"); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if len(keys.typed) != 2 {
		t.Fatalf("typed %d keys, want 2", len(keys.typed))
	}
	if board.content != "before" {
		t.Errorf("clipboard = %q, want %q", board.content, "before")
	}
}

func TestTypingSkipsUnmappedRunes(t *testing.T) {
	keys := &fakeKeys{pasteErr: errors.New("no paste")}
	in := newTestInjector(keys, &fakeBoard{}, &fakePerm{granted: true})

	// The umlaut and emoji have no US-layout mapping and are skipped.
	if err := in.Insert("héy🎤!"); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if len(keys.typed) != 3 {
		t.Errorf("typed %d keys, want 3 (h, y, !)", len(keys.typed))
	}
}

func TestTypingShiftForUppercase(t *testing.T) {
	keys := &fakeKeys{pasteErr: errors.New("no paste")}
	in := newTestInjector(keys, &fakeBoard{}, &fakePerm{granted: true})

	if err := in.Insert("Ab"); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if len(keys.typed) != 2 {
		t.Fatalf("typed %d keys, want 2", len(keys.typed))
	}
	if !keys.typed[0].shift || keys.typed[1].shift {
		t.Errorf("shift flags = %v/%v, want true/false", keys.typed[0].shift, keys.typed[1].shift)
	}
}

func TestInsertAsyncReportsResult(t *testing.T) {
	in := newTestInjector(&fakeKeys{}, &fakeBoard{}, &fakePerm{granted: true})

	done := make(chan error, 1)
	in.InsertAsync("ok", func(err error) { done <- err })

	if err := <-done; err != nil {
		t.Fatalf("async Insert: %v", err)
	}
}

func TestInsertEmptyTextIsNoop(t *testing.T) {
	keys := &fakeKeys{}
	board := &fakeBoard{content: "before"}
	in := newTestInjector(keys, board, &fakePerm{granted: true})

	if err := in.Insert(""); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if keys.pastes != 0 || len(board.history) != 0 {
		t.Error("empty insert touched clipboard or keys")
	}
}

func TestLookupKeyCoverage(t *testing.T) {
	for _, r := range "abcdefghijklmnopqrstuvwxyz0123456789 .,!?'\"\n" {
		if _, ok := lookupKey(r); !ok {
			t.Errorf("no mapping for %q", r)
		}
	}
	if ks, ok := lookupKey('V'); !ok || !ks.shift {
		t.Errorf("lookupKey('V') = %+v, %v, want shifted v", ks, ok)
	}
	if _, ok := lookupKey('é'); ok {
		t.Error("unexpected mapping for é")
	}
}
