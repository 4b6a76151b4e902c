package core

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

type finiSpy struct{ calls int }

func (f *finiSpy) Fini() { f.calls++ }

func captureCrash(t *testing.T) (*bytes.Buffer, *int) {
	t.Helper()
	var buf bytes.Buffer
	code := -1
	prevOut, prevExit := crashOut, crashExit
	crashOut = &buf
	crashExit = func(c int) { code = c }
	t.Cleanup(func() {
		crashOut, crashExit = prevOut, prevExit
		RegisterCrashTerminal(nil)
	})
	return &buf, &code
}

func TestHandleCrashRestoresTerminalOnce(t *testing.T) {
	buf, code := captureCrash(t)
	spy := &finiSpy{}
	RegisterCrashTerminal(spy)

	HandleCrash("boom")
	HandleCrash("again")

	assert.Equal(t, 1, spy.calls)
	assert.Equal(t, 1, *code)
	assert.Contains(t, buf.String(), "CRASH DETECTED: boom")
	assert.Contains(t, buf.String(), "Stack Trace:")
}

func TestHandleCrashNil(t *testing.T) {
	buf, code := captureCrash(t)
	HandleCrash(nil)
	assert.Empty(t, buf.String())
	assert.Equal(t, -1, *code)
}

func TestGoRecovers(t *testing.T) {
	buf, _ := captureCrash(t)
	done := make(chan struct{})
	crashExit = func(int) { close(done) }

	Go(func() { panic("worker") })
	<-done
	assert.Contains(t, buf.String(), "worker")
}

func TestHandleRoundTrip(t *testing.T) {
	h := NewHandle(123456, 7)
	assert.Equal(t, uint32(123456), h.Slot())
	assert.Equal(t, uint8(7), h.Generation())
	assert.Equal(t, h, HandleFromSlot(h.Widen()))
	assert.Equal(t, "123456:7", h.String())

	wrapped := NewHandle(MaxHandleSlot+1, 1)
	assert.Equal(t, uint32(0), wrapped.Slot(), "slot is masked to 24 bits")
}
