package input

import (
	"bufio"
	"strings"
	"testing"
	"time"

	"github.com/tmarek/starlane/internal/object"
)

func TestSnapshotControlMapping(t *testing.T) {
	snap := Snapshot{Left: true, Down: true, Secondary: true, Fire: true}

	tests := []struct {
		id   object.ControlID
		want bool
	}{
		{object.ControlLeft, true},
		{object.ControlRight, false},
		{object.ControlUp, false},
		{object.ControlDown, true},
		{object.ControlSecondary, true},
	}
	for _, tt := range tests {
		if got := snap.IsPressed(tt.id); got != tt.want {
			t.Errorf("IsPressed(%v) = %v, want %v", tt.id, got, tt.want)
		}
	}
	if !snap.IsFireHeld() {
		t.Error("IsFireHeld() = false with fire set")
	}
}

// readUntil polls the stream until cond passes or the deadline hits.
// Key timestamps are assigned inside Read, so the poll that first sees
// the bytes also reports them held.
func readUntil(t *testing.T, s *Stream, cond func(Snapshot) bool) Snapshot {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		snap := s.Read()
		if cond(snap) {
			return snap
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
	return Snapshot{}
}

func TestStreamParsesKeys(t *testing.T) {
	r := bufio.NewReader(strings.NewReader("w \x1b[C3"))
	s := StartStream(r)

	snap := readUntil(t, s, func(sn Snapshot) bool {
		return sn.Up && sn.Fire && sn.Right && sn.Number == 3
	})
	if snap.Quit || snap.Left || snap.Down {
		t.Errorf("unexpected keys in snapshot: %+v", snap)
	}
}

func TestStreamKeyHoldExpires(t *testing.T) {
	r := bufio.NewReader(strings.NewReader("a"))
	s := StartStream(r)

	readUntil(t, s, func(sn Snapshot) bool { return sn.Left })

	time.Sleep(keyHoldDuration + 10*time.Millisecond)
	if snap := s.Read(); snap.Left {
		t.Error("key still held past the hold window")
	}
}

// newTestStream bypasses the reader goroutine so tests control exactly
// which bytes each Read sees.
func newTestStream() *Stream {
	return &Stream{ch: make(chan byte, 16), state: keyState{numberVal: -1}}
}

func send(s *Stream, bytes string) {
	for i := 0; i < len(bytes); i++ {
		s.ch <- bytes[i]
	}
}

func TestSplitArrowSequenceIsNotEscape(t *testing.T) {
	splits := []struct {
		name  string
		first string
		rest  string
	}{
		{"after esc", "\x1b", "[A"},
		{"after bracket", "\x1b[", "A"},
	}
	for _, tt := range splits {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStream()

			send(s, tt.first)
			if snap := s.Read(); snap.Escape {
				t.Error("partial arrow sequence registered as escape")
			}

			send(s, tt.rest)
			snap := s.Read()
			if !snap.Up {
				t.Error("split arrow sequence did not decode as up")
			}
			if snap.Escape || snap.Left {
				t.Errorf("split arrow sequence leaked extra keys: %+v", snap)
			}
		})
	}
}

func TestLoneEscapeRegistersNextRead(t *testing.T) {
	s := newTestStream()

	send(s, "\x1b")
	if snap := s.Read(); snap.Escape {
		t.Error("escape registered before the sequence could complete")
	}
	if snap := s.Read(); !snap.Escape {
		t.Error("lone escape never registered")
	}
}

func TestStreamReset(t *testing.T) {
	r := bufio.NewReader(strings.NewReader("q5"))
	s := StartStream(r)

	readUntil(t, s, func(sn Snapshot) bool { return sn.Quit && sn.Number == 5 })

	s.Reset()
	snap := s.Read()
	if snap.Quit {
		t.Error("quit survived reset")
	}
	if snap.Number != -1 {
		t.Errorf("number = %d after reset, want -1", snap.Number)
	}
}
