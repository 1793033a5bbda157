// Package input turns a raw terminal byte stream into per-frame control
// state. Terminals only deliver key presses, not holds, so each key keeps
// a last-seen timestamp and counts as held for a short window after it.
package input

import (
	"bufio"
	"time"

	"github.com/tmarek/starlane/internal/object"
)

// keyHoldDuration is how long a key is considered "held" after its last press.
const keyHoldDuration = 30 * time.Millisecond

// Snapshot is one frame's control state. It satisfies object.Controls.
type Snapshot struct {
	Quit      bool
	Pause     bool
	Mute      bool
	Left      bool
	Right     bool
	Up        bool
	Down      bool
	Fire      bool
	Secondary bool
	Reroll    bool
	Enter     bool
	Escape    bool
	Number    int // -1 when no digit was pressed recently
}

// IsPressed implements object.Controls.
func (s Snapshot) IsPressed(id object.ControlID) bool {
	switch id {
	case object.ControlLeft:
		return s.Left
	case object.ControlRight:
		return s.Right
	case object.ControlUp:
		return s.Up
	case object.ControlDown:
		return s.Down
	case object.ControlSecondary:
		return s.Secondary
	default:
		return false
	}
}

// IsFireHeld implements object.Controls.
func (s Snapshot) IsFireHeld() bool {
	return s.Fire
}

// keyState tracks the last time each key was pressed.
type keyState struct {
	quit      time.Time
	pause     time.Time
	mute      time.Time
	left      time.Time
	right     time.Time
	up        time.Time
	down      time.Time
	fire      time.Time
	secondary time.Time
	reroll    time.Time
	enter     time.Time
	escape    time.Time
	number    time.Time
	numberVal int
}

// Stream delivers input bytes via a channel and tracks key state so
// simultaneous key combinations are detectable. An escape sequence split
// across reads is carried in pending until its tail arrives.
type Stream struct {
	ch      chan byte
	state   keyState
	pending []byte
}

// StartStream spawns a goroutine that reads from r and sends bytes to the
// stream. The channel closes when the reader ends (disconnect).
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{
		ch:    make(chan byte, 128),
		state: keyState{numberVal: -1},
	}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// Read drains all pending bytes (non-blocking), updates key state and
// returns the frame's snapshot. Escape sequences for arrow keys are
// decoded inline. A sequence whose tail has not arrived yet is carried
// into the next Read, so a split arrow key never registers as Escape; a
// lone ESC that stays lone for a full frame counts as the Escape key.
func (s *Stream) Read() Snapshot {
	now := time.Now()
	buf := append([]byte(nil), s.pending...)
	carried := len(buf)
	s.pending = s.pending[:0]

drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}
	gotNew := len(buf) > carried

	i := 0
	for i < len(buf) {
		b := buf[i]
		if b != '\x1b' {
			s.applyByte(b, now)
			i++
			continue
		}

		n, complete := escapeLen(buf[i:])
		if !complete {
			if gotNew {
				s.pending = append(s.pending, buf[i:]...)
			} else {
				// A frame passed with no follow-up bytes: a real ESC press.
				for _, t := range buf[i:] {
					s.applyByte(t, now)
				}
			}
			break
		}
		if n == 1 {
			s.state.escape = now
		} else {
			switch buf[i+n-1] {
			case 'A':
				s.state.up = now
			case 'B':
				s.state.down = now
			case 'C':
				s.state.right = now
			case 'D':
				s.state.left = now
			}
		}
		i += n
	}

	held := func(t time.Time) bool { return now.Sub(t) < keyHoldDuration }

	snap := Snapshot{
		Quit:      held(s.state.quit),
		Pause:     held(s.state.pause),
		Mute:      held(s.state.mute),
		Left:      held(s.state.left),
		Right:     held(s.state.right),
		Up:        held(s.state.up),
		Down:      held(s.state.down),
		Fire:      held(s.state.fire),
		Secondary: held(s.state.secondary),
		Reroll:    held(s.state.reroll),
		Enter:     held(s.state.enter),
		Escape:    held(s.state.escape),
		Number:    -1,
	}
	if held(s.state.number) {
		snap.Number = s.state.numberVal
	}
	return snap
}

// escapeLen reports the byte length of the escape sequence at the start of
// b, where b[0] is ESC. complete is false while the sequence may still be
// arriving: a lone ESC, or ESC [ followed only by parameter bytes so far.
func escapeLen(b []byte) (n int, complete bool) {
	if len(b) == 1 {
		return 0, false
	}
	if b[1] != '[' {
		// ESC followed by an ordinary byte: a plain Escape press.
		return 1, true
	}
	j := 2
	for j < len(b) && b[j] >= 0x20 && b[j] <= 0x3f {
		j++
	}
	if j < len(b) {
		return j + 1, true
	}
	return 0, false
}

// Reset clears all key state, discarding anything "held" across a screen
// change so a key from the previous screen does not trigger the next one.
func (s *Stream) Reset() {
	s.state = keyState{numberVal: -1}
	s.pending = s.pending[:0]
}

func (s *Stream) applyByte(b byte, now time.Time) {
	switch b {
	case 'q', 'Q':
		s.state.quit = now
	case 'p', 'P':
		s.state.pause = now
	case 'm', 'M':
		s.state.mute = now
	case 'a', 'A', 'h', 'H':
		s.state.left = now
	case 'd', 'D', 'l', 'L':
		s.state.right = now
	case 'w', 'W', 'k', 'K':
		s.state.up = now
	case 's', 'S', 'j', 'J':
		s.state.down = now
	case ' ':
		s.state.fire = now
	case 'x', 'X':
		s.state.secondary = now
	case 'r', 'R':
		s.state.reroll = now
	case '\n', '\r':
		s.state.enter = now
	case '\x1b':
		s.state.escape = now
	case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		s.state.number = now
		s.state.numberVal = int(b - '0')
	}
}
