package midiout

import (
	"testing"
	"time"

	"github.com/jsphweid/buzzer/melody"
	"github.com/jsphweid/buzzer/note"
	"github.com/jsphweid/buzzer/player"
	"github.com/stretchr/testify/assert"
	"gitlab.com/gomidi/midi/v2"
)

type noClock struct{}

func (noClock) Delay(uint32) {}

// newTestOut captures sent messages and the pending NoteOff timers instead
// of running them.
func newTestOut() (*Out, *[]midi.Message, *[]func()) {
	var sent []midi.Message
	var timers []func()
	o := newOut(func(msg midi.Message) error {
		sent = append(sent, msg)
		return nil
	}, 0)
	o.after = func(d time.Duration, f func()) *time.Timer {
		timers = append(timers, f)
		return nil
	}
	return o, &sent, &timers
}

func keys(msgs []midi.Message) []string {
	var res []string
	for _, m := range msgs {
		res = append(res, m.String())
	}
	return res
}

func TestToneReplacesPreviousKey(t *testing.T) {
	o, sent, _ := newTestOut()

	o.Tone(440, 1000)
	o.Tone(880, 1000)

	assert.Equal(t, keys([]midi.Message{
		midi.NoteOn(0, 69, velocity),
		midi.NoteOff(0, 69),
		midi.NoteOn(0, 81, velocity),
	}), keys(*sent))
}

func TestStaleTimerDoesNotCutNextNote(t *testing.T) {
	o, sent, timers := newTestOut()

	o.Tone(440, 100)
	o.Tone(880, 100)
	(*timers)[0]()

	assert.Len(t, *sent, 3)

	(*timers)[1]()
	assert.Equal(t, midi.NoteOff(0, 81).String(), (*sent)[3].String())
}

func TestPlayEndsWithNoteOff(t *testing.T) {
	o, sent, _ := newTestOut()

	player.Play(o, noClock{}, melody.New(note.New(440, 0, 200), note.New(880, 300, 100)))

	msgs := *sent
	assert := assert.New(t)
	assert.Len(msgs, 4)
	assert.Equal(midi.NoteOff(0, 81).String(), msgs[3].String())
	assert.False(o.on)
}

func TestNoToneWhenSilentSendsNothing(t *testing.T) {
	o, sent, _ := newTestOut()
	o.NoTone()
	assert.Empty(t, *sent)
}
