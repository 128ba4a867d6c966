// Package midiout drives a MIDI synth or keyboard as if it were a buzzer.
package midiout

import (
	"fmt"
	"sync"
	"time"

	"github.com/jsphweid/buzzer/logger"
	"github.com/jsphweid/buzzer/pitch"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
)

const velocity = 100

type sendFunc func(msg midi.Message) error

// Out implements player.Buzzer. Each Tone ends the previous key and
// schedules its own NoteOff after duration, which is what tone() does on a
// pin.
type Out struct {
	mu      sync.Mutex
	send    sendFunc
	channel uint8
	key     uint8
	on      bool
	gen     uint64
	after   func(d time.Duration, f func()) *time.Timer
}

// Open sends to the numbered MIDI out port. A driver must be registered
// (cmd imports rtmididrv for that).
func Open(port int, channel uint8) (*Out, error) {
	out, err := midi.OutPort(port)
	if err != nil {
		return nil, fmt.Errorf("can't find MIDI out port %d: %w", port, err)
	}
	return New(out, channel)
}

func New(out drivers.Out, channel uint8) (*Out, error) {
	send, err := midi.SendTo(out)
	if err != nil {
		return nil, fmt.Errorf("can't send to %v: %w", out, err)
	}
	return newOut(send, channel), nil
}

func newOut(send sendFunc, channel uint8) *Out {
	return &Out{send: send, channel: channel, after: time.AfterFunc}
}

func (o *Out) emit(msg midi.Message) {
	if err := o.send(msg); err != nil {
		logger.Warn("could not send MIDI message", logger.String("msg", msg.String()), logger.ErrorField(err))
	}
}

// release must be called with mu held.
func (o *Out) release() {
	if o.on {
		o.emit(midi.NoteOff(o.channel, o.key))
		o.on = false
	}
}

func (o *Out) Tone(frequency uint16, duration uint32) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.release()
	o.gen++
	o.key = pitch.FrequencyToKey(float64(frequency))
	o.on = true
	o.emit(midi.NoteOn(o.channel, o.key, velocity))

	gen := o.gen
	o.after(time.Duration(duration)*time.Millisecond, func() {
		o.mu.Lock()
		defer o.mu.Unlock()
		if o.gen == gen {
			o.release()
		}
	})
}

func (o *Out) NoTone() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.gen++
	o.release()
}
