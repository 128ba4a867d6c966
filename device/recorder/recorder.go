// Package recorder is a Buzzer and Clock that never touches hardware. It
// keeps every call and advances a virtual clock on Delay.
package recorder

import (
	"fmt"
	"io"

	"github.com/jsphweid/buzzer/player"
)

type Call struct {
	At        uint32
	Kind      player.Kind
	Frequency uint16
	Millis    uint32
}

func (c Call) String() string {
	switch c.Kind {
	case player.KindTone:
		return fmt.Sprintf("%8dms  tone   %5d Hz for %d ms", c.At, c.Frequency, c.Millis)
	case player.KindDelay:
		return fmt.Sprintf("%8dms  delay  %d ms", c.At, c.Millis)
	default:
		return fmt.Sprintf("%8dms  notone", c.At)
	}
}

type Recorder struct {
	calls   []Call
	elapsed uint32
	// Out, when set, gets one line per call as it happens.
	Out io.Writer
}

func New() *Recorder {
	return &Recorder{}
}

func (r *Recorder) record(c Call) {
	r.calls = append(r.calls, c)
	if r.Out != nil {
		fmt.Fprintln(r.Out, c)
	}
}

func (r *Recorder) Tone(frequency uint16, duration uint32) {
	r.record(Call{At: r.elapsed, Kind: player.KindTone, Frequency: frequency, Millis: duration})
}

func (r *Recorder) NoTone() {
	r.record(Call{At: r.elapsed, Kind: player.KindNoTone})
}

func (r *Recorder) Delay(ms uint32) {
	r.record(Call{At: r.elapsed, Kind: player.KindDelay, Millis: ms})
	r.elapsed += ms
}

func (r *Recorder) Calls() []Call {
	return r.calls
}

// Elapsed is the virtual time spent in Delay so far.
func (r *Recorder) Elapsed() uint32 {
	return r.elapsed
}

// Silent reports whether nothing is sounding, going only by the calls
// made: a Tone is taken to last until NoTone.
func (r *Recorder) Silent() bool {
	for i := len(r.calls) - 1; i >= 0; i-- {
		switch r.calls[i].Kind {
		case player.KindNoTone:
			return true
		case player.KindTone:
			return false
		}
	}
	return true
}

func (r *Recorder) Reset() {
	r.calls = nil
	r.elapsed = 0
}
