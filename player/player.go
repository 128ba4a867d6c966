package player

import (
	"time"

	"github.com/jsphweid/buzzer/logger"
	"github.com/jsphweid/buzzer/melody"
)

// Buzzer is a single tone channel. Tone may return before duration has
// elapsed; Play does its own waiting.
type Buzzer interface {
	Tone(frequency uint16, duration uint32)
	NoTone()
}

// Clock blocks the caller for at least ms milliseconds.
type Clock interface {
	Delay(ms uint32)
}

type systemClock struct{}

func (systemClock) Delay(ms uint32) {
	time.Sleep(time.Duration(ms) * time.Millisecond)
}

// SystemClock waits on the wall clock.
var SystemClock Clock = systemClock{}

// Play sounds m on b, using c for every wait. The gap between two notes
// starting is always the difference of their offsets, whatever the
// first note's duration. The channel is silent when Play returns.
func Play(b Buzzer, c Clock, m *melody.Melody) {
	if m.Len() == 0 {
		return
	}

	logger.Debug("playing melody", logger.Int("notes", m.Len()), logger.Uint32("length_ms", m.Duration()))
	if !m.IsSorted() {
		logger.Warn("melody edited out of order, notes starting early get no wait")
	}

	notes := m.Notes()
	c.Delay(notes[0].Offset())
	last := len(notes) - 1
	for i := 0; i < last; i++ {
		b.Tone(notes[i].Frequency(), notes[i].Duration())
		c.Delay(gap(notes[i].Offset(), notes[i+1].Offset()))
	}
	b.Tone(notes[last].Frequency(), notes[last].Duration())
	c.Delay(notes[last].Duration())
	b.NoTone()

	logger.Debug("finished melody", logger.Int("notes", m.Len()))
}

// gap is 0 when a note was edited (through Melody.At) to start before
// the one preceding it.
func gap(from, to uint32) uint32 {
	if to < from {
		return 0
	}
	return to - from
}
