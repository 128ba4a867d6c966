package player

import (
	"github.com/jsphweid/buzzer/melody"
)

type Kind string

const (
	KindDelay  Kind = "delay"
	KindTone   Kind = "tone"
	KindNoTone Kind = "notone"
)

// Event is one call Play makes, stamped with the time (ms from the start
// of playback) at which it is made.
type Event struct {
	At        uint32 `json:"at" yaml:"at"`
	Kind      Kind   `json:"kind" yaml:"kind"`
	Frequency uint16 `json:"frequency,omitempty" yaml:"frequency,omitempty"`
	Millis    uint32 `json:"millis,omitempty" yaml:"millis,omitempty"`
}

// timeline records Play's calls against a virtual clock.
type timeline struct {
	now    uint32
	events []Event
}

func (t *timeline) Tone(frequency uint16, duration uint32) {
	t.events = append(t.events, Event{At: t.now, Kind: KindTone, Frequency: frequency, Millis: duration})
}

func (t *timeline) NoTone() {
	t.events = append(t.events, Event{At: t.now, Kind: KindNoTone})
}

func (t *timeline) Delay(ms uint32) {
	t.events = append(t.events, Event{At: t.now, Kind: KindDelay, Millis: ms})
	t.now += ms
}

// Timeline is the schedule Play would follow for m, without waiting.
func Timeline(m *melody.Melody) []Event {
	var t timeline
	Play(&t, &t, m)
	return t.events
}
