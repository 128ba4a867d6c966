package melody

import (
	"github.com/jsphweid/buzzer/note"
)

// Melody is a fixed-length run of notes in non-decreasing offset order.
// Its length is set by New and never changes.
type Melody struct {
	notes []note.Note
}

// New copies notes into storage owned by the melody and sorts them by
// offset. Notes sharing an offset keep the order they were given in.
func New(notes ...note.Note) *Melody {
	owned := make([]note.Note, len(notes))
	copy(owned, notes)
	m := &Melody{notes: owned}
	m.sort()
	return m
}

// sort is an insertion sort. Melodies are tens of notes long and the
// boards running them have a couple of kB of RAM, so it works in place
// with no extra memory even though it is O(n^2).
func (m *Melody) sort() {
	for i := 1; i < len(m.notes); i++ {
		for j := i; j > 0 && note.Greater(m.notes[j-1], m.notes[j]); j-- {
			m.notes[j-1], m.notes[j] = m.notes[j], m.notes[j-1]
		}
	}
}

// Len is fixed when the melody is built.
func (m *Melody) Len() int {
	return len(m.notes)
}

// At gives direct access to the i-th note. There is no bounds checking
// beyond what Go does for any slice.
func (m *Melody) At(i int) *note.Note {
	return &m.notes[i]
}

// Get returns a copy of the i-th note.
func (m *Melody) Get(i int) note.Note {
	return m.notes[i]
}

// Notes is a view over the melody's storage. Its capacity equals its
// length, so appending to it copies instead of growing the melody.
func (m *Melody) Notes() []note.Note {
	return m.notes[:len(m.notes):len(m.notes)]
}

// Duration is when the last note's tone ends, which is also how long
// playback takes.
func (m *Melody) Duration() uint32 {
	if len(m.notes) == 0 {
		return 0
	}
	return m.notes[len(m.notes)-1].End()
}

// IsSorted is false once a note was moved out of order through At.
func (m *Melody) IsSorted() bool {
	for i := 1; i < len(m.notes); i++ {
		if note.Greater(m.notes[i-1], m.notes[i]) {
			return false
		}
	}
	return true
}
