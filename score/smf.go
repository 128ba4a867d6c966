package score

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/jsphweid/buzzer/melody"
	"github.com/jsphweid/buzzer/pitch"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

// ReadSMF parses a standard MIDI file.
func ReadSMF(path string) (s *smf.SMF, e error) {
	// smf can panic on malformed files
	// https://github.com/gomidi/midi/issues/20
	defer func() {
		if r := recover(); r != nil {
			s = nil
			e = fmt.Errorf("error parsing midi file %v: %v", path, r)
		}
	}()

	dat, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading midi file: %w", err)
	}
	res, err := smf.ReadFrom(bytes.NewReader(dat))
	if err != nil {
		return nil, fmt.Errorf("error parsing midi file: %w", err)
	}
	return res, nil
}

// Sounding is a key held from Start to End, both in ms.
type Sounding struct {
	Key   uint8
	Start int64
	End   int64
}

// FromSMF merges every track of s into a single line, see Monophonic.
func FromSMF(name string, s *smf.SMF) (*Table, error) {
	var notes []Sounding
	for _, track := range s.Tracks {
		open := make(map[[2]uint8]int64)
		var absTicks int64
		for _, event := range track {
			absTicks += int64(event.Delta)
			ms := s.TimeAt(absTicks) / 1000
			var channel, key, velocity uint8
			switch {
			case event.Message.GetNoteStart(&channel, &key, &velocity):
				open[[2]uint8{channel, key}] = ms
			case event.Message.GetNoteEnd(&channel, &key):
				start, ok := open[[2]uint8{channel, key}]
				if !ok {
					continue
				}
				delete(open, [2]uint8{channel, key})
				notes = append(notes, Sounding{Key: key, Start: start, End: ms})
			}
		}
	}
	return Monophonic(name, notes)
}

// Monophonic turns held keys into a note table. When several keys start
// together only the highest is kept; overlaps are left for the player,
// which cuts a tone off when the next one starts.
func Monophonic(name string, notes []Sounding) (*Table, error) {
	if len(notes) == 0 {
		return nil, errors.New("no notes")
	}
	sorted := make([]Sounding, len(notes))
	copy(sorted, notes)
	// prioritize earlier starts, then higher keys
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Start != sorted[j].Start {
			return sorted[i].Start < sorted[j].Start
		}
		return sorted[i].Key > sorted[j].Key
	})

	t := &Table{Name: name}
	for i, n := range sorted {
		if i > 0 && sorted[i-1].Start == n.Start {
			continue
		}
		var duration uint32
		if n.End > n.Start {
			duration = uint32(n.End - n.Start)
		}
		t.Notes = append(t.Notes, Entry{
			Frequency: pitch.Hz(pitch.KeyToFrequency(n.Key)),
			Offset:    uint32(n.Start),
			Duration:  duration,
		})
	}
	return t, nil
}

const (
	exportBPM   = 120
	exportTicks = 960
)

// msToTicks assumes exportBPM, where a quarter note lasts 500 ms.
func msToTicks(ms uint32) int64 {
	return int64(ms) * exportTicks / 500
}

type timedMessage struct {
	tick int64
	msg  midi.Message
}

// ToSMF writes m as a single track file. A note is cut off when the next
// one starts, so the file stays monophonic like the buzzer.
func ToSMF(w io.Writer, m *melody.Melody) error {
	notes := m.Notes()
	var events []timedMessage
	for i, n := range notes {
		key := pitch.FrequencyToKey(float64(n.Frequency()))
		end := n.End()
		if i+1 < len(notes) && notes[i+1].Offset() < end {
			end = notes[i+1].Offset()
		}
		events = append(events,
			timedMessage{msToTicks(n.Offset()), midi.NoteOn(0, key, 100)},
			timedMessage{msToTicks(end), midi.NoteOff(0, key)},
		)
	}
	// already in order unless a note was edited out of place through Melody.At
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].tick < events[j].tick
	})

	var track smf.Track
	track.Add(0, smf.MetaTempo(exportBPM))
	var last int64
	for _, e := range events {
		track.Add(uint32(e.tick-last), e.msg)
		last = e.tick
	}
	track.Close(0)

	s := smf.New()
	s.TimeFormat = smf.MetricTicks(exportTicks)
	if err := s.Add(track); err != nil {
		return fmt.Errorf("could not add track: %w", err)
	}
	if _, err := s.WriteTo(w); err != nil {
		return fmt.Errorf("could not write midi file: %w", err)
	}
	return nil
}
