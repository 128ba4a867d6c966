package score

import (
	"fmt"
	"math/big"
	"sort"

	"github.com/jsphweid/buzzer/pitch"
	"github.com/jsphweid/buzzer/util"
)

// Tempo is BPM beats of Subdivision (a fraction of a whole note) per minute.
type Tempo struct {
	Subdivision Fraction `yaml:"subdivision"`
	BPM         int      `yaml:"bpm"`
}

func QuarterEquals(bpm int) Tempo {
	return Tempo{Subdivision: Frac(1, 4), BPM: bpm}
}

// Validate rejects tempos nothing can be timed against: a missing or
// non-positive subdivision, or a BPM under 1.
func (t Tempo) Validate() error {
	if t.Subdivision.Rat().Sign() <= 0 {
		return fmt.Errorf("tempo subdivision must be positive, got %v", t.Subdivision)
	}
	if t.BPM <= 0 {
		return fmt.Errorf("tempo bpm must be positive, got %d", t.BPM)
	}
	return nil
}

// ConvertTo expresses the same speed relative to another subdivision,
// rounding BPM to the nearest integer.
func (t Tempo) ConvertTo(subdivision Fraction) (Tempo, error) {
	if err := t.Validate(); err != nil {
		return Tempo{}, err
	}
	if subdivision.Rat().Sign() <= 0 {
		return Tempo{}, fmt.Errorf("can't convert to subdivision %v", subdivision)
	}
	bpm := new(big.Rat).Mul(big.NewRat(int64(t.BPM), 1), t.Subdivision.Rat())
	bpm.Quo(bpm, subdivision.Rat())
	return Tempo{Subdivision: subdivision, BPM: int(round(bpm))}, nil
}

// Millis converts a length in whole notes to milliseconds. t must be valid.
func (t Tempo) Millis(wholes Fraction) uint32 {
	perMinute := new(big.Rat).Mul(big.NewRat(int64(t.BPM), 1), t.Subdivision.Rat())
	ms := new(big.Rat).Quo(wholes.Rat(), perMinute)
	ms.Mul(ms, big.NewRat(60000, 1))
	return uint32(util.Max(round(ms), 0))
}

// Machine turns a written note into a table entry. The sounding length is
// the articulation's share of the written length, plus a fixed 100 ms
// minus a share of it that shrinks as articulation grows, so short
// articulations stay audible on a buzzer.
func (t Tempo) Machine(w Written) (Entry, error) {
	if err := t.Validate(); err != nil {
		return Entry{}, err
	}
	f, err := pitch.Parse(w.Pitch)
	if err != nil {
		return Entry{}, err
	}
	art, err := w.articulation()
	if err != nil {
		return Entry{}, err
	}
	sounding := new(big.Rat).Mul(art, w.Length.Rat())
	trim := round(new(big.Rat).Mul(art, big.NewRat(100, 1)))
	duration := 100 + int64(t.Millis(Fraction{sounding})) - trim
	return Entry{
		Frequency: pitch.Hz(f),
		Offset:    t.Millis(w.Offset),
		Duration:  uint32(util.Max(duration, 0)),
	}, nil
}

// Convert merges ties and converts every written note.
func (t Tempo) Convert(written []Written) ([]Entry, error) {
	merged, err := mergeTies(written)
	if err != nil {
		return nil, err
	}
	res := make([]Entry, 0, len(merged))
	for _, w := range merged {
		e, err := t.Machine(w)
		if err != nil {
			return nil, fmt.Errorf("note %v at %v: %w", w.Pitch, w.Offset, err)
		}
		res = append(res, e)
	}
	return res, nil
}

func (t Tempo) String() string {
	return fmt.Sprintf("%v note = %d bpm", t.Subdivision, t.BPM)
}

func mergeTies(written []Written) ([]Written, error) {
	notes := make([]Written, len(written))
	copy(notes, written)
	sort.SliceStable(notes, func(i, j int) bool {
		return notes[i].Offset.Rat().Cmp(notes[j].Offset.Rat()) < 0
	})

	var res []Written
	used := make([]bool, len(notes))
	for i := range notes {
		if used[i] {
			continue
		}
		cur := notes[i]
		for cur.Tie {
			next := -1
			for j := i + 1; j < len(notes); j++ {
				if !used[j] && notes[j].Offset.Rat().Cmp(cur.End()) == 0 && samePitch(notes[j].Pitch, cur.Pitch) {
					next = j
					break
				}
			}
			if next < 0 {
				return nil, fmt.Errorf("tied note %v at %v has no continuation", cur.Pitch, cur.Offset)
			}
			used[next] = true
			cur = cur.TieWith(notes[next])
		}
		res = append(res, cur)
	}
	return res, nil
}

func samePitch(a, b string) bool {
	ka, errA := pitch.ParseKey(a)
	kb, errB := pitch.ParseKey(b)
	return errA == nil && errB == nil && ka == kb
}
