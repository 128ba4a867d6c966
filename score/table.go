package score

import (
	"fmt"

	"github.com/jsphweid/buzzer/logger"
	"github.com/jsphweid/buzzer/melody"
	"github.com/jsphweid/buzzer/note"
	"gopkg.in/yaml.v3"
)

// Entry is one row of a note table: what a board stores per note.
type Entry struct {
	Frequency uint16 `yaml:"frequency" json:"frequency"`
	Offset    uint32 `yaml:"offset" json:"offset"`
	Duration  uint32 `yaml:"duration" json:"duration"`
}

// Table is a named literal note table.
type Table struct {
	Name  string  `yaml:"name" json:"name"`
	Notes []Entry `yaml:"notes" json:"notes"`
}

func (t *Table) Melody() *melody.Melody {
	notes := make([]note.Note, len(t.Notes))
	for i, e := range t.Notes {
		notes[i] = note.New(e.Frequency, e.Offset, e.Duration)
	}
	return melody.New(notes...)
}

func FromMelody(name string, m *melody.Melody) *Table {
	t := &Table{Name: name, Notes: make([]Entry, 0, m.Len())}
	for _, n := range m.Notes() {
		t.Notes = append(t.Notes, Entry{Frequency: n.Frequency(), Offset: n.Offset(), Duration: n.Duration()})
	}
	return t
}

// document is the on-disk form. It may carry machine notes, a written
// score, or both; score notes are converted with the tempo and appended.
type document struct {
	Name  string    `yaml:"name"`
	Tempo *Tempo    `yaml:"tempo,omitempty"`
	Score []Written `yaml:"score,omitempty"`
	Notes []Entry   `yaml:"notes,omitempty"`
}

// ParseTable reads YAML (or JSON, which yaml.v3 also accepts).
func ParseTable(data []byte) (*Table, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("could not parse note table: %w", err)
	}
	t := &Table{Name: doc.Name, Notes: doc.Notes}
	if len(doc.Score) > 0 {
		tempo := QuarterEquals(120)
		if doc.Tempo != nil {
			tempo = *doc.Tempo
		}
		quarters, err := tempo.ConvertTo(Frac(1, 4))
		if err != nil {
			return nil, fmt.Errorf("score %q: %w", doc.Name, err)
		}
		logger.Debug("converting score",
			logger.String("name", doc.Name),
			logger.String("tempo", tempo.String()),
			logger.String("quarters", quarters.String()))
		entries, err := tempo.Convert(doc.Score)
		if err != nil {
			return nil, fmt.Errorf("could not convert score %q: %w", doc.Name, err)
		}
		t.Notes = append(t.Notes, entries...)
	}
	return t, nil
}

func (t *Table) YAML() ([]byte, error) {
	data, err := yaml.Marshal(t)
	if err != nil {
		return nil, fmt.Errorf("could not encode note table %q: %w", t.Name, err)
	}
	return data, nil
}
