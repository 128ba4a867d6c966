package score

import (
	"fmt"
	"math/big"
	"strings"
)

// Sounding length of each articulation as a share of the written length.
var articulations = map[string]Fraction{
	"staccatissimo":  Frac(1, 7),
	"staccato":       Frac(2, 7),
	"mezzo-staccato": Frac(3, 7),
	"portato":        Frac(4, 7),
	"non-legato":     Frac(5, 7),
	"tenuto":         Frac(6, 7),
	"legato":         Frac(1, 1),
}

const DefaultArticulation = "non-legato"

// Written is a note as it appears in a score: pitch name, position and
// length in whole notes.
type Written struct {
	Pitch        string   `yaml:"pitch"`
	Offset       Fraction `yaml:"offset"`
	Length       Fraction `yaml:"length"`
	Articulation string   `yaml:"articulation,omitempty"`
	// Tie joins this note to the next one of the same pitch starting where
	// this one ends.
	Tie bool `yaml:"tie,omitempty"`
}

func (w Written) End() *big.Rat {
	return new(big.Rat).Add(w.Offset.Rat(), w.Length.Rat())
}

func (w Written) articulation() (*big.Rat, error) {
	name := strings.ToLower(strings.TrimSpace(w.Articulation))
	if name == "" {
		name = DefaultArticulation
	}
	f, ok := articulations[name]
	if !ok {
		return nil, fmt.Errorf("unknown articulation %q", w.Articulation)
	}
	return f.Rat(), nil
}

// TieWith spans both notes and takes the other note's articulation and tie.
func (w Written) TieWith(other Written) Written {
	offset := w.Offset.Rat()
	if other.Offset.Rat().Cmp(offset) < 0 {
		offset = other.Offset.Rat()
	}
	end := w.End()
	if other.End().Cmp(end) > 0 {
		end = other.End()
	}
	return Written{
		Pitch:        w.Pitch,
		Offset:       Fraction{offset},
		Length:       Fraction{new(big.Rat).Sub(end, offset)},
		Articulation: other.Articulation,
		Tie:          other.Tie,
	}
}
