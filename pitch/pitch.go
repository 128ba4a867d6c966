// Package pitch converts between note names, MIDI keys and frequencies
// in twelve-tone equal temperament tuned to A4 = 440 Hz.
package pitch

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/jsphweid/buzzer/util"
)

const (
	a4Key       = 69
	a4Frequency = 440.0
)

var steps = map[byte]int{'C': 0, 'D': 2, 'E': 4, 'F': 5, 'G': 7, 'A': 9, 'B': 11}

func KeyToFrequency(key uint8) float64 {
	return a4Frequency * math.Pow(2, float64(int(key)-a4Key)/12)
}

// FrequencyToKey returns the nearest MIDI key, clamped to 0..127.
func FrequencyToKey(frequency float64) uint8 {
	if frequency <= 0 {
		return 0
	}
	key := math.Round(a4Key + 12*math.Log2(frequency/a4Frequency))
	return uint8(util.Clamp(key, 0, 127))
}

// Hz rounds a frequency to what a buzzer table stores.
func Hz(frequency float64) uint16 {
	return uint16(util.Clamp(math.Round(frequency), 0, math.MaxUint16))
}

// ParseKey reads names like "A4", "C#5", "Bb3" or "E-1". The octave is
// required; middle C is C4.
func ParseKey(name string) (uint8, error) {
	s := strings.TrimSpace(name)
	if len(s) < 2 {
		return 0, fmt.Errorf("invalid pitch %q", name)
	}
	step, ok := steps[strings.ToUpper(s[:1])[0]]
	if !ok {
		return 0, fmt.Errorf("invalid pitch %q: unknown step", name)
	}
	rest := s[1:]
	for len(rest) > 0 && (rest[0] == '#' || rest[0] == 'b') {
		if rest[0] == '#' {
			step++
		} else {
			step--
		}
		rest = rest[1:]
	}
	oct, err := strconv.Atoi(rest)
	if err != nil {
		return 0, fmt.Errorf("invalid pitch %q: bad octave", name)
	}
	key := (oct+1)*12 + step
	if key < 0 || key > 127 {
		return 0, fmt.Errorf("invalid pitch %q: out of MIDI range", name)
	}
	return uint8(key), nil
}

func Parse(name string) (float64, error) {
	key, err := ParseKey(name)
	if err != nil {
		return 0, err
	}
	return KeyToFrequency(key), nil
}
