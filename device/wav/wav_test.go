package wav

import (
	"encoding/binary"
	"testing"

	"github.com/jsphweid/buzzer/melody"
	"github.com/jsphweid/buzzer/note"
	"github.com/jsphweid/buzzer/player"
	"github.com/stretchr/testify/assert"
)

const rate = 8000

func render(m *melody.Melody) *Renderer {
	r := New(rate)
	player.Play(r, r, m)
	return r
}

func countNonZero(samples []int16) int {
	var n int
	for _, s := range samples {
		if s != 0 {
			n++
		}
	}
	return n
}

func TestSingleNote(t *testing.T) {
	r := render(melody.New(note.New(440, 0, 500)))

	assert := assert.New(t)
	assert.Len(r.Samples(), 4000)
	assert.Equal(4000, countNonZero(r.Samples()))
}

func TestStaccatoLeavesSilenceBeforeNextNote(t *testing.T) {
	r := render(melody.New(note.New(440, 0, 200), note.New(880, 300, 100)))
	s := r.Samples()

	assert := assert.New(t)
	assert.Len(s, 3200)
	assert.Equal(1600, countNonZero(s[:1600]))
	assert.Equal(0, countNonZero(s[1600:2400]))
	assert.Equal(800, countNonZero(s[2400:]))
}

func TestLeadingOffsetIsSilence(t *testing.T) {
	r := render(melody.New(note.New(440, 250, 250)))
	s := r.Samples()

	assert := assert.New(t)
	assert.Len(s, 4000)
	assert.Equal(0, countNonZero(s[:2000]))
	assert.Equal(2000, countNonZero(s[2000:]))
}

func TestSquareWaveFrequency(t *testing.T) {
	r := render(melody.New(note.New(400, 0, 1000)))

	var flips int
	s := r.Samples()
	for i := 1; i < len(s); i++ {
		if (s[i] > 0) != (s[i-1] > 0) {
			flips++
		}
	}
	// two sign changes per period
	assert.InDelta(t, 800, flips, 2)
}

func TestEmptyMelodyRendersNothing(t *testing.T) {
	r := render(melody.New())
	assert.Empty(t, r.Samples())
}

func TestWavHeader(t *testing.T) {
	r := render(melody.New(note.New(440, 0, 10)))
	data, err := r.Bytes()

	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal("RIFF", string(data[0:4]))
	assert.Equal("WAVE", string(data[8:12]))
	assert.Equal("data", string(data[36:40]))
	assert.Equal(uint32(rate), binary.LittleEndian.Uint32(data[24:28]))
	assert.Equal(uint32(len(r.Samples())*2), binary.LittleEndian.Uint32(data[40:44]))
	assert.Len(data, 44+len(r.Samples())*2)
}
