package recorder

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jsphweid/buzzer/melody"
	"github.com/jsphweid/buzzer/note"
	"github.com/jsphweid/buzzer/player"
	"github.com/stretchr/testify/assert"
)

func TestRecordsPlayback(t *testing.T) {
	r := New()
	player.Play(r, r, melody.New(note.New(880, 300, 100), note.New(440, 0, 200)))

	assert := assert.New(t)
	assert.Equal([]Call{
		{At: 0, Kind: player.KindDelay, Millis: 0},
		{At: 0, Kind: player.KindTone, Frequency: 440, Millis: 200},
		{At: 0, Kind: player.KindDelay, Millis: 300},
		{At: 300, Kind: player.KindTone, Frequency: 880, Millis: 100},
		{At: 300, Kind: player.KindDelay, Millis: 100},
		{At: 400, Kind: player.KindNoTone},
	}, r.Calls())
	assert.Equal(uint32(400), r.Elapsed())
	assert.True(r.Silent())
}

func TestSilent(t *testing.T) {
	r := New()
	assert := assert.New(t)
	assert.True(r.Silent())

	r.Tone(440, 10)
	r.Delay(5)
	assert.False(r.Silent())

	r.NoTone()
	assert.True(r.Silent())

	r.Reset()
	assert.Empty(r.Calls())
	assert.Equal(uint32(0), r.Elapsed())
}

func TestOut(t *testing.T) {
	var buf bytes.Buffer
	r := New()
	r.Out = &buf

	player.Play(r, r, melody.New(note.New(440, 0, 500)))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert := assert.New(t)
	assert.Len(lines, 4)
	assert.Contains(lines[1], "440 Hz for 500 ms")
	assert.Contains(lines[3], "notone")
}
