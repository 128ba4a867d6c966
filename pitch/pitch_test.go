package pitch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	cases := []struct {
		name string
		key  uint8
		hz   uint16
	}{
		{"A4", 69, 440},
		{"C4", 60, 262},
		{"c#5", 73, 554},
		{"Db5", 73, 554},
		{"B3", 59, 247},
		{"Cb4", 59, 247},
		{"A0", 21, 28},
		{"B0", 23, 31},
		{"C-1", 0, 8},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			key, err := ParseKey(c.name)
			assert.NoError(t, err)
			assert.Equal(t, c.key, key)

			f, err := Parse(c.name)
			assert.NoError(t, err)
			assert.Equal(t, c.hz, Hz(f))
		})
	}
}

func TestParseErrors(t *testing.T) {
	for _, name := range []string{"", "H4", "A", "A#", "C99", "Cb-1"} {
		_, err := ParseKey(name)
		assert.Error(t, err, name)
	}
}

func TestFrequencyToKey(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(uint8(69), FrequencyToKey(440))
	assert.Equal(uint8(81), FrequencyToKey(880))
	assert.Equal(uint8(60), FrequencyToKey(262))
	assert.Equal(uint8(0), FrequencyToKey(0))
	assert.Equal(uint8(127), FrequencyToKey(60000))
}
