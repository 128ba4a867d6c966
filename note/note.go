package note

import (
	"fmt"

	"github.com/jsphweid/buzzer/constants"
	"github.com/jsphweid/buzzer/logger"
)

// Note is a single tone: a pitch in Hz that starts offset ms after the
// melody begins and sounds for duration ms.
type Note struct {
	frequency uint16
	offset    uint32
	duration  uint32
}

// New never fails. A frequency under constants.MinFrequency is logged and
// kept as is, playback stays best effort.
func New(frequency uint16, offset, duration uint32) Note {
	if frequency < constants.MinFrequency {
		logger.Warn("frequency less than 31 Hz provided",
			logger.Uint16("frequency", frequency),
			logger.Uint32("offset", offset),
			logger.Uint32("duration", duration))
	}
	return Note{frequency: frequency, offset: offset, duration: duration}
}

func (n Note) Frequency() uint16 { return n.frequency }

func (n Note) Offset() uint32 { return n.offset }

func (n Note) Duration() uint32 { return n.duration }

// End is where the requested tone stops, in ms from the melody start.
func (n Note) End() uint32 { return n.offset + n.duration }

func (n Note) String() string {
	return fmt.Sprintf("{%d, %d, %d}", n.frequency, n.offset, n.duration)
}

// Greater reports whether a starts after b.
func Greater(a, b Note) bool {
	return a.offset > b.offset
}

// Compare orders notes by offset for slices.SortFunc and friends.
func Compare(a, b Note) int {
	switch {
	case Greater(a, b):
		return 1
	case Greater(b, a):
		return -1
	default:
		return 0
	}
}
