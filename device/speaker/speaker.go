// Package speaker plays tones on the computer's audio output through oto,
// standing in for a piezo buzzer.
package speaker

import (
	"encoding/binary"
	"fmt"
	"math"
	"sync"

	"github.com/ebitengine/oto/v3"
	"github.com/jsphweid/buzzer/player"
	"github.com/jsphweid/buzzer/util"
)

const bytesPerSample = 2

// squareSource is the stream oto pulls from. Tone and NoTone change what it
// produces next; when nothing is sounding it produces silence.
type squareSource struct {
	mu        sync.Mutex
	rate      int
	amplitude int16
	frequency uint16
	remaining int
	phase     float64
}

func (s *squareSource) set(frequency uint16, duration uint32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frequency = frequency
	s.remaining = int(uint64(duration) * uint64(s.rate) / 1000)
}

func (s *squareSource) stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.remaining = 0
}

func (s *squareSource) Read(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(p) / bytesPerSample * bytesPerSample
	step := float64(s.frequency) / float64(s.rate)
	for i := 0; i < n; i += bytesPerSample {
		var v int16
		if s.remaining > 0 && s.frequency > 0 {
			v = s.amplitude
			if s.phase >= 0.5 {
				v = -s.amplitude
			}
			s.phase += step
			s.phase -= math.Floor(s.phase)
			s.remaining--
		}
		binary.LittleEndian.PutUint16(p[i:], uint16(v))
	}
	return n, nil
}

// Speaker implements player.Buzzer. Waiting is left to player.SystemClock.
type Speaker struct {
	context *oto.Context
	player  *oto.Player
	source  *squareSource
}

var _ player.Buzzer = (*Speaker)(nil)

// New opens the default audio device. Only one oto context may exist per
// process, so callers should keep a single Speaker around.
func New(sampleRate int, volume float64) (*Speaker, error) {
	context, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatSignedInt16LE,
	})
	if err != nil {
		return nil, fmt.Errorf("cannot create oto context: %w", err)
	}
	<-ready

	source := &squareSource{
		rate:      sampleRate,
		amplitude: int16(util.Clamp(volume, 0, 1) * math.MaxInt16),
	}
	p := context.NewPlayer(source)
	p.Play()
	return &Speaker{context: context, player: p, source: source}, nil
}

func (s *Speaker) Tone(frequency uint16, duration uint32) {
	s.source.set(frequency, duration)
}

func (s *Speaker) NoTone() {
	s.source.stop()
}

func (s *Speaker) Close() error {
	s.source.stop()
	if err := s.player.Close(); err != nil {
		return fmt.Errorf("cannot close oto player: %w", err)
	}
	if err := s.context.Suspend(); err != nil {
		return fmt.Errorf("cannot suspend oto context: %w", err)
	}
	return nil
}
