// Package wav renders playback to a square wave instead of driving a pin,
// so a melody can be previewed before it is flashed to a board.
package wav

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/jsphweid/buzzer/util"
)

// DefaultVolume keeps the square wave from being painful on headphones.
const DefaultVolume = 0.2

// Renderer implements player.Buzzer and player.Clock over virtual time.
// Like Arduino's tone(), a Tone replaces whatever is sounding and stops
// on its own once its duration has passed.
type Renderer struct {
	rate    int
	Volume  float64
	samples []int16

	elapsed   uint64
	frequency uint16
	remaining int
	phase     float64
}

func New(sampleRate int) *Renderer {
	return &Renderer{rate: sampleRate, Volume: DefaultVolume}
}

func (r *Renderer) SampleRate() int {
	return r.rate
}

func (r *Renderer) Tone(frequency uint16, duration uint32) {
	r.frequency = frequency
	r.remaining = int(uint64(duration) * uint64(r.rate) / 1000)
}

func (r *Renderer) NoTone() {
	r.remaining = 0
}

// Delay renders ms worth of samples. The sample count is derived from
// the total elapsed time so rounding never drifts across many delays.
func (r *Renderer) Delay(ms uint32) {
	r.elapsed += uint64(ms)
	target := int(r.elapsed * uint64(r.rate) / 1000)
	amplitude := int16(util.Clamp(r.Volume, 0, 1) * math.MaxInt16)
	step := float64(r.frequency) / float64(r.rate)
	for len(r.samples) < target {
		if r.remaining <= 0 || r.frequency == 0 {
			r.samples = append(r.samples, 0)
			continue
		}
		v := amplitude
		if r.phase >= 0.5 {
			v = -amplitude
		}
		r.samples = append(r.samples, v)
		r.phase += step
		r.phase -= math.Floor(r.phase)
		r.remaining--
	}
}

func (r *Renderer) Samples() []int16 {
	return r.samples
}

// Bytes is the rendered audio as a 16-bit mono PCM .wav file.
func (r *Renderer) Bytes() ([]byte, error) {
	buf := new(bytes.Buffer)
	if _, err := r.WriteTo(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (r *Renderer) WriteTo(w io.Writer) (int64, error) {
	buf := new(bytes.Buffer)
	writeHeader(buf, len(r.samples), r.rate)
	if err := binary.Write(buf, binary.LittleEndian, r.samples); err != nil {
		return 0, fmt.Errorf("could not encode samples: %w", err)
	}
	n, err := w.Write(buf.Bytes())
	if err != nil {
		return int64(n), fmt.Errorf("could not write wav: %w", err)
	}
	return int64(n), nil
}

// writeHeader writes a RIFF/WAVE header for numSamples mono int16 samples.
// Refer to: http://www-mmsp.ece.mcgill.ca/Documents/AudioFormats/WAVE/WAVE.html
func writeHeader(buf *bytes.Buffer, numSamples int, sampleRate int) {
	const numChannels = 1
	const bytesPerSample = 2
	dataSize := numSamples * bytesPerSample * numChannels
	buf.Write([]byte("RIFF"))
	binary.Write(buf, binary.LittleEndian, uint32(36+dataSize))
	buf.Write([]byte("WAVE"))
	buf.Write([]byte("fmt "))
	binary.Write(buf, binary.LittleEndian, uint32(16))
	binary.Write(buf, binary.LittleEndian, uint16(1)) // PCM
	binary.Write(buf, binary.LittleEndian, uint16(numChannels))
	binary.Write(buf, binary.LittleEndian, uint32(sampleRate))
	binary.Write(buf, binary.LittleEndian, uint32(sampleRate*numChannels*bytesPerSample)) // avgBytesPerSec
	binary.Write(buf, binary.LittleEndian, uint16(numChannels*bytesPerSample))            // blockAlign
	binary.Write(buf, binary.LittleEndian, uint16(8*bytesPerSample))                      // bits per sample
	buf.Write([]byte("data"))
	binary.Write(buf, binary.LittleEndian, uint32(dataSize))
}
