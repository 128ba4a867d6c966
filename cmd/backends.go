package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/jsphweid/buzzer/device/midiout"
	"github.com/jsphweid/buzzer/device/recorder"
	"github.com/jsphweid/buzzer/device/speaker"
	"github.com/jsphweid/buzzer/device/wav"
	"github.com/jsphweid/buzzer/library"
	"github.com/jsphweid/buzzer/oneshot"
	"github.com/jsphweid/buzzer/player"
	"gitlab.com/gomidi/midi/v2"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // autoregisters driver
)

func openStore() (library.Store, error) {
	switch cfg.LibraryBackend {
	case "dir":
		return library.NewDir(cfg.LibraryDir)
	case "dynamodb":
		return library.NewDynamo(cfg.DynamoEndpoint, cfg.DynamoRegion, cfg.DynamoTable)
	default:
		return nil, fmt.Errorf("unknown library backend %q", cfg.LibraryBackend)
	}
}

// openFlag returns the one-shot flag and a func to release it.
func openFlag(ctx context.Context) (oneshot.Flag, func(), error) {
	switch cfg.OneShotBackend {
	case "memory":
		return oneshot.NewMemory(), func() {}, nil
	case "redis":
		r, err := oneshot.Dial(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, nil, err
		}
		return r, func() { r.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown one-shot backend %q", cfg.OneShotBackend)
	}
}

// openBackend returns something to play on, the clock to pace it with and
// a func to release it. "dry" prints the calls instead of sounding them.
func openBackend(name string, port int, out io.Writer) (player.Buzzer, player.Clock, func(), error) {
	switch name {
	case "dry":
		r := recorder.New()
		r.Out = out
		return r, r, func() {}, nil
	case "speaker":
		s, err := speaker.New(cfg.SampleRate, wav.DefaultVolume)
		if err != nil {
			return nil, nil, nil, err
		}
		return s, player.SystemClock, func() { s.Close() }, nil
	case "midi":
		o, err := midiout.Open(port, 0)
		if err != nil {
			midi.CloseDriver()
			return nil, nil, nil, err
		}
		return o, player.SystemClock, func() { midi.CloseDriver() }, nil
	default:
		return nil, nil, nil, fmt.Errorf("unknown backend %q, want dry, speaker or midi", name)
	}
}
