package cmd

import (
	"fmt"
	"sync"
	"time"

	"github.com/jsphweid/buzzer/logger"
	"github.com/jsphweid/buzzer/score"
	"github.com/spf13/cobra"
	"gitlab.com/gomidi/midi/v2"
)

var (
	recordPort    int
	recordSeconds int
	recordName    string
	recordOut     string
	recordPut     bool
)

func init() {
	recordCmd.Flags().IntVar(&recordPort, "port", 0, "MIDI in port")
	recordCmd.Flags().IntVar(&recordSeconds, "seconds", 10, "how long to listen")
	recordCmd.Flags().StringVarP(&recordName, "name", "n", "recording", "name of the recorded melody")
	recordCmd.Flags().StringVarP(&recordOut, "out", "o", "", "write the table here (default stdout)")
	recordCmd.Flags().BoolVar(&recordPut, "put", false, "store the table in the library")
	rootCmd.AddCommand(recordCmd)
}

var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "Records a melody from a MIDI keyboard",
	Long: `Listens on a MIDI in port and turns what is played into a note table.
Chords are reduced to their top note. Offsets start at the first key.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		defer midi.CloseDriver()
		in, err := midi.InPort(recordPort)
		if err != nil {
			return fmt.Errorf("can't find MIDI in port %v: %w", recordPort, err)
		}

		var mu sync.Mutex
		held := make(map[uint8]int64)
		var notes []score.Sounding

		stop, err := midi.ListenTo(in, func(msg midi.Message, timestampms int32) {
			var ch, key, vel uint8
			mu.Lock()
			defer mu.Unlock()
			switch {
			case msg.GetNoteStart(&ch, &key, &vel):
				held[key] = int64(timestampms)
			case msg.GetNoteEnd(&ch, &key):
				start, ok := held[key]
				if !ok {
					return
				}
				delete(held, key)
				notes = append(notes, score.Sounding{Key: key, Start: start, End: int64(timestampms)})
			default:
				// ignore
			}
		})
		if err != nil {
			return err
		}

		logger.Info("recording", logger.String("port", in.String()), logger.Int("seconds", recordSeconds))
		select {
		case <-time.After(time.Duration(recordSeconds) * time.Second):
		case <-cmd.Context().Done():
		}
		stop()

		mu.Lock()
		table, err := recording(recordName, notes)
		mu.Unlock()
		if err != nil {
			return err
		}
		logger.Info("recorded", logger.Int("notes", len(table.Notes)))

		if recordPut {
			store, err := openStore()
			if err != nil {
				return err
			}
			if err := store.Put(cmd.Context(), table); err != nil {
				return err
			}
		}
		if recordOut != "" {
			return score.Save(recordOut, table)
		}
		data, err := table.YAML()
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

// recording makes a table of notes with the first key at offset 0.
func recording(name string, notes []score.Sounding) (*score.Table, error) {
	if len(notes) == 0 {
		return nil, fmt.Errorf("nothing was played")
	}
	first := notes[0].Start
	for _, n := range notes {
		if n.Start < first {
			first = n.Start
		}
	}
	shifted := make([]score.Sounding, len(notes))
	for i, n := range notes {
		shifted[i] = score.Sounding{Key: n.Key, Start: n.Start - first, End: n.End - first}
	}
	return score.Monophonic(name, shifted)
}
