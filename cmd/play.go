package cmd

import (
	"fmt"

	"github.com/jsphweid/buzzer/logger"
	"github.com/jsphweid/buzzer/player"
	"github.com/jsphweid/buzzer/score"
	"github.com/spf13/cobra"
)

var (
	playBackend string
	playPort    int
	playOnce    bool
)

func init() {
	playCmd.Flags().StringVarP(&playBackend, "backend", "b", "dry", "dry, speaker or midi")
	playCmd.Flags().IntVar(&playPort, "port", 0, "MIDI out port for the midi backend")
	playCmd.Flags().BoolVar(&playOnce, "once", false, "skip if this melody was already played (needs ONESHOT_BACKEND=redis)")
	rootCmd.AddCommand(playCmd)
}

var playCmd = &cobra.Command{
	Use:   "play <file>",
	Short: "Plays a note table or MIDI file",
	Long: `Plays a note table (.yaml, .yml, .json) or a MIDI file once through.
With --once the melody is played at most once per one-shot store, like a
startup jingle that should not repeat on every reset. It needs the redis
one-shot backend; the memory backend only lives as long as "serve".`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		table, err := score.Load(args[0])
		if err != nil {
			return err
		}
		m := table.Melody()

		if playOnce {
			// a memory flag dies with the process, so every run would be the first
			if cfg.OneShotBackend == "memory" {
				return fmt.Errorf("--once needs a one-shot store that outlives the process, set ONESHOT_BACKEND=redis")
			}
			flag, release, err := openFlag(cmd.Context())
			if err != nil {
				return err
			}
			defer release()
			first, err := flag.Acquire(cmd.Context(), table.Name)
			if err != nil {
				return err
			}
			if !first {
				logger.Info("already played, skipping", logger.String("name", table.Name))
				return nil
			}
		}

		buzzer, clock, release, err := openBackend(playBackend, playPort, cmd.OutOrStdout())
		if err != nil {
			return err
		}
		defer release()

		logger.Info("playing",
			logger.String("name", table.Name),
			logger.String("backend", playBackend),
			logger.Int("notes", m.Len()),
			logger.Uint32("duration_ms", m.Duration()))
		player.Play(buzzer, clock, m)
		return nil
	},
}
