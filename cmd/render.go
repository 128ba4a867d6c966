package cmd

import (
	"os"
	"path/filepath"

	"github.com/jsphweid/buzzer/constants"
	"github.com/jsphweid/buzzer/device/wav"
	"github.com/jsphweid/buzzer/logger"
	"github.com/jsphweid/buzzer/player"
	"github.com/jsphweid/buzzer/score"
	"github.com/jsphweid/buzzer/util"
	"github.com/spf13/cobra"
)

var renderOut string

func init() {
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "", "output path (default <out dir>/<name>.wav)")
	rootCmd.AddCommand(renderCmd)
}

var renderCmd = &cobra.Command{
	Use:   "render <file>",
	Short: "Renders a melody to a WAV file",
	Long:  `Renders a melody to a 16-bit mono square wave, the way a buzzer would sound it.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		table, err := score.Load(args[0])
		if err != nil {
			return err
		}

		path := renderOut
		if path == "" {
			path = filepath.Join(constants.GetOutDir(), table.Name+".wav")
		}
		if err := util.EnsureDir(filepath.Dir(path)); err != nil {
			return err
		}

		r := wav.New(cfg.SampleRate)
		player.Play(r, r, table.Melody())

		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		if _, err := r.WriteTo(f); err != nil {
			return err
		}
		logger.Info("rendered", logger.String("path", path), logger.Int("samples", len(r.Samples())))
		return nil
	},
}
