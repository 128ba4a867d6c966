package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/jsphweid/buzzer/constants"
	"github.com/jsphweid/buzzer/melody"
	"github.com/jsphweid/buzzer/pitch"
	"github.com/jsphweid/buzzer/player"
	"github.com/jsphweid/buzzer/score"
	"github.com/spf13/cobra"
)

var inspectTimeline bool

func init() {
	inspectCmd.Flags().BoolVarP(&inspectTimeline, "timeline", "t", false, "also print the buzzer calls")
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Prints a melody in playback order",
	Long:  `Prints a melody in playback order, with the nearest key of every note.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		table, err := score.Load(args[0])
		if err != nil {
			return err
		}
		inspect(cmd.OutOrStdout(), table.Name, table.Melody())
		return nil
	},
}

func inspect(out io.Writer, name string, m *melody.Melody) {
	fmt.Fprintf(out, "%v: %v notes, %v ms\n", name, m.Len(), m.Duration())

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tfreq\tkey\toffset\tduration\t")
	for i, n := range m.Notes() {
		var flag string
		if n.Frequency() < constants.MinFrequency {
			flag = "low"
		}
		key := pitch.FrequencyToKey(float64(n.Frequency()))
		fmt.Fprintf(tw, "%v\t%v\t%v\t%v\t%v\t%v\n", i, n.Frequency(), key, n.Offset(), n.Duration(), flag)
	}
	tw.Flush()

	if !inspectTimeline {
		return
	}
	fmt.Fprintln(out)
	for _, e := range player.Timeline(m) {
		switch e.Kind {
		case player.KindTone:
			fmt.Fprintf(out, "%8d  tone(%v, %v)\n", e.At, e.Frequency, e.Millis)
		case player.KindNoTone:
			fmt.Fprintf(out, "%8d  noTone()\n", e.At)
		default:
			fmt.Fprintf(out, "%8d  delay(%v)\n", e.At, e.Millis)
		}
	}
}
