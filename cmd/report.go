package cmd

import (
	"fmt"

	"github.com/jsphweid/buzzer/constants"
	"github.com/jsphweid/buzzer/library"
	"github.com/jsphweid/buzzer/logger"
	"github.com/jsphweid/buzzer/util"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(reportCmd)
}

var reportCmd = &cobra.Command{
	Use:   "report [dir]",
	Short: "Summarizes the melody library",
	Long: `Summarizes every melody in the library (or in dir): note count, length,
size of the firmware table and how many notes sit below what a buzzer
can sound.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var store library.Store
		var err error
		if len(args) == 1 {
			store, err = library.NewDir(args[0])
		} else {
			store, err = openStore()
		}
		if err != nil {
			return err
		}
		return report(cmd, store)
	},
}

type melodyReport struct {
	name     string
	notes    int
	duration uint32
	lowNotes int
}

func analyzeLibrary(cmd *cobra.Command, store library.Store) ([]melodyReport, error) {
	names, err := store.List(cmd.Context())
	if err != nil {
		return nil, err
	}
	var res []melodyReport
	for _, name := range names {
		t, err := store.Get(cmd.Context(), name)
		if err != nil {
			logger.Warn("skipping melody", logger.String("name", name), logger.ErrorField(err))
			continue
		}
		m := t.Melody()
		r := melodyReport{name: name, notes: m.Len(), duration: m.Duration()}
		for _, n := range m.Notes() {
			if n.Frequency() < constants.MinFrequency {
				r.lowNotes++
			}
		}
		res = append(res, r)
	}
	return res, nil
}

func report(cmd *cobra.Command, store library.Store) error {
	reports, err := analyzeLibrary(cmd, store)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	var notes []int
	var durations []uint32
	var lowNotes []int
	var longest uint32
	for _, r := range reports {
		fmt.Fprintf(out, "%v: %v notes, %v ms, %v bytes", r.name, r.notes, r.duration, r.notes*constants.NoteSize)
		if r.lowNotes > 0 {
			fmt.Fprintf(out, ", %v below %v Hz", r.lowNotes, constants.MinFrequency)
		}
		fmt.Fprintln(out)
		notes = append(notes, r.notes)
		durations = append(durations, r.duration)
		lowNotes = append(lowNotes, r.lowNotes)
		longest = util.Max(longest, r.duration)
	}

	fmt.Fprintf(out, "melodies: %v\n", len(reports))
	fmt.Fprintf(out, "notes: %v\n", util.Sum(notes))
	fmt.Fprintf(out, "table bytes: %v\n", util.Sum(notes)*constants.NoteSize)
	fmt.Fprintf(out, "total ms: %v\n", util.Sum(durations))
	fmt.Fprintf(out, "longest ms: %v\n", longest)
	fmt.Fprintf(out, "low notes: %v\n", util.Sum(lowNotes))
	return nil
}
