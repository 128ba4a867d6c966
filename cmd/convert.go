package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jsphweid/buzzer/codegen"
	"github.com/jsphweid/buzzer/constants"
	"github.com/jsphweid/buzzer/logger"
	"github.com/jsphweid/buzzer/score"
	"github.com/jsphweid/buzzer/util"
	"github.com/spf13/cobra"
)

var (
	convertName    string
	convertLang    string
	convertPackage string
	convertOut     string
)

func init() {
	convertCmd.Flags().StringVarP(&convertName, "name", "n", constants.DefaultTableName, "variable name of the generated table")
	convertCmd.Flags().StringVarP(&convertLang, "lang", "l", string(codegen.Cpp), "cpp, go, yaml or midi")
	convertCmd.Flags().StringVar(&convertPackage, "package", "", "package clause for --lang go")
	convertCmd.Flags().StringVarP(&convertOut, "out", "o", "", "output path (default stdout, required for midi)")
	rootCmd.AddCommand(convertCmd)
}

var convertCmd = &cobra.Command{
	Use:   "convert <file>",
	Short: "Converts a score, table or MIDI file",
	Long: `Converts a written score, a note table or a MIDI file into a firmware
table (cpp, go), a machine note table (yaml) or a MIDI file (midi).`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		table, err := score.Load(args[0])
		if err != nil {
			return err
		}
		m := table.Melody()

		if convertLang == "midi" && convertOut == "" {
			return fmt.Errorf("--lang midi needs --out")
		}

		var w io.Writer = cmd.OutOrStdout()
		if convertOut != "" {
			if err := util.EnsureDir(filepath.Dir(convertOut)); err != nil {
				return err
			}
			f, err := os.Create(convertOut)
			if err != nil {
				return err
			}
			defer f.Close()
			w = f
		}

		switch convertLang {
		case "yaml":
			data, err := score.FromMelody(table.Name, m).YAML()
			if err != nil {
				return err
			}
			_, err = w.Write(data)
			if err != nil {
				return err
			}
		case "midi":
			if err := score.ToSMF(w, m); err != nil {
				return err
			}
		default:
			opts := codegen.Options{
				Lang:    codegen.Lang(convertLang),
				Name:    convertName,
				Package: convertPackage,
				Source:  args[0],
			}
			if err := codegen.Generate(w, opts, m); err != nil {
				return err
			}
		}
		logger.Debug("converted",
			logger.String("source", args[0]),
			logger.String("lang", convertLang),
			logger.Int("notes", m.Len()))
		return nil
	},
}
