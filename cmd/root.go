package cmd

import (
	"io"

	"github.com/jsphweid/buzzer/config"
	"github.com/jsphweid/buzzer/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// loaded before any init() so commands can default their flags from it
var cfg = config.Load()

var rootCmd = &cobra.Command{
	Use:   "buzzer",
	Short: "Plays note tables on a buzzer",
	Long: `Plays note tables on a buzzer, or on something standing in for one:
the speaker, a MIDI port or a WAV file. Tables can be converted to
firmware source and served over HTTP.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return logger.Init(logger.Config{
			Level:      logger.LogLevel(cfg.LogLevel),
			OutputPath: cfg.LogFile,
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     28,
		})
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug, info, warn or error")
	rootCmd.PersistentFlags().StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "also write JSON logs to this file")
}

func Execute() {
	defer logger.Sync()
	cobra.CheckErr(rootCmd.Execute())
}

// Run executes the CLI with args, writing command output to out. Flags
// start from their defaults on every call.
func Run(args []string, out io.Writer) error {
	resetFlags(rootCmd)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(out)
	return rootCmd.Execute()
}

func resetFlags(c *cobra.Command) {
	c.Flags().VisitAll(func(f *pflag.Flag) {
		f.Value.Set(f.DefValue)
		f.Changed = false
	})
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}
