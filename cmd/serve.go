package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jsphweid/buzzer/library"
	"github.com/jsphweid/buzzer/logger"
	"github.com/jsphweid/buzzer/player"
	"github.com/jsphweid/buzzer/server"
	"github.com/spf13/cobra"
)

var (
	serveAddr    string
	serveBackend string
	servePort    int
)

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", cfg.HTTPAddr, "listen address")
	serveCmd.Flags().StringVarP(&serveBackend, "backend", "b", "none", "none, dry, speaker or midi")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "MIDI out port for the midi backend")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the melody library over HTTP",
	Long: `Serves the melody library over HTTP: list, fetch, store and delete
note tables, preview them as WAV and play them on the attached backend.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		store, err := openStore()
		if err != nil {
			return err
		}
		if dir, ok := store.(*library.Dir); ok {
			go func() {
				if err := dir.Watch(ctx, 200*time.Millisecond); err != nil {
					logger.Error("library watch stopped", logger.ErrorField(err))
				}
			}()
		}

		played, releaseFlag, err := openFlag(ctx)
		if err != nil {
			return err
		}
		defer releaseFlag()

		s := &server.Server{Store: store, Played: played, SampleRate: cfg.SampleRate}
		if serveBackend != "none" {
			var buzzer player.Buzzer
			var clock player.Clock
			var release func()
			buzzer, clock, release, err = openBackend(serveBackend, servePort, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer release()
			s.Buzzer, s.Clock = buzzer, clock
		}

		srv := &http.Server{Addr: serveAddr, Handler: s.Handler()}
		// closed once no handler can queue another play
		stopped := make(chan struct{})
		go func() {
			defer close(stopped)
			<-ctx.Done()
			shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
			defer done()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error("shutdown failed", logger.ErrorField(err))
			}
		}()

		logger.Info("listening",
			logger.String("addr", serveAddr),
			logger.String("library", cfg.LibraryBackend),
			logger.String("backend", serveBackend))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			cancel()
			<-stopped
			s.Wait()
			return err
		}
		// ListenAndServe returns as soon as Shutdown starts, while handlers
		// may still be queueing plays
		<-stopped
		s.Wait()
		logger.Info("stopped")
		return nil
	},
}
