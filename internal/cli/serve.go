package cli

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/storeops/auditpad/internal/server"
)

var (
	serveAddr  string
	serveWatch bool
)

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "127.0.0.1:8347", "Listen address")
	serveCmd.Flags().BoolVar(&serveWatch, "watch", false, "Log when another process rewrites the store file")
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the form submission boundary over HTTP",
	Long:  "Exposes audit submission, history, export, and import as a local HTTP API for a rendered form UI.",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	if storeBackend != "file" && serveWatch {
		return fmt.Errorf("--watch only works with the file backend")
	}

	st, closeStore, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	srv := server.New(st, logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if serveWatch {
		w, err := server.NewWatcher(storePath(), func() {
			recs, err := st.Load()
			if err != nil {
				logger.Error("store reload failed", "error", err)
				return
			}
			logger.Info("store changed on disk", "audits", len(recs))
		})
		if err != nil {
			return err
		}
		go func() {
			if err := w.Run(ctx); err != nil {
				logger.Error("store watcher stopped", "error", err)
				stop()
			}
		}()
	}

	return srv.Serve(ctx, serveAddr)
}
