package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/storeops/auditpad/internal/server"
)

func init() {
	rootCmd.AddCommand(watchCmd)
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print a line whenever the store file changes",
	Long:  "Watches the backing store file and prints the audit count after each external change — an import in another shell, a file-sync tool dropping a copy. Ctrl-C to stop.",
	RunE:  runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	if storeBackend != "file" {
		return fmt.Errorf("watch only works with the file backend")
	}

	st, closeStore, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	// Make sure the file exists before watching its directory entry.
	recs, err := st.Load()
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Watching %s (%d audit(s))\n", storePath(), len(recs))

	w, err := server.NewWatcher(storePath(), func() {
		recs, err := st.Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "watch: reload: %v\n", err)
			return
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Store changed: %d audit(s)\n", len(recs))
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return w.Run(ctx)
}
