package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/storeops/auditpad/internal/kv"
	"github.com/storeops/auditpad/internal/store"
)

var (
	dataDir      string
	storeBackend string
)

var rootCmd = &cobra.Command{
	Use:   "auditpad",
	Short: "Checklist audits for a single operator",
	Long:  "Fill structured checklist audits, keep them on this device, and exchange them with other devices as JSON exports with id-based deduplication.",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Data directory (default ~/.auditpad)")
	rootCmd.PersistentFlags().StringVar(&storeBackend, "store", "file", "Persistence backend: file or sqlite")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// DefaultDataDir returns the default data directory.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "auditpad")
	}
	return filepath.Join(home, ".auditpad")
}

func resolvedDataDir() string {
	if dataDir != "" {
		return dataDir
	}
	return DefaultDataDir()
}

// storePath returns the backing file the selected backend writes to.
func storePath() string {
	dir := resolvedDataDir()
	if storeBackend == "sqlite" {
		return filepath.Join(dir, "audits.db")
	}
	return filepath.Join(dir, "audits.json")
}

// openStore builds the audit store over the selected backend. The returned
// close func is a no-op for the file backend.
func openStore() (*store.Store, func() error, error) {
	switch storeBackend {
	case "file":
		f, err := kv.NewFile(storePath())
		if err != nil {
			return nil, nil, err
		}
		return store.New(f), func() error { return nil }, nil
	case "sqlite":
		db, err := kv.OpenSQLite(storePath())
		if err != nil {
			return nil, nil, err
		}
		return store.New(db), db.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q (want file or sqlite)", storeBackend)
	}
}
