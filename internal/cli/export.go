package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/storeops/auditpad/internal/exchange"
)

var (
	exportType string
	exportOut  string
)

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVar(&exportType, "type", "", "Export only audits of this type (default all)")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output path, or - for stdout (default conventional filename in the current directory)")
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export audits to a portable JSON document",
	Long:  "Writes the stored audits (optionally filtered by type) as a versioned export document another device can import. The store is not changed.",
	RunE:  runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	st, closeStore, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	recs, err := st.Load()
	if err != nil {
		return err
	}
	device, err := st.DeviceName()
	if err != nil {
		return err
	}

	doc := exchange.Export(recs, exportType, device)
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal export: %w", err)
	}
	data = append(data, '\n')

	if exportOut == "-" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}

	path := exportOut
	if path == "" {
		path = exchange.Filename(exportType, time.Now().UTC())
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("write export: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d audit(s) to %s\n", len(doc.Audits), path)
	return nil
}
