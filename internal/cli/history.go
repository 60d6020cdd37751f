package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/storeops/auditpad/internal/audit"
)

var historyDetails bool

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().BoolVar(&historyDetails, "details", false, "Show every item of every audit")
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List saved audits grouped by type",
	Long:  "Shows the stored audits grouped by audit type (types sorted alphabetically, newest audit first within each group) with per-audit Yes/No/Blank tallies.",
	RunE:  runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	st, closeStore, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	groups, err := st.GroupByType()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(groups) == 0 {
		fmt.Fprintln(out, "No audits submitted yet.")
		return nil
	}

	for _, g := range groups {
		fmt.Fprintf(out, "%s (%d)\n", g.Type, len(g.Records))
		for _, rec := range g.Records {
			sum := audit.Summarize(rec)
			meta := metaLine(rec)
			fmt.Fprintf(out, "  %s  %s\n", rec.ID, meta)
			fmt.Fprintf(out, "    Yes: %d  No: %d  Blank: %d\n", sum.Yes, sum.No, sum.Blank)
			if rec.HeaderNotes != "" {
				fmt.Fprintf(out, "    Header notes: %s\n", rec.HeaderNotes)
			}
			if historyDetails {
				printItems(out, rec)
			}
		}
		fmt.Fprintln(out)
	}
	return nil
}

func metaLine(rec audit.Record) string {
	var bits []string
	if rec.AuditDate != "" {
		bits = append(bits, rec.AuditDate)
	}
	if rec.AuditTime != "" {
		bits = append(bits, rec.AuditTime)
	}
	if rec.Auditor != "" {
		bits = append(bits, "Auditor: "+rec.Auditor)
	}
	if rec.DeviceName != "" {
		bits = append(bits, "Device: "+rec.DeviceName)
	}
	bits = append(bits, rec.CreatedAt)
	return strings.Join(bits, " · ")
}

func printItems(out io.Writer, rec audit.Record) {
	for _, it := range rec.Items {
		if it.Kind == audit.KindYN {
			fmt.Fprintf(out, "    %-45s %s\n", it.Label, audit.DisplayValue(it.Value))
			if it.Notes != "" {
				fmt.Fprintf(out, "      %s\n", it.Notes)
			}
			continue
		}
		notes := it.Notes
		if notes == "" {
			notes = audit.Dash
		}
		fmt.Fprintf(out, "    %-45s %s\n", it.Label, notes)
	}
}
