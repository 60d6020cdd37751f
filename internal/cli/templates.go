package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/storeops/auditpad/internal/template"
)

func init() {
	rootCmd.AddCommand(templatesCmd)
}

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List available audit form templates",
	Long:  "Shows built-in templates plus any user templates in ~/.auditpad/templates/.",
	RunE:  runTemplates,
}

func runTemplates(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	for _, name := range template.List() {
		tpl, err := template.Load(name)
		if err != nil {
			fmt.Fprintf(out, "%-14s (unloadable: %v)\n", name, err)
			continue
		}
		fmt.Fprintf(out, "%-14s %s — %d question(s)", name, tpl.AuditType, len(tpl.Widgets))
		if tpl.Description != "" {
			fmt.Fprintf(out, " — %s", tpl.Description)
		}
		fmt.Fprintln(out)
	}
	return nil
}
