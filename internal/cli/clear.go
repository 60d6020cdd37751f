package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var clearYes bool

func init() {
	rootCmd.AddCommand(clearCmd)
	clearCmd.Flags().BoolVar(&clearYes, "yes", false, "Confirm deletion of every stored audit")
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all stored audits",
	RunE:  runClear,
}

func runClear(cmd *cobra.Command, args []string) error {
	if !clearYes {
		return fmt.Errorf("refusing to delete all audits without --yes")
	}

	st, closeStore, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	if err := st.Clear(); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "All audits deleted.")
	return nil
}
