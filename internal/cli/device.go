package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(deviceCmd)
}

var deviceCmd = &cobra.Command{
	Use:   "device [name]",
	Short: "Show or set this device's name",
	Long:  "The device name is stamped into new audits and export documents so merged collections show where each audit came from.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runDevice,
}

func runDevice(cmd *cobra.Command, args []string) error {
	st, closeStore, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	if len(args) == 1 {
		if err := st.SetDeviceName(args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Device name set to %q\n", args[0])
		return nil
	}

	name, err := st.DeviceName()
	if err != nil {
		return err
	}
	if name == "" {
		fmt.Fprintln(cmd.OutOrStdout(), "Device name not set.")
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), name)
	return nil
}
