package cli

import (
	"encoding/json"
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// version is the release tag; builds from source carry the VCS revision
// alongside it when the build info has one.
const version = "0.3.0"

func init() {
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version and build information",
	Run: func(cmd *cobra.Command, args []string) {
		out, _ := json.MarshalIndent(versionInfo(), "", "  ")
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
	},
}

func versionInfo() map[string]string {
	info := map[string]string{
		"name":    "auditpad",
		"version": version,
	}
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	info["go"] = bi.GoVersion
	if bi.Main.Path != "" {
		info["module"] = bi.Main.Path
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			info["revision"] = s.Value
		case "vcs.modified":
			if s.Value == "true" {
				info["dirty"] = "true"
			}
		}
	}
	return info
}
