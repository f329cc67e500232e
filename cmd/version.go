package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// version is stamped at release time with
// -ldflags "-X github.com/spigell/scout-profile/cmd.version=v1.2.3".
var version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show which scout-profile build is running",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		short, _ := cmd.Flags().GetBool("short")
		fmt.Fprintln(cmd.OutOrStdout(), versionLine(short))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)

	versionCmd.Flags().BoolP("short", "s", false, "print only the release tag")
}

func versionLine(short bool) string {
	if short {
		return version
	}
	return fmt.Sprintf("%s %s (%s, %s/%s)", app, version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
