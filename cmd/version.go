// =============================================================================
// BI Update - Version Command
// =============================================================================
//
// 'biupdate version' prints the release and the toolchain it was built with.
// Release builds stamp Version and BuildDate:
//
//   go build -ldflags "-X github.com/ginjaninja78/biupdate/cmd.Version=1.1.0 \
//     -X github.com/ginjaninja78/biupdate/cmd.BuildDate=2026-10-19"
//
// =============================================================================

package cmd

import (
	"fmt"
	"io"
	"runtime"

	"github.com/spf13/cobra"
)

var (
	Version   = "1.0.0"
	BuildDate = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the biupdate release",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		printVersion(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// printVersion writes the build facts to w.
func printVersion(w io.Writer) {
	fmt.Fprintf(w, "biupdate %s\n", Version)
	fmt.Fprintf(w, "  built: %s\n", BuildDate)
	fmt.Fprintf(w, "  go:    %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
