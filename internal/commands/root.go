package commands

import (
	"github.com/ppiankov/fvreport/internal/logging"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	version string
	commit  string
	date    string
)

var rootCmd = &cobra.Command{
	Use:   "fvreport <report.xml>",
	Short: "fvreport — FontValidator report digest",
	Long: `fvreport summarizes a FontValidator XML report into a compact digest:
counts per severity, then the distinct error and warning groups ranked by
how often they occur, each with a sample detail.`,
	Args: cobra.ExactArgs(1),
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logging.Init(verbose)
	},
	RunE:          runSummarize,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command with injected build info.
func Execute(v, c, d string) error {
	version = v
	commit = c
	date = d
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable verbose logging")
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
}
