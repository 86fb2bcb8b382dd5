package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var initFlags struct {
	force bool
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a sample config file",
	Long:  `Creates a sample .fvreport.yaml config file in the current directory.`,
	Args:  cobra.NoArgs,
	RunE:  runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initFlags.force, "force", false, "Overwrite existing files")
}

func runInit(cmd *cobra.Command, _ []string) error {
	configPath := ".fvreport.yaml"

	out := cmd.OutOrStdout()

	wrote, err := writeIfNotExists(out, configPath, sampleConfig, initFlags.force)
	if err != nil {
		return err
	}

	if wrote {
		fmt.Fprintf(out, "Created %s\n", configPath)
		fmt.Fprintln(out, "\nNext steps:")
		fmt.Fprintln(out, "  1. Edit .fvreport.yaml to pick an output format and limits")
		fmt.Fprintln(out, "  2. Run: fvreport target/validate/out.ttf.report.xml")
	}
	return nil
}

func writeIfNotExists(out io.Writer, path, content string, force bool) (bool, error) {
	if !force {
		if _, err := os.Stat(path); err == nil {
			fmt.Fprintf(out, "Skipping %s (already exists, use --force to overwrite)\n", path)
			return false, nil
		}
	}

	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return false, fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return false, fmt.Errorf("write %s: %w", path, err)
	}
	return true, nil
}

const sampleConfig = `# fvreport configuration
# Flags passed on the command line override these values.

# Output format: text, json, markdown, sarif, or pretty
format: text

# Write the digest to a file instead of stdout
# output: fvreport.txt

# Sample details retained per error/warning group
samples: 3

# Maximum rendered length of a sample detail (characters)
detail_limit: 200
`
