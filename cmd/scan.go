package cmd

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/envcrypt/internal/ui"
	"github.com/PolarWolf314/envcrypt/internal/workflows"

	"github.com/spf13/cobra"
)

var (
	scanDir       string
	scanVars      []string
	scanEnvFiles  []string
	scanMinLength int
)

func init() {
	scanCmd.Flags().StringVar(&scanDir, "dir", ".", "package directory whose annotated variables are checked")
	scanCmd.Flags().StringArrayVar(&scanVars, "var", nil, "variable to check instead of the annotated ones (repeatable)")
	scanCmd.Flags().StringArrayVar(&scanEnvFiles, "env-file", nil, "dotenv file to read variables from (repeatable)")
	scanCmd.Flags().IntVar(&scanMinLength, "min-length", workflows.DefaultMinLength, "skip values shorter than this many bytes")
}

func resetScanCommandState() {
	scanDir = "."
	scanVars = nil
	scanEnvFiles = nil
	scanMinLength = workflows.DefaultMinLength
}

var scanCmd = &cobra.Command{
	Use:   "scan <binary>",
	Short: "Checks that a compiled binary holds no plaintext secrets",
	Long: `Searches a compiled binary for the values of build environment variables.
By default every variable annotated in --dir is checked. Exits non-zero
when any value is found verbatim.

Examples:
  go build -o app . && envcrypt scan app
  envcrypt scan app --var API_KEY --env-file .env`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting scan command")
		if scanMinLength < 1 {
			return Logger.ErrorfAndReturn("--min-length must be at least 1, got %d", scanMinLength)
		}

		spinner, cleanup := startSpinner("Scanning binary...")
		defer cleanup()

		result, err := workflows.Scan(context.Background(), workflows.ScanOptions{
			Binary:    args[0],
			Dir:       scanDir,
			Vars:      scanVars,
			EnvFiles:  scanEnvFiles,
			MinLength: scanMinLength,
		})
		if err != nil && result == nil {
			Logger.Errorf("Scan failed: %v", err)
			spinner.FinalMSG = failureMessage("Failed to scan "+args[0], err)
			return reported(err)
		}

		for _, name := range result.Skipped {
			Logger.Warnf("Skipped %s: unset or shorter than %d bytes", name, scanMinLength)
		}

		if len(result.Leaks) > 0 {
			spinner.FinalMSG = ui.Error.Sprint("✗") + " Plaintext found in " + ui.Path.Sprint(args[0]) + " for:\n" +
				bulletLines(varLines(result.Leaks)) + hintFor(err)
			return reported(err)
		}

		Logger.Infof("Scan command completed successfully")
		spinner.FinalMSG = ui.Success.Sprint("✓") + " No plaintext found in " + ui.Path.Sprint(args[0]) +
			" " + ui.Muted.Sprint(fmt.Sprintf("checked %d, skipped %d", len(result.Checked), len(result.Skipped)))
		return nil
	},
}

func varLines(names []string) []string {
	lines := make([]string, len(names))
	for i, n := range names {
		lines[i] = ui.Var.Sprint(n)
	}
	return lines
}
