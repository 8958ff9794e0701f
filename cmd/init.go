package cmd

import (
	"context"

	"github.com/PolarWolf314/envcrypt/internal/ui"
	"github.com/PolarWolf314/envcrypt/internal/workflows"

	"github.com/spf13/cobra"
)

var (
	initPackage  string
	initEnvFiles []string
)

func init() {
	initCmd.Flags().StringVarP(&initPackage, "package", "p", "", "pin the package clause of the generated file")
	initCmd.Flags().StringArrayVar(&initEnvFiles, "env-file", nil, "dotenv file to record in envcrypt.toml (repeatable)")
}

func resetInitCommandState() {
	initPackage = ""
	initEnvFiles = nil
}

var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Creates envcrypt.toml in a package directory",
	Long: `Writes a default envcrypt.toml. The file is optional: generate works
from directive comments alone, but the manifest lets a package list dotenv
files, change the output file, or declare secrets without comments.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting init command")

		dir := "."
		if len(args) == 1 {
			dir = args[0]
		}

		spinner, cleanup := startSpinner("Initializing envcrypt...")
		defer cleanup()

		result, err := workflows.Init(context.Background(), workflows.InitOptions{
			Dir:      dir,
			Package:  initPackage,
			EnvFiles: initEnvFiles,
		})
		if err != nil {
			Logger.Errorf("Init failed: %v", err)
			spinner.FinalMSG = failureMessage("Failed to initialize envcrypt", err)
			return reported(err)
		}

		if result.GoModRoot == "" {
			Logger.WarnfAlways("No go.mod found above %s; generated code imports github.com/PolarWolf314/envcrypt/sealed", result.ManifestPath)
		} else {
			Logger.Debugf("Module root: %s", result.GoModRoot)
		}

		Logger.Infof("Init command completed successfully")
		spinner.FinalMSG = ui.Success.Sprint("✓") + " Created " + ui.Path.Sprint(displayPath(result.ManifestPath)) + "\n" +
			ui.Info.Sprint("→") + " Add " + ui.Code.Sprint("//go:generate envcrypt generate") + " and a directive such as " +
			ui.Code.Sprint(`//envcrypt:APIKey envc("API_KEY")`) + " to a file in this package"
		return nil
	},
}
