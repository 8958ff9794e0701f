package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/PolarWolf314/envcrypt/internal/secrets"
	"github.com/PolarWolf314/envcrypt/internal/ui"
	"github.com/PolarWolf314/envcrypt/internal/utils"
	"github.com/PolarWolf314/envcrypt/internal/workflows"

	"github.com/spf13/cobra"
)

var (
	generateOutput   string
	generatePackage  string
	generateEnvFiles []string
	generateDryRun   bool
)

func init() {
	generateCmd.Flags().StringVarP(&generateOutput, "output", "o", "", "generated file (default from envcrypt.toml, else envcrypt_gen.go)")
	generateCmd.Flags().StringVarP(&generatePackage, "package", "p", "", "package clause of the generated file")
	generateCmd.Flags().StringArrayVar(&generateEnvFiles, "env-file", nil, "dotenv file to read variables from (repeatable)")
	generateCmd.Flags().BoolVar(&generateDryRun, "dry-run", false, "print the generated file instead of writing it")
}

func resetGenerateCommandState() {
	generateOutput = ""
	generatePackage = ""
	generateEnvFiles = nil
	generateDryRun = false
}

var generateCmd = &cobra.Command{
	Use:   "generate [dir]",
	Short: "Encrypts annotated environment variables into envcrypt_gen.go",
	Long: `Reads //envcrypt: directives and envcrypt.toml, encrypts each named
environment variable with a fresh key and nonce, and writes accessor
functions that decrypt the value when called.

Run it from a go:generate line in the package that needs the secrets:

  //go:generate envcrypt generate
  //envcrypt:APIKey envc("API_KEY")
  //envcrypt:SentryDSN option_envc("SENTRY_DSN")

A missing required variable fails the command and nothing is written.

Examples:
  # Generate in the current package
  envcrypt generate

  # Read variables from a dotenv file as well as the environment
  envcrypt generate --env-file .env.production

  # Preview the generated file
  envcrypt generate --dry-run`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGenerate,
}

func runGenerate(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting generate command")

	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}
	if gofile := os.Getenv("GOFILE"); gofile != "" {
		Logger.Debugf("Invoked by go generate from %s:%s", gofile, os.Getenv("GOLINE"))
	}

	spinner, cleanup := startSpinner("Generating encrypted accessors...")
	defer cleanup()

	result, err := workflows.Generate(context.Background(), workflows.GenerateOptions{
		Dir:      dir,
		Output:   generateOutput,
		Package:  generatePackage,
		EnvFiles: generateEnvFiles,
		DryRun:   generateDryRun,
	})
	if err != nil {
		Logger.Errorf("Generate failed: %v", err)
		spinner.FinalMSG = failureMessage("Failed to generate encrypted accessors", err)
		return reported(err)
	}

	Logger.Debugf("Scanned %d source files: %s", len(result.Sources), utils.FormatPaths(result.Sources))
	if len(result.EnvFiles) > 0 {
		Logger.Infof("Read dotenv files: %s", utils.FormatPaths(result.EnvFiles))
	}

	var lines []string
	for _, fn := range result.Funcs {
		Logger.Debugf("%s <- %s (%s)", fn.Name, fn.Var, fn.Kind)
		lines = append(lines, fmt.Sprintf("%s %s %s", ui.Func.Sprint(fn.Name), ui.Var.Sprint(fn.Var), ui.Muted.Sprint(fn.Kind.String())))
		if fn.Kind == secrets.Absent {
			Logger.WarnfAlways("%s is not set; %s will report it as absent", fn.Var, fn.Name)
		}
	}

	output := displayPath(result.OutputPath)

	if result.DryRun {
		fmt.Print(string(result.Source))
		spinner.FinalMSG = ui.Success.Sprint("✓") + " Dry run: would write " + ui.Path.Sprint(output) +
			" in package " + ui.Code.Sprint(result.Package) + "\n" + bulletLines(lines)
		return nil
	}

	Logger.Infof("Generate command completed successfully")
	spinner.FinalMSG = ui.Success.Sprint("✓") + " Wrote " + ui.Path.Sprint(output) +
		fmt.Sprintf(" with %d %s ", len(result.Funcs), utils.Plural(len(result.Funcs), "accessor")) + ui.Muted.Sprint(result.Version.String()) + "\n" +
		bulletLines(lines)
	return nil
}

// displayPath shortens path relative to the working directory when it lies
// beneath it.
func displayPath(path string) string {
	wd, err := os.Getwd()
	if err != nil {
		return path
	}
	rel, err := filepath.Rel(wd, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}

func bulletLines(lines []string) string {
	out := ""
	for _, l := range lines {
		out += "    - " + l + "\n"
	}
	return out
}
