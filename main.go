package main

import (
	"fmt"
	"os"

	"github.com/PolarWolf314/envcrypt/cmd"
	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "envcrypt",
	Short: "envcrypt - Embed environment secrets in Go binaries without leaving them readable.",
	Long: `envcrypt encrypts environment variables at build time and generates Go
functions that decrypt them when first called. The compiled binary never
contains the plaintext, so strings(1) and similar scanners find nothing.

Usage:
  envcrypt <command> [flags]

Available Commands:
  init       Create envcrypt.toml in a package
  generate   Encrypt annotated variables into envcrypt_gen.go
  scan       Check a compiled binary for plaintext secrets

Run 'envcrypt help <command>' for more details on a specific command.
`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Run: func(c *cobra.Command, args []string) {
		figure.NewColorFigure("envcrypt", "small", "green", true).Print()
		fmt.Println()
		fmt.Println("Run 'envcrypt --help' to see available commands.")
	},
}

func init() {
	cmd.Register(rootCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !cmd.IsReported(err) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
