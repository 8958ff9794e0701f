package cmd

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/PolarWolf314/envcrypt/internal/directives"
	kerrors "github.com/PolarWolf314/envcrypt/internal/errors"
	"github.com/PolarWolf314/envcrypt/internal/ui"
	"github.com/PolarWolf314/envcrypt/internal/utils"
	"github.com/briandowns/spinner"
)

// startSpinner creates and starts a spinner with the given message when not in
// verbose or debug mode and stdout is a terminal. Under go generate the
// spinner never starts. Returns the spinner and a function that should be
// deferred to clean up.
//
// spinner.FinalMSG values do NOT need trailing newlines. The cleanup function
// calls ui.EnsureNewline() on the final message before printing it.
func startSpinner(message string) (*spinner.Spinner, func()) {
	Logger.Debugf("Starting spinner with message: %s", message)
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + message

	// Continue without a colored spinner if it fails.
	_ = s.Color("cyan")

	animate := !verbose && !debug && utils.IsTerminal(os.Stdout)
	if animate {
		s.Start()
		// Ensure log output is discarded unless in verbose mode.
		log.SetOutput(io.Discard)
	} else {
		Logger.Infof("%s", message)
	}

	cleanup := func() {
		if animate {
			log.SetOutput(os.Stderr)
		}

		finalMsg := ""
		if s.FinalMSG != "" {
			finalMsg = ui.EnsureNewline(s.FinalMSG)
			// Clear FinalMSG so s.Stop() doesn't print it.
			s.FinalMSG = ""
		}

		if animate {
			s.Stop()
		}

		// Print final message to stdout (for tests to capture).
		if finalMsg != "" {
			fmt.Print(finalMsg)
		}
	}

	return s, cleanup
}

// formatDiagnostics renders an error, one line per joined diagnostic.
func formatDiagnostics(err error) string {
	var joined interface{ Unwrap() []error }
	if errors.As(err, &joined) {
		msg := ""
		for _, e := range joined.Unwrap() {
			msg += ui.Error.Sprint("✗") + " " + e.Error() + "\n"
		}
		return msg
	}
	return ui.Error.Sprint("✗") + " " + err.Error() + "\n"
}

// hintFor suggests a next step for well-known failures.
func hintFor(err error) string {
	arrow := ui.Info.Sprint("→") + " "
	var syntaxErr *directives.SyntaxError

	switch {
	case errors.Is(err, kerrors.ErrVariableNotDefined):
		return arrow + "Export the variable, add it to a dotenv file passed with " + ui.Code.Sprint("--env-file") +
			", or declare it with " + ui.Code.Sprint("option_envc") + " if it may be absent"
	case errors.As(err, &syntaxErr):
		return arrow + "Directives look like " + ui.Code.Sprint(`//envcrypt:APIKey envc("API_KEY")`)
	case errors.Is(err, kerrors.ErrNoDirectives):
		return arrow + "Add a directive such as " + ui.Code.Sprint(`//envcrypt:APIKey envc("API_KEY")`) +
			" or a " + ui.Code.Sprint("[[secret]]") + " table to " + ui.Path.Sprint("envcrypt.toml")
	case errors.Is(err, kerrors.ErrNoFilesFound):
		return arrow + "Check the " + ui.Code.Sprint("sources") + " globs in " + ui.Path.Sprint("envcrypt.toml")
	case errors.Is(err, kerrors.ErrManifestExists):
		return arrow + "Edit the existing " + ui.Path.Sprint("envcrypt.toml") + " instead"
	case errors.Is(err, kerrors.ErrPlaintextLeak):
		return arrow + "Embed these values with " + ui.Code.Sprint("envc") + " and rebuild"
	}
	return ""
}

// failureMessage combines a headline, the diagnostics and a hint.
func failureMessage(headline string, err error) string {
	msg := ui.Error.Sprint("✗") + " " + headline + "\n" + formatDiagnostics(err)
	if hint := hintFor(err); hint != "" {
		msg += hint
	}
	return msg
}
