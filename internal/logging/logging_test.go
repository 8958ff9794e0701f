package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func newTestLogger(verbose, debug bool) (Logger, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	return Logger{Verbose: verbose, Debug: debug, Out: &out, Err: &errOut}, &out, &errOut
}

func TestLoggerLevels(t *testing.T) {
	color.NoColor = true

	tests := []struct {
		name            string
		verbose, debug  bool
		wantInfo        bool
		wantDebug       bool
		wantWarn        bool
		wantErrorPrefix bool
	}{
		{"quiet", false, false, false, false, false, false},
		{"verbose", true, false, true, false, true, false},
		{"debug", false, true, true, true, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, out, errOut := newTestLogger(tt.verbose, tt.debug)
			l.Infof("info %d", 1)
			l.Debugf("debug %d", 2)
			l.Warnf("warn %d", 3)
			l.Errorf("error %d", 4)

			if got := strings.Contains(out.String(), "[info] info 1"); got != tt.wantInfo {
				t.Errorf("info shown = %v, want %v (stdout %q)", got, tt.wantInfo, out.String())
			}
			if got := strings.Contains(out.String(), "[debug] debug 2"); got != tt.wantDebug {
				t.Errorf("debug shown = %v, want %v (stdout %q)", got, tt.wantDebug, out.String())
			}
			if got := strings.Contains(errOut.String(), "[warn] warn 3"); got != tt.wantWarn {
				t.Errorf("warn shown = %v, want %v (stderr %q)", got, tt.wantWarn, errOut.String())
			}
			if got := strings.Contains(errOut.String(), "[error] error 4"); got != tt.wantErrorPrefix {
				t.Errorf("error shown = %v, want %v (stderr %q)", got, tt.wantErrorPrefix, errOut.String())
			}
		})
	}
}

func TestWarnfAlways(t *testing.T) {
	color.NoColor = true
	l, _, errOut := newTestLogger(false, false)

	l.WarnfAlways("output %s is not gitignored", "envcrypt_gen.go")

	if !strings.Contains(errOut.String(), "[warn] output envcrypt_gen.go is not gitignored") {
		t.Errorf("WarnfAlways output missing, got %q", errOut.String())
	}
}

func TestErrorfAndReturn(t *testing.T) {
	l, _, _ := newTestLogger(false, false)

	err := l.ErrorfAndReturn("failed to load %s: %v", "envcrypt.toml", "boom")
	if err == nil {
		t.Fatal("expected an error")
	}
	if err.Error() != "failed to load envcrypt.toml: boom" {
		t.Errorf("unexpected error text %q", err.Error())
	}
}
