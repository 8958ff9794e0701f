package workflows

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PolarWolf314/envcrypt/internal/audit"
	kerrors "github.com/PolarWolf314/envcrypt/internal/errors"
	"github.com/PolarWolf314/envcrypt/internal/secrets"
)

func TestScan_FindsLeaks(t *testing.T) {
	dir := t.TempDir()
	binary := filepath.Join(dir, "app")
	writeFile(t, binary, "\x7fELF\x00\x00prefix-hunter2-secret-suffix\x00")

	env := secrets.MapEnvironment{
		"LEAKED": "hunter2-secret",
		"SAFE":   "not-in-the-binary",
		"SHORT":  "ELF",
	}

	result, err := Scan(context.Background(), ScanOptions{
		Binary:      binary,
		Dir:         dir,
		Vars:        []string{"LEAKED", "SAFE", "SHORT", "UNSET", "LEAKED"},
		Environment: env,
	})
	require.ErrorIs(t, err, kerrors.ErrPlaintextLeak)
	assert.ErrorContains(t, err, "LEAKED")

	require.NotNil(t, result)
	assert.Equal(t, []string{"LEAKED"}, result.Leaks)
	assert.Equal(t, []string{"LEAKED", "SAFE"}, result.Checked)
	assert.Equal(t, []string{"SHORT", "UNSET"}, result.Skipped)

	entries, err := audit.ReadEntries(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "scan", entries[0].Operation)
	assert.Equal(t, []string{"LEAKED"}, entries[0].Leaks)
}

func TestScan_MinLength(t *testing.T) {
	dir := t.TempDir()
	binary := filepath.Join(dir, "app")
	writeFile(t, binary, "xxELFxx")

	result, err := Scan(context.Background(), ScanOptions{
		Binary:      binary,
		Dir:         dir,
		Vars:        []string{"SHORT"},
		MinLength:   3,
		Environment: secrets.MapEnvironment{"SHORT": "ELF"},
	})
	assert.ErrorIs(t, err, kerrors.ErrPlaintextLeak)
	assert.Equal(t, []string{"SHORT"}, result.Leaks)
}

func TestScan_GeneratedSourceDoesNotLeak(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "config.go"), configSource)

	gen, err := Generate(context.Background(), GenerateOptions{Dir: dir, Environment: testEnv()})
	require.NoError(t, err)

	// Variables are discovered from the same directives.
	result, err := Scan(context.Background(), ScanOptions{
		Binary:      gen.OutputPath,
		Dir:         dir,
		Environment: testEnv(),
	})
	require.NoError(t, err)
	assert.Empty(t, result.Leaks)
	assert.Equal(t, []string{"API_KEY", "SENTRY_DSN"}, result.Checked)
	assert.Equal(t, []string{"REGION"}, result.Skipped)
}

func TestScan_MissingBinary(t *testing.T) {
	_, err := Scan(context.Background(), ScanOptions{
		Binary:      filepath.Join(t.TempDir(), "missing"),
		Vars:        []string{"API_KEY"},
		Environment: testEnv(),
	})
	assert.ErrorIs(t, err, kerrors.ErrFileNotFound)
}

func TestScan_NothingToCheck(t *testing.T) {
	dir := t.TempDir()
	binary := filepath.Join(dir, "app")
	writeFile(t, binary, "binary")
	writeFile(t, filepath.Join(dir, "main.go"), "package main\n")

	_, err := Scan(context.Background(), ScanOptions{Binary: binary, Dir: dir, Environment: testEnv()})
	assert.ErrorIs(t, err, kerrors.ErrNoDirectives)
}
