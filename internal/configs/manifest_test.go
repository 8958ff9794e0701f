package configs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PolarWolf314/envcrypt/internal/directives"
	kerrors "github.com/PolarWolf314/envcrypt/internal/errors"
)

func writeManifest(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ManifestFile), []byte(content), 0644)) // #nosec G306
}

func TestLoadManifestDefaults(t *testing.T) {
	m, found, err := LoadManifest(t.TempDir())
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, DefaultManifest(), m)
}

func TestLoadManifest(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `
package   = "config"
env_files = [".env", ".env.local"]

[[secret]]
func    = "APIKey"
var     = "API_KEY"
message = "export API_KEY"

[[secret]]
func     = "SentryDSN"
var      = "SENTRY_DSN"
optional = true
`)

	m, found, err := LoadManifest(dir)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "config", m.Package)
	assert.Equal(t, DefaultOutput, m.Output, "output falls back to the default")
	assert.Equal(t, []string{"*.go"}, m.Sources)
	assert.Equal(t, []string{".env", ".env.local"}, m.EnvFiles)
	require.Len(t, m.Secrets, 2)

	annotations, err := m.Annotations(ManifestFile)
	require.NoError(t, err)
	require.Len(t, annotations, 2)

	assert.Equal(t, directives.Annotation{
		Func: "APIKey",
		Call: directives.Call{Macro: directives.Envc, Var: "API_KEY", Message: "export API_KEY", HasMessage: true},
		Site: directives.Site{File: "envcrypt.toml [[secret]] #1"},
	}, annotations[0])
	assert.Equal(t, directives.OptionEnvc, annotations[1].Call.Macro)
	assert.False(t, annotations[1].Call.HasMessage)
}

func TestLoadManifestErrors(t *testing.T) {
	t.Run("malformed", func(t *testing.T) {
		dir := t.TempDir()
		writeManifest(t, dir, "[[secret]\nfunc = ")
		_, found, err := LoadManifest(dir)
		assert.True(t, found)
		assert.ErrorIs(t, err, kerrors.ErrInvalidManifest)
	})

	t.Run("unknown key", func(t *testing.T) {
		dir := t.TempDir()
		writeManifest(t, dir, "outptu = \"x.go\"\n")
		_, _, err := LoadManifest(dir)
		assert.ErrorIs(t, err, kerrors.ErrInvalidManifest)
	})

	t.Run("bad package", func(t *testing.T) {
		dir := t.TempDir()
		writeManifest(t, dir, "package = \"my-config\"\n")
		_, _, err := LoadManifest(dir)
		assert.ErrorIs(t, err, kerrors.ErrInvalidPackageName)
	})
}

func TestManifestAnnotationErrors(t *testing.T) {
	m := &Manifest{Secrets: []SecretEntry{
		{Func: "api-key", Var: "API_KEY"},
		{Func: "DSN"},
		{Func: "Sentry", Var: "SENTRY_DSN", Optional: true, Message: "nope"},
	}}

	_, err := m.Annotations(ManifestFile)
	require.Error(t, err)
	assert.ErrorIs(t, err, kerrors.ErrInvalidSyntax)
	assert.Contains(t, err.Error(), `envcrypt.toml [[secret]] #1: invalid function name "api-key"`)
	assert.Contains(t, err.Error(), "envcrypt.toml [[secret]] #2: secret DSN has no var")
	assert.Contains(t, err.Error(), "envcrypt.toml [[secret]] #3: "+directives.OptionEnvcSyntaxMessage)
}

func TestSaveManifestRoundTrip(t *testing.T) {
	dir := t.TempDir()
	m := DefaultManifest()
	m.Package = "config"
	m.Secrets = []SecretEntry{{Func: "APIKey", Var: "API_KEY"}}

	require.NoError(t, SaveManifest(dir, m))

	loaded, found, err := LoadManifest(dir)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, m, loaded)
}
