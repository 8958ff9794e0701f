package secrets

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	kerrors "github.com/PolarWolf314/envcrypt/internal/errors"
)

// writeTestFile is a helper to write test files with 0644 permissions.
// #nosec G306 -- Test files are temporary and don't contain sensitive data.
func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil { // #nosec G306
		t.Fatalf("Failed to create test file: %v", err)
	}
}

func TestResolveSourceFiles_Default(t *testing.T) {
	tmpDir := t.TempDir()
	writeTestFile(t, filepath.Join(tmpDir, "config.go"), "package config")
	writeTestFile(t, filepath.Join(tmpDir, "config_test.go"), "package config")
	writeTestFile(t, filepath.Join(tmpDir, "README.md"), "# config")
	writeTestFile(t, filepath.Join(tmpDir, "nested", "deep.go"), "package nested")

	files, err := ResolveSourceFiles(nil, tmpDir)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("Expected 1 file, got: %v", files)
	}
	if files[0] != filepath.Join(tmpDir, "config.go") {
		t.Errorf("Expected config.go, got: %s", files[0])
	}
}

func TestResolveSourceFiles_Excludes(t *testing.T) {
	tmpDir := t.TempDir()
	writeTestFile(t, filepath.Join(tmpDir, "config.go"), "package config")
	writeTestFile(t, filepath.Join(tmpDir, "envcrypt_gen.go"), "package config")

	files, err := ResolveSourceFiles([]string{"*.go"}, tmpDir, filepath.Join(tmpDir, "envcrypt_gen.go"))
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(files) != 1 || filepath.Base(files[0]) != "config.go" {
		t.Errorf("Expected only config.go, got: %v", files)
	}
}

func TestResolveSourceFiles_DoubleStarDeduplicates(t *testing.T) {
	tmpDir := t.TempDir()
	writeTestFile(t, filepath.Join(tmpDir, "a.go"), "package config")
	writeTestFile(t, filepath.Join(tmpDir, "sub", "b.go"), "package config")

	files, err := ResolveSourceFiles([]string{"**/*.go", "a.go"}, tmpDir)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(files) != 2 {
		t.Errorf("Expected 2 files, got: %v", files)
	}
}

func TestResolveEnvFiles(t *testing.T) {
	tmpDir := t.TempDir()
	writeTestFile(t, filepath.Join(tmpDir, ".env"), "A=1")

	files, err := ResolveEnvFiles([]string{".env"}, tmpDir)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(files) != 1 || files[0] != filepath.Join(tmpDir, ".env") {
		t.Errorf("Unexpected files: %v", files)
	}

	_, err = ResolveEnvFiles([]string{".env.missing"}, tmpDir)
	if !errors.Is(err, kerrors.ErrFileNotFound) {
		t.Errorf("Expected ErrFileNotFound, got: %v", err)
	}
}
