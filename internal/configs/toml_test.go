package configs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSaveAndLoadTOML(t *testing.T) {
	tempDir := t.TempDir()
	testFile := filepath.Join(tempDir, "test.toml")

	type TestStruct struct {
		Name    string
		Sources []string
	}

	originalData := TestStruct{Name: "config", Sources: []string{"*.go", "sub/**/*.go"}}

	if err := SaveTOML(testFile, originalData); err != nil {
		t.Fatalf("SaveTOML failed: %v", err)
	}

	loadedData := TestStruct{}
	if err := LoadTOML(testFile, &loadedData); err != nil {
		t.Fatalf("LoadTOML failed: %v", err)
	}

	if loadedData.Name != originalData.Name {
		t.Errorf("Expected Name %q, got %q", originalData.Name, loadedData.Name)
	}
	if strings.Join(loadedData.Sources, ",") != strings.Join(originalData.Sources, ",") {
		t.Errorf("Expected Sources %v, got %v", originalData.Sources, loadedData.Sources)
	}
}

func TestLoadTOMLNonExistent(t *testing.T) {
	var data struct{ Name string }
	if err := LoadTOML(filepath.Join(t.TempDir(), "nonexistent.toml"), &data); err == nil {
		t.Fatal("Expected error for non-existent file, got nil")
	}
}

func TestLoadTOMLRejectsUnknownKeys(t *testing.T) {
	testFile := filepath.Join(t.TempDir(), "test.toml")
	if err := os.WriteFile(testFile, []byte("Name = \"a\"\nNmae = \"typo\"\n"), 0644); err != nil { // #nosec G306
		t.Fatalf("Failed to write file: %v", err)
	}

	var data struct{ Name string }
	err := LoadTOML(testFile, &data)
	if err == nil || !strings.Contains(err.Error(), "Nmae") {
		t.Fatalf("Expected unknown key error naming Nmae, got %v", err)
	}
}

func TestSaveTOMLCreatesDirectory(t *testing.T) {
	testFile := filepath.Join(t.TempDir(), "subdir", "test.toml")

	if err := SaveTOML(testFile, struct{ Name string }{"Test"}); err != nil {
		t.Fatalf("SaveTOML failed: %v", err)
	}
	if _, err := os.Stat(testFile); os.IsNotExist(err) {
		t.Fatal("File was not created")
	}
}
