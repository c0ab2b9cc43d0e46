package platform

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestCreateDirectoryIfNotExists(t *testing.T) {
	tempDir := t.TempDir()
	testDir := filepath.Join(tempDir, "test_dir")

	// Directory should not exist initially
	if _, err := os.Stat(testDir); !os.IsNotExist(err) {
		t.Fatalf("Test directory already exists: %s", testDir)
	}

	if err := CreateDirectoryIfNotExists(testDir); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}

	if _, err := os.Stat(testDir); os.IsNotExist(err) {
		t.Fatalf("Directory was not created: %s", testDir)
	}

	// Second call should not fail
	if err := CreateDirectoryIfNotExists(testDir); err != nil {
		t.Fatalf("Failed to handle existing directory: %v", err)
	}
}

func TestDefaultDestination(t *testing.T) {
	dest := DefaultDestination()
	if dest == "" {
		t.Fatal("Default destination is empty")
	}

	if home, err := os.UserHomeDir(); err == nil && home != "" && dest != home {
		t.Errorf("Expected home directory %s, got %s", home, dest)
	}
}

func TestCheckWritableDir(t *testing.T) {
	dir := t.TempDir()

	if err := CheckWritableDir(dir); err != nil {
		t.Fatalf("Expected writable temp dir, got %v", err)
	}

	// Probe file must not be left behind
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("Failed to read dir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Expected empty directory after probe, found %d entries", len(entries))
	}
}

func TestCheckWritableDir_Missing(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing")

	err := CheckWritableDir(missing)
	if err == nil {
		t.Fatal("Expected error for missing directory")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected not-exist error, got %v", err)
	}
}

func TestCheckWritableDir_File(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("Failed to create file: %v", err)
	}

	err := CheckWritableDir(file)
	if !errors.Is(err, ErrNotDirectory) {
		t.Errorf("Expected ErrNotDirectory, got %v", err)
	}
}

func TestCheckWritableDir_ReadOnly(t *testing.T) {
	if runtime.GOOS == OSWindows || os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced here")
	}

	dir := t.TempDir()
	if err := os.Chmod(dir, 0o555); err != nil {
		t.Fatalf("Failed to chmod: %v", err)
	}
	defer os.Chmod(dir, 0o755)

	err := CheckWritableDir(dir)
	if err == nil || !strings.Contains(err.Error(), "not writable") {
		t.Errorf("Expected not writable error, got %v", err)
	}
}

func TestOpenDirectory_NonExistent(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope")

	err := OpenDirectory(missing)
	if err == nil {
		t.Fatal("Expected error for non-existent directory, got nil")
	}

	if !strings.Contains(err.Error(), "directory does not exist:") {
		t.Errorf("Error message should contain 'directory does not exist:', got: %v", err)
	}
}

func TestOpenDirectory_File(t *testing.T) {
	file := filepath.Join(t.TempDir(), "video.mp4")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatalf("Failed to create file: %v", err)
	}

	if err := OpenDirectory(file); !errors.Is(err, ErrNotDirectory) {
		t.Errorf("Expected ErrNotDirectory, got %v", err)
	}
}
