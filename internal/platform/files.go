package platform

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

// Operating system constants
const (
	OSDarwin  = "darwin"
	OSWindows = "windows"
	OSLinux   = "linux"
)

// File permissions
const (
	DefaultDirPermissions = 0755
)

// Command constants
const (
	OpenCommand     = "open"
	ExplorerCommand = "explorer"
	XDGOpenCommand  = "xdg-open"
)

// Probe file created to check that a destination accepts writes
const (
	WriteProbePattern = ".quickdl-write-*"
)

// ErrNotDirectory is returned when a destination exists but is not a directory
var ErrNotDirectory = errors.New("not a directory")

// File managers tried on Linux when xdg-open fails
var (
	LinuxFileManagers = []string{"nautilus", "dolphin", "thunar", "nemo", "pcmanfm"}
)

// DefaultDestination returns the user's home directory, falling back to the temp dir
func DefaultDestination() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return os.TempDir()
	}
	return home
}

// CreateDirectoryIfNotExists creates directory if it doesn't exist
func CreateDirectoryIfNotExists(dirPath string) error {
	if _, err := os.Stat(dirPath); os.IsNotExist(err) {
		return os.MkdirAll(dirPath, DefaultDirPermissions)
	}
	return nil
}

// CheckWritableDir verifies that dirPath exists, is a directory and accepts new files
func CheckWritableDir(dirPath string) error {
	info, err := os.Stat(dirPath)
	if err != nil {
		return fmt.Errorf("destination %s: %w", dirPath, err)
	}

	if !info.IsDir() {
		return fmt.Errorf("destination %s: %w", dirPath, ErrNotDirectory)
	}

	probe, err := os.CreateTemp(dirPath, WriteProbePattern)
	if err != nil {
		return fmt.Errorf("destination %s is not writable: %w", dirPath, err)
	}
	name := probe.Name()
	probe.Close()
	os.Remove(name)

	return nil
}

// OpenDirectory opens dirPath in the system file manager
func OpenDirectory(dirPath string) error {
	info, err := os.Stat(dirPath)
	if err != nil {
		return fmt.Errorf("directory does not exist: %v", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s: %w", dirPath, ErrNotDirectory)
	}

	absPath, err := filepath.Abs(dirPath)
	if err != nil {
		return fmt.Errorf("failed to get absolute path: %w", err)
	}

	switch runtime.GOOS {
	case OSDarwin:
		return exec.Command(OpenCommand, absPath).Run()
	case OSWindows:
		return exec.Command(ExplorerCommand, absPath).Run()
	case OSLinux:
		return openDirectoryLinux(absPath)
	default:
		return fmt.Errorf("unsupported operating system: %s", runtime.GOOS)
	}
}

// openDirectoryLinux tries xdg-open first, then known file managers
func openDirectoryLinux(dir string) error {
	if err := exec.Command(XDGOpenCommand, dir).Run(); err == nil {
		return nil
	}

	for _, fm := range LinuxFileManagers {
		if _, err := exec.LookPath(fm); err == nil {
			return exec.Command(fm, dir).Run()
		}
	}

	return fmt.Errorf("no suitable file manager found")
}
