package platform

// Package platform contains OS integration: destination directory checks,
// opening folders in the file manager, and locating external tools.
