// Package filesystem provides file-based adapters for the credential ports.
package filesystem

import "os"

// OSFileChecker implements ports.FileChecker against the local filesystem.
type OSFileChecker struct{}

// NewOSFileChecker creates a new OSFileChecker.
func NewOSFileChecker() *OSFileChecker {
	return &OSFileChecker{}
}

// Exists reports whether anything exists at path.
func (OSFileChecker) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
