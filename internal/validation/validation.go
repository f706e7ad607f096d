// Package validation checks operator-supplied paths and files before they
// reach the parser.
package validation

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SupportedStatementExtensions are the statement file types the text
// extractor understands.
var SupportedStatementExtensions = []string{".txt", ".pdf"}

// IsValidStatementPath checks that path exists and is either a directory or a
// regular file with a supported extension.
func IsValidStatementPath(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("path does not exist: %s", path)
	}
	if err != nil {
		return fmt.Errorf("error checking path %s: %w", path, err)
	}

	if info.IsDir() {
		return nil
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("path %s is neither a file nor a directory", path)
	}

	ext := strings.ToLower(filepath.Ext(path))
	for _, supported := range SupportedStatementExtensions {
		if ext == supported {
			return nil
		}
	}
	return fmt.Errorf("unsupported statement file %s: expected one of %s",
		path, strings.Join(SupportedStatementExtensions, ", "))
}

// IsValidStatementPaths validates every path and requires at least one.
func IsValidStatementPaths(paths []string) error {
	if len(paths) == 0 {
		return fmt.Errorf("no statement files given")
	}
	for _, p := range paths {
		if err := IsValidStatementPath(p); err != nil {
			return err
		}
	}
	return nil
}

// IsValidFilePermissions checks that a file holding statement data is not
// readable by others.
func IsValidFilePermissions(mode os.FileMode) error {
	if mode&0007 != 0 {
		return fmt.Errorf("file permissions are too permissive: %s. Recommended 0600", mode.String())
	}
	return nil
}
