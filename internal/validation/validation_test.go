package validation_test

import (
	"os"
	"path/filepath"
	"testing"

	"fjacquet/emi-tracker/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidStatementPath(t *testing.T) {
	tmpDir := t.TempDir()

	txtFile := filepath.Join(tmpDir, "hdfc_jan.txt")
	require.NoError(t, os.WriteFile(txtFile, []byte("test"), 0600))
	pdfFile := filepath.Join(tmpDir, "ICICI_XXXX7003.PDF")
	require.NoError(t, os.WriteFile(pdfFile, []byte("%PDF"), 0600))
	csvFile := filepath.Join(tmpDir, "export.csv")
	require.NoError(t, os.WriteFile(csvFile, []byte("a,b"), 0600))

	tests := []struct {
		name        string
		path        string
		expectError bool
		errContains string
	}{
		{name: "text statement", path: txtFile},
		{name: "pdf statement, upper-case extension", path: pdfFile},
		{name: "directory", path: tmpDir},
		{
			name:        "unsupported extension",
			path:        csvFile,
			expectError: true,
			errContains: "unsupported statement file",
		},
		{
			name:        "non-existent path",
			path:        filepath.Join(tmpDir, "missing.txt"),
			expectError: true,
			errContains: "path does not exist",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validation.IsValidStatementPath(tt.path)
			if tt.expectError {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestIsValidStatementPaths(t *testing.T) {
	tmpDir := t.TempDir()
	good := filepath.Join(tmpDir, "a.txt")
	require.NoError(t, os.WriteFile(good, []byte("x"), 0600))

	assert.EqualError(t, validation.IsValidStatementPaths(nil), "no statement files given")
	assert.NoError(t, validation.IsValidStatementPaths([]string{good, tmpDir}))
	assert.Error(t, validation.IsValidStatementPaths([]string{good, filepath.Join(tmpDir, "b.txt")}))
}

func TestIsValidFilePermissions(t *testing.T) {
	tests := []struct {
		name        string
		mode        os.FileMode
		expectError bool
	}{
		{name: "owner only", mode: 0600},
		{name: "group readable", mode: 0640},
		{name: "world readable", mode: 0644, expectError: true},
		{name: "world writable", mode: 0602, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validation.IsValidFilePermissions(tt.mode)
			if tt.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "too permissive")
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
