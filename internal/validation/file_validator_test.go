package validation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateInputDirectory(t *testing.T) {
	v := NewFileValidator(nil)

	dir := t.TempDir()
	require.NoError(t, v.ValidateInputDirectory(dir))

	require.Error(t, v.ValidateInputDirectory(filepath.Join(dir, "missing")))

	file := filepath.Join(dir, "file.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))
	require.Error(t, v.ValidateInputDirectory(file))
}

func TestValidateOutputDirectoryCreates(t *testing.T) {
	v := NewFileValidator(nil)
	dir := filepath.Join(t.TempDir(), "nested", "out")
	require.NoError(t, v.ValidateOutputDirectory(dir))
	assert.DirExists(t, dir)
}

func TestValidateReportFile(t *testing.T) {
	v := NewFileValidator(nil)
	dir := t.TempDir()

	path := filepath.Join(dir, "일보.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	require.NoError(t, v.ValidateReportFile(path))

	require.Error(t, v.ValidateReportFile(filepath.Join(dir, "missing.xlsx")))
	require.Error(t, v.ValidateReportFile(dir))
}

func TestCheckReportFileName(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
	}{
		{"진성 생산일보.xlsx", false},
		{"report.XLSX", false},
		{"legacy.xls", false},
		{"~$진성 생산일보.xlsx", true},
		{"report.csv", true},
		{"report", true},
	}
	for _, tt := range tests {
		err := CheckReportFileName(tt.name)
		if tt.wantErr {
			assert.Error(t, err, tt.name)
		} else {
			assert.NoError(t, err, tt.name)
		}
	}
}
