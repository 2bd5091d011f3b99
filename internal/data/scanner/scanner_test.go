package scanner

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createFiles(t *testing.T, root string, paths ...string) {
	t.Helper()
	for _, p := range paths {
		full := filepath.Join(root, p)
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
		require.NoError(t, os.WriteFile(full, []byte("1,1\n"), 0644))
	}
}

func isCSV(path string) bool {
	return strings.HasSuffix(path, ".csv")
}

func TestFileScannerScanEmptyDirectory(t *testing.T) {
	files, err := NewFileScanner(t.TempDir(), isCSV).Scan()

	require.NoError(t, err)
	assert.Empty(t, files, "Empty directory should return no files")
}

func TestFileScannerScanNonExistentDirectory(t *testing.T) {
	files, err := NewFileScanner("/path/that/does/not/exist", isCSV).Scan()

	require.NoError(t, err, "Scanner should handle non-existent directory gracefully")
	assert.Empty(t, files)
}

func TestFileScannerScanFiltersAndSorts(t *testing.T) {
	root := t.TempDir()
	createFiles(t, root,
		"yt/bob/views.csv",
		"tw/alice/followers.csv",
		"tw/alice/profile.json",
		"tw/alice/notes.journal",
		"tw/alice/.followers.csv.123.tmp",
		".git/objects/x.csv",
	)

	files, err := NewFileScanner(root, isCSV).Scan()
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "tw/alice/followers.csv"),
		filepath.Join(root, "yt/bob/views.csv"),
	}, files)
}

func TestFileScannerNilMatchKeepsEverything(t *testing.T) {
	root := t.TempDir()
	createFiles(t, root, "a/b/c.csv", "a/b/profile.json")

	files, err := NewFileScanner(root, nil).Scan()
	require.NoError(t, err)
	assert.Len(t, files, 2)
}

func TestExpand(t *testing.T) {
	root := t.TempDir()
	createFiles(t, root, "tw/alice/followers.csv", "tw/alice/likes.csv", "other.txt")

	single := filepath.Join(root, "other.txt")
	files, err := Expand([]string{single, filepath.Join(root, "tw")}, isCSV)
	require.NoError(t, err)
	assert.Equal(t, []string{
		single,
		filepath.Join(root, "tw/alice/followers.csv"),
		filepath.Join(root, "tw/alice/likes.csv"),
	}, files)

	_, err = Expand([]string{filepath.Join(root, "missing")}, isCSV)
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
