package scanner

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/penwyp/go-tally/internal/core/model"
	"github.com/penwyp/go-tally/internal/util"
)

// MatchFunc decides whether a file found during a scan is kept.
type MatchFunc func(path string) bool

// FileScanner scans files in the specified directory
type FileScanner struct {
	baseDir string
	match   MatchFunc
}

// NewFileScanner creates a new FileScanner instance
func NewFileScanner(baseDir string, match MatchFunc) *FileScanner {
	if match == nil {
		match = func(string) bool { return true }
	}
	return &FileScanner{
		baseDir: baseDir,
		match:   match,
	}
}

// Scan walks the directory and returns every matching file in lexical order.
// Hidden files and directories (leading dot) are skipped.
func (s *FileScanner) Scan() ([]string, error) {
	start := time.Now()
	var files []string
	dirCount := 0
	totalCount := 0

	util.LogDebug(fmt.Sprintf("Start scanning directory: %s", s.baseDir))

	err := filepath.WalkDir(s.baseDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			util.LogDebug(fmt.Sprintf("Skip file (error): %s - %v", path, err))
			return nil
		}

		if path != s.baseDir && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			dirCount++
			return nil
		}

		totalCount++
		if d.Type().IsRegular() && s.match(path) {
			files = append(files, path)
		}
		return nil
	})

	sort.Strings(files)

	util.LogDebug(fmt.Sprintf("File scan completed: duration %v, scanned %d directories, %d files, found %d series files",
		time.Since(start), dirCount, totalCount, len(files)))

	return files, err
}

// Expand resolves command line paths into files: directories are scanned with match,
// regular files are kept as given. A path that does not exist is an error.
func Expand(paths []string, match MatchFunc) ([]string, error) {
	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, &model.PathError{Op: "stat", Path: path, Err: err}
		}
		if !info.IsDir() {
			files = append(files, path)
			continue
		}

		found, err := NewFileScanner(path, match).Scan()
		if err != nil {
			return nil, err
		}
		files = append(files, found...)
	}
	return files, nil
}
