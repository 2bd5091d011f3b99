// Package attributes derives platform, account and metric from a series path.
package attributes

import (
	"path/filepath"
	"strings"

	"github.com/penwyp/go-tally/internal/core/model"
)

// Resolve maps a path below dataRoot to its attributes. The first segment is the
// platform, the last one (without extension) the metric and everything in between the
// account. Paths with fewer than three segments below the root, or outside it, yield ok == false.
// The filesystem is never consulted.
func Resolve(path, dataRoot string) (attrs model.Attributes, ok bool) {
	segments, ok := segmentsBelow(path, dataRoot)
	if !ok || len(segments) < 3 {
		return model.Attributes{}, false
	}

	last := segments[len(segments)-1]
	return model.Attributes{
		Platform: segments[0],
		Account:  strings.Join(segments[1:len(segments)-1], "/"),
		Metric:   strings.TrimSuffix(last, filepath.Ext(last)),
	}, true
}

// RelativePath returns path relative to dataRoot using forward slashes.
func RelativePath(path, dataRoot string) (string, bool) {
	segments, ok := segmentsBelow(path, dataRoot)
	if !ok {
		return "", false
	}
	return strings.Join(segments, "/"), true
}

// AccountDir is the directory holding the account profile of a series file.
func AccountDir(path string) string {
	return filepath.Dir(path)
}

func segmentsBelow(path, dataRoot string) ([]string, bool) {
	rel, err := filepath.Rel(filepath.Clean(dataRoot), filepath.Clean(path))
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return nil, false
	}
	return strings.Split(filepath.ToSlash(rel), "/"), true
}
