package util

import (
	"errors"
	"io"
	"os"
	"path/filepath"
)

// ErrNotRegular is returned when the target of an atomic write exists but is not a regular file.
var ErrNotRegular = errors.New("not a regular file")

// WriteFileAtomic replaces path with the bytes produced by write. The content goes to a
// temporary file in the same directory which is synced and renamed over path, so
// readers see either the old or the new file. The mode of an existing file is kept.
func WriteFileAtomic(path string, write func(w io.Writer) error) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	mode := os.FileMode(0644)
	if info, statErr := os.Stat(path); statErr == nil {
		if !info.Mode().IsRegular() {
			return ErrNotRegular
		}
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if err = write(tmp); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return err
	}
	if err = tmp.Chmod(mode); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
