// Package watcher reports changes to series files below a set of directories.
package watcher

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/penwyp/go-tally/internal/util"
)

// Event is a change to a watched series file.
type Event struct {
	Path      string
	Operation string
}

// MatchFunc selects the files whose changes are reported.
type MatchFunc func(path string) bool

type FileWatcher struct {
	watcher *fsnotify.Watcher
	match   MatchFunc
	events  chan Event
	done    chan struct{}
}

func NewFileWatcher(paths []string, match MatchFunc) (*FileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	fw := &FileWatcher{
		watcher: watcher,
		match:   match,
		events:  make(chan Event, 100),
		done:    make(chan struct{}),
	}

	for _, path := range paths {
		if err := fw.addPath(path); err != nil {
			_ = watcher.Close()
			return nil, err
		}
	}

	go fw.processEvents()

	return fw, nil
}

// addPath watches path itself when it is a file, or every directory below it.
func (fw *FileWatcher) addPath(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fw.watcher.Add(filepath.Dir(path))
	}

	return filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			return fw.watcher.Add(p)
		}
		return nil
	})
}

func (fw *FileWatcher) processEvents() {
	defer close(fw.events)
	for {
		select {
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}

			// New directories join the watch set
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := fw.addPath(event.Name); err != nil {
						util.LogWarnf("Failed to watch %s: %v", event.Name, err)
					}
					continue
				}
			}

			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if fw.match != nil && !fw.match(event.Name) {
				continue
			}

			select {
			case fw.events <- Event{Path: event.Name, Operation: event.Op.String()}:
			case <-fw.done:
				return
			}

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			util.LogError("File monitoring error", util.Err(err))

		case <-fw.done:
			return
		}
	}
}

func (fw *FileWatcher) Events() <-chan Event {
	return fw.events
}

func (fw *FileWatcher) Close() error {
	close(fw.done)
	return fw.watcher.Close()
}
