package source

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch invokes onChange with the path of any watched file that is written,
// created, or renamed, until ctx is done. Parent directories are watched so
// that editors replacing files atomically are still seen.
func Watch(ctx context.Context, paths []string, onChange func(path string)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	watched := make(map[string]bool, len(paths))
	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, aErr := filepath.Abs(p)
		if aErr != nil {
			return aErr
		}

		watched[abs] = true
		dirs[filepath.Dir(abs)] = true
	}

	for dir := range dirs {
		if err = w.Add(dir); err != nil {
			return err
		}
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}

			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}

			abs, aErr := filepath.Abs(ev.Name)
			if aErr == nil && watched[abs] {
				onChange(abs)
			}
		case wErr, ok := <-w.Errors:
			if !ok {
				return nil
			}

			return wErr
		}
	}
}
