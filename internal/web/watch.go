package web

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const reloadDebounce = 200 * time.Millisecond

// NewDevRenderer parses templates from dir on disk, for use with Watch.
func NewDevRenderer(dir string) (*Renderer, error) {
	return NewRendererFS(os.DirFS(dir))
}

// Watch reloads r whenever a file under dir changes, until ctx is done.
func Watch(ctx context.Context, dir string, r *Renderer) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	err = filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.Add(p)
		}
		return nil
	})
	if err != nil {
		_ = w.Close()
		return err
	}

	go func() {
		defer w.Close()
		var timer *time.Timer
		for {
			select {
			case <-ctx.Done():
				if timer != nil {
					timer.Stop()
				}
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
					continue
				}
				if timer != nil {
					timer.Stop()
				}
				timer = time.AfterFunc(reloadDebounce, func() {
					if err := r.Reload(); err != nil {
						slog.Error("web.reload", "err", err)
						return
					}
					slog.Info("web.reloaded", "trigger", ev.Name)
				})
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				slog.Warn("web.watch", "err", err)
			}
		}
	}()
	return nil
}
