package scripting

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watch queues changed .lua files under dir for reload until ctx is done.
// It returns once the watcher is running. Every event is queued; repeated
// saves between two ticks collapse into one reload of the latest content.
func (e *Engine) Watch(ctx context.Context, dir string) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := w.Add(dir); err != nil {
		_ = w.Close()
		return err
	}
	go e.watchLoop(ctx, w)
	return nil
}

func (e *Engine) watchLoop(ctx context.Context, w *fsnotify.Watcher) {
	defer w.Close()
	for {
		select {
		case ev, ok := <-w.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if !isScriptFile(ev.Name) {
				continue
			}
			e.Queue(ev.Name)
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			e.log.Warn("script watcher error", zap.Error(err))
		case <-ctx.Done():
			return
		}
	}
}

func isScriptFile(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == ".lua"
}
