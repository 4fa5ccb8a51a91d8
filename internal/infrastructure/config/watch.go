package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Reload is a character config re-read after its file changed.
// Exactly one of Config and Err is set.
type Reload struct {
	Config *CharacterConfig
	Err    error
}

const reloadDebounce = 100 * time.Millisecond

// Watch re-parses the character file at path whenever it is written and
// delivers the result on the returned channel. The directory is watched
// rather than the file so editors that replace files on save still trigger.
// The channel is closed when ctx is done.
func Watch(ctx context.Context, path string, logger *zap.Logger) (<-chan Reload, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	path = filepath.Clean(path)
	if err := w.Add(filepath.Dir(path)); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", path, err)
	}

	out := make(chan Reload, 1)
	go func() {
		defer close(out)
		defer w.Close()

		// Saves often arrive as several events; read once they settle.
		var timer *time.Timer
		var settled <-chan time.Time
		for {
			select {
			case <-ctx.Done():
				if timer != nil {
					timer.Stop()
				}
				return
			case event, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != path {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				if timer == nil {
					timer = time.NewTimer(reloadDebounce)
				} else {
					timer.Reset(reloadDebounce)
				}
				settled = timer.C
			case <-settled:
				settled = nil

				r := readReload(path)
				if r.Err != nil {
					logger.Warn("config reload failed", zap.String("path", path), zap.Error(r.Err))
				} else {
					logger.Info("config reloaded", zap.String("path", path))
				}

				select {
				case out <- r:
				case <-ctx.Done():
					return
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				logger.Warn("config watcher error", zap.Error(err))
			}
		}
	}()

	return out, nil
}

func readReload(path string) Reload {
	data, err := os.ReadFile(path)
	if err != nil {
		return Reload{Err: fmt.Errorf("failed to read %s: %w", path, err)}
	}
	cfg, err := ParseCharacter(data, filepath.Ext(path))
	if err != nil {
		return Reload{Err: err}
	}
	return Reload{Config: cfg}
}
