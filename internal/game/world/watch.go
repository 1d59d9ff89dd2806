package world

import (
	"errors"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/Faultbox/grove/internal/logger"
)

// Watcher reloads a scene file whenever it changes on disk. Valid scenes are
// delivered on Scenes; the newest one replaces any scene not yet received.
// Load failures are logged and sent on Errors without stopping the watch.
type Watcher struct {
	path     string
	fsnotify *fsnotify.Watcher
	scenes   chan *Scene
	errors   chan error
	done     chan struct{}
	wg       sync.WaitGroup

	closeOnce sync.Once
}

// Watch starts watching the scene file at path. The parent directory is
// watched so editors that replace the file by rename are still seen.
func Watch(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsWatch.Add(filepath.Dir(abs)); err != nil {
		fsWatch.Close()
		return nil, err
	}

	w := &Watcher{
		path:     abs,
		fsnotify: fsWatch,
		scenes:   make(chan *Scene, 1),
		errors:   make(chan error, 1),
		done:     make(chan struct{}),
	}
	w.wg.Add(1)
	go w.run()

	logger.Info("watching scene file", zap.String("path", abs))
	return w, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string { return w.path }

// Scenes delivers reloaded scenes.
func (w *Watcher) Scenes() <-chan *Scene { return w.scenes }

// Errors delivers reload failures.
func (w *Watcher) Errors() <-chan error { return w.errors }

// Close stops the watch and waits for the goroutine to exit.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.done)
		err = w.fsnotify.Close()
		w.wg.Wait()
	})
	return err
}

func (w *Watcher) run() {
	defer w.wg.Done()
	for {
		select {
		case e, ok := <-w.fsnotify.Events:
			if !ok {
				return
			}
			if filepath.Clean(e.Name) != w.path {
				continue
			}
			if e.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			w.reload()

		case err, ok := <-w.fsnotify.Errors:
			if !ok {
				return
			}
			logger.Warn("scene watcher error", zap.Error(err))
			w.sendError(err)

		case <-w.done:
			return
		}
	}
}

func (w *Watcher) reload() {
	scene, err := LoadFile(w.path)
	if err != nil {
		logger.Warn("scene reload rejected", zap.String("path", w.path), zap.Error(err))
		w.sendError(err)
		return
	}
	logger.Info("scene reloaded", zap.String("path", w.path), zap.String("name", scene.Name))

	// Keep only the newest scene.
	for {
		select {
		case w.scenes <- scene:
			return
		case <-w.scenes:
		case <-w.done:
			return
		}
	}
}

func (w *Watcher) sendError(err error) {
	select {
	case w.errors <- err:
	default:
	}
}

// ErrNoScene is returned by Latest when no reload is pending.
var ErrNoScene = errors.New("no reloaded scene pending")

// Latest returns the newest pending scene without blocking.
func (w *Watcher) Latest() (*Scene, error) {
	select {
	case s := <-w.scenes:
		return s, nil
	default:
		return nil, ErrNoScene
	}
}
