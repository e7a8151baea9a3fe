package render

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Reloader is implemented by renderers that can reload their sources.
type Reloader interface {
	Reload() error
}

// Watcher reloads templates whenever a file below dir changes.
type Watcher struct {
	dir      string
	reloader Reloader
	watcher  *fsnotify.Watcher
	done     chan struct{}
	log      *zap.Logger
}

// NewWatcher creates a watcher for dir. It does nothing until started.
func NewWatcher(dir string, reloader Reloader, log *zap.Logger) *Watcher {
	return &Watcher{
		dir:      dir,
		reloader: reloader,
		log:      log,
	}
}

// Start begins watching dir and all of its subdirectories.
func (w *Watcher) Start() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	err = filepath.WalkDir(w.dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !d.IsDir() {
			return nil
		}

		return watcher.Add(p)
	})
	if err != nil {
		watcher.Close()
		return err
	}

	w.watcher = watcher
	w.done = make(chan struct{})

	go w.loop()

	w.log.Info("watching templates", zap.String("dir", w.dir))

	return nil
}

// Stop ends watching and waits for the event loop to exit.
func (w *Watcher) Stop() error {
	if w.watcher == nil {
		return nil
	}

	err := w.watcher.Close()
	<-w.done

	return err
}

func (w *Watcher) loop() {
	defer close(w.done)

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			w.handleEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}

			w.log.Warn("template watcher error", zap.Error(err))
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if event.Has(fsnotify.Chmod) && !event.Has(fsnotify.Write) {
		return
	}

	log := w.log.With(
		zap.String("file", event.Name),
		zap.Stringer("op", event.Op),
	)

	// new subdirectories are not watched by fsnotify on their own
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.watcher.Add(event.Name); err != nil {
				log.Warn("failed to watch directory", zap.Error(err))
			}
		}
	}

	if err := w.reloader.Reload(); err != nil {
		log.Error("failed to reload templates", zap.Error(err))
		return
	}

	log.Debug("reloaded templates")
}
