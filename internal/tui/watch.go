package tui

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/mverhelle/folio/internal/config"
	"github.com/mverhelle/folio/internal/projects"
)

const reloadDebounce = 200 * time.Millisecond

// reloadMsg carries a freshly loaded project list, or the reason it could not
// be loaded.
type reloadMsg struct {
	projects projects.List
	err      error
}

// watcher reloads the config file whenever it changes on disk. The parent
// directory is watched so editors that replace the file are still seen.
type watcher struct {
	fs   *fsnotify.Watcher
	path string
	log  *zap.Logger

	out  chan reloadMsg
	done chan struct{}
	once sync.Once
}

func newWatcher(path string, log *zap.Logger) (*watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}

	w := &watcher{
		fs:   fw,
		path: abs,
		log:  log,
		out:  make(chan reloadMsg),
		done: make(chan struct{}),
	}
	go w.run()
	return w, nil
}

func (w *watcher) run() {
	var pending <-chan time.Time
	for {
		select {
		case <-w.done:
			return

		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path || ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			pending = time.After(reloadDebounce)

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.log.Warn("watch error", zap.Error(err))

		case <-pending:
			pending = nil
			msg := reloadMsg{}
			cfg, err := config.Load(w.path)
			if err != nil {
				msg.err = err
			} else {
				msg.projects = cfg.Projects
			}
			select {
			case w.out <- msg:
			case <-w.done:
				return
			}
		}
	}
}

// wait returns a command that blocks until the next reload.
func (w *watcher) wait() tea.Cmd {
	return func() tea.Msg {
		select {
		case msg := <-w.out:
			return msg
		case <-w.done:
			return nil
		}
	}
}

func (w *watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.fs.Close()
	})
	return err
}
