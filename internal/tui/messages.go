package tui

import (
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"

	"subghz-inspector/internal/subfile"
)

type errMsg struct {
	err error
}

type loadedMsg struct {
	path    string
	capture *subfile.Capture
	reload  bool
}

type watchStartedMsg struct {
	watcher *fsnotify.Watcher
}

type fileChangedMsg struct{}

type watchErrMsg struct {
	err error
}

// loadFile reads and decodes path off the UI goroutine. The session itself
// is only touched in Update.
func loadFile(path string, reload bool) tea.Cmd {
	return func() tea.Msg {
		c, err := subfile.ReadFile(path)
		if err != nil {
			return errMsg{fmt.Errorf("failed to load %s: %w", filepath.Base(path), err)}
		}
		return loadedMsg{path: path, capture: c, reload: reload}
	}
}

// startWatch watches the directory holding path, so that editors replacing
// the file by rename are noticed too.
func startWatch(path string) tea.Cmd {
	return func() tea.Msg {
		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return errMsg{fmt.Errorf("failed to create file watcher: %w", err)}
		}
		if err := watcher.Add(filepath.Dir(path)); err != nil {
			watcher.Close()
			return errMsg{fmt.Errorf("failed to watch %s: %w", path, err)}
		}
		return watchStartedMsg{watcher: watcher}
	}
}

// waitForChange blocks until path is written or recreated
func waitForChange(watcher *fsnotify.Watcher, path string) tea.Cmd {
	return func() tea.Msg {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				if shouldReload(event, path) {
					return fileChangedMsg{}
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
				return watchErrMsg{err}
			}
		}
	}
}

func shouldReload(event fsnotify.Event, path string) bool {
	if filepath.Clean(event.Name) != filepath.Clean(path) {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create)
}
