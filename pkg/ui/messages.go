package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/graphscape/graphscape/internal/datasource"
	"github.com/graphscape/graphscape/pkg/model"
	"github.com/graphscape/graphscape/pkg/watcher"
)

// loadedMsg carries a freshly loaded snapshot. From is "" when every source
// failed and the payload is the placeholder graph.
type loadedMsg struct {
	data model.GraphData
	from datasource.SourceType
}

// frameTickMsg drives one render frame.
type frameTickMsg time.Time

// fileChangedMsg signals that the watched snapshot file changed on disk.
type fileChangedMsg struct{}

// exportDoneMsg reports the outcome of an export wizard run.
type exportDoneMsg struct {
	path string
	err  error
}

// clipboardDoneMsg reports the outcome of a clipboard copy.
type clipboardDoneMsg struct {
	err error
}

// loadCmd fetches a snapshot from the configured sources. Transport failure
// yields the placeholder graph rather than an error.
func loadCmd(cfg datasource.Config) tea.Cmd {
	return func() tea.Msg {
		data, from := datasource.LoadOrPlaceholder(context.Background(), cfg)
		return loadedMsg{data: data, from: from}
	}
}

// frameTickCmd schedules the next render frame.
func frameTickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return frameTickMsg(t)
	})
}

// watchFileCmd waits for the next file change notification.
func watchFileCmd(w *watcher.Watcher) tea.Cmd {
	return func() tea.Msg {
		<-w.Changed()
		return fileChangedMsg{}
	}
}
