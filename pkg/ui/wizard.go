package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/graphscape/graphscape/pkg/export"
	"github.com/graphscape/graphscape/pkg/processor"
)

// exportWizard wraps a huh form that asks for format and output path, then
// writes the current view.
type exportWizard struct {
	form   *huh.Form
	proc   *processor.Processor
	format string
	path   string
	done   bool
}

func newExportWizard(proc *processor.Processor) *exportWizard {
	w := &exportWizard{
		proc:   proc,
		format: string(export.FormatJSON),
		path:   ".",
	}

	options := make([]huh.Option[string], 0, len(export.Formats))
	for _, f := range export.Formats {
		options = append(options, huh.NewOption(string(f), string(f)))
	}

	w.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Export format").
				Options(options...).
				Value(&w.format),
			huh.NewInput().
				Title("Output path").
				Description("File path, or a directory for the default filename").
				Value(&w.path),
		),
	)
	return w
}

func (w *exportWizard) init() tea.Cmd {
	return w.form.Init()
}

// update forwards messages to the form; once the form completes it runs the
// export off the UI thread and reports via exportDoneMsg.
func (w *exportWizard) update(msg tea.Msg) tea.Cmd {
	if w.done {
		return nil
	}

	form, cmd := w.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		w.form = f
	}

	switch w.form.State {
	case huh.StateCompleted:
		w.done = true
		format := export.Format(w.format)
		path := w.path
		proc := w.proc
		return func() tea.Msg {
			written, err := proc.ExportFile(format, path)
			return exportDoneMsg{path: written, err: err}
		}
	case huh.StateAborted:
		w.done = true
		return func() tea.Msg {
			return exportDoneMsg{err: errAborted}
		}
	}
	return cmd
}

func (w *exportWizard) view() string {
	return w.form.View()
}

type abortedError struct{}

func (abortedError) Error() string { return "export cancelled" }

var errAborted = abortedError{}
