// Package ui implements the interactive graph explorer: a bubbletea program
// that renders the current graph view onto a cell surface with pan, zoom,
// hover, selection, search, and export.
package ui

import (
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/graphscape/graphscape/internal/datasource"
	"github.com/graphscape/graphscape/pkg/config"
	"github.com/graphscape/graphscape/pkg/model"
	"github.com/graphscape/graphscape/pkg/processor"
	"github.com/graphscape/graphscape/pkg/render"
	"github.com/graphscape/graphscape/pkg/watcher"
)

const (
	headerRows    = 1
	footerRows    = 2
	detailWidth   = 42
	cellNodeScale = 0.3
)

// Explorer is the top-level bubbletea model.
type Explorer struct {
	cfg    config.Config
	srcCfg datasource.Config

	proc  *processor.Processor
	scene *render.Scene
	cells *render.Cells

	width, height    int
	canvasW, canvasH int
	ready            bool
	loading          bool
	noData           bool

	layoutIdx int

	hoveredID  string
	selectedID string
	detail     string
	showDetail bool

	search    textinput.Model
	searching bool

	wizard *exportWizard

	watch *watcher.Watcher

	dragging   bool
	dragMoved  bool
	lastMouseX int
	lastMouseY int

	status   string
	statusAt time.Time
	quitting bool
}

// NewExplorer builds the explorer. The snapshot is loaded asynchronously in
// Init; until then a loading state is shown.
func NewExplorer(cfg config.Config, srcCfg datasource.Config) *Explorer {
	search := textinput.New()
	search.Placeholder = "search labels…"
	search.CharLimit = 120
	search.Width = 32

	e := &Explorer{
		cfg:     cfg,
		srcCfg:  srcCfg,
		scene:   render.NewScene(model.GraphData{}),
		search:  search,
		loading: true,
	}
	e.scene.NodeScale = cellNodeScale
	if cfg.UI.ShowEdges != nil {
		e.scene.ShowEdges = *cfg.UI.ShowEdges
	}

	spec := cfg.LayoutSpec()
	for i, l := range model.KnownLayouts {
		if l == spec.Algorithm {
			e.layoutIdx = i
		}
	}

	if cfg.Source.File != "" && cfg.Source.Watch {
		if w, err := watcher.NewWatcher(cfg.Source.File); err == nil {
			e.watch = w
		}
	}
	return e
}

func (e *Explorer) frameInterval() time.Duration {
	if e.cfg.UI.FrameMs > 0 {
		return time.Duration(e.cfg.UI.FrameMs) * time.Millisecond
	}
	return render.DefaultFrameInterval
}

func (e *Explorer) Init() tea.Cmd {
	cmds := []tea.Cmd{
		loadCmd(e.srcCfg),
		frameTickCmd(e.frameInterval()),
		textinput.Blink,
	}
	if e.watch != nil {
		if err := e.watch.Start(); err == nil {
			cmds = append(cmds, watchFileCmd(e.watch))
		}
	}
	return tea.Batch(cmds...)
}

// setStatus shows a transient message in the status bar.
func (e *Explorer) setStatus(format string, args ...any) {
	e.status = fmt.Sprintf(format, args...)
	e.statusAt = time.Now()
}

// refresh recomputes the positioned view after a filter or layout change.
func (e *Explorer) refresh() {
	if e.proc == nil {
		return
	}
	spec := e.cfg.LayoutSpec()
	spec.Algorithm = model.KnownLayouts[e.layoutIdx]
	if e.canvasW > 0 && e.canvasH > 0 {
		spec.Width = float64(e.canvasW)
		spec.Height = float64(e.canvasH)
	}
	e.proc.SetLayout(spec)
	e.scene.Graph = e.proc.View()
}

// resize recomputes the canvas area from the window size.
func (e *Explorer) resize() {
	e.canvasW = e.width
	if e.showDetail {
		e.canvasW = e.width - detailWidth
	}
	e.canvasH = e.height - headerRows - footerRows
	if e.canvasW < 1 {
		e.canvasW = 1
	}
	if e.canvasH < 1 {
		e.canvasH = 1
	}
	e.cells = render.NewCells(e.canvasW, e.canvasH)
	e.refresh()
}

func (e *Explorer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		e.width = msg.Width
		e.height = msg.Height
		e.ready = true
		e.resize()
		return e, nil

	case loadedMsg:
		e.loading = false
		e.noData = msg.from == ""
		e.proc = processor.New(msg.data)
		e.proc.SetFilter(e.cfg.ModelFilter())
		e.scene.View = render.NewViewport()
		e.refresh()
		if e.noData {
			e.setStatus("no data available — press r to retry")
		} else {
			e.setStatus("loaded %d nodes from %s", len(e.proc.Source().Nodes), msg.from)
		}
		return e, nil

	case fileChangedMsg:
		cmds := []tea.Cmd{loadCmd(e.srcCfg)}
		if e.watch != nil {
			cmds = append(cmds, watchFileCmd(e.watch))
		}
		e.setStatus("snapshot changed, reloading…")
		return e, tea.Batch(cmds...)

	case frameTickMsg:
		if e.quitting {
			return e, nil
		}
		if e.cells != nil {
			e.scene.Hovered = e.hoveredID
			e.scene.Selected = e.selectedID
			e.scene.Draw(e.cells)
		}
		return e, frameTickCmd(e.frameInterval())

	case exportDoneMsg:
		e.wizard = nil
		if msg.err != nil {
			e.setStatus("export failed: %v", msg.err)
		} else {
			e.setStatus("exported to %s", msg.path)
		}
		return e, nil

	case clipboardDoneMsg:
		if msg.err != nil {
			e.setStatus("clipboard copy failed: %v", msg.err)
		} else {
			e.setStatus("copied node id")
		}
		return e, nil

	case tea.MouseMsg:
		return e.handleMouse(msg)

	case tea.KeyMsg:
		return e.handleKey(msg)
	}

	if e.wizard != nil {
		cmd := e.wizard.update(msg)
		return e, cmd
	}
	return e, nil
}

func (e *Explorer) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if e.wizard != nil || e.searching {
		return e, nil
	}
	// Canvas-local coordinates; the header occupies the top row.
	cx := float64(msg.X)
	cy := float64(msg.Y - headerRows)

	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		e.scene.View = e.scene.View.ZoomAt(cx, cy, render.ZoomInStep)

	case msg.Button == tea.MouseButtonWheelDown:
		e.scene.View = e.scene.View.ZoomAt(cx, cy, render.ZoomOutStep)

	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		e.dragging = true
		e.dragMoved = false
		e.lastMouseX = msg.X
		e.lastMouseY = msg.Y

	case msg.Action == tea.MouseActionMotion && e.dragging:
		dx := float64(msg.X - e.lastMouseX)
		dy := float64(msg.Y - e.lastMouseY)
		if dx != 0 || dy != 0 {
			e.dragMoved = true
			e.scene.View = e.scene.View.Pan(dx, dy)
		}
		e.lastMouseX = msg.X
		e.lastMouseY = msg.Y

	case msg.Action == tea.MouseActionMotion:
		if n := e.scene.HitTest(cx, cy); n != nil {
			e.hoveredID = n.ID
		} else {
			e.hoveredID = ""
		}

	case msg.Action == tea.MouseActionRelease && msg.Button == tea.MouseButtonLeft:
		wasDrag := e.dragMoved
		e.dragging = false
		e.dragMoved = false
		if !wasDrag {
			if n := e.scene.HitTest(cx, cy); n != nil {
				e.selectNode(n)
			} else {
				e.clearSelection()
			}
		}
	}
	return e, nil
}

func (e *Explorer) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if e.wizard != nil {
		if msg.String() == "esc" {
			e.wizard = nil
			return e, nil
		}
		cmd := e.wizard.update(msg)
		return e, cmd
	}

	if e.searching {
		switch msg.String() {
		case "enter":
			e.searching = false
			e.search.Blur()
			e.applySearch(e.search.Value())
			return e, nil
		case "esc":
			e.searching = false
			e.search.Blur()
			e.search.SetValue("")
			e.applySearch("")
			return e, nil
		default:
			var cmd tea.Cmd
			e.search, cmd = e.search.Update(msg)
			return e, cmd
		}
	}

	switch msg.String() {
	case "q", "ctrl+c":
		e.quitting = true
		if e.watch != nil {
			e.watch.Stop()
		}
		return e, tea.Quit

	case "e":
		e.scene.ShowEdges = !e.scene.ShowEdges

	case "l":
		e.layoutIdx = (e.layoutIdx + 1) % len(model.KnownLayouts)
		e.refresh()
		e.setStatus("layout: %s", model.KnownLayouts[e.layoutIdx])

	case "/":
		e.searching = true
		e.search.Focus()
		return e, textinput.Blink

	case "x":
		if e.proc != nil {
			e.wizard = newExportWizard(e.proc)
			return e, e.wizard.init()
		}

	case "y":
		if e.selectedID != "" {
			id := e.selectedID
			return e, func() tea.Msg {
				return clipboardDoneMsg{err: clipboard.WriteAll(id)}
			}
		}

	case "r":
		e.loading = true
		e.setStatus("reloading…")
		return e, loadCmd(e.srcCfg)

	case "0":
		e.scene.View = e.scene.View.Reset()

	case "up":
		e.scene.View = e.scene.View.Nudge(0, 1)
	case "down":
		e.scene.View = e.scene.View.Nudge(0, -1)
	case "left":
		e.scene.View = e.scene.View.Nudge(1, 0)
	case "right":
		e.scene.View = e.scene.View.Nudge(-1, 0)

	case "enter":
		if e.hoveredID != "" {
			if n := e.scene.Graph.NodeByID(e.hoveredID); n != nil {
				e.selectNode(n)
			}
		}

	case "esc":
		e.clearSelection()
	}
	return e, nil
}

func (e *Explorer) selectNode(n *model.Node) {
	e.selectedID = n.ID
	neighbors := []model.Node(nil)
	if e.proc != nil {
		neighbors = e.proc.Neighbors(n.ID, 1)
	}
	e.detail = renderDetail(*n, neighbors, detailWidth-4)
	if !e.showDetail {
		e.showDetail = true
		e.resize()
	}
}

func (e *Explorer) clearSelection() {
	e.selectedID = ""
	e.detail = ""
	if e.showDetail {
		e.showDetail = false
		e.resize()
	}
}

func (e *Explorer) applySearch(term string) {
	if e.proc == nil {
		return
	}
	f := e.proc.Filter()
	f.SearchTerm = term
	e.proc.SetFilter(f)
	e.refresh()
	if term == "" {
		e.setStatus("search cleared")
	} else {
		e.setStatus("search: %q (%d nodes)", term, len(e.scene.Graph.Nodes))
	}
}

func (e *Explorer) View() string {
	if !e.ready {
		return "Initializing…"
	}
	if e.wizard != nil {
		return e.wizard.view()
	}

	header := e.headerView()
	canvas := e.canvasView()
	footer := e.footerView()

	body := canvas
	if e.showDetail {
		pane := detailBorderStyle.
			Width(detailWidth - 2).
			Height(e.canvasH - 2).
			Render(e.detail)
		body = lipgloss.JoinHorizontal(lipgloss.Top, canvas, pane)
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func (e *Explorer) headerView() string {
	title := headerStyle.Render("graphscape")
	g := e.scene.Graph
	info := headerInfoStyle.Render(fmt.Sprintf(
		"  %s · %d nodes · %d edges · zoom %.1fx",
		model.KnownLayouts[e.layoutIdx], len(g.Nodes), len(g.Edges), e.scene.View.Zoom,
	))
	return title + info
}

func (e *Explorer) canvasView() string {
	if e.loading {
		return lipgloss.Place(e.canvasW, e.canvasH, lipgloss.Center, lipgloss.Center,
			headerInfoStyle.Render("loading graph…"))
	}
	if e.noData {
		return lipgloss.Place(e.canvasW, e.canvasH, lipgloss.Center, lipgloss.Center,
			noDataStyle.Render("No data available\n\npress r to retry"))
	}
	if e.cells == nil {
		return ""
	}
	return e.cells.Render()
}

func (e *Explorer) footerView() string {
	var status string
	if e.searching {
		status = "search: " + e.search.View()
	} else if e.status != "" && time.Since(e.statusAt) < 6*time.Second {
		status = e.status
	} else if e.hoveredID != "" {
		status = "hover: " + e.hoveredID
	}
	bar := statusBarStyle.Width(e.width).Render(status)
	help := helpStyle.Render(
		"wheel zoom · drag pan · click select · / search · l layout · e edges · x export · y copy id · r reload · q quit")
	return bar + "\n" + help
}

// Run starts the explorer program with mouse support.
func Run(cfg config.Config, srcCfg datasource.Config) error {
	p := tea.NewProgram(
		NewExplorer(cfg, srcCfg),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)
	_, err := p.Run()
	return err
}
