package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime/pprof"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/graphscape/graphscape/internal/datasource"
	"github.com/graphscape/graphscape/pkg/config"
	"github.com/graphscape/graphscape/pkg/export"
	"github.com/graphscape/graphscape/pkg/model"
	"github.com/graphscape/graphscape/pkg/processor"
	"github.com/graphscape/graphscape/pkg/ui"
	"github.com/graphscape/graphscape/pkg/version"
)

func main() {
	cpuProfile := flag.String("cpu-profile", "", "Write CPU profile to file")
	help := flag.Bool("help", false, "Show help")
	versionFlag := flag.Bool("version", false, "Show version")

	endpoint := flag.String("endpoint", "", "Graph service base URL (overrides config)")
	file := flag.String("file", "", "Local JSON snapshot path (overrides config)")
	noCache := flag.Bool("no-cache", false, "Skip the local snapshot cache")

	layoutName := flag.String("layout", "", "Layout algorithm: force, hierarchical, circular, grid, cluster")
	maxNodes := flag.Int("max-nodes", -1, "Cap the number of rendered nodes (0 = unlimited)")
	search := flag.String("search", "", "Startup label search filter")

	exportFormat := flag.String("export", "", "One-shot export instead of the TUI: json, graphml, gexf, cytoscape, dot, mermaid")
	out := flag.String("out", "", "Export output path (default: stdout, or ./knowledge-graph.<ext> for --snapshot)")
	snapshot := flag.String("snapshot", "", "One-shot image snapshot: png or svg")
	flag.Parse()

	if *cpuProfile != "" {
		f, err := os.Create(*cpuProfile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Could not create CPU profile: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "Could not start CPU profile: %v\n", err)
			os.Exit(1)
		}
		defer pprof.StopCPUProfile()
	}

	if *help {
		fmt.Println("Usage: gx [options]")
		fmt.Println("\nAn interactive knowledge-graph explorer.")
		flag.PrintDefaults()
		os.Exit(0)
	}

	if *versionFlag {
		fmt.Printf("gx %s\n", version.Version)
		os.Exit(0)
	}

	cfg, cfgErr := config.Load()
	if cfgErr != nil {
		// Non-fatal: continue with defaults
		cfg = config.DefaultConfig()
	}

	if *endpoint != "" {
		cfg.Source.Endpoint = *endpoint
	}
	if *file != "" {
		cfg.Source.File = *file
	}
	if *layoutName != "" {
		if !model.ValidLayout(model.LayoutAlgorithm(*layoutName)) {
			fmt.Fprintf(os.Stderr, "Unknown layout %q (want force, hierarchical, circular, grid, or cluster)\n", *layoutName)
			os.Exit(2)
		}
		cfg.Layout.Algorithm = *layoutName
	}
	if *maxNodes >= 0 {
		cfg.Filter.MaxNodes = *maxNodes
	}

	srcCfg := sourceConfig(cfg, *noCache)

	if *exportFormat != "" || *snapshot != "" {
		os.Exit(runOneShot(cfg, srcCfg, *search, *exportFormat, *snapshot, *out))
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "stdout is not a terminal; use --export or --snapshot for non-interactive output")
		os.Exit(2)
	}

	if *search != "" {
		cfg.Filter.Search = *search
	}

	if err := runTUIProgram(cfg, srcCfg); err != nil {
		fmt.Printf("Error running graph explorer: %v\n", err)
		os.Exit(1)
	}
}

// sourceConfig maps the app config to datasource candidates.
func sourceConfig(cfg config.Config, noCache bool) datasource.Config {
	src := datasource.Config{
		Endpoint: cfg.Source.Endpoint,
		File:     cfg.Source.File,
		Query: datasource.Query{
			Layout:   cfg.Layout.Algorithm,
			MaxNodes: cfg.Filter.MaxNodes,
		},
	}
	if !noCache {
		if dir := config.DataDir(); dir != "" {
			src.CachePath = dir + "/cache.db"
		}
	}
	return src
}

// runOneShot loads a snapshot, applies the startup filter, and writes the
// requested export(s) without starting the TUI.
func runOneShot(cfg config.Config, srcCfg datasource.Config, search, exportFormat, snapshot, out string) int {
	ctx, cancel := context.WithTimeout(context.Background(), datasource.FetchTimeout+5*time.Second)
	defer cancel()

	data, from := datasource.LoadOrPlaceholder(ctx, srcCfg)
	if from == "" {
		fmt.Fprintln(os.Stderr, "Warning: no graph source available, exporting placeholder data")
	}

	proc := processor.New(data)
	f := cfg.ModelFilter()
	f.SearchTerm = search
	proc.SetFilter(f)
	proc.SetLayout(cfg.LayoutSpec())

	if exportFormat != "" {
		format := export.Format(strings.ToLower(exportFormat))
		if !format.Valid() {
			fmt.Fprintf(os.Stderr, "Unknown export format %q\n", exportFormat)
			return 2
		}
		if out == "" {
			payload, err := proc.Export(format)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Export failed: %v\n", err)
				return 1
			}
			os.Stdout.Write(payload)
			if len(payload) > 0 && payload[len(payload)-1] != '\n' {
				fmt.Println()
			}
		} else {
			path, err := proc.ExportFile(format, out)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Export failed: %v\n", err)
				return 1
			}
			fmt.Printf("Exported %s\n", path)
		}
	}

	if snapshot != "" {
		path := out
		if path == "" {
			path = "knowledge-graph." + strings.ToLower(snapshot)
		}
		err := proc.Snapshot(export.SnapshotOptions{
			Path:   path,
			Format: snapshot,
			Width:  int(cfg.LayoutSpec().Width),
			Height: int(cfg.LayoutSpec().Height),
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Snapshot failed: %v\n", err)
			return 1
		}
		fmt.Printf("Wrote %s\n", path)
	}

	return 0
}

func runTUIProgram(cfg config.Config, srcCfg datasource.Config) error {
	p := tea.NewProgram(
		ui.NewExplorer(cfg, srcCfg),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithoutSignalHandler(),
	)

	runDone := make(chan struct{})
	defer close(runDone)

	// Graceful shutdown on SIGINT/SIGTERM.
	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-runDone:
			return
		case <-sigCh:
		}

		p.Quit()

		select {
		case <-runDone:
			return
		case <-sigCh:
		case <-time.After(5 * time.Second):
		}

		p.Kill()
	}()

	_, err := p.Run()
	if err != nil && (errors.Is(err, tea.ErrProgramKilled) || errors.Is(err, tea.ErrInterrupted)) {
		return nil
	}
	return err
}
