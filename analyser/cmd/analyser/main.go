package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/osler/analysers/analyser/internal/config"
	"github.com/osler/analysers/analyser/internal/export"
	"github.com/osler/analysers/analyser/internal/session"
	"github.com/osler/analysers/analyser/internal/source"
	"github.com/osler/analysers/analyser/internal/store"
	"github.com/osler/analysers/analyser/internal/threshold"
)

func main() {
	level := new(slog.LevelVar)
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("could not read .env", "err", err)
	}

	configPath := flag.String("config", os.Getenv("ANALYSERS_CONFIG"), "path to config file (default: built-in settings)")
	selectName := flag.String("select", "", "show the entry for this name")
	writeReport := flag.Bool("report", false, "write the management report and print it")
	watchFlag := flag.Bool("watch", false, "keep running and reload on data or config changes")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			slog.Error("failed to load config", "err", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if *watchFlag {
		cfg.Data.Watch = true
	}
	level.Set(cfg.Level())

	slog.Info("analyser starting",
		"config", *configPath,
		"source", cfg.Data.Source,
		"data_path", cfg.Data.DataPath,
		"report_path", cfg.Report.Path,
		"thresholds", len(cfg.Thresholds),
	)

	src, cls, exporters, err := build(cfg)
	if err != nil {
		slog.Error("failed to build pipeline", "err", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	ctrl := session.New(src, store.New(), cls, exporters, newConsole(os.Stdout))
	if err := ctrl.Load(ctx); err != nil && !cfg.Data.Watch {
		os.Exit(1)
	}
	slog.Debug("selection list", "names", ctrl.SelectionList())

	if *selectName != "" {
		ctrl.OnSelectionChanged(*selectName)
	}
	if *writeReport {
		ctrl.OnReportRequested()
	}
	if !cfg.Data.Watch {
		return
	}

	g, gctx := errgroup.WithContext(ctx)

	reload := func() {
		if err := ctrl.Load(gctx); err != nil {
			return
		}
		if *selectName != "" {
			ctrl.OnSelectionChanged(*selectName)
		}
	}

	data := newDataWatcher(gctx, func(path string) {
		slog.Info("data changed, reloading", "path", path)
		reload()
	})
	defer data.stop()
	data.bind(existing(cfg.WatchPaths()))

	if *configPath != "" {
		g.Go(func() error {
			return config.Watch(gctx, *configPath, func(updated *config.Config) {
				if *watchFlag {
					updated.Data.Watch = true
				}
				level.Set(updated.Level())
				src, cls, exporters, err := build(updated)
				if err != nil {
					slog.Error("config reload rejected", "err", err)
					return
				}
				ctrl.Reconfigure(src, cls, exporters)
				data.bind(existing(updated.WatchPaths()))
				reload()
			})
		})
	}

	// SIGUSR1 requests a report from a running process.
	g.Go(func() error {
		usr1 := make(chan os.Signal, 1)
		signal.Notify(usr1, syscall.SIGUSR1)
		defer signal.Stop(usr1)
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-usr1:
				ctrl.OnReportRequested()
			}
		}
	})

	if err := g.Wait(); err != nil {
		slog.Error("watcher stopped", "err", err)
		os.Exit(1)
	}
	slog.Info("analyser shutting down")
}

// build constructs the pieces of the pipeline that depend on config.
func build(cfg *config.Config) (source.Source, *threshold.Classifier, []export.Exporter, error) {
	src, err := source.New(cfg.Data)
	if err != nil {
		return nil, nil, nil, err
	}
	cls, err := threshold.New(cfg.Thresholds)
	if err != nil {
		return nil, nil, nil, err
	}
	return src, cls, export.FromConfig(cfg.Report), nil
}

// existing drops paths that are not present on disk.
func existing(paths []string) []string {
	var out []string
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			slog.Warn("not watching missing file", "path", p, "err", err)
			continue
		}
		out = append(out, p)
	}
	return out
}
