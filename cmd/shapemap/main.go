package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"shapemap/internal/config"
	"shapemap/internal/geom"
	"shapemap/internal/logging"
	"shapemap/internal/mapview"
	"shapemap/internal/session"
	"shapemap/internal/tui"
)

func main() {
	cfg := config.Default()
	cfg.Bind(flag.CommandLine)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] [basemap.geojson|.wkt|.csv|.kml]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() > 0 {
		cfg.Basemap = flag.Arg(0)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	logger, closeLog, err := logging.Open(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, File: cfg.LogFile})
	if err != nil {
		log.Fatalf("open log: %v", err)
	}
	err = run(cfg, logger)
	if err != nil {
		logger.Error("program exited", "err", err)
	}
	if cerr := closeLog(); cerr != nil && err == nil {
		err = cerr
	}
	if err != nil {
		log.Fatal(err)
	}
}

func run(cfg config.Config, logger *slog.Logger) error {
	view := mapview.New(cfg.Center(), cfg.Zoom)
	if cfg.Basemap != "" {
		d, err := geom.Load(cfg.Basemap)
		if err != nil {
			return err
		}
		view.SetBasemap(d)
		logger.Info("basemap loaded", "path", cfg.Basemap,
			"points", len(d.Points), "lines", len(d.Lines), "polygons", len(d.Polygons))
	}

	sess := session.New(view, session.WithLogger(logger), session.WithDefaultRadius(cfg.DefaultRadius))
	m := tui.New(sess, view, tui.WithLogger(logger))
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run()
	return err
}
