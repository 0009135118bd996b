package main

import (
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"flightmap/internal/annotation"
	"flightmap/internal/config"
	"flightmap/internal/logging"
	"flightmap/internal/tui"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	logger, closer, err := logging.Open(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer closer.Close()

	store := annotation.NewStore()
	store.Subscribe(func(a annotation.Action, prev, next annotation.State) {
		logger.Debug("annotation tool", "action", a.String(), "from", prev.Active, "to", next.Active)
	})

	opts := tui.Options{
		Logger:      logger,
		Defaults:    cfg.Defaults(),
		LayerColor:  cfg.LayerColor,
		Annotations: store,
	}
	var m tea.Model
	if len(os.Args) > 1 {
		m = tui.NewWithPath(os.Args[1], opts)
	} else {
		m = tui.New(opts)
	}
	logger.Info("starting", "ramp", cfg.ColorRamp, "k", cfg.StdDevK)
	if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run(); err != nil {
		logger.Error("program exited", logging.Err(err))
		closer.Close()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
