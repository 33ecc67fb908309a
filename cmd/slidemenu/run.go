package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/mchmarny/slidemenu/pkg/config"
	"github.com/mchmarny/slidemenu/pkg/drawer"
	"github.com/mchmarny/slidemenu/pkg/logger"
	"github.com/mchmarny/slidemenu/pkg/menu"
	"github.com/mchmarny/slidemenu/pkg/metric"
	"github.com/mchmarny/slidemenu/pkg/server"
	"github.com/mchmarny/slidemenu/pkg/slider"
	"github.com/mchmarny/slidemenu/pkg/tui"
)

const moduleName = "slidemenu"

// run starts the terminal program and, when a metrics port is set, the
// debug server next to it. Whichever stops first stops the other.
func run(cmd *cobra.Command, o *rootOptions) error {
	cfg, err := loadConfig(cmd, o)
	if err != nil {
		return err
	}

	logFile, err := logger.OpenFile(cfg.LogFile)
	if err != nil {
		return err
	}
	defer logFile.Close()
	logger.SetDefaultLoggerWithLevel(logFile, moduleName, version, cfg.LogLevel)

	m, err := menu.Load(cfg.Menu)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	model, err := newModel(cfg, m, metric.NewSet(reg))
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer cancel()
		p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(gCtx))
		if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
			return fmt.Errorf("running menu: %w", err)
		}
		return nil
	})

	if cfg.MetricsPort > 0 {
		srv := server.New(
			server.WithPort(cfg.MetricsPort),
			server.WithSimpleHealth(),
			server.WithMetrics(reg),
			server.WithHandler("/menu", m.Handler()),
			server.WithErrorLog(logger.NewLogLogger(logFile, slog.LevelError)),
		)
		g.Go(func() error {
			return srv.Serve(gCtx)
		})
	}

	slog.Info("slidemenu started", "menu", cfg.Menu, "mode", cfg.Mode, "metrics_port", cfg.MetricsPort)
	return g.Wait()
}

// newModel wires the configured timing and metrics into the program model.
func newModel(cfg *config.Config, m *menu.Menu, set *metric.Set) (*tui.Model, error) {
	mode, err := cfg.DisplayMode()
	if err != nil {
		return nil, err
	}

	title := cfg.Title
	if title == "" {
		title = m.Title
	}

	return tui.New(tui.Config{
		Slider:     m.SliderConfig(mode, nil),
		Title:      title,
		CloseLabel: cfg.CloseLabel,
		Page:       pageContent(m),
	},
		tui.WithMetrics(set),
		tui.WithSliderOptions(
			slider.WithPadding(cfg.Padding),
			slider.WithTiming(cfg.LeadDelay, cfg.SlideDuration),
			slider.WithResizeDebounce(cfg.ResizeDebounce),
		),
		tui.WithDrawerOptions(
			drawer.WithTiming(cfg.ShowDelay, cfg.DrawerDuration),
			drawer.WithWidth(cfg.DrawerWidth),
		),
	)
}

// pageContent is the page shown behind the menu: the menu's description
// followed by an outline of every item.
func pageContent(m *menu.Menu) string {
	var b strings.Builder
	if m.Title != "" {
		b.WriteString(m.Title + "\n\n")
	}
	if m.Description != "" {
		b.WriteString(m.Description + "\n\n")
	}
	m.Walk(func(path []string, it *menu.Item) {
		b.WriteString(strings.Repeat("  ", len(path)))
		b.WriteString(it.Label)
		if it.Href != "" {
			b.WriteString("  " + it.Href)
		}
		b.WriteString("\n")
	})
	return strings.TrimRight(b.String(), "\n")
}
