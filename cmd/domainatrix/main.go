package main

import (
	"context"
	"github.com/mat-sik/domainatrix-go/internal/props"
	"github.com/mat-sik/domainatrix-go/internal/refresh"
	"github.com/mat-sik/domainatrix-go/internal/table"
	"github.com/mat-sik/domainatrix-go/internal/view"
	"github.com/pkg/browser"
	"golang.org/x/term"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

func main() {
	clientProps := props.NewClientProperties()
	store := table.NewStore()

	if term.IsTerminal(int(os.Stdout.Fd())) {
		runTerminal(clientProps, store)
		return
	}
	runOnce(clientProps, store)
}

// runTerminal shows the interactive table. Logs go to a file because tview owns the screen.
func runTerminal(clientProps props.ClientProperties, store *table.Store) {
	logFile, err := openLogFile(clientProps)
	if err != nil {
		slog.Error("Failed to open log file", "err", err)
		os.Exit(1)
	}
	defer logFile.Close()

	logger := slog.New(slog.NewTextHandler(logFile, nil))
	slog.SetDefault(logger)

	browser.Stdout = io.Discard
	browser.Stderr = io.Discard

	ctx := context.Background()
	v := view.New(store, browser.OpenURL, logger)
	controller := refresh.NewController(refresh.Config{
		BaseURL: clientProps.Endpoint,
		Timeout: clientProps.Timeout,
		Logger:  logger,
	}, store, v, v.Dispatch)
	v.OnRefresh(func() {
		controller.RequestRefresh(ctx)
	})

	controller.RequestRefresh(ctx)
	if err := v.Run(); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}

// runOnce fetches a single snapshot and prints it, for pipes and scripts.
func runOnce(clientProps props.ClientProperties, store *table.Store) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	surface := &headlessSurface{}
	controller := refresh.NewController(refresh.Config{
		BaseURL: clientProps.Endpoint,
		Timeout: clientProps.Timeout,
		Logger:  logger,
	}, store, surface, refresh.NewSerialDispatcher(ctx).Dispatch)

	controller.RequestRefresh(ctx)
	controller.Wait()

	if surface.outcome.Err != nil {
		slog.Error("Refresh failed", "err", surface.outcome.Err)
		os.Exit(1)
	}
	if err := view.WriteText(os.Stdout, store); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}

func openLogFile(clientProps props.ClientProperties) (*os.File, error) {
	path, err := clientProps.LogPath()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}

type headlessSurface struct {
	outcome refresh.Outcome
}

func (s *headlessSurface) SetEnabled(bool) {}

func (s *headlessSurface) RefreshCompleted(outcome refresh.Outcome) {
	s.outcome = outcome
}
