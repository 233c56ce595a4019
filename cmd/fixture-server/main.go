package main

import (
	"errors"
	"github.com/mat-sik/domainatrix-go/internal/fixture"
	"github.com/mat-sik/domainatrix-go/internal/props"
	"github.com/mat-sik/domainatrix-go/internal/server"
	"log/slog"
	"net/http"
	"os"
)

func main() {
	serverProps := props.NewServerProperties()

	entries, err := fixture.Load(serverProps.FixtureFile)
	if err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}

	store := fixture.NewStoreFrom(entries)
	handler := fixture.NewHandler(store)
	s := server.NewServer(serverProps, handler)

	slog.Info("Serving fixture", "addr", s.Addr, "file", serverProps.FixtureFile, "entries", len(entries))
	if err := s.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		slog.Error(err.Error())
	}
}
