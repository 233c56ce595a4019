package server

import (
	"fmt"
	"github.com/mat-sik/domainatrix-go/internal/props"
	"log/slog"
	"net/http"
)

// NewServer builds the stand-in /data server used for local runs.
func NewServer(serverProps props.ServerProperties, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf(":%d", serverProps.Port),
		ReadHeaderTimeout: serverProps.ReadTimeout,
		ReadTimeout:       serverProps.ReadTimeout,
		WriteTimeout:      serverProps.WriteTimeout,
		IdleTimeout:       serverProps.IdleTimeout,
		Handler:           logRequests(handler),
		ErrorLog:          slog.NewLogLogger(slog.Default().Handler(), slog.LevelError),
	}
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		slog.Debug("Request", "method", request.Method, "uri", request.RequestURI, "remote", request.RemoteAddr)
		next.ServeHTTP(writer, request)
	})
}
