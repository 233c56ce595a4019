package server

import (
	"github.com/mat-sik/domainatrix-go/internal/props"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func Test_NewServer_UsesProperties(t *testing.T) {
	// given
	serverProps := props.ServerProperties{
		Port:         9090,
		ReadTimeout:  time.Second,
		WriteTimeout: 2 * time.Second,
		IdleTimeout:  time.Minute,
	}

	// when
	s := NewServer(serverProps, http.NotFoundHandler())

	// then
	if s.Addr != ":9090" {
		t.Fatalf("Addr = %s, want :9090", s.Addr)
	}
	if s.ReadTimeout != time.Second || s.WriteTimeout != 2*time.Second || s.IdleTimeout != time.Minute {
		t.Fatalf("timeouts = %v/%v/%v", s.ReadTimeout, s.WriteTimeout, s.IdleTimeout)
	}
}

func Test_NewServer_DelegatesToHandler(t *testing.T) {
	// given
	s := NewServer(props.ServerProperties{}, http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusTeapot)
	}))

	// when
	recorder := httptest.NewRecorder()
	s.Handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/data", nil))

	// then
	if recorder.Code != http.StatusTeapot {
		t.Fatalf("status code: got %v, want %v", recorder.Code, http.StatusTeapot)
	}
}
