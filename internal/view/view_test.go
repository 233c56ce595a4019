package view

import (
	"bytes"
	"errors"
	"github.com/gdamore/tcell/v2"
	"github.com/mat-sik/domainatrix-go/internal/domain"
	"github.com/mat-sik/domainatrix-go/internal/refresh"
	"github.com/mat-sik/domainatrix-go/internal/table"
	"io"
	"log/slog"
	"reflect"
	"strings"
	"testing"
	"time"
)

func Test_Content_HeaderAndRows(t *testing.T) {
	// given
	store := table.NewStoreFrom([]domain.Record{{Address: "a.example", DNSHealthy: true}})
	c := &content{store: store}

	// then
	if c.GetRowCount() != 2 {
		t.Fatalf("GetRowCount() = %d, want 2", c.GetRowCount())
	}
	if c.GetColumnCount() != 4 {
		t.Fatalf("GetColumnCount() = %d, want 4", c.GetColumnCount())
	}

	var header []string
	for col := 0; col < 4; col++ {
		header = append(header, c.GetCell(0, col).Text)
	}
	if !reflect.DeepEqual([]string{"DNS", "Ping", "HTTP", "Address"}, header) {
		t.Fatalf("header = %v", header)
	}

	var row []string
	for col := 0; col < 4; col++ {
		row = append(row, c.GetCell(1, col).Text)
	}
	if !reflect.DeepEqual([]string{"up", "down", "down", "a.example"}, row) {
		t.Fatalf("row = %v", row)
	}

	if c.GetCell(2, 0) != nil {
		t.Fatal("GetCell past the snapshot returned a cell")
	}
}

func Test_OpenRow_ResolvesRecordAtClickTime(t *testing.T) {
	// given
	store := table.NewStore()
	opener := &recordingOpener{}
	v := New(store, opener.open, discardLogger())
	store.ReplaceAll([]domain.Record{{Address: "a.example"}, {Address: "b.example"}})

	// when
	v.openRow(2)

	// then
	if !reflect.DeepEqual([]string{"http://b.example/"}, opener.urls) {
		t.Fatalf("opened %v, want [http://b.example/]", opener.urls)
	}
}

func Test_OpenRow_OutOfRangeDoesNotOpen(t *testing.T) {
	// given
	store := table.NewStoreFrom([]domain.Record{{Address: "a.example"}})
	opener := &recordingOpener{}
	v := New(store, opener.open, discardLogger())

	// when
	v.openRow(0)
	v.openRow(5)

	// then
	if len(opener.urls) != 0 {
		t.Fatalf("opened %v, want none", opener.urls)
	}
}

func Test_OpenRow_IgnoredWhileDisabled(t *testing.T) {
	// given
	store := table.NewStoreFrom([]domain.Record{{Address: "a.example"}})
	opener := &recordingOpener{}
	v := New(store, opener.open, discardLogger())

	// when
	v.SetEnabled(false)
	v.openRow(1)

	// then
	if len(opener.urls) != 0 {
		t.Fatalf("opened %v, want none", opener.urls)
	}
}

func Test_HandleKey_RefreshOnlyWhenEnabled(t *testing.T) {
	// given
	v := New(table.NewStore(), (&recordingOpener{}).open, discardLogger())
	calls := 0
	v.OnRefresh(func() { calls++ })

	// when
	consumed := v.handleKey(tcell.NewEventKey(tcell.KeyRune, 'r', tcell.ModNone))
	v.handleKey(tcell.NewEventKey(tcell.KeyF5, 0, tcell.ModNone))
	v.SetEnabled(false)
	v.handleKey(tcell.NewEventKey(tcell.KeyRune, 'r', tcell.ModNone))
	passed := v.handleKey(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone))

	// then
	if consumed != nil {
		t.Fatal("refresh key was not consumed")
	}
	if passed == nil {
		t.Fatal("unrelated key was consumed")
	}
	if calls != 2 {
		t.Fatalf("refresh calls = %d, want 2", calls)
	}
}

func Test_StatusText(t *testing.T) {
	at := time.Date(2024, 1, 2, 15, 4, 5, 0, time.UTC)

	tests := []struct {
		name       string
		records    int
		enabled    bool
		outcome    refresh.Outcome
		hasOutcome bool
		want       string
	}{
		{"loading", 1, true, refresh.Outcome{}, false, "1 domains"},
		{"refreshing", 1200, false, refresh.Outcome{}, false, "1,200 domains | [yellow]refreshing…[-]"},
		{"ok", 2, true, refresh.Outcome{At: at, Size: 2048}, true, "refreshed 15:04:05, 2.0 kB"},
		{"failed", 2, true, refresh.Outcome{At: at, Err: errors.New("boom")}, true, "[red]refresh failed at 15:04:05: boom[-]"},
	}

	for _, tt := range tests {
		got := statusText(tt.records, tt.enabled, tt.outcome, tt.hasOutcome)
		if !strings.Contains(got, tt.want) {
			t.Fatalf("%s: statusText = %q, want it to contain %q", tt.name, got, tt.want)
		}
	}
}

func Test_WriteText(t *testing.T) {
	// given
	store := table.NewStoreFrom([]domain.Record{
		{Address: "a.example", PingHealthy: true, HTTPHealthy: true},
		{Address: "z.example", DNSHealthy: true, HTTPHealthy: true},
	})
	var out bytes.Buffer

	// when
	err := WriteText(&out, store)

	// then
	if err != nil {
		t.Fatal(err)
	}
	want := "DNS   Ping  HTTP  Address\n" +
		"down  up    up    a.example\n" +
		"up    down  up    z.example\n"
	if out.String() != want {
		t.Fatalf("got\n%s\nwant\n%s", out.String(), want)
	}
}

type recordingOpener struct {
	urls []string
}

func (o *recordingOpener) open(url string) error {
	o.urls = append(o.urls, url)
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
