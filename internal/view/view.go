package view

import (
	"fmt"
	"github.com/dustin/go-humanize"
	"github.com/gdamore/tcell/v2"
	"github.com/mat-sik/domainatrix-go/internal/refresh"
	"github.com/mat-sik/domainatrix-go/internal/table"
	"github.com/rivo/tview"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
)

// Opener opens a URL in the user's browser.
type Opener func(url string) error

// View is the terminal table bound to a table.Store. It implements
// refresh.Surface and table.Listener.
type View struct {
	app       *tview.Application
	table     *tview.Table
	status    *tview.TextView
	store     *table.Store
	open      Opener
	logger    *slog.Logger
	onRefresh func()
	enabled   atomic.Bool

	outcomeMu  sync.Mutex
	outcome    refresh.Outcome
	hasOutcome bool
}

func New(store *table.Store, open Opener, logger *slog.Logger) *View {
	if logger == nil {
		logger = slog.Default()
	}

	v := &View{
		app:       tview.NewApplication(),
		table:     tview.NewTable(),
		status:    tview.NewTextView().SetDynamicColors(true).SetWrap(false),
		store:     store,
		open:      open,
		logger:    logger,
		onRefresh: func() {},
	}
	v.enabled.Store(true)

	v.table.SetContent(&content{store: store})
	v.table.SetFixed(1, 0).
		SetSelectable(true, false).
		SetSelectedFunc(func(row, _ int) {
			v.openRow(row)
		})
	v.table.SetBorder(true).SetTitle(" Domainatrix ").SetTitleAlign(tview.AlignLeft)
	v.table.Select(1, 0)
	v.table.SetMouseCapture(func(action tview.MouseAction, event *tcell.EventMouse) (tview.MouseAction, *tcell.EventMouse) {
		if action == tview.MouseLeftDoubleClick {
			row, _ := v.table.GetSelection()
			v.openRow(row)
			return action, nil
		}
		return action, event
	})

	layout := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(v.table, 0, 1, true).
		AddItem(v.status, 1, 0, false)

	v.app.SetRoot(layout, true).EnableMouse(true)
	v.app.SetInputCapture(v.handleKey)

	store.Subscribe(v)
	v.renderStatus()

	return v
}

// OnRefresh sets what the refresh key triggers.
func (v *View) OnRefresh(f func()) {
	v.onRefresh = f
}

func (v *View) Run() error {
	return v.app.Run()
}

func (v *View) Stop() {
	v.app.Stop()
}

// Dispatch runs f on the tview event loop and redraws afterwards.
func (v *View) Dispatch(f func()) {
	v.app.QueueUpdateDraw(f)
}

func (v *View) SetEnabled(enabled bool) {
	v.enabled.Store(enabled)
	v.table.SetSelectable(enabled, false)
	v.renderStatus()
}

func (v *View) RefreshCompleted(outcome refresh.Outcome) {
	v.outcomeMu.Lock()
	v.outcome = outcome
	v.hasOutcome = true
	v.outcomeMu.Unlock()

	v.renderStatus()
}

func (v *View) RowsRemoved(_, _ int) {}

func (v *View) RowsInserted(_, last int) {
	row, _ := v.table.GetSelection()
	switch {
	case last == 0:
		v.table.Select(0, 0)
	case row < 1 || row > last:
		v.table.Select(1, 0)
	}
}

func (v *View) DataChanged(_, _ int) {
	v.renderStatus()
}

func (v *View) handleKey(event *tcell.EventKey) *tcell.EventKey {
	switch {
	case event.Key() == tcell.KeyF5, event.Key() == tcell.KeyRune && event.Rune() == 'r':
		if v.enabled.Load() {
			v.onRefresh()
		}
		return nil
	case event.Key() == tcell.KeyRune && event.Rune() == 'q':
		v.app.Stop()
		return nil
	}
	return event
}

// openRow resolves a table row to its record at interaction time.
func (v *View) openRow(row int) {
	if !v.enabled.Load() {
		return
	}

	record, err := v.store.RowAt(row - 1)
	if err != nil {
		v.logger.Error("Cannot resolve selected row", "row", row, "err", err)
		return
	}

	target := record.URL()
	v.logger.Info("Opening", "url", target)
	if err := v.open(target); err != nil {
		v.logger.Error("Failed to open browser", "url", target, "err", err)
	}
}

func (v *View) renderStatus() {
	v.outcomeMu.Lock()
	outcome, hasOutcome := v.outcome, v.hasOutcome
	v.outcomeMu.Unlock()

	v.status.SetText(statusText(v.store.Len(), v.enabled.Load(), outcome, hasOutcome))
}

func statusText(records int, enabled bool, outcome refresh.Outcome, hasOutcome bool) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s domains", humanize.Comma(int64(records)))
	switch {
	case !enabled:
		b.WriteString(" | [yellow]refreshing…[-]")
	case !hasOutcome:
	case outcome.Err != nil:
		fmt.Fprintf(&b, " | [red]refresh failed at %s: %s[-]", outcome.At.Format("15:04:05"), tview.Escape(outcome.Err.Error()))
	default:
		fmt.Fprintf(&b, " | refreshed %s, %s", outcome.At.Format("15:04:05"), humanize.Bytes(uint64(outcome.Size)))
	}
	b.WriteString(" | r refresh, enter open, q quit")

	return b.String()
}
