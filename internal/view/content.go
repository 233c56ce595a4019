package view

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mat-sik/domainatrix-go/internal/table"
	"github.com/rivo/tview"
)

// content exposes the store to tview. Row 0 is the header; row i+1 is record i.
type content struct {
	tview.TableContentReadOnly
	store *table.Store
}

func (c *content) GetRowCount() int {
	return c.store.Len() + 1
}

func (c *content) GetColumnCount() int {
	return len(table.Columns())
}

func (c *content) GetCell(row, column int) *tview.TableCell {
	col := table.Column(column)
	if row == 0 {
		return tview.NewTableCell(col.String()).
			SetSelectable(false).
			SetTextColor(tcell.ColorYellow).
			SetAttributes(tcell.AttrBold)
	}

	value, err := c.store.Cell(row-1, col)
	if err != nil {
		// the snapshot shrank between GetRowCount and GetCell
		return nil
	}

	switch v := value.(type) {
	case bool:
		return healthCell(v)
	case string:
		return tview.NewTableCell(v).SetExpansion(1)
	default:
		return nil
	}
}

func healthCell(healthy bool) *tview.TableCell {
	if healthy {
		return tview.NewTableCell("up").SetTextColor(tcell.ColorGreen).SetAlign(tview.AlignCenter)
	}
	return tview.NewTableCell("down").SetTextColor(tcell.ColorRed).SetAlign(tview.AlignCenter)
}
