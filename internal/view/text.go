package view

import (
	"fmt"
	"github.com/mat-sik/domainatrix-go/internal/table"
	"io"
	"strings"
	"text/tabwriter"
)

// WriteText prints the snapshot as an aligned plain-text table, for when
// stdout is not a terminal.
func WriteText(w io.Writer, store *table.Store) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	headers := make([]string, 0, 4)
	for _, col := range table.Columns() {
		headers = append(headers, col.String())
	}
	if _, err := fmt.Fprintln(tw, strings.Join(headers, "\t")); err != nil {
		return err
	}

	for _, r := range store.Records() {
		if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", upDown(r.DNSHealthy), upDown(r.PingHealthy), upDown(r.HTTPHealthy), r.Address); err != nil {
			return err
		}
	}

	return tw.Flush()
}

func upDown(healthy bool) string {
	if healthy {
		return "up"
	}
	return "down"
}
