package table

import "fmt"

type Column int

const (
	ColumnDNS Column = iota
	ColumnPing
	ColumnHTTP
	ColumnAddress
)

var columns = []Column{ColumnDNS, ColumnPing, ColumnHTTP, ColumnAddress}

func (c Column) String() string {
	switch c {
	case ColumnDNS:
		return "DNS"
	case ColumnPing:
		return "Ping"
	case ColumnHTTP:
		return "HTTP"
	case ColumnAddress:
		return "Address"
	default:
		return fmt.Sprintf("Column(%d)", int(c))
	}
}

func (c Column) valid() bool {
	return c >= ColumnDNS && c <= ColumnAddress
}

// Columns returns the fixed display schema in order.
func Columns() []Column {
	result := make([]Column, len(columns))
	copy(result, columns)
	return result
}
