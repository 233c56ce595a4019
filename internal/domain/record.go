package domain

import (
	"fmt"
	"sort"
)

// Record is one domain's health snapshot as reported by the remote service.
type Record struct {
	Address     string
	DNSHealthy  bool
	PingHealthy bool
	HTTPHealthy bool
}

func (r Record) Less(other Record) bool {
	return r.Address < other.Address
}

// URL is the address opened when a user activates the row.
func (r Record) URL() string {
	return fmt.Sprintf("http://%s/", r.Address)
}

// SortRecords orders records by address, keeping duplicates in input order.
func SortRecords(records []Record) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Less(records[j])
	})
}

func IsSorted(records []Record) bool {
	return sort.SliceIsSorted(records, func(i, j int) bool {
		return records[i].Less(records[j])
	})
}
