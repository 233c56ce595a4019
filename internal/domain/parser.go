package domain

import (
	"bytes"
	"errors"
	"fmt"
	jsoniter "github.com/json-iterator/go"
)

var (
	ErrParse    = errors.New("malformed json document")
	ErrNotArray = errors.New("json document is not an array")
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	keyDomainName = "domainName"
	keyDNS        = "dns"
	keyPing       = "ping"
	keyHTTP       = "http"
	keyState      = "state"
)

// Parse turns a /data payload into records sorted by address.
// Elements that are not objects or carry no domainName are skipped.
// On error no records are returned and the caller keeps its previous snapshot.
func Parse(data []byte) ([]Record, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%w: empty body", ErrParse)
	}

	var document any
	if err := json.Unmarshal(data, &document); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	elements, ok := document.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: got %T", ErrNotArray, document)
	}

	records := make([]Record, 0, len(elements))
	for _, element := range elements {
		obj, ok := element.(map[string]any)
		if !ok {
			continue
		}
		name, ok := obj[keyDomainName]
		if !ok {
			continue
		}

		address, _ := name.(string)
		records = append(records, Record{
			Address:     address,
			DNSHealthy:  isHealthy(obj[keyDNS]),
			PingHealthy: isHealthy(obj[keyPing]),
			HTTPHealthy: isHealthy(obj[keyHTTP]),
		})
	}

	SortRecords(records)
	return records, nil
}

// isHealthy reports whether probe is an object whose state is the number 0.
func isHealthy(probe any) bool {
	status, ok := probe.(map[string]any)
	if !ok {
		return false
	}
	state, ok := status[keyState].(float64)
	return ok && state == 0
}
