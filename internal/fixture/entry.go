package fixture

import (
	"fmt"
	"gopkg.in/yaml.v3"
	"os"
)

// Probe mirrors one nested status object of the /data payload. State 0 is healthy.
type Probe struct {
	State     int   `yaml:"state" json:"state"`
	LastCheck int64 `yaml:"lastCheck,omitempty" json:"lastCheck,omitempty"`
}

type Entry struct {
	DomainName string `yaml:"domainName" json:"domainName"`
	DNS        *Probe `yaml:"dns,omitempty" json:"dns,omitempty"`
	Ping       *Probe `yaml:"ping,omitempty" json:"ping,omitempty"`
	HTTP       *Probe `yaml:"http,omitempty" json:"http,omitempty"`
}

// Load reads a snapshot file. JSON is valid YAML, so both formats work.
func Load(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}

	var entries []Entry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse fixture: %w", err)
	}

	for i, e := range entries {
		if e.DomainName == "" {
			return nil, fmt.Errorf("entry %d: domainName is required", i)
		}
	}

	if entries == nil {
		entries = []Entry{}
	}
	return entries, nil
}
