package types

import (
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"time"
)

// Snapshot represents a point-in-time capture of a machine's security
// configuration. Sections hold loosely-structured data (system_info,
// security_config, services, network, ...) collected by an external
// agent; the engine passes it verbatim to each rule and enforces no
// schema. Rules must tolerate absent sections.
type Snapshot struct {
	ID          string                 `json:"id"`
	Hostname    string                 `json:"hostname"`
	CollectedAt time.Time              `json:"collected_at"`
	Metadata    map[string]string      `json:"metadata,omitempty"`
	Sections    map[string]interface{} `json:"sections"`
}

// Validate checks if the Snapshot has all required fields
func (s *Snapshot) Validate() error {
	if strings.TrimSpace(s.ID) == "" {
		return errors.New("snapshot ID is required")
	}
	if s.Sections == nil {
		return errors.New("snapshot sections cannot be nil")
	}
	return nil
}

// Section returns one top-level section, or nil if absent
func (s *Snapshot) Section(name string) interface{} {
	if s.Sections == nil {
		return nil
	}
	return s.Sections[name]
}

// Lookup resolves a dotted path ("security_config.password_policy.min_length")
// through nested map sections. It returns (nil, false) when any segment is
// missing or a non-map value is traversed.
func (s *Snapshot) Lookup(path string) (interface{}, bool) {
	if s.Sections == nil || path == "" {
		return nil, false
	}
	var current interface{} = map[string]interface{}(s.Sections)
	for _, part := range strings.Split(path, ".") {
		m, ok := current.(map[string]interface{})
		if !ok {
			return nil, false
		}
		current, ok = m[part]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// LookupString resolves a dotted path to a string value
func (s *Snapshot) LookupString(path string) (string, bool) {
	v, ok := s.Lookup(path)
	if !ok {
		return "", false
	}
	str, ok := v.(string)
	return str, ok
}

// LookupBool resolves a dotted path to a boolean value
func (s *Snapshot) LookupBool(path string) (bool, bool) {
	v, ok := s.Lookup(path)
	if !ok {
		return false, false
	}
	b, ok := v.(bool)
	return b, ok
}

// LookupNumber resolves a dotted path to a numeric value. JSON decoding
// produces float64 but snapshots built in-process may carry int values.
func (s *Snapshot) LookupNumber(path string) (float64, bool) {
	v, ok := s.Lookup(path)
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

// Summary describes the snapshot for inclusion in evaluation results
func (s *Snapshot) Summary() SnapshotSummary {
	sections := make([]string, 0, len(s.Sections))
	for name := range s.Sections {
		sections = append(sections, name)
	}
	sort.Strings(sections)
	return SnapshotSummary{
		ID:          s.ID,
		Hostname:    s.Hostname,
		CollectedAt: s.CollectedAt,
		Sections:    sections,
	}
}

// SnapshotSummary is the condensed snapshot description embedded in an
// EvaluationResult.
type SnapshotSummary struct {
	ID          string    `json:"id"`
	Hostname    string    `json:"hostname,omitempty"`
	CollectedAt time.Time `json:"collected_at,omitempty"`
	Sections    []string  `json:"sections,omitempty"`
}
