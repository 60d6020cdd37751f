// Package store holds the persisted audit collection: an ordered,
// newest-first sequence of audit records keyed by id, living as one JSON
// blob behind the kv port. Every mutating operation reads the full
// collection, mutates in memory, and writes it back once; there is no
// incremental persistence and no cross-process locking (single operator,
// single device).
package store

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/storeops/auditpad/internal/audit"
	"github.com/storeops/auditpad/internal/kv"
)

// Keys used in the backing kv store.
const (
	auditsKey = "audits_v1"
	deviceKey = "device_name"
)

// Store is the audit collection over an injected persistence port.
type Store struct {
	kv kv.Store
}

// New creates a Store over the given persistence port.
func New(port kv.Store) *Store {
	return &Store{kv: port}
}

// Load returns the full collection, newest first. A missing, unparsable,
// or non-array blob degrades to an empty collection — that is the
// documented contract, not an incidental swallow. Only backend I/O errors
// are surfaced.
func (s *Store) Load() ([]audit.Record, error) {
	raw, ok, err := s.kv.Get(auditsKey)
	if err != nil {
		return nil, fmt.Errorf("store: load: %w", err)
	}
	if !ok {
		return []audit.Record{}, nil
	}

	var recs []audit.Record
	if err := json.Unmarshal([]byte(raw), &recs); err != nil || recs == nil {
		return []audit.Record{}, nil
	}
	return recs, nil
}

// Save persists the full collection, replacing whatever was stored.
func (s *Store) Save(recs []audit.Record) error {
	if recs == nil {
		recs = []audit.Record{}
	}
	data, err := json.Marshal(recs)
	if err != nil {
		return fmt.Errorf("store: marshal: %w", err)
	}
	if err := s.kv.Set(auditsKey, string(data)); err != nil {
		return fmt.Errorf("store: save: %w", err)
	}
	return nil
}

// Append inserts the record at the front of the collection. Uniqueness of
// the id is guaranteed by construction at build time, not re-checked here.
func (s *Store) Append(r audit.Record) error {
	recs, err := s.Load()
	if err != nil {
		return err
	}
	recs = append([]audit.Record{r}, recs...)
	return s.Save(recs)
}

// Remove deletes the record with the given id. Removing an absent id is a
// no-op, not an error.
func (s *Store) Remove(id string) error {
	recs, err := s.Load()
	if err != nil {
		return err
	}
	kept := recs[:0]
	for _, r := range recs {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	return s.Save(kept)
}

// Clear replaces the collection with an empty one.
func (s *Store) Clear() error {
	return s.Save(nil)
}

// Group is one audit-type partition of the collection.
type Group struct {
	Type    string
	Records []audit.Record
}

// GroupByType partitions the collection by audit type. Groups come out in
// lexicographic type order; within a group, records keep store order
// (newest first). A record with a blank type falls into the default group.
func (s *Store) GroupByType() ([]Group, error) {
	recs, err := s.Load()
	if err != nil {
		return nil, err
	}
	return GroupRecords(recs), nil
}

// GroupRecords partitions an already-loaded collection (see GroupByType).
func GroupRecords(recs []audit.Record) []Group {
	byType := map[string][]audit.Record{}
	for _, r := range recs {
		t := r.AuditType
		if t == "" {
			t = audit.DefaultType
		}
		byType[t] = append(byType[t], r)
	}

	types := make([]string, 0, len(byType))
	for t := range byType {
		types = append(types, t)
	}
	sort.Strings(types)

	groups := make([]Group, 0, len(types))
	for _, t := range types {
		groups = append(groups, Group{Type: t, Records: byType[t]})
	}
	return groups
}

// DeviceName returns the stored device name, or "" when unset.
func (s *Store) DeviceName() (string, error) {
	v, _, err := s.kv.Get(deviceKey)
	if err != nil {
		return "", fmt.Errorf("store: device name: %w", err)
	}
	return v, nil
}

// SetDeviceName stores the device name.
func (s *Store) SetDeviceName(name string) error {
	if err := s.kv.Set(deviceKey, name); err != nil {
		return fmt.Errorf("store: set device name: %w", err)
	}
	return nil
}

// SortNewestFirst stable-sorts records by created_at descending. Missing
// or unparsable timestamps sort as the epoch; ties keep their original
// relative order.
func SortNewestFirst(recs []audit.Record) {
	sort.SliceStable(recs, func(i, j int) bool {
		return parseCreatedAt(recs[i].CreatedAt).After(parseCreatedAt(recs[j].CreatedAt))
	})
}

func parseCreatedAt(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
