package exchange

import (
	"bytes"
	"encoding/json"
	"errors"

	"github.com/storeops/auditpad/internal/audit"
	"github.com/storeops/auditpad/internal/store"
)

// ErrInvalidFormat reports an import payload whose top-level shape is
// neither a bare record array nor a wrapped export document. Nothing is
// mutated when it is returned.
var ErrInvalidFormat = errors.New("exchange: invalid import format")

// Result counts what an import did.
type Result struct {
	Added   int `json:"added"`
	Skipped int `json:"skipped"`
}

// Parse accepts either of the two import shapes: a bare JSON array of
// records, or a wrapped document with an "audits" array. The array shape
// is tried first; that precedence is part of the contract. Any other
// top-level shape is ErrInvalidFormat.
func Parse(data []byte) ([]audit.Record, error) {
	switch firstByte(data) {
	case '[':
		var recs []audit.Record
		if err := json.Unmarshal(data, &recs); err != nil {
			return nil, ErrInvalidFormat
		}
		return recs, nil
	case '{':
		var doc struct {
			Audits *[]audit.Record `json:"audits"`
		}
		if err := json.Unmarshal(data, &doc); err != nil || doc.Audits == nil {
			return nil, ErrInvalidFormat
		}
		return *doc.Audits, nil
	}
	return nil, ErrInvalidFormat
}

func firstByte(data []byte) byte {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) == 0 {
		return 0
	}
	return trimmed[0]
}

// Merge folds incoming records into the existing collection, deduplicating
// by id. The id set accumulates as records are processed, so a batch with
// internal duplicates also dedups against itself. Records arriving without
// an id are assigned a fresh one; ids that are present are trusted as-is.
// The merged collection comes back re-sorted newest first.
func Merge(existing, incoming []audit.Record) ([]audit.Record, Result) {
	seen := make(map[string]bool, len(existing))
	for _, r := range existing {
		seen[r.ID] = true
	}

	merged := append([]audit.Record{}, existing...)
	var res Result
	for _, r := range incoming {
		if r.ID == "" {
			r.ID = audit.NewID()
		}
		if seen[r.ID] {
			res.Skipped++
			continue
		}
		seen[r.ID] = true
		merged = append(merged, r)
		res.Added++
	}

	store.SortNewestFirst(merged)
	return merged, res
}

// Import parses the payload, merges it into the store, and persists the
// merged collection in a single write. A parse failure mutates nothing.
func Import(s *store.Store, data []byte) (Result, error) {
	incoming, err := Parse(data)
	if err != nil {
		return Result{}, err
	}

	existing, err := s.Load()
	if err != nil {
		return Result{}, err
	}

	merged, res := Merge(existing, incoming)
	if err := s.Save(merged); err != nil {
		return Result{}, err
	}
	return res, nil
}
