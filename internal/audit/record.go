// Package audit defines the structured audit record — one completed
// checklist submission — and the builder that reduces a flat form
// submission to it.
package audit

import "encoding/json"

// Item kinds. A "yn" item always carries Value (possibly "" meaning
// unanswered); a "notes" item never does.
const (
	KindYN    = "yn"
	KindNotes = "notes"
)

// Item is one answered question.
type Item struct {
	Label string `json:"label"`
	Kind  string `json:"kind"`
	Value string `json:"value"`
	Notes string `json:"notes"`
}

// DefaultType is the audit type recorded when the header leaves it blank.
const DefaultType = "Audit"

// Record is one completed audit. ID and CreatedAt are assigned once at
// build time and never change; Items keeps the declaration order of the
// rendered widgets.
type Record struct {
	ID          string          `json:"id"`
	CreatedAt   string          `json:"created_at"`
	AuditType   string          `json:"audit_type"`
	Auditor     string          `json:"auditor"`
	AuditDate   string          `json:"audit_date"`
	AuditTime   string          `json:"audit_time"`
	HeaderNotes string          `json:"header_notes"`
	DeviceName  string          `json:"device_name,omitempty"`
	Items       []Item          `json:"items"`
	Extension   json.RawMessage `json:"domain_extension,omitempty"`
}

// MarshalJSON keeps a "yn" item's value field present even when empty, so
// "unanswered" is distinguishable from a notes item downstream.
func (i Item) MarshalJSON() ([]byte, error) {
	type notesItem struct {
		Label string `json:"label"`
		Kind  string `json:"kind"`
		Notes string `json:"notes"`
	}
	type ynItem struct {
		Label string `json:"label"`
		Kind  string `json:"kind"`
		Value string `json:"value"`
		Notes string `json:"notes"`
	}
	if i.Kind == KindNotes {
		return json.Marshal(notesItem{Label: i.Label, Kind: i.Kind, Notes: i.Notes})
	}
	return json.Marshal(ynItem{Label: i.Label, Kind: i.Kind, Value: i.Value, Notes: i.Notes})
}
