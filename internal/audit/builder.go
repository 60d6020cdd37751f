package audit

import (
	"time"

	"github.com/google/uuid"

	"github.com/storeops/auditpad/internal/form"
)

// Header holds the fixed per-audit fields entered outside the widget area.
// Every field defaults to "" when absent except the audit type, which
// defaults to DefaultType.
type Header struct {
	AuditType   string
	Auditor     string
	AuditDate   string
	AuditTime   string
	HeaderNotes string
	DeviceName  string
}

// Build reduces a flat submission to an immutable Record, decoding the
// widget fields in plan order. It assigns a fresh ID and creation timestamp
// unconditionally: there is no update-in-place, every save is a new record.
// Persistence is the caller's responsibility.
func Build(h Header, plan form.Plan, sub form.Submission) Record {
	auditType := h.AuditType
	if auditType == "" {
		auditType = DefaultType
	}

	return Record{
		ID:          NewID(),
		CreatedAt:   time.Now().UTC().Format(time.RFC3339),
		AuditType:   auditType,
		Auditor:     h.Auditor,
		AuditDate:   h.AuditDate,
		AuditTime:   h.AuditTime,
		HeaderNotes: h.HeaderNotes,
		DeviceName:  h.DeviceName,
		Items:       Decode(plan, sub),
	}
}

// Decode expands each widget in the plan into its Items, in plan order.
// Fields not reachable from the plan are stray and ignored.
func Decode(plan form.Plan, sub form.Submission) []Item {
	items := []Item{}
	for _, w := range plan {
		items = append(items, decodeWidget(w, sub)...)
	}
	return items
}

func decodeWidget(w form.Widget, sub form.Submission) []Item {
	label := sub.Get(w.Key + form.SuffixLabel)
	if label == "" {
		label = w.Label
	}

	switch w.Kind {
	case form.KindYesNo:
		return []Item{{
			Label: label,
			Kind:  KindYN,
			Value: sub.Get(w.Key + form.SuffixYN),
			Notes: sub.Get(w.Key + form.SuffixNotes),
		}}

	case form.KindNotes:
		return []Item{{
			Label: label,
			Kind:  KindNotes,
			Notes: sub.Get(w.Key + form.SuffixNotes),
		}}

	case form.KindYesNoNA:
		return []Item{{
			Label: label,
			Kind:  KindYN,
			Value: normalizeYNNA(sub.Get(w.Key + form.SuffixYN)),
		}}

	case form.KindTriOuts:
		// The composite flattens into the same Item shape as simple
		// widgets: three yn rows with fixed labels and empty per-row
		// notes, then one notes item carrying the shared notes.
		items := make([]Item, 0, 4)
		for _, row := range form.TriOutsRows {
			items = append(items, Item{
				Label: row.Label,
				Kind:  KindYN,
				Value: sub.Get(w.Key + row.Discriminator + form.SuffixYN),
			})
		}
		items = append(items, Item{
			Label: form.TriOutsNotesLabel,
			Kind:  KindNotes,
			Notes: sub.Get(w.Key + form.SuffixNotes),
		})
		return items
	}

	return nil
}

// normalizeYNNA constrains a yes/no/n-a selection to its allowed values.
// Anything else is treated as unanswered.
func normalizeYNNA(v string) string {
	switch v {
	case "Yes", "No", "N/A":
		return v
	}
	return ""
}

// NewID generates a record identifier: UUIDv7, random entropy plus a
// timestamp component. Never validated against a central authority.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
