// Package exchange moves audit collections between devices as portable
// JSON documents: export produces a versioned wrapped document, import
// parses either accepted shape and merges it into the store with
// identity-based deduplication.
package exchange

import (
	"strings"
	"time"

	"github.com/storeops/auditpad/internal/audit"
)

// Schema is the export document format tag. Distinct from any prior
// version; import does not interpret it.
const Schema = "auditpad/export/v2"

// FilterAll is the filter value recorded when no audit type was selected.
const FilterAll = "ALL"

// Filter records which subset of the store an export covers.
type Filter struct {
	AuditType string `json:"audit_type"`
}

// Document is the portable export format.
type Document struct {
	Schema             string         `json:"schema"`
	ExportedAt         string         `json:"exported_at"`
	ExportedFromDevice string         `json:"exported_from_device"`
	Filter             Filter         `json:"filter"`
	Audits             []audit.Record `json:"audits"`
}

// Export builds a document from the collection, filtered to the given
// audit type when one is set. The store is not mutated.
func Export(recs []audit.Record, auditType, device string) Document {
	filtered := recs
	filter := FilterAll
	if auditType != "" {
		filter = auditType
		filtered = make([]audit.Record, 0, len(recs))
		for _, r := range recs {
			if r.AuditType == auditType {
				filtered = append(filtered, r)
			}
		}
	}
	if filtered == nil {
		filtered = []audit.Record{}
	}

	return Document{
		Schema:             Schema,
		ExportedAt:         time.Now().UTC().Format(time.RFC3339),
		ExportedFromDevice: device,
		Filter:             Filter{AuditType: filter},
		Audits:             filtered,
	}
}

// Filename returns the conventional name for a saved export:
// audits_{normalized-type-or-all}_{YYYY-MM-DD}.json.
func Filename(auditType string, now time.Time) string {
	return "audits_" + normalizeType(auditType) + "_" + now.Format("2006-01-02") + ".json"
}

// normalizeType lowercases the audit type and collapses every run of
// non-alphanumeric characters to a single dash.
func normalizeType(t string) string {
	if t == "" {
		return "all"
	}

	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(t) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		default:
			if !dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			dash = true
		}
	}
	out := strings.TrimSuffix(b.String(), "-")
	if out == "" {
		return "all"
	}
	return out
}
