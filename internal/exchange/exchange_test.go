package exchange

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/storeops/auditpad/internal/audit"
	"github.com/storeops/auditpad/internal/kv"
	"github.com/storeops/auditpad/internal/store"
)

func rec(id, auditType, createdAt string) audit.Record {
	return audit.Record{ID: id, CreatedAt: createdAt, AuditType: auditType, Items: []audit.Item{}}
}

func TestExportAll(t *testing.T) {
	recs := []audit.Record{
		rec("a", "Store Audit", "2023-01-02T00:00:00Z"),
		rec("b", "Shift Close", "2023-01-01T00:00:00Z"),
	}
	doc := Export(recs, "", "register-1")

	if doc.Schema != Schema {
		t.Errorf("expected schema %q, got %q", Schema, doc.Schema)
	}
	if doc.Filter.AuditType != FilterAll {
		t.Errorf("expected filter ALL, got %q", doc.Filter.AuditType)
	}
	if doc.ExportedFromDevice != "register-1" {
		t.Errorf("expected device name, got %q", doc.ExportedFromDevice)
	}
	if len(doc.Audits) != 2 {
		t.Errorf("expected 2 audits, got %d", len(doc.Audits))
	}
	if _, err := time.Parse(time.RFC3339, doc.ExportedAt); err != nil {
		t.Errorf("exported_at not RFC3339: %q", doc.ExportedAt)
	}
}

func TestExportFiltered(t *testing.T) {
	recs := []audit.Record{
		rec("a", "Store Audit", ""),
		rec("b", "Shift Close", ""),
		rec("c", "Store Audit", ""),
	}
	doc := Export(recs, "Store Audit", "")

	if doc.Filter.AuditType != "Store Audit" {
		t.Errorf("expected filter value, got %q", doc.Filter.AuditType)
	}
	if len(doc.Audits) != 2 {
		t.Fatalf("expected 2 audits, got %d", len(doc.Audits))
	}
	for _, r := range doc.Audits {
		if r.AuditType != "Store Audit" {
			t.Errorf("filter leaked record of type %q", r.AuditType)
		}
	}
}

func TestExportFilteredToNothing(t *testing.T) {
	doc := Export(nil, "Nope", "")
	if doc.Audits == nil || len(doc.Audits) != 0 {
		t.Errorf("expected empty (non-nil) audits, got %#v", doc.Audits)
	}
}

func TestFilename(t *testing.T) {
	day := time.Date(2023, 5, 1, 12, 0, 0, 0, time.UTC)
	cases := []struct {
		auditType string
		want      string
	}{
		{"", "audits_all_2023-05-01.json"},
		{"Store Audit", "audits_store-audit_2023-05-01.json"},
		{"Shift  Close!!", "audits_shift-close_2023-05-01.json"},
		{"***", "audits_all_2023-05-01.json"},
	}
	for _, c := range cases {
		if got := Filename(c.auditType, day); got != c.want {
			t.Errorf("Filename(%q): expected %s, got %s", c.auditType, c.want, got)
		}
	}
}

func TestParseBareArray(t *testing.T) {
	recs, err := Parse([]byte(`[{"id":"a1","created_at":"2023-01-01T00:00:00Z","audit_type":"Audit","items":[]}]`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(recs) != 1 || recs[0].ID != "a1" {
		t.Errorf("unexpected records: %+v", recs)
	}
}

func TestParseWrappedDocument(t *testing.T) {
	recs, err := Parse([]byte(`{"schema":"auditpad/export/v2","audits":[{"id":"x"}]}`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(recs) != 1 || recs[0].ID != "x" {
		t.Errorf("unexpected records: %+v", recs)
	}
}

func TestParseInvalidShapes(t *testing.T) {
	bad := []string{
		`42`,
		`"a string"`,
		`null`,
		`{"no_audits_here":true}`,
		`{"audits":null}`,
		`{"audits":"not an array"}`,
		`[{"id":`,
		``,
	}
	for _, payload := range bad {
		if _, err := Parse([]byte(payload)); !errors.Is(err, ErrInvalidFormat) {
			t.Errorf("Parse(%q): expected ErrInvalidFormat, got %v", payload, err)
		}
	}
}

func TestMergeDedup(t *testing.T) {
	existing := []audit.Record{
		rec("a", "Audit", "2023-01-01T00:00:00Z"),
		rec("b", "Audit", "2023-01-02T00:00:00Z"),
	}
	incoming := []audit.Record{
		rec("b", "Audit", "2023-01-02T00:00:00Z"), // already present
		rec("c", "Audit", "2023-01-03T00:00:00Z"),
		rec("c", "Audit", "2023-01-03T00:00:00Z"), // intra-batch duplicate
		rec("d", "Audit", "2023-01-04T00:00:00Z"),
	}

	merged, res := Merge(existing, incoming)
	if res.Added != 2 || res.Skipped != 2 {
		t.Errorf("expected added=2 skipped=2, got %+v", res)
	}
	if len(merged) != len(existing)+res.Added {
		t.Errorf("expected %d records, got %d", len(existing)+res.Added, len(merged))
	}
	if merged[0].ID != "d" {
		t.Errorf("expected newest-first after merge, got %s first", merged[0].ID)
	}
}

func TestMergeAssignsMissingIDs(t *testing.T) {
	merged, res := Merge(nil, []audit.Record{rec("", "Audit", "2023-01-01T00:00:00Z")})
	if res.Added != 1 {
		t.Fatalf("expected added=1, got %+v", res)
	}
	if merged[0].ID == "" {
		t.Error("expected a generated id")
	}
}

func TestImportScenario(t *testing.T) {
	s := store.New(kv.NewMemory())
	s.Append(rec("a1", "Audit", "2023-01-01T00:00:00Z"))

	res, err := Import(s, []byte(`[{"id":"a1","created_at":"2023-01-01T00:00:00Z","audit_type":"Audit","items":[]}]`))
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if res.Added != 0 || res.Skipped != 1 {
		t.Errorf("expected added=0 skipped=1, got %+v", res)
	}
	recs, _ := s.Load()
	if len(recs) != 1 {
		t.Errorf("store size changed: %d", len(recs))
	}
}

func TestReimportSkipsEverything(t *testing.T) {
	s := store.New(kv.NewMemory())
	doc := `[{"id":"x","created_at":"2023-01-01T00:00:00Z"},{"id":"y","created_at":"2023-01-02T00:00:00Z"}]`

	res, err := Import(s, []byte(doc))
	if err != nil {
		t.Fatalf("first import failed: %v", err)
	}
	if res.Added != 2 || res.Skipped != 0 {
		t.Fatalf("expected added=2, got %+v", res)
	}

	res, err = Import(s, []byte(doc))
	if err != nil {
		t.Fatalf("second import failed: %v", err)
	}
	if res.Added != 0 || res.Skipped != 2 {
		t.Errorf("expected added=0 skipped=2, got %+v", res)
	}
	recs, _ := s.Load()
	if len(recs) != 2 {
		t.Errorf("expected 2 records, got %d", len(recs))
	}
}

func TestImportInvalidMutatesNothing(t *testing.T) {
	s := store.New(kv.NewMemory())
	s.Append(rec("a", "Audit", "2023-01-01T00:00:00Z"))

	if _, err := Import(s, []byte(`{"bogus":true}`)); !errors.Is(err, ErrInvalidFormat) {
		t.Fatalf("expected ErrInvalidFormat, got %v", err)
	}
	recs, _ := s.Load()
	if len(recs) != 1 || recs[0].ID != "a" {
		t.Errorf("store mutated on invalid import: %+v", recs)
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	src := store.New(kv.NewMemory())
	src.Append(rec("a", "Store Audit", "2023-01-01T00:00:00Z"))
	src.Append(rec("b", "Shift Close", "2023-01-02T00:00:00Z"))

	recs, _ := src.Load()
	doc := Export(recs, "", "register-1")
	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	dst := store.New(kv.NewMemory())
	res, err := Import(dst, data)
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if res.Added != 2 || res.Skipped != 0 {
		t.Errorf("expected added=2, got %+v", res)
	}
	got, _ := dst.Load()
	if len(got) != 2 || got[0].ID != "b" {
		t.Errorf("unexpected destination collection: %+v", got)
	}
}
