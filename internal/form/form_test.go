package form

import (
	"strings"
	"testing"
)

func TestNewInstanceKeyShape(t *testing.T) {
	key := NewInstanceKey()
	if !strings.HasPrefix(key, "w-") {
		t.Errorf("expected w- prefix, got %s", key)
	}
	if len(key) < 10 {
		t.Errorf("key too short: %s", key)
	}
}

func TestNewInstanceKeyFresh(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		key := NewInstanceKey()
		if seen[key] {
			t.Fatalf("duplicate instance key %s", key)
		}
		seen[key] = true
	}
}

func TestEncodeYesNo(t *testing.T) {
	w := Widget{Kind: KindYesNo, Key: "w-abc", Label: "Cooler temps in range?"}
	sub := Submission{}
	w.Encode(sub, Answers{Value: "Yes", Notes: "checked at 9am"})

	want := map[string]string{
		"w-abc_type":  "yn",
		"w-abc_label": "Cooler temps in range?",
		"w-abc_yn":    "Yes",
		"w-abc_notes": "checked at 9am",
	}
	if len(sub) != len(want) {
		t.Fatalf("expected %d fields, got %d: %v", len(want), len(sub), sub)
	}
	for k, v := range want {
		if sub.Get(k) != v {
			t.Errorf("field %s: expected %q, got %q", k, v, sub.Get(k))
		}
	}
}

func TestEncodeUnansweredIsEmptyNotAbsent(t *testing.T) {
	w := Widget{Kind: KindYesNo, Key: "w-abc", Label: "Q"}
	sub := Submission{}
	w.Encode(sub, Answers{})

	if _, ok := sub["w-abc_yn"]; !ok {
		t.Fatal("unanswered yn field must be present as empty string, not omitted")
	}
	if sub.Get("w-abc_yn") != "" {
		t.Errorf("expected empty value, got %q", sub.Get("w-abc_yn"))
	}
}

func TestEncodeTriOuts(t *testing.T) {
	w := Widget{Kind: KindTriOuts, Key: "w-out", Label: TriOutsTitle}
	sub := Submission{}
	w.Encode(sub, Answers{SalesFloor: "Yes", Cooler: "No", Notes: "beer cooler low"})

	checks := map[string]string{
		"w-out_type":       "triOuts",
		"w-out_sf_yn":      "Yes",
		"w-out_sf_label":   "Sales Floor outs 10 or less?",
		"w-out_cool_yn":    "No",
		"w-out_cool_label": "Cooler outs 10 or less?",
		"w-out_beer_yn":    "",
		"w-out_beer_label": "Beer outs 10 or less?",
		"w-out_notes":      "beer cooler low",
	}
	for k, v := range checks {
		if sub.Get(k) != v {
			t.Errorf("field %s: expected %q, got %q", k, v, sub.Get(k))
		}
	}
}

func TestScanPlanRecoversWidgets(t *testing.T) {
	sub := Submission{
		"a_type": "yn", "a_label": "First?", "a_yn": "Yes", "a_notes": "",
		"b_type": "notes", "b_label": "Second", "b_notes": "text",
		"c_type": "triOuts", "c_sf_yn": "Yes", "c_cool_yn": "", "c_beer_yn": "No", "c_notes": "n",
	}

	plan := ScanPlan(sub)
	if len(plan) != 3 {
		t.Fatalf("expected 3 widgets, got %d: %v", len(plan), plan)
	}
	if plan[0].Kind != KindYesNo || plan[0].Key != "a" || plan[0].Label != "First?" {
		t.Errorf("unexpected first widget: %+v", plan[0])
	}
	if plan[1].Kind != KindNotes || plan[1].Key != "b" {
		t.Errorf("unexpected second widget: %+v", plan[1])
	}
	if plan[2].Kind != KindTriOuts || plan[2].Key != "c" {
		t.Errorf("unexpected third widget: %+v", plan[2])
	}
	if plan[2].Label != TriOutsTitle {
		t.Errorf("expected composite title fallback, got %q", plan[2].Label)
	}
}

func TestPlanInOrderKeepsGivenOrder(t *testing.T) {
	sub := Submission{
		"w-zz_type": "yn", "w-zz_label": "Declared first?", "w-zz_yn": "Yes",
		"w-aa_type": "yn", "w-aa_label": "Declared second?", "w-aa_yn": "No",
	}
	names := []string{"w-zz_type", "w-zz_label", "w-zz_yn", "w-aa_type", "w-aa_label", "w-aa_yn"}

	plan := PlanInOrder(sub, names)
	if len(plan) != 2 {
		t.Fatalf("expected 2 widgets, got %d: %v", len(plan), plan)
	}
	if plan[0].Label != "Declared first?" || plan[1].Label != "Declared second?" {
		t.Errorf("widget order must follow the given name order, got %q then %q",
			plan[0].Label, plan[1].Label)
	}
}

func TestPlanInOrderSkipsAbsentNames(t *testing.T) {
	sub := Submission{"a_type": "yn", "a_label": "Q"}
	plan := PlanInOrder(sub, []string{"gone_type", "a_type"})
	if len(plan) != 1 || plan[0].Key != "a" {
		t.Fatalf("names absent from the submission must be skipped, got %v", plan)
	}
}

func TestScanPlanIgnoresStrayFields(t *testing.T) {
	sub := Submission{
		"csrf_token": "xyz",
		"a_notes":    "orphan notes with no type companion",
		"a_type":     "yn", "a_label": "Q", "a_yn": "",
	}
	plan := ScanPlan(sub)
	if len(plan) != 1 {
		t.Fatalf("expected 1 widget, got %d: %v", len(plan), plan)
	}
}

func TestScanPlanIgnoresUnknownKind(t *testing.T) {
	sub := Submission{
		"a_type": "dropdown", "a_label": "Q",
	}
	if plan := ScanPlan(sub); len(plan) != 0 {
		t.Fatalf("unknown type tag must not become a widget, got %v", plan)
	}
}

func TestScanPlanIgnoresBareTypeSuffix(t *testing.T) {
	sub := Submission{"_type": "yn"}
	if plan := ScanPlan(sub); len(plan) != 0 {
		t.Fatalf("field named exactly _type must not become a widget, got %v", plan)
	}
}

func TestNewWidgetTriOutsDefaultLabel(t *testing.T) {
	w := NewWidget(KindTriOuts, "")
	if w.Label != TriOutsTitle {
		t.Errorf("expected %q, got %q", TriOutsTitle, w.Label)
	}
}
