package form

import (
	"sort"
	"strings"
)

// Submission is the complete flat set of string key/value pairs produced by
// all widgets in one form. This is the only channel by which a rendered UI
// communicates into the core.
type Submission map[string]string

// Get returns the value for a field name, or "" when absent. A missing
// field and an unanswered one are both the empty string by convention.
func (s Submission) Get(name string) string {
	return s[name]
}

// Set records a field value.
func (s Submission) Set(name, value string) {
	s[name] = value
}

// Answers holds one widget's operator input prior to encoding. Value is the
// yes/no selection for simple widgets; SalesFloor/Cooler/Beer are the row
// selections of the outs composite, which shares a single Notes.
type Answers struct {
	Value      string
	Notes      string
	SalesFloor string
	Cooler     string
	Beer       string
}

// Encode writes the widget's flat fields into the submission, bookkeeping
// fields included. Encoding an unanswered selection writes the empty
// string, so "unanswered" survives the round trip as "" rather than an
// omitted field.
func (w Widget) Encode(s Submission, a Answers) {
	s.Set(w.Key+SuffixType, string(w.Kind))

	switch w.Kind {
	case KindYesNo:
		s.Set(w.Key+SuffixLabel, w.Label)
		s.Set(w.Key+SuffixYN, a.Value)
		s.Set(w.Key+SuffixNotes, a.Notes)
	case KindNotes:
		s.Set(w.Key+SuffixLabel, w.Label)
		s.Set(w.Key+SuffixNotes, a.Notes)
	case KindYesNoNA:
		s.Set(w.Key+SuffixLabel, w.Label)
		s.Set(w.Key+SuffixYN, a.Value)
	case KindTriOuts:
		rows := [3]string{a.SalesFloor, a.Cooler, a.Beer}
		for i, row := range TriOutsRows {
			s.Set(w.Key+row.Discriminator+SuffixLabel, row.Label)
			s.Set(w.Key+row.Discriminator+SuffixYN, rows[i])
		}
		s.Set(w.Key+SuffixNotes, a.Notes)
	}
}

// ScanPlan recovers a Plan from a bare submission by scanning for fields
// ending in the "_type" suffix, in lexicographic field order. Use
// PlanInOrder when the field arrival order is known: instance keys are
// random, so sorted order says nothing about declaration order.
func ScanPlan(s Submission) Plan {
	return PlanInOrder(s, sortedNames(s))
}

// PlanInOrder recovers a Plan from a bare submission by scanning the given
// field names, in order, for the "_type" suffix. Callers that decode an
// urlencoded body themselves pass the document order of the fields, which
// is the declaration order of the rendered widgets. Names absent from the
// submission and fields with no "_type" companion are never interpreted as
// a widget.
func PlanInOrder(s Submission, names []string) Plan {
	var plan Plan
	for _, name := range names {
		base, ok := strings.CutSuffix(name, SuffixType)
		if !ok || base == "" {
			continue
		}
		kind := Kind(s[name])
		switch kind {
		case KindYesNo, KindNotes, KindYesNoNA, KindTriOuts:
		default:
			// Unknown type tags are stray fields, not widgets.
			continue
		}
		label := s.Get(base + SuffixLabel)
		if label == "" && kind == KindTriOuts {
			label = TriOutsTitle
		}
		plan = append(plan, Widget{Kind: kind, Key: base, Label: label})
	}
	return plan
}

func sortedNames(s Submission) []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
