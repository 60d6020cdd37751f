// Package form defines the widget catalog and the field naming convention —
// the bijection between a rendered question widget and the flat string
// key/value pairs it contributes to a form submission. All fields a widget
// emits share the widget's instance key as prefix, distinguished by a fixed
// suffix; the "_type" field carries the widget kind and is the authoritative
// index into which companion fields exist for that instance.
package form

// Kind tags a widget variant in the catalog.
type Kind string

const (
	// KindYesNo is a yes/no question with a free-text notes field.
	KindYesNo Kind = "yn"
	// KindNotes is a notes-only question.
	KindNotes Kind = "notes"
	// KindYesNoNA is a yes/no/n-a question without a notes field.
	KindYesNoNA Kind = "ynNA"
	// KindTriOuts is the fixed three-row "outs" composite with shared notes.
	KindTriOuts Kind = "triOuts"
)

// Field name suffixes appended to a widget's instance key.
const (
	SuffixType  = "_type"
	SuffixLabel = "_label"
	SuffixYN    = "_yn"
	SuffixNotes = "_notes"
)

// TriOutsRow is one fixed row of the three-row outs composite. The row
// discriminator sits between the instance key and the per-row suffixes.
type TriOutsRow struct {
	Discriminator string
	Label         string
}

// TriOutsRows are the three fixed rows of the outs composite, in render
// order. The labels are part of the catalog, not operator input.
var TriOutsRows = [3]TriOutsRow{
	{Discriminator: "_sf", Label: "Sales Floor outs 10 or less?"},
	{Discriminator: "_cool", Label: "Cooler outs 10 or less?"},
	{Discriminator: "_beer", Label: "Beer outs 10 or less?"},
}

// TriOutsNotesLabel labels the shared-notes item the composite expands to.
const TriOutsNotesLabel = "Outs notes"

// TriOutsTitle is the composite's own label when one is not declared.
const TriOutsTitle = "Outs 10 or less?"

// Widget is one rendered question instance: a catalog kind plus the
// instance key minted at render time.
type Widget struct {
	Kind  Kind   `json:"kind"`
	Key   string `json:"key"`
	Label string `json:"label"`
}

// NewWidget mints a widget instance with a fresh key.
func NewWidget(kind Kind, label string) Widget {
	if kind == KindTriOuts && label == "" {
		label = TriOutsTitle
	}
	return Widget{Kind: kind, Key: NewInstanceKey(), Label: label}
}

// Plan is the tagged-variant list of widget instances a form was rendered
// with, in declaration order. It travels alongside the raw submission so
// that decoding dispatches on the variant tag instead of re-deriving
// structure from key-name parsing.
type Plan []Widget
