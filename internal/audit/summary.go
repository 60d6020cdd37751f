package audit

// Dash is the placeholder rendered for blank values and notes.
const Dash = "—"

// Summary tallies the yes/no answers of one record.
type Summary struct {
	Yes   int
	No    int
	Blank int
}

// Summarize counts Yes, No, and unanswered values across the record's
// yn items. Notes items do not participate.
func Summarize(r Record) Summary {
	var s Summary
	for _, it := range r.Items {
		if it.Kind != KindYN {
			continue
		}
		switch it.Value {
		case "Yes":
			s.Yes++
		case "No":
			s.No++
		case "":
			s.Blank++
		}
	}
	return s
}

// DisplayValue returns the value as rendered downstream: blank becomes the
// placeholder dash.
func DisplayValue(v string) string {
	if v == "" {
		return Dash
	}
	return v
}
