package roster

import "fmt"

// LayoutError reports that a supported layout convention could not be
// recognized, naming the anchor whose location failed so the operator
// can fix the sheet.
type LayoutError struct {
	Anchor string
}

func (e *LayoutError) Error() string {
	return fmt.Sprintf("unrecognized roster layout: %s not found", e.Anchor)
}

func NewLayoutError(anchor string) error {
	return &LayoutError{Anchor: anchor}
}

// ExtractionError reports that located anchors yielded no usable
// entities (zero subjects, missing required metadata, ...).
type ExtractionError struct {
	Field  string
	Reason string
}

func (e *ExtractionError) Error() string {
	if e.Field == "" {
		return "roster extraction failed: " + e.Reason
	}
	return fmt.Sprintf("roster extraction failed: %s: %s", e.Field, e.Reason)
}

func NewExtractionError(field, reason string) error {
	return &ExtractionError{Field: field, Reason: reason}
}
