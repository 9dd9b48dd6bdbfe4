package models

import "fmt"

// RuleKind tells the field accessor how to locate a field on a detail page.
type RuleKind int

const (
	// BySelector reads the first element matching a CSS selector.
	BySelector RuleKind = iota
	// ByLabel reads the table cell that follows a cell containing a label.
	ByLabel
)

func (k RuleKind) String() string {
	switch k {
	case BySelector:
		return "selector"
	case ByLabel:
		return "label"
	}
	return fmt.Sprintf("RuleKind(%d)", int(k))
}

// FieldSpec maps a logical field (an output column) to its extraction rule.
type FieldSpec struct {
	Column string
	Kind   RuleKind
	Query  string
}

// FieldStatus is the outcome of a single field lookup.
type FieldStatus int

const (
	// FieldOK means the field was found and read.
	FieldOK FieldStatus = iota
	// FieldAbsent means nothing on the page matched the rule.
	FieldAbsent
	// FieldFailed means the lookup itself broke (query or read error).
	FieldFailed
)

func (s FieldStatus) String() string {
	switch s {
	case FieldOK:
		return "ok"
	case FieldAbsent:
		return "absent"
	case FieldFailed:
		return "failed"
	}
	return fmt.Sprintf("FieldStatus(%d)", int(s))
}

// FieldResult is what the field accessor returns instead of an error.
type FieldResult struct {
	Status FieldStatus
	Text   string
	Err    error
}

// Found builds an OK result.
func Found(text string) FieldResult {
	return FieldResult{Status: FieldOK, Text: text}
}

// Absent builds a result for a field with no match on the page.
func Absent() FieldResult {
	return FieldResult{Status: FieldAbsent}
}

// Failed builds a result for a lookup that errored.
func Failed(err error) FieldResult {
	return FieldResult{Status: FieldFailed, Err: err}
}

// Value converts the result into the stored value; anything but OK is absent.
func (r FieldResult) Value() NullString {
	if r.Status != FieldOK {
		return NullString{}
	}
	return Text(r.Text)
}
