package order

// Reason distinguishes the kinds of violations
type Reason string

const (
	OutOfOrder       Reason = "out-of-order"
	SpacingViolation Reason = "spacing"
)

// Violation is a single problem found in a file
type Violation struct {
	Occurrence *Occurrence `json:"-" yaml:"-"`
	Reason     Reason      `json:"reason" yaml:"reason"`
	Expected   string      `json:"expected" yaml:"expected"` // title of the group the file was positioned on
	Actual     string      `json:"actual" yaml:"actual"`     // title of the group of the offending import
	Message    string      `json:"message" yaml:"message"`

	// Anchor is the first import accepted into the Expected group, for out-of-order violations
	Anchor *Occurrence `json:"-" yaml:"-"`
}

// Position returns where the violation is reported
func (v *Violation) Position() Position {
	return v.Occurrence.Start
}

// Report is the outcome of checking one file
type Report struct {
	Violations []Violation
	Groups     map[int][]*Occurrence // accepted occurrences per group index
}

// HasViolations reports whether any violation was found
func (r *Report) HasViolations() bool {
	return len(r.Violations) > 0
}
