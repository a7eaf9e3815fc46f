package order

import "fmt"

// Position is a location in a source file. Lines and columns start at 1.
type Position struct {
	Line   int `json:"line" yaml:"line"`
	Column int `json:"column" yaml:"column"`
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// LineRange is the inclusive line span of a comment
type LineRange struct {
	Start int `json:"start" yaml:"start"`
	End   int `json:"end" yaml:"end"`
}

// Lines returns the number of lines the range covers
func (r LineRange) Lines() int {
	return r.End - r.Start + 1
}

// Occurrence is a single import statement as seen by the engine
type Occurrence struct {
	Specifier string      `json:"specifier" yaml:"specifier"` // module specifier, possibly quoted
	Start     Position    `json:"start" yaml:"start"`
	End       Position    `json:"end" yaml:"end"`
	Comments  []LineRange `json:"-" yaml:"-"` // leading comments between the previous statement and this one

	// FollowsImport is set when the statement directly before this one is the previous
	// occurrence, with nothing but blank lines and comments in between.
	FollowsImport bool `json:"-" yaml:"-"`
}

// Module returns the specifier without surrounding quotes
func (o *Occurrence) Module() string {
	return StripQuotes(o.Specifier)
}
