package order

import (
	"fmt"

	"github.com/siyuan-infoblox/ordered-imports/pkg/errors"
)

// SpacingPolicy is the requirement on blank lines between two imports of different groups
type SpacingPolicy int

const (
	AnyNumberOfBlankLines SpacingPolicy = iota
	NoBlankLines
	OneBlankLine
	AtLeastOneBlankLine
)

var spacingPolicyNames = map[SpacingPolicy]string{
	AnyNumberOfBlankLines: "any-number-of-blank-lines",
	NoBlankLines:          "no-blank-lines",
	OneBlankLine:          "one-blank-line",
	AtLeastOneBlankLine:   "at-least-one-blank-line",
}

func (p SpacingPolicy) String() string {
	if name, ok := spacingPolicyNames[p]; ok {
		return name
	}
	return fmt.Sprintf("SpacingPolicy(%d)", int(p))
}

// ParseSpacingPolicy converts a policy name such as "one-blank-line" to a SpacingPolicy.
// An empty name selects AnyNumberOfBlankLines.
func ParseSpacingPolicy(name string) (SpacingPolicy, error) {
	if name == "" {
		return AnyNumberOfBlankLines, nil
	}
	for p, n := range spacingPolicyNames {
		if n == name {
			return p, nil
		}
	}
	return AnyNumberOfBlankLines, &errors.ConfigurationError{
		Msg:   errors.ErrMsgInvalidSpacing,
		Value: name,
		Index: -1,
	}
}

// SpacingPolicyNames returns all policy names in declaration order
func SpacingPolicyNames() []string {
	return []string{
		AnyNumberOfBlankLines.String(),
		NoBlankLines.String(),
		OneBlankLine.String(),
		AtLeastOneBlankLine.String(),
	}
}

// BlankLines returns the number of blank lines between current and next. Lines taken by
// leading comments of next are not blank, and imports sharing a line have none.
func BlankLines(current, next *Occurrence) int {
	total := next.Start.Line - current.End.Line - 1
	if total <= 0 {
		return 0
	}

	commented := 0
	for _, c := range next.Comments {
		commented += c.Lines()
	}
	return total - commented
}

// CheckSpacing validates the gap between two adjacent imports of the groups from and to.
// It returns the failure message and false when the policy does not hold.
func CheckSpacing(policy SpacingPolicy, current, next *Occurrence, from, to *Group) (string, bool) {
	blank := BlankLines(current, next)

	var failed bool
	var format string
	switch policy {
	case OneBlankLine:
		failed = blank != 1
		format = "One blank line required between %q and %q"
	case NoBlankLines:
		failed = blank != 0
		format = "Blank lines are not allowed between %q and %q"
	case AtLeastOneBlankLine:
		failed = blank == 0
		format = "At least one blank line required between %q and %q"
	}

	if failed {
		return fmt.Sprintf(format, from.Title(), to.Title()), false
	}
	return "", true
}
