package order

import "fmt"

// Config is the policy an Engine enforces
type Config struct {
	Order      []string      // group order tokens, DefaultOrder when empty
	BlankLines SpacingPolicy // spacing between groups
}

// Engine checks import occurrences of a file against a Config.
// An Engine holds no per-file state and is safe for concurrent use.
type Engine struct {
	seq        *Sequence
	blankLines SpacingPolicy
}

// NewEngine compiles config. It fails with a *errors.ConfigurationError when a group
// pattern is not a valid regular expression.
func NewEngine(config Config) (*Engine, error) {
	tokens := config.Order
	if len(tokens) == 0 {
		tokens = DefaultOrder
	}
	seq, err := NewSequence(tokens)
	if err != nil {
		return nil, err
	}
	return &Engine{seq: seq, blankLines: config.BlankLines}, nil
}

// Sequence returns the compiled group sequence
func (e *Engine) Sequence() *Sequence {
	return e.seq
}

// BlankLines returns the spacing policy
func (e *Engine) BlankLines() SpacingPolicy {
	return e.blankLines
}

// Check scans occurrences in document order and returns every violation found.
func (e *Engine) Check(occurrences []Occurrence) Report {
	tracker := NewTracker(e.seq)
	report := Report{Groups: make(map[int][]*Occurrence)}

	for i := range occurrences {
		current := &occurrences[i]

		expected := tracker.CurrentGroup()
		group, ok := tracker.Accept(current.Specifier)
		if ok {
			report.Groups[group.Index] = append(report.Groups[group.Index], current)
		} else {
			v := Violation{
				Occurrence: current,
				Reason:     OutOfOrder,
				Expected:   expected.Title(),
				Actual:     group.Title(),
				Message: fmt.Sprintf("Check imports order (Import of %q must be higher than import of %q)",
					group.Title(), expected.Title()),
			}
			if anchors := report.Groups[expected.Index]; len(anchors) > 0 {
				v.Anchor = anchors[0]
			}
			report.Violations = append(report.Violations, v)
		}

		if e.blankLines == AnyNumberOfBlankLines || i+1 >= len(occurrences) {
			continue
		}
		next := &occurrences[i+1]
		if !next.FollowsImport {
			continue
		}
		if v, failed := e.checkSpacing(current, next); failed {
			report.Violations = append(report.Violations, v)
		}
	}
	return report
}

func (e *Engine) checkSpacing(current, next *Occurrence) (Violation, bool) {
	from := e.seq.Classify(current.Specifier)
	to := e.seq.Classify(next.Specifier)
	// equal or decreasing groups are left to the order check
	if to.Index <= from.Index {
		return Violation{}, false
	}

	msg, ok := CheckSpacing(e.blankLines, current, next, from, to)
	if ok {
		return Violation{}, false
	}
	return Violation{
		Occurrence: current,
		Reason:     SpacingViolation,
		Expected:   from.Title(),
		Actual:     to.Title(),
		Message:    msg,
	}, true
}
