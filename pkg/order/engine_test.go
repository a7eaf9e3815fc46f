package order

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/siyuan-infoblox/ordered-imports/pkg/errors"
)

// occ builds a single-line import occurrence that directly follows the previous one.
func occ(specifier string, line int, comments ...LineRange) Occurrence {
	return Occurrence{
		Specifier:     specifier,
		Start:         Position{Line: line, Column: 1},
		End:           Position{Line: line, Column: 20},
		Comments:      comments,
		FollowsImport: true,
	}
}

func newEngine(t *testing.T, order []string, policy SpacingPolicy) *Engine {
	t.Helper()
	e, err := NewEngine(Config{Order: order, BlankLines: policy})
	require.NoError(t, err)
	return e
}

func TestEngine_Check_order(t *testing.T) {
	tests := []struct {
		name      string
		order     []string
		specs     []string
		wantLines []int
	}{
		{"lib then user", nil, []string{`"fs"`, `"./a"`}, nil},
		{"user then lib", nil, []string{`'./a'`, `'fs'`}, []int{2}},
		{"every late lib is reported", nil, []string{"./a", "fs", "path"}, []int{2, 3}},
		{"custom group in order", []string{"lib", "^@app/", "user"}, []string{"fs", "@app/x", "./y"}, nil},
		{"custom group late", []string{"lib", "^@app/", "user"}, []string{"fs", "./y", "@app/x"}, []int{3}},
		{"custom group accepted by a later lib", []string{"^@app/", "lib", "user"}, []string{"fs", "@app/x", "./y"}, nil},
		{"no imports", nil, nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			e := newEngine(t, tt.order, AnyNumberOfBlankLines)

			var occurrences []Occurrence
			for i, s := range tt.specs {
				occurrences = append(occurrences, occ(s, i+1))
			}
			report := e.Check(occurrences)

			var lines []int
			for _, v := range report.Violations {
				req.Equal(OutOfOrder, v.Reason)
				lines = append(lines, v.Position().Line)
			}
			req.Equal(tt.wantLines, lines)
			req.Equal(len(tt.wantLines) > 0, report.HasViolations())
		})
	}
}

func TestEngine_Check_outOfOrderMessage(t *testing.T) {
	req := require.New(t)
	e := newEngine(t, nil, AnyNumberOfBlankLines)

	occurrences := []Occurrence{occ("'./a'", 1), occ("'./b'", 2), occ("'fs'", 3)}
	report := e.Check(occurrences)

	req.Len(report.Violations, 1)
	v := report.Violations[0]
	req.Equal(`Check imports order (Import of "Core/lib import" must be higher than import of "User module")`, v.Message)
	req.Equal("User module", v.Expected)
	req.Equal("Core/lib import", v.Actual)
	req.Same(&occurrences[2], v.Occurrence)
	req.Same(&occurrences[0], v.Anchor)
}

func TestEngine_Check_groups(t *testing.T) {
	req := require.New(t)
	e := newEngine(t, []string{"lib", "^@app/", "user"}, AnyNumberOfBlankLines)

	occurrences := []Occurrence{occ("fs", 1), occ("lodash", 2), occ("./a", 3), occ("@app/x", 4)}
	report := e.Check(occurrences)

	req.Len(report.Groups[0], 2)
	req.Empty(report.Groups[1])
	req.Len(report.Groups[2], 1)
	req.Same(&occurrences[2], report.Groups[2][0])
	req.Len(report.Violations, 1)
	req.Same(&occurrences[2], report.Violations[0].Anchor)
}

func TestEngine_Check_spacing(t *testing.T) {
	tests := []struct {
		name        string
		policy      SpacingPolicy
		occurrences []Occurrence
		want        []Reason
	}{
		{
			name:        "one blank line satisfied",
			policy:      OneBlankLine,
			occurrences: []Occurrence{occ("fs", 1), occ("./a", 3)},
		},
		{
			name:        "one blank line missing",
			policy:      OneBlankLine,
			occurrences: []Occurrence{occ("fs", 1), occ("./a", 2)},
			want:        []Reason{SpacingViolation},
		},
		{
			name:        "one blank line exceeded",
			policy:      OneBlankLine,
			occurrences: []Occurrence{occ("fs", 1), occ("./a", 4)},
			want:        []Reason{SpacingViolation},
		},
		{
			name:        "same group is not checked",
			policy:      OneBlankLine,
			occurrences: []Occurrence{occ("fs", 1), occ("path", 2), occ("./a", 4)},
		},
		{
			name:        "comment above next import under no blank lines",
			policy:      NoBlankLines,
			occurrences: []Occurrence{occ("fs", 1), occ("./a", 3, LineRange{2, 2})},
		},
		{
			name:        "blank line under no blank lines",
			policy:      NoBlankLines,
			occurrences: []Occurrence{occ("fs", 1), occ("./a", 3)},
			want:        []Reason{SpacingViolation},
		},
		{
			name:        "at least one blank line",
			policy:      AtLeastOneBlankLine,
			occurrences: []Occurrence{occ("fs", 1), occ("./a", 5)},
		},
		{
			name:        "decreasing groups only report order",
			policy:      OneBlankLine,
			occurrences: []Occurrence{occ("./a", 1), occ("fs", 2)},
			want:        []Reason{OutOfOrder},
		},
		{
			name:        "any number is never checked",
			policy:      AnyNumberOfBlankLines,
			occurrences: []Occurrence{occ("fs", 1), occ("./a", 2)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			e := newEngine(t, nil, tt.policy)
			report := e.Check(tt.occurrences)

			var reasons []Reason
			for _, v := range report.Violations {
				reasons = append(reasons, v.Reason)
			}
			req.Equal(tt.want, reasons)
		})
	}
}

func TestEngine_Check_spacingReportedOnEarlierImport(t *testing.T) {
	req := require.New(t)
	e := newEngine(t, nil, OneBlankLine)

	occurrences := []Occurrence{occ("fs", 1), occ("./a", 2)}
	report := e.Check(occurrences)

	req.Len(report.Violations, 1)
	v := report.Violations[0]
	req.Same(&occurrences[0], v.Occurrence)
	req.Equal("Core/lib import", v.Expected)
	req.Equal("User module", v.Actual)
	req.Equal(`One blank line required between "Core/lib import" and "User module"`, v.Message)
}

func TestEngine_Check_notAdjacent(t *testing.T) {
	req := require.New(t)
	e := newEngine(t, nil, NoBlankLines)

	next := occ("./a", 5)
	next.FollowsImport = false
	report := e.Check([]Occurrence{occ("fs", 1), next})
	req.Empty(report.Violations)
}

func TestEngine_Check_bothViolationsOnOneImport(t *testing.T) {
	req := require.New(t)
	e := newEngine(t, nil, OneBlankLine)

	occurrences := []Occurrence{occ("./a", 1), occ("fs", 2), occ("./b", 3)}
	report := e.Check(occurrences)

	req.Len(report.Violations, 2)
	req.Equal(OutOfOrder, report.Violations[0].Reason)
	req.Equal(SpacingViolation, report.Violations[1].Reason)
	req.Same(&occurrences[1], report.Violations[0].Occurrence)
	req.Same(&occurrences[1], report.Violations[1].Occurrence)
}

func TestNewEngine_invalidPattern(t *testing.T) {
	req := require.New(t)
	e, err := NewEngine(Config{Order: []string{"lib", "(unclosed"}})
	req.Nil(e)

	var cfgErr *errors.ConfigurationError
	req.ErrorAs(err, &cfgErr)
	req.Equal("(unclosed", cfgErr.Value)
}

func TestEngine_Check_concurrentFiles(t *testing.T) {
	e := newEngine(t, []string{"lib", "^@app/", "user"}, OneBlankLine)

	var wg sync.WaitGroup
	results := make([]int, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			occurrences := []Occurrence{occ("fs", 1), occ("./y", 3), occ("@app/x", 4)}
			results[i] = len(e.Check(occurrences).Violations)
		}(i)
	}
	wg.Wait()

	for i, n := range results {
		require.Equal(t, 1, n, "file %d", i)
	}
}
