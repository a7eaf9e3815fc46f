package source

import (
	"regexp"
	"strings"

	"github.com/siyuan-infoblox/ordered-imports/pkg/order"
)

// maxStatementLines bounds how far an import statement is followed across lines
const maxStatementLines = 200

var (
	importKeyword = regexp.MustCompile(`^import\b`)
	// import(...) and import.meta are expressions, not import statements
	importExpression = regexp.MustCompile(`^import\s*[(.]`)

	requireImport    = regexp.MustCompile(`^import\s+(?:type\s+)?[\w$]+\s*=\s*require\s*\(\s*('[^'\n]*'|"[^"\n]*")\s*\)`)
	aliasImport      = regexp.MustCompile(`^import\s+(?:type\s+)?[\w$]+\s*=\s*([\w$]+(?:\.[\w$]+)*)\s*(?:;|$)`)
	sideEffectImport = regexp.MustCompile(`^import\s*('[^'\n]*'|"[^"\n]*")`)
	fromImport       = regexp.MustCompile(`^import\b[^'"]*?\bfrom\s*('[^'\n]*'|"[^"\n]*")`)

	statementPatterns = []*regexp.Regexp{requireImport, aliasImport, sideEffectImport, fromImport}
)

// ScriptExtractor extracts import statements from JavaScript and TypeScript files.
//
// It recognizes `import x from 'm'` (bindings may span lines), `import 'm'`,
// `import x = require('m')` and `import x = A.B`, also several of them on one line. Comments
// before an import are recorded as its leading comments; any other statement breaks adjacency.
type ScriptExtractor struct{}

func (ScriptExtractor) Extract(_ string, src []byte) ([]order.Occurrence, error) {
	lines := strings.Split(string(src), "\n")

	var occurrences []order.Occurrence
	var pending []order.LineRange
	follows := false
	lastEnd := 0 // line the previous statement ended on

	// afterImport is set while the rest of an import's last line is scanned
	line, col, afterImport := 0, 0, false
	for line < len(lines) {
		text := strings.TrimRight(lines[line], "\r")
		col = skipBlank(text, col, afterImport)
		rest := text[col:]

		switch {
		case rest == "":
			line, col, afterImport = line+1, 0, false
		case strings.HasPrefix(rest, "//"), line == 0 && strings.HasPrefix(rest, "#!"):
			pending = append(pending, order.LineRange{Start: line + 1, End: line + 1})
			line, col, afterImport = line+1, 0, false
		case strings.HasPrefix(rest, "/*"):
			endLine, endCol := blockCommentEnd(lines, line, col+2)
			pending = append(pending, order.LineRange{Start: line + 1, End: endLine + 1})
			afterImport = afterImport && endLine == line
			line, col = endLine, endCol
		default:
			occurrence, ok := scanImport(lines, line, col)
			if !ok {
				// trailing code of an import statement, such as `with { type: 'json' }`
				if !afterImport {
					pending = nil
					follows = false
					lastEnd = line + 1
				}
				line, col, afterImport = line+1, 0, false
				continue
			}
			occurrence.Comments = clipComments(pending, lastEnd, occurrence.Start.Line)
			occurrence.FollowsImport = follows
			occurrences = append(occurrences, occurrence)

			pending = nil
			follows = true
			lastEnd = occurrence.End.Line
			line, col, afterImport = occurrence.End.Line-1, occurrence.End.Column, true
		}
	}
	return occurrences, nil
}

// skipBlank returns the offset of the first character at or after col that is not a space,
// a tab or, when semicolons is set, a semicolon.
func skipBlank(text string, col int, semicolons bool) int {
	for col < len(text) {
		switch c := text[col]; {
		case c == ' ', c == '\t', semicolons && c == ';':
			col++
		default:
			return col
		}
	}
	return col
}

// clipComments clips comment ranges to the lines strictly between the two statement lines
func clipComments(comments []order.LineRange, prevEnd, nextStart int) []order.LineRange {
	var clipped []order.LineRange
	for _, c := range comments {
		c.Start = max(c.Start, prevEnd+1)
		c.End = min(c.End, nextStart-1)
		if c.Start <= c.End {
			clipped = append(clipped, c)
		}
	}
	return clipped
}

// blockCommentEnd returns the line and the offset right after the `*/` closing the block
// comment whose body starts at offset from of line i.
func blockCommentEnd(lines []string, i, from int) (int, int) {
	if idx := strings.Index(lines[i][from:], "*/"); idx >= 0 {
		return i, from + idx + 2
	}
	for j := i + 1; j < len(lines); j++ {
		if idx := strings.Index(lines[j], "*/"); idx >= 0 {
			return j, idx + 2
		}
	}
	last := len(lines) - 1
	return last, len(strings.TrimRight(lines[last], "\r"))
}

// scanImport tries to read an import statement starting at offset col of line i. It returns
// the occurrence and whether an import statement starts there at all.
func scanImport(lines []string, i, col int) (order.Occurrence, bool) {
	text := strings.TrimRight(lines[i][col:], "\r")
	if !importKeyword.MatchString(text) || importExpression.MatchString(text) {
		return order.Occurrence{}, false
	}

	segment := text
	for j := i; j < len(lines) && j < i+maxStatementLines; j++ {
		if j > i {
			segment = strings.TrimRight(lines[j], "\r")
			text += "\n" + segment
		}

		for _, re := range statementPatterns {
			m := re.FindStringSubmatchIndex(text)
			if m == nil {
				continue
			}
			matchEnd := m[1]
			last := i + strings.Count(text[:matchEnd], "\n")
			endColumn := matchEnd - strings.LastIndex(text[:matchEnd], "\n") - 1
			if last == i {
				endColumn += col
			}
			return order.Occurrence{
				Specifier: strings.TrimSpace(text[m[2]:m[3]]),
				Start:     order.Position{Line: i + 1, Column: col + 1},
				End:       order.Position{Line: last + 1, Column: endColumn},
			}, true
		}

		if strings.Contains(segment, ";") {
			break
		}
	}
	return order.Occurrence{}, false
}
