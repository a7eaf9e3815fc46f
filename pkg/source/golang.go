package source

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"strconv"
	"strings"

	"github.com/siyuan-infoblox/ordered-imports/pkg/errors"
	"github.com/siyuan-infoblox/ordered-imports/pkg/order"
)

// GoExtractor extracts import specs from Go files.
//
// Each import spec is one occurrence. The first spec of an import declaration starts on the
// line of the import keyword and the last one ends on the closing parenthesis, so the lines
// between two declarations are measured between the declarations themselves. Go imports
// always precede other declarations, which makes every spec adjacent to the previous one.
type GoExtractor struct{}

func (GoExtractor) Extract(filename string, src []byte) ([]order.Occurrence, error) {
	fileSet := token.NewFileSet()
	file, err := parser.ParseFile(fileSet, filename, src, parser.ParseComments|parser.ImportsOnly)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errors.ErrMsgFailedToParseFile, err)
	}

	var comments []*ast.Comment
	for _, group := range file.Comments {
		comments = append(comments, group.List...)
	}

	var occurrences []order.Occurrence
	prevEnd := fileSet.Position(file.Name.End()).Line

	for _, decl := range file.Decls {
		genDecl, ok := decl.(*ast.GenDecl)
		if !ok || genDecl.Tok != token.IMPORT {
			break
		}

		for i, spec := range genDecl.Specs {
			importSpec, ok := spec.(*ast.ImportSpec)
			if !ok || importSpec.Path == nil {
				continue
			}

			start := fileSet.Position(importSpec.Pos())
			startLine := start.Line
			if i == 0 {
				startLine = fileSet.Position(genDecl.Pos()).Line
			}
			end := fileSet.Position(importSpec.End())
			endLine := end.Line
			if i == len(genDecl.Specs)-1 && genDecl.Rparen.IsValid() {
				endLine = fileSet.Position(genDecl.Rparen).Line
			}

			occurrences = append(occurrences, order.Occurrence{
				Specifier:     goSpecifier(importSpec.Path.Value),
				Start:         order.Position{Line: startLine, Column: start.Column},
				End:           order.Position{Line: endLine, Column: end.Column},
				Comments:      commentsBetween(fileSet, comments, prevEnd, startLine),
				FollowsImport: len(occurrences) > 0,
			})
			prevEnd = endLine
		}
	}
	return occurrences, nil
}

// goSpecifier normalizes raw string import paths to the double quoted form
func goSpecifier(value string) string {
	if strings.HasPrefix(value, "`") {
		if unquoted, err := strconv.Unquote(value); err == nil {
			return strconv.Quote(unquoted)
		}
	}
	return value
}

// commentsBetween returns the line ranges of comments lying strictly between two lines
func commentsBetween(fileSet *token.FileSet, comments []*ast.Comment, after, before int) []order.LineRange {
	var ranges []order.LineRange
	for _, c := range comments {
		start := fileSet.Position(c.Pos()).Line
		end := fileSet.Position(c.End()).Line
		if start > after && end < before {
			ranges = append(ranges, order.LineRange{Start: start, End: end})
		}
	}
	return ranges
}
