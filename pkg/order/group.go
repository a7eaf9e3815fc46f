// Package order checks that import statements follow a configured sequence of groups
// and that the blank lines between groups follow a spacing policy.
package order

import (
	"regexp"
	"strings"
)

// GroupKind represents the different kinds of import groups
type GroupKind int

const (
	LibraryGroup GroupKind = iota // module that does not start with "." or "/"
	UserGroup                     // module that starts with "." or "/"
	PatternGroup                  // module matching a custom regular expression
)

// Reserved tokens in a group order
const (
	LibToken  = "lib"
	UserToken = "user"
)

func (k GroupKind) String() string {
	switch k {
	case LibraryGroup:
		return LibToken
	case UserGroup:
		return UserToken
	case PatternGroup:
		return "pattern"
	}
	return "unknown"
}

// Group represents one configured import group
type Group struct {
	Kind    GroupKind
	Index   int            // position in the owning Sequence
	pattern *regexp.Regexp // set only for PatternGroup
}

// Matches reports whether specifier belongs to the group.
// A single pair of surrounding quotes is stripped first.
func (g *Group) Matches(specifier string) bool {
	specifier = StripQuotes(specifier)
	if g.Kind == PatternGroup {
		return g.pattern.MatchString(specifier)
	}

	isUser := isUserSpecifier(specifier)
	if g.Kind == UserGroup {
		return isUser
	}
	return !isUser
}

// Pattern returns the source of the group's regular expression, empty for built-in groups.
func (g *Group) Pattern() string {
	if g.pattern == nil {
		return ""
	}
	return g.pattern.String()
}

// Title returns the human-readable label used in diagnostics
func (g *Group) Title() string {
	switch g.Kind {
	case LibraryGroup:
		return "Core/lib import"
	case UserGroup:
		return "User module"
	default:
		return "Module with custom rule: " + g.Pattern()
	}
}

func isUserSpecifier(specifier string) bool {
	trimmed := strings.TrimSpace(specifier)
	return strings.HasPrefix(trimmed, ".") || strings.HasPrefix(trimmed, "/")
}

// StripQuotes removes one pair of matching single or double quotes surrounding s.
func StripQuotes(s string) string {
	if len(s) < 2 {
		return s
	}
	first, last := s[0], s[len(s)-1]
	if first == last && (first == '\'' || first == '"') {
		return s[1 : len(s)-1]
	}
	return s
}
