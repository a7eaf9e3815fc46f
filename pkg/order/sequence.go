package order

import (
	"regexp"

	"github.com/siyuan-infoblox/ordered-imports/pkg/errors"
)

// DefaultOrder is the group order used when none is configured
var DefaultOrder = []string{LibToken, UserToken}

// Sequence is the ordered list of groups imports must follow.
// It is immutable once built and may be shared between goroutines.
type Sequence struct {
	groups []*Group
}

// NewSequence builds a Sequence from group order tokens. Each token is either "lib", "user"
// or a regular expression. A missing "lib" group is prepended and a missing "user" group is
// appended so that every specifier belongs to at least one group.
func NewSequence(tokens []string) (*Sequence, error) {
	hasLib, hasUser := false, false
	for _, token := range tokens {
		switch token {
		case LibToken:
			hasLib = true
		case UserToken:
			hasUser = true
		}
	}

	order := make([]string, 0, len(tokens)+2)
	if !hasLib {
		order = append(order, LibToken)
	}
	order = append(order, tokens...)
	if !hasUser {
		order = append(order, UserToken)
	}

	s := &Sequence{groups: make([]*Group, 0, len(order))}
	for i, token := range order {
		g := &Group{Index: i}
		switch token {
		case LibToken:
			g.Kind = LibraryGroup
		case UserToken:
			g.Kind = UserGroup
		default:
			re, err := regexp.Compile(token)
			if err != nil {
				tokenIndex := i
				if !hasLib {
					tokenIndex--
				}
				return nil, &errors.ConfigurationError{
					Msg:   errors.ErrMsgInvalidGroupPattern,
					Value: token,
					Index: tokenIndex,
					Err:   err,
				}
			}
			g.Kind = PatternGroup
			g.pattern = re
		}
		s.groups = append(s.groups, g)
	}
	return s, nil
}

// Len returns the number of groups
func (s *Sequence) Len() int {
	return len(s.groups)
}

// At returns the group at index i
func (s *Sequence) At(i int) *Group {
	return s.groups[i]
}

// Groups returns a copy of the groups in enforcement order
func (s *Sequence) Groups() []*Group {
	return append([]*Group(nil), s.groups...)
}

// Classify returns the group a specifier belongs to. Pattern groups win over the built-in
// groups wherever they appear in the sequence; otherwise the first matching built-in is used.
func (s *Sequence) Classify(specifier string) *Group {
	if i, ok := s.lookupPattern(0, specifier); ok {
		return s.groups[i]
	}
	i, ok := s.Lookup(0, specifier)
	if !ok {
		// unreachable: lib and user together cover every specifier
		return s.groups[len(s.groups)-1]
	}
	return s.groups[i]
}

// Lookup returns the index of the first group at or after from that matches specifier.
func (s *Sequence) Lookup(from int, specifier string) (int, bool) {
	for i := from; i < len(s.groups); i++ {
		if s.groups[i].Matches(specifier) {
			return i, true
		}
	}
	return -1, false
}

func (s *Sequence) lookupPattern(from int, specifier string) (int, bool) {
	for i := from; i < len(s.groups); i++ {
		if s.groups[i].Kind == PatternGroup && s.groups[i].Matches(specifier) {
			return i, true
		}
	}
	return -1, false
}
