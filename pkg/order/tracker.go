package order

// Tracker is a forward-only cursor over a Sequence. Use one Tracker per file.
type Tracker struct {
	seq    *Sequence
	cursor int
}

// NewTracker creates a Tracker positioned on the first group
func NewTracker(seq *Sequence) *Tracker {
	return &Tracker{seq: seq}
}

// Cursor returns the index of the group the tracker stands on
func (t *Tracker) Cursor() int {
	return t.cursor
}

// CurrentGroup returns the group the tracker stands on
func (t *Tracker) CurrentGroup() *Group {
	return t.seq.At(t.cursor)
}

// Accept checks specifier against the current position. On success the cursor moves to the
// accepting group and that group is returned. When the specifier only belongs to groups
// before the cursor, Accept returns the classified group and false; the cursor is unchanged.
func (t *Tracker) Accept(specifier string) (*Group, bool) {
	target := t.seq.Classify(specifier)

	idx, ok := t.seq.Lookup(t.cursor, specifier)
	if ok && target.Kind == PatternGroup && t.seq.At(idx).Kind != PatternGroup {
		// prefer a custom group further on over the built-in that matched first
		if p, found := t.seq.lookupPattern(idx, specifier); found {
			idx = p
		}
	}
	if !ok {
		return target, false
	}

	// user is a catch-all, look for a more specific group further on
	if t.seq.At(idx).Kind == UserGroup {
		if next, found := t.seq.Lookup(idx+1, specifier); found {
			idx = next
		}
	}

	t.cursor = idx
	return t.seq.At(idx), true
}
