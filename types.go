package dtokit

import (
	"fmt"
	"strings"
)

// Tag is the bit flag set of field metadata.
type Tag uint8

const (
	TagPrivate  Tag = 1 << iota // Never emitted on Read.
	TagReadOnly                 // Never accepted on Write.
)

// Has reports whether all bits of f are set in t.
func (t Tag) Has(f Tag) bool { return t&f == f && f != 0 }

func (t Tag) String() string {
	var parts []string
	if t.Has(TagPrivate) {
		parts = append(parts, "private")
	}
	if t.Has(TagReadOnly) {
		parts = append(parts, "read-only")
	}
	return strings.Join(parts, ",")
}

// ParseTag parses a single tag name ("private" or "read-only").
func ParseTag(s string) (Tag, error) {
	switch strings.TrimSpace(s) {
	case "private":
		return TagPrivate, nil
	case "read-only", "readonly", "read_only":
		return TagReadOnly, nil
	}
	return 0, fmt.Errorf("dtokit: unknown field tag %q", s)
}

// Direction selects which side of the boundary data is crossing.
type Direction int

const (
	Write Direction = iota // Data accepted as input.
	Read                   // Data emitted as output.
)

func (d Direction) String() string {
	if d == Read {
		return "read"
	}
	return "write"
}

// ParseDirection parses "read" or "write" (case-insensitive).
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "read", "out", "outbound":
		return Read, nil
	case "write", "in", "inbound":
		return Write, nil
	}
	return Write, fmt.Errorf("dtokit: unknown direction %q", s)
}

// hidden reports whether tags hide a field in direction d.
func (d Direction) hidden(t Tag) bool {
	if d == Read {
		return t.Has(TagPrivate)
	}
	return t.Has(TagReadOnly)
}

// SelectOpt bundles the value-based toggles of SelectFields.
type SelectOpt struct {
	ExcludeNone  bool // Drop fields whose value is nil.
	ExcludeEmpty bool // Drop fields whose value is Unset.
}

func mergeSelectOpts(opts []SelectOpt) SelectOpt {
	var o SelectOpt
	for _, x := range opts {
		o.ExcludeNone = o.ExcludeNone || x.ExcludeNone
		o.ExcludeEmpty = o.ExcludeEmpty || x.ExcludeEmpty
	}
	return o
}
