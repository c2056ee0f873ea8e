package dtokit

import (
	"fmt"
	"strconv"
	"strings"
)

// PathSep separates segments of a field path ("address.street").
const PathSep = "."

// SplitPath splits a dotted path into its head segment and the remainder.
// rest is empty when p has a single segment.
func SplitPath(p string) (head, rest string) {
	head, rest, _ = strings.Cut(p, PathSep)
	return head, rest
}

// JoinPath joins segments with PathSep, skipping empty ones.
func JoinPath(segs ...string) string {
	out := make([]string, 0, len(segs))
	for _, s := range segs {
		if s != "" {
			out = append(out, s)
		}
	}
	return strings.Join(out, PathSep)
}

func validPath(p string) bool {
	if p == "" {
		return false
	}
	for _, seg := range strings.Split(p, PathSep) {
		if seg == "" {
			return false
		}
	}
	return true
}

// PathRef builds dotted paths in a chain-safe way and creates Issues.
type PathRef struct {
	parts []string
}

// Root returns the empty path.
func Root() PathRef { return PathRef{} }

// At parses a dotted path into a PathRef.
func At(path string) PathRef {
	if path == "" {
		return Root()
	}
	parts := []string{}
	for _, p := range strings.Split(path, PathSep) {
		if p == "" {
			continue
		}
		parts = append(parts, p)
	}
	return PathRef{parts: parts}
}

// Field appends a named segment.
func (p PathRef) Field(name string) PathRef {
	if name == "" {
		return p
	}
	return PathRef{parts: append(append([]string{}, p.parts...), name)}
}

// Index appends a positional segment.
func (p PathRef) Index(i int) PathRef {
	return PathRef{parts: append(append([]string{}, p.parts...), strconv.Itoa(i))}
}

func (p PathRef) String() string { return strings.Join(p.parts, PathSep) }

// Issue creates an Issue at this path. kv is a flat list of param key/value
// pairs.
func (p PathRef) Issue(code, msg string, kv ...any) Issue {
	var m map[string]any
	if len(kv) > 1 {
		m = map[string]any{}
		for i := 0; i+1 < len(kv); i += 2 {
			m[fmt.Sprint(kv[i])] = kv[i+1]
		}
	}
	return Issue{Path: p.String(), Code: code, Message: msg, Params: m}
}
