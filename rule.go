package dtokit

import "sort"

// Rule is a validated pair of include/exclude field-path sets. A Rule is
// immutable after NewRule returns and may be shared between goroutines.
//
// Paths are dotted ("address.street"). At one nesting level a field named a
// is included by "a" or by any "a.<suffix>"; it is excluded only by the exact
// entry "a". Suffixes form the child rule applied to a's nested record.
type Rule struct {
	include map[string]struct{}
	exclude map[string]struct{}

	// level view, precomputed
	topInclude map[string]struct{}
	topExclude map[string]struct{}
	children   map[string]*Rule
}

// NewRule validates and compiles include/exclude paths. It fails with a
// *ConfigError when the sets intersect or a path has an empty segment.
func NewRule(include, exclude []string) (*Rule, error) {
	inc := toSet(include)
	exc := toSet(exclude)

	common := map[string]struct{}{}
	for p := range inc {
		if _, ok := exc[p]; ok {
			common[p] = struct{}{}
		}
	}
	invalid := map[string]struct{}{}
	for _, set := range []map[string]struct{}{inc, exc} {
		for p := range set {
			if !validPath(p) {
				invalid[p] = struct{}{}
			}
		}
	}
	if len(common) > 0 || len(invalid) > 0 {
		return nil, &ConfigError{Overlap: sortedKeys(common), Invalid: sortedKeys(invalid)}
	}
	return compileRule(inc, exc), nil
}

// MustRule is like NewRule but panics on error. It is meant for
// package-level rule declarations.
func MustRule(include, exclude []string) *Rule {
	r, err := NewRule(include, exclude)
	if err != nil {
		panic(err)
	}
	return r
}

// compileRule assumes inc and exc are already validated and disjoint.
func compileRule(inc, exc map[string]struct{}) *Rule {
	r := &Rule{
		include:    inc,
		exclude:    exc,
		topInclude: map[string]struct{}{},
		topExclude: map[string]struct{}{},
	}
	subInc := map[string]map[string]struct{}{}
	subExc := map[string]map[string]struct{}{}
	for p := range inc {
		head, rest := SplitPath(p)
		r.topInclude[head] = struct{}{}
		if rest != "" {
			addTo(subInc, head, rest)
		}
	}
	for p := range exc {
		head, rest := SplitPath(p)
		if rest == "" {
			r.topExclude[head] = struct{}{}
			continue
		}
		addTo(subExc, head, rest)
	}
	for head := range subInc {
		r.child(head, subInc, subExc)
	}
	for head := range subExc {
		r.child(head, subInc, subExc)
	}
	return r
}

func (r *Rule) child(head string, subInc, subExc map[string]map[string]struct{}) {
	if r.children == nil {
		r.children = map[string]*Rule{}
	}
	if _, done := r.children[head]; done {
		return
	}
	inc := subInc[head]
	if inc == nil {
		inc = map[string]struct{}{}
	}
	exc := subExc[head]
	if exc == nil {
		exc = map[string]struct{}{}
	}
	r.children[head] = compileRule(inc, exc)
}

func addTo(m map[string]map[string]struct{}, head, rest string) {
	if m[head] == nil {
		m[head] = map[string]struct{}{}
	}
	m[head][rest] = struct{}{}
}

func toSet(paths []string) map[string]struct{} {
	set := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		set[p] = struct{}{}
	}
	return set
}

// Include returns the include paths, sorted.
func (r *Rule) Include() []string {
	if r == nil {
		return nil
	}
	return sortedKeys(r.include)
}

// Exclude returns the exclude paths, sorted.
func (r *Rule) Exclude() []string {
	if r == nil {
		return nil
	}
	return sortedKeys(r.exclude)
}

// IsEmpty reports whether the rule selects every field.
func (r *Rule) IsEmpty() bool {
	return r == nil || (len(r.include) == 0 && len(r.exclude) == 0)
}

// Sub returns the rule applied to the nested record of field name, or nil
// when no path addresses inside it.
func (r *Rule) Sub(name string) *Rule {
	if r == nil {
		return nil
	}
	return r.children[name]
}

// Children returns the names of fields that have a nested rule, sorted.
func (r *Rule) Children() []string {
	if r == nil {
		return nil
	}
	out := make([]string, 0, len(r.children))
	for k := range r.children {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func (r *Rule) included(name string) bool {
	if r == nil || len(r.topInclude) == 0 {
		return true
	}
	_, ok := r.topInclude[name]
	return ok
}

func (r *Rule) hasInclude() bool { return r != nil && len(r.topInclude) > 0 }

func (r *Rule) excluded(name string) bool {
	if r == nil {
		return false
	}
	_, ok := r.topExclude[name]
	return ok
}
