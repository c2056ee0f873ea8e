package dtokit

// SelectFields returns the fields of r visible in direction dir under rule.
// A nil rule selects every field. Steps run in this order and a later step
// never revisits a field dropped by an earlier one:
//
//  1. ExcludeNone drops null values, including nil records.
//  2. ExcludeEmpty drops Unset values.
//  3. A non-empty include set keeps only included fields.
//  4. The exclude set drops excluded fields.
//  5. Read drops private fields; Write drops read-only fields.
//
// Nested records, and records held in a []any value, are filtered with
// rule.Sub(name), the same toggles and the same direction; they appear in the
// output as Fields. A nil record that survives is emitted as nil. Relative
// order is preserved. SelectFields never mutates r.
func SelectFields(r Record, rule *Rule, dir Direction, opts ...SelectOpt) Fields {
	return selectLevel(r, rule, dir, mergeSelectOpts(opts))
}

func selectLevel(r Record, rule *Rule, dir Direction, o SelectOpt) Fields {
	if IsNull(r) {
		return nil
	}
	in := r.Fields()
	out := make(Fields, 0, len(in))
	for _, f := range in {
		null := IsNull(f.Value)
		if o.ExcludeNone && null {
			continue
		}
		if o.ExcludeEmpty && IsUnset(f.Value) {
			continue
		}
		if rule.hasInclude() && !rule.included(f.Name) {
			continue
		}
		if rule.excluded(f.Name) {
			continue
		}
		if dir.hidden(f.Tags) {
			continue
		}
		if null {
			f.Value = nil
		} else {
			f.Value = selectValue(f.Value, rule.Sub(f.Name), dir, o)
		}
		out = append(out, f)
	}
	return out
}

func selectValue(v any, rule *Rule, dir Direction, o SelectOpt) any {
	switch t := v.(type) {
	case Record:
		return selectLevel(t, rule, dir, o)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			if IsNull(e) {
				continue
			}
			out[i] = selectValue(e, rule, dir, o)
		}
		return out
	}
	return v
}

// Items is SelectFields projected onto (name, value) pairs.
func Items(r Record, rule *Rule, dir Direction, opts ...SelectOpt) []Item {
	fs := SelectFields(r, rule, dir, opts...)
	out := make([]Item, len(fs))
	for i, f := range fs {
		out[i] = Item{Name: f.Name, Value: f.Value}
	}
	return out
}
