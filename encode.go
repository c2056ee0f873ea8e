package dtokit

import (
	"bytes"

	json "github.com/goccy/go-json"
)

// MarshalJSON encodes fields as a JSON object in field order. Nested Records,
// also inside []any, are encoded the same way; nil records and Unset values
// encode as null. It applies no tag filtering: run SelectFields first.
func (fs Fields) MarshalJSON() ([]byte, error) {
	if fs == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range fs {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(f.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		v, err := encodeValue(f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalJSON encodes the object in declaration order.
func (o *Object) MarshalJSON() ([]byte, error) {
	if o == nil {
		return []byte("null"), nil
	}
	return Fields(o.Fields()).MarshalJSON()
}

func encodeValue(v any) ([]byte, error) {
	if IsNull(v) {
		return []byte("null"), nil
	}
	switch t := v.(type) {
	case Fields:
		return t.MarshalJSON()
	case *Object:
		return t.MarshalJSON()
	case Record:
		return Fields(t.Fields()).MarshalJSON()
	case []any:
		var buf bytes.Buffer
		buf.WriteByte('[')
		for i, e := range t {
			if i > 0 {
				buf.WriteByte(',')
			}
			b, err := encodeValue(e)
			if err != nil {
				return nil, err
			}
			buf.Write(b)
		}
		buf.WriteByte(']')
		return buf.Bytes(), nil
	default:
		return json.Marshal(v)
	}
}

// EncodeJSON selects fields and encodes the result in one step.
func EncodeJSON(r Record, rule *Rule, dir Direction, opts ...SelectOpt) ([]byte, error) {
	return SelectFields(r, rule, dir, opts...).MarshalJSON()
}
