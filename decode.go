package dtokit

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	json "github.com/goccy/go-json"
)

// FromJSON decodes a JSON object into an untagged record, keeping key order.
// Nested objects (including those inside arrays) become Fields and numbers
// are json.Number. Duplicate keys are reported as Issues.
func FromJSON(data []byte) (Fields, error) {
	return FromJSONReader(bytes.NewReader(data))
}

// FromJSONReader is FromJSON over a reader. Trailing data after the object is
// rejected.
func FromJSONReader(r io.Reader) (Fields, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return nil, parseIssue(Root(), err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, Issues{Root().Issue(CodeParseError, "expected a JSON object", "got", fmt.Sprint(tok))}
	}
	fs, err := decodeObject(dec, Root())
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, Issues{Root().Issue(CodeParseError, "unexpected data after JSON object")}
	}
	return fs, nil
}

// decodeObject consumes tokens after an opening '{' up to and including the
// matching '}'.
func decodeObject(dec *json.Decoder, at PathRef) (Fields, error) {
	out := Fields{}
	seen := map[string]struct{}{}
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, parseIssue(at, err)
		}
		if d, ok := tok.(json.Delim); ok && d == '}' {
			return out, nil
		}
		key, ok := tok.(string)
		if !ok {
			return nil, Issues{at.Issue(CodeParseError, "expected object key")}
		}
		if _, dup := seen[key]; dup {
			return nil, Issues{at.Field(key).Issue(CodeDuplicateKey, "duplicate key")}
		}
		seen[key] = struct{}{}
		v, err := decodeValue(dec, at.Field(key))
		if err != nil {
			return nil, err
		}
		out = append(out, Field{Name: key, Value: v})
	}
}

func decodeValue(dec *json.Decoder, at PathRef) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, parseIssue(at, err)
	}
	d, ok := tok.(json.Delim)
	if !ok {
		return tok, nil
	}
	switch d {
	case '{':
		return decodeObject(dec, at)
	case '[':
		arr := []any{}
		for i := 0; ; i++ {
			if !dec.More() {
				if _, err := dec.Token(); err != nil {
					return nil, parseIssue(at, err)
				}
				return arr, nil
			}
			v, err := decodeValue(dec, at.Index(i))
			if err != nil {
				return nil, err
			}
			arr = append(arr, v)
		}
	}
	return nil, Issues{at.Issue(CodeParseError, fmt.Sprintf("unexpected delimiter %q", rune(d)))}
}

func parseIssue(at PathRef, err error) error {
	if errors.Is(err, io.EOF) {
		err = io.ErrUnexpectedEOF
	}
	return Issues{Issue{Path: at.String(), Code: CodeParseError, Message: err.Error(), Cause: err}}
}
