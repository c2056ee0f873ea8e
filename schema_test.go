package dtokit_test

import (
	"testing"

	json "github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"

	"github.com/reoring/dtokit"
)

func TestNewSchema_RejectsBadNames(t *testing.T) {
	_, err := dtokit.NewSchema("User",
		dtokit.FieldSpec{Name: "name"},
		dtokit.FieldSpec{Name: "name"},
		dtokit.FieldSpec{Name: "a.b"},
		dtokit.FieldSpec{Name: ""},
	)
	iss, ok := dtokit.AsIssues(err)
	if !ok {
		t.Fatalf("expected issues, got %v", err)
	}
	codes := make([]string, len(iss))
	for i, it := range iss {
		codes[i] = it.Code
	}
	want := []string{dtokit.CodeDuplicateKey, dtokit.CodeInvalidPath, dtokit.CodeInvalidPath}
	if diff := cmp.Diff(want, codes); diff != "" {
		t.Fatalf("codes (-want +got):\n%s", diff)
	}
	if iss[0].Path != "User.name" {
		t.Fatalf("path = %q", iss[0].Path)
	}
}

func TestObject_ThreeStatePresence(t *testing.T) {
	s := dtokit.Describe("Profile").Field("bio").Field("nick").Field("age").MustBuild()
	o, err := s.New(map[string]any{"bio": nil, "age": 3})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := o.State("bio"); got != dtokit.StateNull {
		t.Fatalf("bio = %v", got)
	}
	if got := o.State("nick"); got != dtokit.StateUnset {
		t.Fatalf("nick = %v", got)
	}
	if got := o.State("age"); got != dtokit.StateSet {
		t.Fatalf("age = %v", got)
	}
	if err := o.Set("nick", "n"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if o.State("nick") != dtokit.StateSet {
		t.Fatalf("nick should be set")
	}
	if err := o.Set("zzz", 1); err == nil {
		t.Fatalf("expected unknown key error")
	}
	if err := o.Set("nick", dtokit.Unset); err != nil || o.State("nick") != dtokit.StateUnset {
		t.Fatalf("Unset should clear the field")
	}
}

func TestSchema_NewRejectsUnknownKeys(t *testing.T) {
	s := dtokit.Describe("A").Field("x").MustBuild()
	_, err := s.New(map[string]any{"y": 1, "b": 2})
	iss, ok := dtokit.AsIssues(err)
	if !ok || len(iss) != 2 {
		t.Fatalf("expected two issues, got %v", err)
	}
	if iss[0].Path != "A.b" || iss[1].Path != "A.y" || iss[0].Code != dtokit.CodeUnknownKey {
		t.Fatalf("issues not sorted or wrong: %v", iss)
	}
}

func TestSchema_TagDecoded(t *testing.T) {
	rec, err := dtokit.FromJSON([]byte(`{"name":"n","password":"p","address":{"street":"s","city":"c"},"extra":1}`))
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}
	tagged := userSchema.Tag(rec)
	got := dtokit.SelectFields(tagged, dtokit.MustRule(nil, []string{"address.street"}), dtokit.Read)
	body, err := got.MarshalJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(body) != `{"name":"n","address":{"city":"c"},"extra":1}` {
		t.Fatalf("body = %s", body)
	}
	if names := dtokit.SelectFields(tagged, nil, dtokit.Write).Names(); !cmp.Equal(names, []string{"name", "password", "extra"}) {
		t.Fatalf("write names = %v", names)
	}
}

func TestFromJSON_OrderAndErrors(t *testing.T) {
	rec, err := dtokit.FromJSON([]byte(`{"z":1,"a":[{"k":true},2],"m":null}`))
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}
	if diff := cmp.Diff([]string{"z", "a", "m"}, rec.Names()); diff != "" {
		t.Fatalf("order (-want +got):\n%s", diff)
	}
	arr, _ := rec.Get("a")
	elems, ok := arr.([]any)
	if !ok || len(elems) != 2 {
		t.Fatalf("array = %#v", arr)
	}
	if _, ok := elems[0].(dtokit.Fields); !ok {
		t.Fatalf("object in array should decode as Fields, got %T", elems[0])
	}
	if n, ok := elems[1].(json.Number); !ok || n.String() != "2" {
		t.Fatalf("number should be json.Number, got %#v", elems[1])
	}
	body, _ := rec.MarshalJSON()
	if string(body) != `{"z":1,"a":[{"k":true},2],"m":null}` {
		t.Fatalf("roundtrip = %s", body)
	}

	bad := []string{`[1]`, `{"a":1,"a":2}`, `{"a":`, `{"a":1} {}`}
	for _, in := range bad {
		if _, err := dtokit.FromJSON([]byte(in)); err == nil {
			t.Fatalf("%s: expected error", in)
		} else if _, ok := dtokit.AsIssues(err); !ok {
			t.Fatalf("%s: expected Issues, got %T", in, err)
		}
	}
}

func TestEncode_UnsetAndObject(t *testing.T) {
	s := dtokit.Describe("T").Field("a").Field("b").MustBuild()
	o := s.MustNew(map[string]any{"a": 1})
	body, err := json.Marshal(o)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(body) != `{"a":1,"b":null}` {
		t.Fatalf("body = %s", body)
	}
	body, _ = dtokit.EncodeJSON(o, nil, dtokit.Read, dtokit.SelectOpt{ExcludeEmpty: true})
	if string(body) != `{"a":1}` {
		t.Fatalf("body = %s", body)
	}
}

func TestParseTagAndDirection(t *testing.T) {
	if tag, err := dtokit.ParseTag("read-only"); err != nil || tag != dtokit.TagReadOnly {
		t.Fatalf("read-only: %v %v", tag, err)
	}
	if _, err := dtokit.ParseTag("secret"); err == nil {
		t.Fatalf("expected error for unknown tag")
	}
	if d, err := dtokit.ParseDirection("READ"); err != nil || d != dtokit.Read {
		t.Fatalf("READ: %v %v", d, err)
	}
	if got := (dtokit.TagPrivate | dtokit.TagReadOnly).String(); got != "private,read-only" {
		t.Fatalf("tag string = %q", got)
	}
}
