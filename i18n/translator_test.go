package i18n

import "testing"

func TestTranslator_DefaultAndJapanese(t *testing.T) {
	// default is en
	if msg := T("overlap", nil); msg == "overlap" || msg == "" {
		t.Fatalf("expected a human message, got %q", msg)
	}

	SetLanguage("ja")
	if msg := T("overlap", nil); msg == "path is both included and excluded" {
		t.Fatalf("expected japanese message, got %q", msg)
	}

	// reset to en
	SetLanguage("en")
}

type upper struct{}

func (upper) Message(code string, _ map[string]string) string { return "E_" + code }

func TestTranslator_CustomAndUnknownCode(t *testing.T) {
	if msg := T("no_such_code", nil); msg != "no_such_code" {
		t.Fatalf("unknown codes fall back to the code, got %q", msg)
	}
	SetTranslator(upper{})
	if msg := T("invalid_path", nil); msg != "E_invalid_path" {
		t.Fatalf("custom translator not used, got %q", msg)
	}
	SetTranslator(nil)
	if msg := T("invalid_path", nil); msg != "invalid field path" {
		t.Fatalf("nil translator should restore the default, got %q", msg)
	}
}
