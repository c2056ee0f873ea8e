package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const cfgYAML = `
schemas:
  User:
    fields:
      - {name: name}
      - {name: password, tags: [private]}
      - {name: created_at, tags: [read-only]}
profiles:
  User: {schema: User}
  Broken: {schema: User, include: [name], exclude: [name]}
`

func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "dto.yaml")
	if err := os.WriteFile(p, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestCheck(t *testing.T) {
	good := writeConfig(t, strings.Replace(cfgYAML, "  Broken: {schema: User, include: [name], exclude: [name]}\n", "", 1))
	out, _, err := run(t, "", "check", "-c", good)
	if err != nil || strings.TrimSpace(out) != "OK" {
		t.Fatalf("check good: out=%q err=%v", out, err)
	}

	bad := writeConfig(t, cfgYAML)
	_, errOut, err := run(t, "", "check", "-c", bad)
	if err == nil {
		t.Fatalf("expected overlap failure")
	}
	if !strings.Contains(errOut, "profiles.Broken.name") || !strings.Contains(errOut, "overlap") {
		t.Fatalf("stderr = %q", errOut)
	}
	if !strings.Contains(errOut, "hint: remove the path from either include or exclude") {
		t.Fatalf("missing hint in stderr = %q", errOut)
	}
}

func TestCheck_Verbose(t *testing.T) {
	cfg := writeConfig(t, `
schemas:
  Address:
    fields: [{name: id}, {name: street}, {name: city}]
  User:
    fields: [{name: id}, {name: name}, {name: address, schema: Address}]
profiles:
  ReadUser: {schema: User, exclude: [id, address.id, address.street]}
  User: {schema: User}
`)
	out, _, err := run(t, "", "check", "-v", "-c", cfg)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	want := "ReadUser (User): include=[] exclude=[address.id address.street id]\n" +
		"  address: include=[] exclude=[id street]\n" +
		"User (User): all fields\n" +
		"OK\n"
	if out != want {
		t.Fatalf("out mismatch:\n got: %q\nwant: %q", out, want)
	}
}

func TestSelect(t *testing.T) {
	good := writeConfig(t, strings.Replace(cfgYAML, "  Broken: {schema: User, include: [name], exclude: [name]}\n", "", 1))
	in := `{"name":"Litestar User","password":"xyz","created_at":"2023-04-24T00:00:00Z"}`

	out, _, err := run(t, in, "select", "-c", good, "-p", "User", "-d", "write")
	if err != nil {
		t.Fatalf("select write: %v", err)
	}
	if strings.TrimSpace(out) != `{"name":"Litestar User","password":"xyz"}` {
		t.Fatalf("write out = %s", out)
	}

	file := filepath.Join(t.TempDir(), "in.json")
	if err := os.WriteFile(file, []byte(in), 0o600); err != nil {
		t.Fatal(err)
	}
	out, _, err = run(t, "", "select", "-c", good, "-p", "User", file)
	if err != nil {
		t.Fatalf("select read: %v", err)
	}
	if strings.TrimSpace(out) != `{"name":"Litestar User","created_at":"2023-04-24T00:00:00Z"}` {
		t.Fatalf("read out = %s", out)
	}

	if _, _, err := run(t, in, "select", "-c", good, "-p", "User", "-d", "sideways"); err == nil {
		t.Fatalf("expected bad direction error")
	}
}

func TestTranslate(t *testing.T) {
	out, _, err := run(t, "", "translate", "--status", "400", "--detail", "litestar http exception", "--extra", `["any"]`)
	if err != nil {
		t.Fatalf("translate: %v", err)
	}
	if strings.TrimSpace(out) != `{"status_code":400,"detail":"litestar http exception","extra":["any"]}` {
		t.Fatalf("out = %s", out)
	}
	out, _, err = run(t, "", "translate", "--kind", "RuntimeError", "--detail", "yikes")
	if err != nil {
		t.Fatalf("translate: %v", err)
	}
	if strings.TrimSpace(out) != `{"status_code":500,"detail":"RuntimeError('yikes')"}` {
		t.Fatalf("out = %s", out)
	}
}
