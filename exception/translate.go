package exception

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
)

// StatusCoder is implemented by errors that declare an HTTP status, including
// those produced by upstream protocol libraries.
type StatusCoder interface {
	StatusCode() int
}

// Detailer is implemented by errors that expose a client-facing message
// separate from Error().
type Detailer interface {
	Detail() string
}

// Kinder lets an error name its kind for diagnostics.
type Kinder interface {
	ErrorKind() string
}

// Failure is the closed set of error classifications. Its implementations are
// Declared, Upstream and Undeclared.
type Failure interface {
	failure()
}

// Declared is an error that carries its own status and detail.
type Declared struct {
	Status int
	Detail string
	Extra  any
}

// Upstream is a message-only error from a protocol layer below this package.
type Upstream struct {
	Message string
}

// Undeclared is any other error.
type Undeclared struct {
	Kind    string
	Message string
}

func (Declared) failure()   {}
func (Upstream) failure()   {}
func (Undeclared) failure() {}

// Classify projects err onto the Failure variants. It never panics; errors
// whose methods panic classify as Undeclared.
func Classify(err error) (f Failure) {
	if err == nil {
		return Undeclared{Kind: "nil", Message: ""}
	}
	defer func() {
		if r := recover(); r != nil {
			f = Undeclared{Kind: KindOf(err), Message: fmt.Sprintf("<error message unavailable: %v>", r)}
		}
	}()
	var he *HTTPError
	if errors.As(err, &he) && he != nil {
		return Declared{Status: he.Status, Detail: he.Detail, Extra: he.Extra}
	}
	var sc StatusCoder
	if errors.As(err, &sc) {
		d := Declared{Status: sc.StatusCode(), Detail: err.Error()}
		var dt Detailer
		if errors.As(err, &dt) {
			d.Detail = dt.Detail()
		}
		return d
	}
	var dt Detailer
	if errors.As(err, &dt) {
		return Upstream{Message: dt.Detail()}
	}
	return Undeclared{Kind: KindOf(err), Message: err.Error()}
}

// KindOf names the kind of err: ErrorKind() when implemented, otherwise the Go
// type name without package path or pointer marker.
func KindOf(err error) string {
	if err == nil {
		return "nil"
	}
	if k, ok := err.(Kinder); ok {
		if name := safeKind(k); name != "" {
			return name
		}
	}
	t := reflect.TypeOf(err)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Name() != "" {
		return t.Name()
	}
	return strings.TrimLeft(t.String(), "*")
}

func safeKind(k Kinder) (name string) {
	defer func() {
		if recover() != nil {
			name = ""
		}
	}()
	return k.ErrorKind()
}

// Translated is the response projection of an error. Extra is omitted from
// JSON when nil.
type Translated struct {
	StatusCode int    `json:"status_code"`
	Detail     string `json:"detail"`
	Extra      any    `json:"extra,omitempty"`
}

// Translate maps any error to a Translated payload. It is total: the status
// code is always a valid HTTP status, the detail is never empty and no stack
// trace is ever included.
func Translate(err error) Translated {
	var t Translated
	switch f := Classify(err).(type) {
	case Declared:
		t = Translated{StatusCode: f.Status, Detail: f.Detail, Extra: f.Extra}
		if t.StatusCode < 100 || t.StatusCode > 999 {
			t.StatusCode = http.StatusInternalServerError
		}
	case Upstream:
		t = Translated{StatusCode: http.StatusInternalServerError, Detail: f.Message}
	case Undeclared:
		t = Translated{StatusCode: http.StatusInternalServerError, Detail: f.Kind + "(" + quote(f.Message) + ")"}
	default:
		t = Translated{StatusCode: http.StatusInternalServerError}
	}
	if t.Detail == "" {
		t.Detail = http.StatusText(t.StatusCode)
	}
	if t.Detail == "" {
		t.Detail = strconv.Itoa(t.StatusCode)
	}
	return t
}

// quote renders s as a single-quoted literal, switching to double quotes when
// s contains a single quote but no double quote.
func quote(s string) string {
	if strings.Contains(s, "'") && !strings.Contains(s, `"`) {
		return `"` + strings.ReplaceAll(s, `\`, `\\`) + `"`
	}
	r := strings.NewReplacer(`\`, `\\`, `'`, `\'`, "\n", `\n`, "\t", `\t`, "\r", `\r`)
	return "'" + r.Replace(s) + "'"
}

// MarshalJSON encodes {"status_code":..,"detail":..[,"extra":..]}.
func (t Translated) MarshalJSON() ([]byte, error) {
	type wire Translated
	return json.Marshal(wire(t))
}

// Write sends the payload as an application/json response with the
// translated status.
func (t Translated) Write(w http.ResponseWriter) error {
	body, err := t.MarshalJSON()
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(t.StatusCode)
	_, err = w.Write(body)
	return err
}
