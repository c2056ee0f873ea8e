package dtokit

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/reoring/dtokit/i18n"
)

// Issue codes reported by schema, rule and config validation.
const (
	CodeDuplicateKey   = "duplicate_key"
	CodeUnknownKey     = "unknown_key"
	CodeInvalidTag     = "invalid_tag"
	CodeInvalidPath    = "invalid_path"
	CodeOverlap        = "overlap"
	CodeUnknownSchema  = "unknown_schema"
	CodeUnknownProfile = "unknown_profile"
	CodeParseError     = "parse_error"
)

// ErrConfig is matched by errors.Is for every *ConfigError.
var ErrConfig = errors.New("dtokit: improperly configured")

// Issue represents a single validation entry.
type Issue struct {
	Path    string // Dotted path (for example: profiles.ReadUser.exclude).
	Code    string // One of the codes listed above.
	Message string
	Hint    string // Optional: remediation hints.
	Cause   error  // Optional: underlying error.
	// Params carries structured parameters (e.g., {"paths": [...]}) for i18n
	// and observability.
	Params map[string]any
}

// Issues is a collection of validation errors that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := min(n, maxShown)
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		if it.Path == "" {
			b.WriteString(it.Code)
		} else {
			// e.g. duplicate_key at fields.name
			fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
		}
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	var ce *ConfigError
	if errors.As(err, &ce) {
		return ce.Issues(), true
	}
	return nil, false
}

// ConfigError reports a Rule that cannot be constructed: include and exclude
// share paths, or a path is malformed. It is returned at construction time
// only.
type ConfigError struct {
	// Overlap lists the paths present in both include and exclude, sorted.
	Overlap []string
	// Invalid lists malformed paths, sorted.
	Invalid []string
}

func (e *ConfigError) Error() string {
	switch {
	case len(e.Overlap) > 0 && len(e.Invalid) > 0:
		return fmt.Sprintf("fields %v are both included and excluded; invalid paths %v", e.Overlap, e.Invalid)
	case len(e.Overlap) > 0:
		return fmt.Sprintf("fields %v are both included and excluded", e.Overlap)
	default:
		return fmt.Sprintf("invalid field paths %v", e.Invalid)
	}
}

// Is reports ErrConfig so callers can classify without a type assertion.
func (e *ConfigError) Is(target error) bool { return target == ErrConfig }

// Issues projects the error onto the Issue model, one entry per path.
func (e *ConfigError) Issues() Issues {
	var out Issues
	for _, p := range e.Overlap {
		out = append(out, Issue{Path: p, Code: CodeOverlap, Message: i18n.T(CodeOverlap, nil), Hint: "remove the path from either include or exclude"})
	}
	for _, p := range e.Invalid {
		out = append(out, Issue{Path: p, Code: CodeInvalidPath, Message: i18n.T(CodeInvalidPath, nil), Hint: "use dot-separated field names without empty segments"})
	}
	return out
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
