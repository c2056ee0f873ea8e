// Package config loads schema and DTO profile declarations from YAML.
//
// Every profile rule is compiled while loading, so a profile whose include
// and exclude sets overlap fails Load instead of failing a request later.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/reoring/dtokit"
	"github.com/reoring/dtokit/i18n"
)

// CodeSchemaCycle reports schemas that reference each other in a loop.
const CodeSchemaCycle = "schema_cycle"

// Document is the YAML shape of a config file.
type Document struct {
	Schemas  map[string]SchemaDoc  `yaml:"schemas"`
	Profiles map[string]ProfileDoc `yaml:"profiles"`
}

// SchemaDoc declares the fields of one record type.
type SchemaDoc struct {
	Fields []FieldDoc `yaml:"fields"`
}

// FieldDoc declares one field.
type FieldDoc struct {
	Name   string   `yaml:"name"`
	Tags   []string `yaml:"tags"`
	Schema string   `yaml:"schema"`
}

// ProfileDoc declares a DTO profile: a schema plus a selection rule.
type ProfileDoc struct {
	Schema       string   `yaml:"schema"`
	Include      []string `yaml:"include"`
	Exclude      []string `yaml:"exclude"`
	ExcludeNone  bool     `yaml:"exclude_none"`
	ExcludeEmpty bool     `yaml:"exclude_empty"`
}

// Profile is a compiled ProfileDoc.
type Profile struct {
	Name   string
	Schema *dtokit.Schema
	Rule   *dtokit.Rule
	Opt    dtokit.SelectOpt
}

// Apply tags r with the profile schema and selects its fields for dir.
func (p *Profile) Apply(r dtokit.Record, dir dtokit.Direction) dtokit.Fields {
	return dtokit.SelectFields(p.Schema.Tag(r), p.Rule, dir, p.Opt)
}

// Config holds compiled schemas and profiles. It is immutable after Load.
type Config struct {
	schemas  map[string]*dtokit.Schema
	profiles map[string]*Profile
}

// Schema returns a compiled schema by name.
func (c *Config) Schema(name string) (*dtokit.Schema, bool) {
	s, ok := c.schemas[name]
	return s, ok
}

// Profile returns a compiled profile by name.
func (c *Config) Profile(name string) (*Profile, error) {
	p, ok := c.profiles[name]
	if !ok {
		return nil, dtokit.Issues{dtokit.Root().Field("profiles").Field(name).Issue(dtokit.CodeUnknownProfile, i18n.T(dtokit.CodeUnknownProfile, nil))}
	}
	return p, nil
}

// ProfileNames returns profile names, sorted.
func (c *Config) ProfileNames() []string {
	out := make([]string, 0, len(c.profiles))
	for k := range c.profiles {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// LoadFile reads and compiles a YAML config file.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Load(bytes.NewReader(data))
}

// Load decodes a YAML document, rejecting unknown keys, and compiles it.
func Load(r io.Reader) (*Config, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var doc Document
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, dtokit.Issues{{Code: dtokit.CodeParseError, Message: err.Error(), Cause: err}}
	}
	return Compile(doc)
}

// Compile validates a decoded Document. All issues found are reported
// together, sorted by path.
func Compile(doc Document) (*Config, error) {
	c := &compiler{doc: doc, built: map[string]*dtokit.Schema{}, state: map[string]int{}}
	names := make([]string, 0, len(doc.Schemas))
	for n := range doc.Schemas {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		c.schema(n, dtokit.Root().Field("schemas").Field(n))
	}

	cfg := &Config{schemas: c.built, profiles: map[string]*Profile{}}
	pnames := make([]string, 0, len(doc.Profiles))
	for n := range doc.Profiles {
		pnames = append(pnames, n)
	}
	sort.Strings(pnames)
	for _, n := range pnames {
		pd := doc.Profiles[n]
		at := dtokit.Root().Field("profiles").Field(n)
		s, ok := c.built[pd.Schema]
		if !ok {
			if _, declared := doc.Schemas[pd.Schema]; declared {
				// The schema itself failed; its issues are already recorded.
				continue
			}
			c.iss = dtokit.AppendIssues(c.iss, at.Field("schema").Issue(dtokit.CodeUnknownSchema, i18n.T(dtokit.CodeUnknownSchema, nil), "schema", pd.Schema))
			continue
		}
		rule, err := dtokit.NewRule(pd.Include, pd.Exclude)
		if err != nil {
			var ce *dtokit.ConfigError
			if errors.As(err, &ce) {
				for _, it := range ce.Issues() {
					it.Path = dtokit.JoinPath(at.String(), it.Path)
					c.iss = dtokit.AppendIssues(c.iss, it)
				}
				continue
			}
			return nil, err
		}
		cfg.profiles[n] = &Profile{
			Name:   n,
			Schema: s,
			Rule:   rule,
			Opt:    dtokit.SelectOpt{ExcludeNone: pd.ExcludeNone, ExcludeEmpty: pd.ExcludeEmpty},
		}
	}
	if len(c.iss) > 0 {
		sort.SliceStable(c.iss, func(i, j int) bool { return c.iss[i].Path < c.iss[j].Path })
		return nil, c.iss
	}
	return cfg, nil
}

const (
	unvisited = iota
	visiting
	done
)

type compiler struct {
	doc   Document
	built map[string]*dtokit.Schema
	state map[string]int
	iss   dtokit.Issues
}

// schema builds name after the schemas it references. It returns nil when the
// schema is missing or invalid; the reason is recorded in c.iss.
func (c *compiler) schema(name string, at dtokit.PathRef) *dtokit.Schema {
	switch c.state[name] {
	case done:
		return c.built[name]
	case visiting:
		c.iss = dtokit.AppendIssues(c.iss, at.Issue(CodeSchemaCycle, i18n.T(CodeSchemaCycle, nil), "schema", name))
		return nil
	}
	sd, ok := c.doc.Schemas[name]
	if !ok {
		c.iss = dtokit.AppendIssues(c.iss, at.Issue(dtokit.CodeUnknownSchema, i18n.T(dtokit.CodeUnknownSchema, nil), "schema", name))
		return nil
	}
	c.state[name] = visiting
	defer func() { c.state[name] = done }()

	base := dtokit.Root().Field("schemas").Field(name).Field("fields")
	specs := make([]dtokit.FieldSpec, 0, len(sd.Fields))
	ok = true
	for i, fd := range sd.Fields {
		sp := dtokit.FieldSpec{Name: fd.Name}
		for _, raw := range fd.Tags {
			tag, err := dtokit.ParseTag(raw)
			if err != nil {
				c.iss = dtokit.AppendIssues(c.iss, base.Index(i).Field("tags").Issue(dtokit.CodeInvalidTag, i18n.T(dtokit.CodeInvalidTag, nil), "tag", raw))
				ok = false
				continue
			}
			sp.Tags |= tag
		}
		if fd.Schema != "" {
			sp.Schema = c.schema(fd.Schema, base.Index(i).Field("schema"))
			if sp.Schema == nil {
				ok = false
			}
		}
		specs = append(specs, sp)
	}
	if !ok {
		return nil
	}
	s, err := dtokit.NewSchema(name, specs...)
	if err != nil {
		if iss, isIss := dtokit.AsIssues(err); isIss {
			for _, it := range iss {
				it.Path = dtokit.JoinPath("schemas", it.Path)
				c.iss = dtokit.AppendIssues(c.iss, it)
			}
		}
		return nil
	}
	c.built[name] = s
	return s
}
