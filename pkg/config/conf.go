// Package config loads, mutates and re-serializes pyproject.toml documents
// for workspace packages.
//
// The package keeps two representations of a document: a typed overlay
// (Conf) for reading and altering the fields weld governs, and the original
// text retained as a format-preservation anchor. Serialization merges only
// the overlay's delta into the anchor, so comments, ordering and whitespace
// survive everywhere the overlay did not write.
//
// A Conf is only ever created by Load; the lifecycle is Load → mutate →
// Serialize, once. Re-serializing after further mutation should start from
// a fresh Load of the produced text.
package config

import (
	"bytes"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/weldtool/weld/pkg/deps"
	"github.com/weldtool/weld/pkg/errors"
)

const defaultRequiresPython = ">= 3.8"

func defaultMembers() []string {
	return []string{"libs/*", "apps/*"}
}

// Project mirrors the [project] table fields the overlay reads and writes.
// Dependencies holds the raw specifier strings in the exact textual form
// they will be serialized in; the specifier parser interprets them but never
// normalizes them away.
type Project struct {
	Name           string   `toml:"name"`
	Version        string   `toml:"version"`
	RequiresPython string   `toml:"requires_python"`
	Dependencies   []string `toml:"dependencies"`
}

// UvWorkspace holds the workspace member globs from [tool.uv.workspace].
type UvWorkspace struct {
	Members []string `toml:"members"`
}

// UvSource flags whether a dependency resolves from the workspace rather
// than a registry.
type UvSource struct {
	Workspace bool `toml:"workspace"`
}

// Uv mirrors the [tool.uv] table.
type Uv struct {
	Workspace UvWorkspace         `toml:"workspace"`
	Sources   map[string]UvSource `toml:"sources"`
}

// Una mirrors the [tool.una] table.
type Una struct {
	Namespace      string            `toml:"namespace"`
	RequiresPython string            `toml:"requires_python"`
	Deps           map[string]string `toml:"deps"`
}

// Tool groups the tool tables the overlay knows about.
type Tool struct {
	Uv  Uv  `toml:"uv"`
	Una Una `toml:"una"`
}

// Conf is the typed, mutable overlay of a manifest document. It is created
// only by Load, which also retains the original text as the anchor used for
// format-preserving output.
type Conf struct {
	Project Project
	Tool    Tool

	anchor   *Document // original text; nil only when Conf was misconstructed
	origDeps []string  // project.dependencies as loaded, for the merge delta
}

// view carries the table tags for decoding the renamed tree.
type view struct {
	Project Project `toml:"project"`
	Tool    Tool    `toml:"tool"`
}

// Load parses text into a Conf.
//
// It fails with MALFORMED_DOCUMENT when the text is not valid TOML and with
// SCHEMA_ERROR when the required tables are missing or cannot be coerced to
// the overlay's field types. Before coercion every hyphenated key in the
// parsed tree is rewritten to its underscore spelling; the rewrite feeds the
// typed view only — the anchor keeps the original text, so untouched
// hyphenated keys come back out exactly as written.
func Load(text string) (*Conf, error) {
	var raw map[string]any
	if err := toml.Unmarshal([]byte(text), &raw); err != nil {
		return nil, errors.Wrap(errors.ErrCodeMalformedDocument, err, "document is not valid TOML")
	}

	renameKeys(raw, "-", "_")

	project, ok := raw["project"].(map[string]any)
	if !ok {
		return nil, errors.New(errors.ErrCodeSchema, "missing required table: project")
	}
	if _, ok := project["dependencies"]; !ok {
		return nil, errors.New(errors.ErrCodeSchema, "project.dependencies must be set")
	}
	if _, ok := raw["tool"].(map[string]any); !ok {
		return nil, errors.New(errors.ErrCodeSchema, "missing required table: tool")
	}

	var v view
	if err := redecode(raw, &v); err != nil {
		return nil, errors.Wrap(errors.ErrCodeSchema, err, "document does not match the expected schema")
	}

	conf := &Conf{
		Project:  v.Project,
		Tool:     v.Tool,
		anchor:   parseDocument(text),
		origDeps: append([]string(nil), v.Project.Dependencies...),
	}

	if conf.Project.RequiresPython == "" {
		conf.Project.RequiresPython = defaultRequiresPython
	}
	if conf.Tool.Uv.Workspace.Members == nil {
		conf.Tool.Uv.Workspace.Members = defaultMembers()
	}
	if conf.Tool.Uv.Sources == nil {
		conf.Tool.Uv.Sources = make(map[string]UvSource)
	}
	if conf.Tool.Una.Deps == nil {
		conf.Tool.Una.Deps = make(map[string]string)
	}

	return conf, nil
}

// PackageDeps builds the package's dependency record from the overlay.
// Declared specifier strings run through the parser; entries whose source is
// flagged workspace = true are classified as internal dependencies, the rest
// as external.
func (c *Conf) PackageDeps(path string) deps.PackageDeps {
	pkg := deps.PackageDeps{Name: c.Project.Name, Path: path}
	for _, raw := range c.Project.Dependencies {
		d := deps.ParseSpecifier(raw)
		if src, ok := c.Tool.Uv.Sources[d.Name]; ok && src.Workspace {
			pkg.IntDeps = append(pkg.IntDeps, deps.IntDep{Name: d.Name, Version: d.Version})
		} else {
			pkg.ExtDeps = append(pkg.ExtDeps, d)
		}
	}
	return pkg
}

// renameKeys rewrites every key containing old to use new instead, applied
// recursively through nested tables. Arrays are not descended into; the
// overlay's typed fields never live inside arrays of tables.
func renameKeys(v any, old, new string) {
	m, ok := v.(map[string]any)
	if !ok {
		return
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	for _, k := range keys {
		val := m[k]
		renameKeys(val, old, new)
		if strings.Contains(k, old) {
			delete(m, k)
			m[strings.ReplaceAll(k, old, new)] = val
		}
	}
}

// redecode round-trips the renamed tree through the TOML codec to coerce it
// into the typed view. Shape mismatches surface here as decode errors.
func redecode(raw map[string]any, out any) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(raw); err != nil {
		return err
	}
	return toml.Unmarshal(buf.Bytes(), out)
}
