package config

import (
	"sort"
	"strings"

	"github.com/weldtool/weld/pkg/errors"
)

// Serialize renders the overlay back to manifest text, merging only the
// delta into the retained original-text anchor.
//
// New dependencies are the exact-string set difference between the overlay's
// list and the list as loaded — an entry differing by a single character is
// wholly new, never an edit of an existing line. Each new entry is appended
// to the anchor's dependency array in its existing layout. Sources are
// upserted into [tool.uv.sources] when the anchor has that table; otherwise
// a [tool.una.deps] table is written from the overlay's Una deps mapping.
//
// It fails with NO_ANCHOR when the Conf was not produced by Load.
func (c *Conf) Serialize() (string, error) {
	if c.anchor == nil {
		return "", errors.New(errors.ErrCodeNoAnchor, "document has no original-text anchor; construct it with Load")
	}

	doc := c.anchor.clone()

	orig := make(map[string]bool, len(c.origDeps))
	for _, dep := range c.origDeps {
		orig[dep] = true
	}

	seen := make(map[string]bool)
	for _, dep := range c.Project.Dependencies {
		if orig[dep] || seen[dep] {
			continue
		}
		seen[dep] = true
		if err := doc.AppendArrayItem("project", "dependencies", quoteTOML(normalizeMarkerSpacing(dep))); err != nil {
			return "", err
		}
	}

	if err := c.mergeSources(doc); err != nil {
		return "", err
	}

	out := doc.String()

	// Whole-document safety net, condition-gated: when any current
	// dependency is a URL reference with an environment marker, every
	// semicolon in the rendered text gains a trailing space and double
	// spaces collapse — wherever they appear, dependency line or not.
	for _, dep := range c.Project.Dependencies {
		if strings.Contains(dep, " @ ") && strings.Contains(dep, ";") {
			out = strings.ReplaceAll(out, ";", "; ")
			out = strings.ReplaceAll(out, "  ", " ")
			break
		}
	}

	return out, nil
}

// mergeSources applies the two-path source merge: upsert into the anchor's
// [tool.uv.sources] table when it exists, otherwise fall back to writing a
// [tool.una.deps] table from the overlay's Una deps mapping.
func (c *Conf) mergeSources(doc *Document) error {
	if doc.HasTable("tool.uv.sources") {
		for _, name := range sortedKeys(c.Tool.Uv.Sources) {
			raw := inlineWorkspace(c.Tool.Uv.Sources[name].Workspace)
			if err := doc.UpsertKey("tool.uv.sources", name, raw); err != nil {
				return err
			}
		}
		return nil
	}

	if doc.HasTable("tool.una.deps") {
		for _, name := range sortedKeys(c.Tool.Una.Deps) {
			if err := doc.UpsertKey("tool.una.deps", name, quoteTOML(c.Tool.Una.Deps[name])); err != nil {
				return err
			}
		}
		return nil
	}

	lines := make([]string, 0, len(c.Tool.Una.Deps))
	for _, name := range sortedKeys(c.Tool.Una.Deps) {
		lines = append(lines, formatKey(name)+" = "+quoteTOML(c.Tool.Una.Deps[name]))
	}
	doc.AppendTable("tool.una.deps", lines)
	return nil
}

// normalizeMarkerSpacing rewrites a URL dependency with an environment
// marker so every ";" separator is followed by exactly one space before the
// entry is appended. Other specifiers pass through untouched.
func normalizeMarkerSpacing(dep string) string {
	if !strings.Contains(dep, " @ ") || !strings.Contains(dep, ";") {
		return dep
	}
	parts := strings.Split(dep, ";")
	for i := 1; i < len(parts); i++ {
		parts[i] = " " + parts[i]
	}
	return strings.Join(parts, ";")
}

// inlineWorkspace renders a source entry as an inline table.
func inlineWorkspace(workspace bool) string {
	if workspace {
		return "{ workspace = true }"
	}
	return "{ workspace = false }"
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
