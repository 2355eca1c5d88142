// Package deps defines the dependency record model shared by the config
// overlay, the diff engine and the CLI.
//
// The model mirrors what a workspace package declares (external and internal
// dependencies) and what an external import scanner observed (the Imports
// mapping). The diff engine compares the two and reports drift in both
// directions.
package deps

// ExtDep is an external dependency declared in a package manifest.
//
// Name carries any extras markup verbatim (e.g. "uvicorn[standard]").
// Version is the verbatim remainder of the specifier, including leading
// separator characters and any environment marker; it is empty for bare
// declarations.
type ExtDep struct {
	Name    string
	Version string
}

// IntDep is an internal (workspace) dependency. An empty Version means the
// dependency is path-based and carries no constraint.
type IntDep struct {
	Name    string
	Version string
}

// PackageDeps is one workspace package's dependency record: its identity,
// its location in the workspace, and its declared dependency lists. It is
// mutable and owned by whichever process is editing the package's manifest.
type PackageDeps struct {
	Name    string
	Path    string
	ExtDeps []ExtDep
	IntDeps []IntDep
}

// Imports maps a dependency name to the module names actually imported
// under it, as reported by an external import scanner. Only the keys matter
// to the diff engine; the module lists are carried through for reporting.
type Imports map[string][]string

// CheckDiff reports the drift between a package's declared dependencies and
// the imports observed in its source. The diff slices hold dependency names
// that are declared but unused, or used but undeclared, sorted for
// deterministic output.
type CheckDiff struct {
	Package       PackageDeps
	IntDepImports Imports
	ExtDepImports Imports
	IntDepDiff    []string
	ExtDepDiff    []string
}

// Clean reports whether the diff found no drift in either direction.
func (d CheckDiff) Clean() bool {
	return len(d.IntDepDiff) == 0 && len(d.ExtDepDiff) == 0
}
