package deps

import "sort"

// Check compares a package's declared dependencies against externally
// supplied import mappings and reports the drift for both scopes.
//
// Each diff is the symmetric difference over the name sets: names declared
// in the package but absent from the imports mapping (unused), plus names
// present in the imports mapping but not declared (undeclared). Check is a
// pure function of its inputs and never fails; missing imports for a
// declared dependency are a reportable condition, not an error.
func Check(pkg PackageDeps, intImports, extImports Imports) CheckDiff {
	extNames := make([]string, 0, len(pkg.ExtDeps))
	for _, d := range pkg.ExtDeps {
		extNames = append(extNames, d.Name)
	}
	intNames := make([]string, 0, len(pkg.IntDeps))
	for _, d := range pkg.IntDeps {
		intNames = append(intNames, d.Name)
	}

	return CheckDiff{
		Package:       pkg,
		IntDepImports: intImports,
		ExtDepImports: extImports,
		IntDepDiff:    nameDiff(intNames, intImports),
		ExtDepDiff:    nameDiff(extNames, extImports),
	}
}

// nameDiff returns the sorted symmetric difference between the declared
// names and the keys of the imports mapping.
func nameDiff(declared []string, used Imports) []string {
	decl := make(map[string]bool, len(declared))
	for _, n := range declared {
		decl[n] = true
	}

	var diff []string
	for n := range decl {
		if _, ok := used[n]; !ok {
			diff = append(diff, n)
		}
	}
	for n := range used {
		if !decl[n] {
			diff = append(diff, n)
		}
	}

	sort.Strings(diff)
	return diff
}
