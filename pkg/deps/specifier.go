package deps

import "strings"

// urlSeparator marks the start of a direct URL reference in a specifier.
const urlSeparator = " @ "

// operatorChars are the characters that can open a version constraint.
const operatorChars = "<>=!~"

// ParseSpecifier splits a raw PEP-508-style dependency declaration into a
// structured (name, version) pair. It is a splitter, not a validator: the
// version part is returned verbatim, operators, URLs, environment markers
// and surrounding whitespace included, and it never fails — inputs with no
// version or URL marker degrade to a bare name.
//
// Split priority:
//  1. URL form: the string contains " @ ". The name is everything before it
//     (trailing extras bracket group included); the version is everything
//     from " @ " to the end, untouched.
//  2. Constrained form: the first operator character (< > = ! ~) found
//     outside a balanced [...] extras group starts the version.
//  3. Bare form: the whole trimmed string is the name and the version is
//     empty.
func ParseSpecifier(raw string) ExtDep {
	if i := strings.Index(raw, urlSeparator); i >= 0 {
		return ExtDep{Name: raw[:i], Version: raw[i:]}
	}

	// Track bracket depth so an operator character inside an extras group
	// (e.g. a marker-ish extra name) never splits the specifier.
	depth := 0
	for i, r := range raw {
		switch {
		case r == '[':
			depth++
		case r == ']':
			if depth > 0 {
				depth--
			}
		case depth == 0 && strings.ContainsRune(operatorChars, r):
			return ExtDep{Name: raw[:i], Version: raw[i:]}
		}
	}

	return ExtDep{Name: strings.TrimSpace(raw)}
}
