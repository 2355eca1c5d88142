package config

import (
	"regexp"
	"strings"

	"github.com/weldtool/weld/pkg/errors"
)

// Document is the format-preservation anchor for a manifest: the original
// text held line by line, edited only through point mutations (append an
// array entry, upsert a table key, append a table). Everything the overlay
// does not touch — comments, key order, whitespace, hyphenated key spellings
// — renders back byte-for-byte.
//
// The document is never re-parsed after an edit; syntactic validation of the
// input text is the loader's job.
type Document struct {
	lines []string
}

// parseDocument splits text into the line model. Splitting keeps a trailing
// empty element when the text ends with a newline, so String round-trips the
// input exactly.
func parseDocument(text string) *Document {
	return &Document{lines: strings.Split(text, "\n")}
}

// String renders the document back to text.
func (d *Document) String() string {
	return strings.Join(d.lines, "\n")
}

// clone returns an independent copy so edits never touch the anchor.
func (d *Document) clone() *Document {
	lines := make([]string, len(d.lines))
	copy(lines, d.lines)
	return &Document{lines: lines}
}

// HasTable reports whether a [path] table header exists in the document.
func (d *Document) HasTable(path string) bool {
	_, _, ok := d.sectionBounds(path)
	return ok
}

// AppendArrayItem appends value as a new entry of the table.key array,
// preserving the array's existing layout: multiline arrays gain a new
// indented line before the closing bracket, inline arrays grow in place.
func (d *Document) AppendArrayItem(table, key, value string) error {
	start, end, ok := d.sectionBounds(table)
	if !ok {
		return errors.New(errors.ErrCodeSchema, "table [%s] not found in document", table)
	}

	pat := keyPattern(key)
	idx := -1
	for i := start + 1; i < end; i++ {
		if pat.MatchString(d.lines[i]) {
			idx = i
			break
		}
	}
	if idx < 0 {
		return errors.New(errors.ErrCodeSchema, "key %q not found in [%s]", key, table)
	}

	line := d.lines[idx]
	open := strings.Index(line, "[")
	if open < 0 {
		return errors.New(errors.ErrCodeSchema, "%s.%s is not an array", table, key)
	}

	if close := strings.LastIndex(line, "]"); close > open {
		d.lines[idx] = spliceInline(line, open, close, value)
		return nil
	}

	closeIdx := -1
	for i := idx + 1; i < end; i++ {
		if strings.HasPrefix(strings.TrimSpace(d.lines[i]), "]") {
			closeIdx = i
			break
		}
	}
	if closeIdx < 0 {
		return errors.New(errors.ErrCodeMalformedDocument, "unterminated array for %s.%s", table, key)
	}

	indent := "    "
	lastEntry := -1
	for i := closeIdx - 1; i > idx; i-- {
		if strings.TrimSpace(d.lines[i]) != "" {
			lastEntry = i
			break
		}
	}
	if lastEntry > idx {
		entry := d.lines[lastEntry]
		indent = leadingWhitespace(entry)
		trimmed := strings.TrimRight(entry, " \t")
		if !strings.HasSuffix(trimmed, ",") && !strings.HasPrefix(strings.TrimSpace(entry), "#") {
			d.lines[lastEntry] = trimmed + ","
		}
	}

	d.insertLine(closeIdx, indent+value+",")
	return nil
}

// UpsertKey sets key = raw inside the [table] section, replacing the
// existing assignment line or appending a new one after the section's last
// non-blank line.
func (d *Document) UpsertKey(table, key, raw string) error {
	start, end, ok := d.sectionBounds(table)
	if !ok {
		return errors.New(errors.ErrCodeSchema, "table [%s] not found in document", table)
	}

	pat := keyPattern(key)
	for i := start + 1; i < end; i++ {
		if pat.MatchString(d.lines[i]) {
			d.lines[i] = leadingWhitespace(d.lines[i]) + formatKey(key) + " = " + raw
			return nil
		}
	}

	insertAt := start + 1
	indent := ""
	for i := end - 1; i > start; i-- {
		if strings.TrimSpace(d.lines[i]) != "" {
			insertAt = i + 1
			indent = leadingWhitespace(d.lines[i])
			break
		}
	}
	d.insertLine(insertAt, indent+formatKey(key)+" = "+raw)
	return nil
}

// AppendTable appends a new [path] table with the given preformatted entry
// lines at the end of the document, separated from the preceding content by
// a blank line. A trailing final newline is kept in place.
func (d *Document) AppendTable(path string, entryLines []string) {
	finalNewline := false
	if n := len(d.lines); n > 0 && d.lines[n-1] == "" {
		d.lines = d.lines[:n-1]
		finalNewline = true
	}
	if n := len(d.lines); n > 0 && strings.TrimSpace(d.lines[n-1]) != "" {
		d.lines = append(d.lines, "")
	}
	d.lines = append(d.lines, "["+path+"]")
	d.lines = append(d.lines, entryLines...)
	if finalNewline {
		d.lines = append(d.lines, "")
	}
}

// sectionBounds returns the header line index of [path] and the index one
// past the section's last line (the next header, or end of document).
func (d *Document) sectionBounds(path string) (int, int, bool) {
	start := -1
	for i, line := range d.lines {
		name, ok := headerName(line)
		if !ok {
			continue
		}
		if start >= 0 {
			return start, i, true
		}
		if name == path {
			start = i
		}
	}
	if start >= 0 {
		return start, len(d.lines), true
	}
	return 0, 0, false
}

func (d *Document) insertLine(at int, line string) {
	d.lines = append(d.lines, "")
	copy(d.lines[at+1:], d.lines[at:])
	d.lines[at] = line
}

// headerName extracts the dotted table name from a header line, stripping
// quoting and interior spaces. Array-of-table headers are skipped; the
// overlay never edits those.
func headerName(line string) (string, bool) {
	trim := strings.TrimSpace(line)
	if !strings.HasPrefix(trim, "[") || strings.HasPrefix(trim, "[[") {
		return "", false
	}
	end := strings.Index(trim, "]")
	if end < 0 {
		return "", false
	}
	name := trim[1:end]
	name = strings.ReplaceAll(name, " ", "")
	name = strings.ReplaceAll(name, `"`, "")
	name = strings.ReplaceAll(name, "'", "")
	return name, true
}

// keyPattern matches an assignment line for key, bare or quoted.
func keyPattern(key string) *regexp.Regexp {
	quoted := regexp.QuoteMeta(key)
	return regexp.MustCompile(`^\s*(?:"` + quoted + `"|'` + quoted + `'|` + quoted + `)\s*=`)
}

// spliceInline inserts value before the closing bracket of a single-line
// array, reusing ", " as the separator unless the array is empty or already
// ends with a comma.
func spliceInline(line string, open, close int, value string) string {
	if strings.TrimSpace(line[open+1:close]) == "" {
		return line[:open+1] + value + line[close:]
	}
	head := strings.TrimRight(line[:close], " \t")
	sep := ", "
	if strings.HasSuffix(head, ",") {
		sep = " "
	}
	return head + sep + value + line[close:]
}

func leadingWhitespace(line string) string {
	return line[:len(line)-len(strings.TrimLeft(line, " \t"))]
}

var bareKeyRE = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// formatKey renders a table key, quoting it when it cannot be written bare.
func formatKey(key string) string {
	if bareKeyRE.MatchString(key) {
		return key
	}
	return quoteTOML(key)
}

// quoteTOML renders s as a TOML basic string.
func quoteTOML(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
