// Package pofile implements reading of PO/POT catalogs following the
// GNU gettext format specification. Only the parts needed to extract
// translatable strings are supported: the writer side of the format is
// out of scope for this tool.
package pofile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Entry represents a single message in a PO catalog.
type Entry struct {
	// MsgCtxt is the message context (msgctxt).
	MsgCtxt string
	// MsgID is the untranslated string.
	MsgID string
	// MsgIDPlural is the untranslated plural string, if any.
	MsgIDPlural string
	// MsgStr is the translated string (singular or the only form).
	MsgStr string
	// MsgStrPlural maps plural form index to translated string.
	MsgStrPlural map[int]string
	// Flags are format flags from "#," lines (e.g. "fuzzy", "c-format").
	Flags []string
	// Obsolete marks entries prefixed with "#~".
	Obsolete bool
}

// IsHeader reports whether the entry is the catalog metadata header
// (the entry with an empty msgid).
func (e *Entry) IsHeader() bool {
	return e.MsgID == "" && !e.Obsolete
}

// IsPlural reports whether the entry declares a plural form.
func (e *Entry) IsPlural() bool {
	return e.MsgIDPlural != ""
}

// HasFlag checks if a specific flag is present.
func (e *Entry) HasFlag(flag string) bool {
	for _, f := range e.Flags {
		if f == flag {
			return true
		}
	}
	return false
}

// File represents a parsed PO/POT catalog.
type File struct {
	// Header is the metadata entry (msgid "").
	Header *Entry
	// Entries are the message entries in catalog order.
	Entries []*Entry
}

// HeaderField returns a header field value by name (e.g. "Language").
func (f *File) HeaderField(name string) string {
	if f.Header == nil {
		return ""
	}
	for _, line := range strings.Split(f.Header.MsgStr, "\n") {
		if idx := strings.Index(line, ":"); idx > 0 {
			key := strings.TrimSpace(line[:idx])
			if strings.EqualFold(key, name) {
				return strings.TrimSpace(line[idx+1:])
			}
		}
	}
	return ""
}

// Translatable returns the entries carrying a translatable singular
// msgid: non-header, non-obsolete, non-plural, in catalog order.
func (f *File) Translatable() []*Entry {
	var result []*Entry
	for _, e := range f.Entries {
		if e.MsgID == "" || e.Obsolete || e.IsPlural() {
			continue
		}
		result = append(result, e)
	}
	return result
}

// Parse reads a PO/POT catalog from a reader.
func Parse(r io.Reader) (*File, error) {
	f := &File{}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 1024*1024), 1024*1024)

	var current *Entry
	var lastField string // tracks the field continuation lines attach to
	lineNum := 0

	flush := func() {
		if current == nil {
			return
		}
		if current.IsHeader() {
			f.Header = current
		} else {
			f.Entries = append(f.Entries, current)
		}
		current = nil
		lastField = ""
	}

	for scanner.Scan() {
		lineNum++
		line := scanner.Text()

		// Empty line separates entries
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}

		if current == nil {
			current = &Entry{MsgStrPlural: make(map[int]string)}
		}

		// Obsolete entries keep their fields behind a "#~ " prefix
		if strings.HasPrefix(line, "#~ ") {
			current.Obsolete = true
			line = line[3:]
		}

		// Comment lines: only flags matter for extraction
		if strings.HasPrefix(line, "#") {
			if strings.HasPrefix(line, "#,") {
				for _, flag := range strings.Split(strings.TrimSpace(line[2:]), ",") {
					if flag = strings.TrimSpace(flag); flag != "" {
						current.Flags = append(current.Flags, flag)
					}
				}
			}
			continue
		}

		switch {
		case strings.HasPrefix(line, "msgctxt "):
			current.MsgCtxt = Unquote(strings.TrimPrefix(line, "msgctxt "))
			lastField = "msgctxt"

		case strings.HasPrefix(line, "msgid_plural "):
			current.MsgIDPlural = Unquote(strings.TrimPrefix(line, "msgid_plural "))
			lastField = "msgid_plural"

		case strings.HasPrefix(line, "msgid "):
			current.MsgID = Unquote(strings.TrimPrefix(line, "msgid "))
			lastField = "msgid"

		case strings.HasPrefix(line, "msgstr["):
			var idx int
			if n, err := fmt.Sscanf(line, "msgstr[%d]", &idx); err != nil || n != 1 {
				return nil, fmt.Errorf("line %d: invalid msgstr index: %s", lineNum, line)
			}
			bracketEnd := strings.Index(line, "] ")
			if bracketEnd < 0 {
				return nil, fmt.Errorf("line %d: invalid msgstr format: %s", lineNum, line)
			}
			current.MsgStrPlural[idx] = Unquote(line[bracketEnd+2:])
			lastField = fmt.Sprintf("msgstr[%d]", idx)

		case strings.HasPrefix(line, "msgstr "):
			current.MsgStr = Unquote(strings.TrimPrefix(line, "msgstr "))
			lastField = "msgstr"

		case strings.HasPrefix(line, "\""):
			// Continuation line: append to the last seen field
			val := Unquote(line)
			switch {
			case lastField == "msgctxt":
				current.MsgCtxt += val
			case lastField == "msgid":
				current.MsgID += val
			case lastField == "msgid_plural":
				current.MsgIDPlural += val
			case lastField == "msgstr":
				current.MsgStr += val
			case strings.HasPrefix(lastField, "msgstr["):
				var idx int
				fmt.Sscanf(lastField, "msgstr[%d]", &idx)
				current.MsgStrPlural[idx] += val
			}
		}
	}

	flush()

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading PO catalog: %w", err)
	}

	return f, nil
}

// ParseFile reads a PO/POT catalog from disk.
func ParseFile(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

// Unquote removes PO-style quoting from a string: surrounding double
// quotes are stripped and standard escape sequences are resolved via
// Unescape.
func Unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return s
	}
	return Unescape(s[1 : len(s)-1])
}

// Unescape resolves PO escape sequences (\\, \", \n, \t) in s.
// Unknown escapes are left untouched.
func Unescape(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}

	var result strings.Builder
	result.Grow(len(s))

	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			switch s[i+1] {
			case 'n':
				result.WriteByte('\n')
				i++
			case 't':
				result.WriteByte('\t')
				i++
			case '\\':
				result.WriteByte('\\')
				i++
			case '"':
				result.WriteByte('"')
				i++
			default:
				result.WriteByte(s[i])
			}
		} else {
			result.WriteByte(s[i])
		}
	}
	return result.String()
}
