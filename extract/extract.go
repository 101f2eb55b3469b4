// Package extract turns a PO/POT catalog into the ordered sequence of
// translatable source strings.
//
// Two parser variants are available behind the same interface: the full
// gettext parser from the pofile package (default), and a minimal
// line-oriented scanner that only understands the msgid/continuation
// grammar. Both yield the same sequence for well-formed catalogs.
package extract

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"

	"github.com/lokalize-tools/potrans/pofile"
)

// Parser modes accepted by New.
const (
	ModePO   = "po"   // full gettext parser (pofile)
	ModeScan = "scan" // minimal line-grammar scanner
)

// SourceEntry is one translatable string extracted from a catalog.
type SourceEntry struct {
	// Text is the unescaped msgid. Never empty.
	Text string
	// Ordinal is the zero-based position among extracted entries,
	// used to keep output in catalog order.
	Ordinal int
}

// Parser extracts translatable strings from a catalog stream.
type Parser interface {
	Parse(r io.Reader) ([]SourceEntry, error)
}

// New returns the parser for the given mode.
func New(mode string) (Parser, error) {
	switch mode {
	case "", ModePO:
		return poParser{}, nil
	case ModeScan:
		return scanParser{}, nil
	default:
		return nil, fmt.Errorf("unknown parser mode %q (valid: %s, %s)", mode, ModePO, ModeScan)
	}
}

// FromFile opens path and extracts entries using the parser for mode.
func FromFile(path, mode string) ([]SourceEntry, error) {
	p, err := New(mode)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return p.Parse(f)
}

// ---------------------------------------------------------------------------
// Full gettext parser
// ---------------------------------------------------------------------------

// poParser delegates to the pofile package. Header, obsolete, and
// plural entries are excluded; only singular msgids survive.
type poParser struct{}

func (poParser) Parse(r io.Reader) ([]SourceEntry, error) {
	f, err := pofile.Parse(r)
	if err != nil {
		return nil, err
	}

	var entries []SourceEntry
	for _, e := range f.Translatable() {
		if e.MsgID == "" {
			continue
		}
		entries = append(entries, SourceEntry{Text: e.MsgID, Ordinal: len(entries)})
	}
	return entries, nil
}

// ---------------------------------------------------------------------------
// Line-grammar scanner
// ---------------------------------------------------------------------------

var (
	scanStart = regexp.MustCompile(`^msgid\s+"(.*)"\s*$`)
	scanCont  = regexp.MustCompile(`^"(.*)"\s*$`)
)

// scanParser recognizes only the msgid line grammar:
//
//	msgid "first part"
//	"second part"
//
// A logical entry ends at the first line that is not a continuation;
// that line is then re-evaluated as a possible new entry start. Entries
// whose assembled content is empty (the catalog header) are discarded.
type scanParser struct{}

func (scanParser) Parse(r io.Reader) ([]SourceEntry, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 1024*1024), 1024*1024)

	var entries []SourceEntry
	var parts []string
	collecting := false

	flush := func() {
		text := ""
		for _, p := range parts {
			text += pofile.Unescape(p)
		}
		if text != "" {
			entries = append(entries, SourceEntry{Text: text, Ordinal: len(entries)})
		}
		collecting = false
		parts = nil
	}

	for scanner.Scan() {
		line := scanner.Text()

		if !collecting {
			if m := scanStart.FindStringSubmatch(line); m != nil {
				collecting = true
				parts = []string{m[1]}
			}
			continue
		}

		if m := scanCont.FindStringSubmatch(line); m != nil {
			parts = append(parts, m[1])
			continue
		}

		// End of the continued msgid; the terminating line may itself
		// start a new entry.
		flush()
		if m := scanStart.FindStringSubmatch(line); m != nil {
			collecting = true
			parts = []string{m[1]}
		}
	}

	if collecting {
		flush()
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	return entries, nil
}
