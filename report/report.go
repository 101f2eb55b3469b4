// Package report serializes translation results and persists them
// atomically: the output is fully written to a temporary file in the
// destination directory, then renamed into place, so a failure mid-write
// never leaves a partial destination file.
package report

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"github.com/lokalize-tools/potrans/translate"
)

// Write persists records to path as ORIGINAL/TRANSLATION blocks
// separated by blank lines. Parent directories are created as needed.
func Write(path string, records []translate.Record) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".potrans-*")
	if err != nil {
		return fmt.Errorf("creating temporary file: %w", err)
	}
	tmpName := tmp.Name()

	if err := writeRecords(tmp, records); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing results: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temporary file: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}

func writeRecords(f *os.File, records []translate.Record) error {
	w := bufio.NewWriter(f)
	for i, r := range records {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "ORIGINAL: %s\n", r.Source)
		fmt.Fprintf(w, "TRANSLATION: %s\n", r.Translation)
	}
	return w.Flush()
}
