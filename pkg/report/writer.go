// Package report writes JSON and CSV reports to the output directory.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
)

// Writer serializes reports into a directory, creating it on first use.
type Writer struct {
	fs  afero.Fs
	dir string
	now func() time.Time
}

func NewWriter(fs afero.Fs, dir string) *Writer {
	return &Writer{
		fs:  fs,
		dir: dir,
		now: time.Now,
	}
}

// FileName builds a timestamped report file name such as
// "dependabot-alerts-20240131-235959.json".
func (w *Writer) FileName(prefix, ext string) string {
	return fmt.Sprintf("%s-%s.%s", prefix, w.now().Format("20060102-150405"), ext)
}

// WriteJSON writes v as pretty printed JSON and returns the written path.
func (w *Writer) WriteJSON(name string, v any) (string, error) {
	if err := w.fs.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("create the output directory: %w", err)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal the report: %w", err)
	}
	p := filepath.Join(w.dir, name)
	if err := afero.WriteFile(w.fs, p, append(data, '\n'), 0o644); err != nil {
		return "", fmt.Errorf("write the report file: %w", err)
	}
	return p, nil
}

// WriteCSV writes a header row followed by rows and returns the written path.
func (w *Writer) WriteCSV(name string, header []string, rows [][]string) (string, error) {
	if err := w.fs.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("create the output directory: %w", err)
	}
	p := filepath.Join(w.dir, name)
	f, err := w.fs.Create(p)
	if err != nil {
		return "", fmt.Errorf("create the report file: %w", err)
	}
	defer f.Close()
	cw := csv.NewWriter(f)
	if err := cw.Write(header); err != nil {
		return "", fmt.Errorf("write the CSV header: %w", err)
	}
	if err := cw.WriteAll(rows); err != nil {
		return "", fmt.Errorf("write CSV rows: %w", err)
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return "", fmt.Errorf("flush the CSV writer: %w", err)
	}
	return p, nil
}
