package audit

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

const utf8BOM = "\ufeff"

// CSVFile appends rows to a comma-separated file. The file is opened and
// closed on each write; the BOM and header are written only when the write
// creates it.
type CSVFile struct {
	Path string
}

func NewCSVFile(path string) (*CSVFile, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}

	return &CSVFile{Path: path}, nil
}

func (f *CSVFile) Write(_ context.Context, row Row) (err error) {
	if err = os.MkdirAll(filepath.Dir(f.Path), 0o755); err != nil {
		return fmt.Errorf("creating log directory: %w", err)
	}

	_, err = os.Stat(f.Path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("checking log file: %w", err)
	}
	created := err != nil

	file, err := os.OpenFile(f.Path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0o644)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing log file: %w", cerr)
		}
	}()

	w := csv.NewWriter(file)

	if created {
		if _, err = file.WriteString(utf8BOM); err != nil {
			return fmt.Errorf("writing bom: %w", err)
		}
		if err = w.Write(Header); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	if err = w.Write(row.Record()); err != nil {
		return fmt.Errorf("writing row: %w", err)
	}

	w.Flush()
	if err = w.Error(); err != nil {
		return fmt.Errorf("flushing row: %w", err)
	}

	return nil
}
