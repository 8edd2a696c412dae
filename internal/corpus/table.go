package corpus

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// table is a parsed CSV file with a case-insensitive header. rows[i] is nil
// when data row i could not be parsed.
type table struct {
	columns map[string]int
	rows    [][]string
}

func (t *table) has(column string) bool {
	_, ok := t.columns[column]
	return ok
}

func (t *table) get(row []string, column string) string {
	i, ok := t.columns[column]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// readTable returns os.ErrNotExist (wrapped) for a missing file so callers can
// tell absence from corruption.
func readTable(path string, logger *slog.Logger) (*table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return parseTable(f, path, logger)
}

func parseTable(r io.Reader, path string, logger *slog.Logger) (*table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return &table{columns: map[string]int{}}, nil
		}
		return nil, fmt.Errorf("read header of %s: %w", path, err)
	}

	t := &table{columns: make(map[string]int, len(header))}
	for i, name := range header {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		if _, dup := t.columns[key]; !dup {
			t.columns[key] = i
		}
	}

	for row := 0; ; row++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		var parseErr *csv.ParseError
		switch {
		case errors.As(err, &parseErr):
			logger.Warn("skipping malformed corpus row",
				slog.String("path", path),
				slog.Int("row", row),
				slog.String("reason", parseErr.Err.Error()),
			)
			t.rows = append(t.rows, nil)
			continue
		case err != nil:
			return nil, fmt.Errorf("read %s: %w", path, err)
		}

		if len(record) != len(header) {
			logger.Warn("skipping malformed corpus row",
				slog.String("path", path),
				slog.Int("row", row),
				slog.String("reason", fmt.Sprintf("expected %d fields, got %d", len(header), len(record))),
			)
			t.rows = append(t.rows, nil)
			continue
		}

		t.rows = append(t.rows, record)
	}

	return t, nil
}

func writeTable(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		f.Close()
		return err
	}
	if err := w.WriteAll(rows); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
