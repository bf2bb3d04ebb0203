// Package source reads the Food.com CSV exports into rows of nullable cells.
package source

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/franz/recipedb/internal/util"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Cell is a single CSV value. Valid is false when the value is missing.
type Cell struct {
	Value string
	Valid bool
}

// Row is one data record addressed by column name
type Row struct {
	header map[string]int
	fields []string
}

// Cell returns the named value. Unknown columns, short records and NA
// tokens all yield an invalid cell.
func (r Row) Cell(name string) Cell {
	idx, ok := r.header[normalizeColumn(name)]
	if !ok || idx >= len(r.fields) {
		return Cell{}
	}
	v := r.fields[idx]
	if IsNA(v) {
		return Cell{Value: v}
	}
	return Cell{Value: v, Valid: true}
}

// Has reports whether the header contains the column
func (r Row) Has(name string) bool {
	_, ok := r.header[normalizeColumn(name)]
	return ok
}

// Reader streams rows from a CSV file with a header line
type Reader struct {
	file   *os.File
	csv    *csv.Reader
	header map[string]int
	line   int
}

// Open opens a CSV file and consumes its header. A missing file is
// reported as util.ErrInputMissing.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", util.ErrInputMissing, path)
		}
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}

	r, err := newReader(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to read header of %s: %w", path, err)
	}
	r.file = f
	return r, nil
}

func newReader(src io.Reader) (*Reader, error) {
	// Strips a leading UTF-8 BOM so the first header cell matches.
	decoded := transform.NewReader(src, unicode.BOMOverride(unicode.UTF8.NewDecoder()))

	cr := csv.NewReader(decoded)
	cr.FieldsPerRecord = -1

	names, err := cr.Read()
	if err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("empty file")
		}
		return nil, err
	}

	header := make(map[string]int, len(names))
	for i, name := range names {
		key := normalizeColumn(name)
		if _, dup := header[key]; !dup {
			header[key] = i
		}
	}

	return &Reader{csv: cr, header: header, line: 1}, nil
}

// Require checks that every named column is present in the header
func (r *Reader) Require(columns ...string) error {
	var missing []string
	for _, c := range columns {
		if _, ok := r.header[normalizeColumn(c)]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", util.ErrMissingColumn, strings.Join(missing, ", "))
	}
	return nil
}

// Next returns the next row, or io.EOF when the file is exhausted
func (r *Reader) Next() (Row, error) {
	fields, err := r.csv.Read()
	if err != nil {
		if err == io.EOF {
			return Row{}, io.EOF
		}
		return Row{}, fmt.Errorf("line %d: %w", r.line+1, err)
	}
	r.line++
	return Row{header: r.header, fields: fields}, nil
}

// Close releases the underlying file
func (r *Reader) Close() error {
	if r.file == nil {
		return nil
	}
	return r.file.Close()
}

func normalizeColumn(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
