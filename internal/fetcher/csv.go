package fetcher

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/rotisserie/eris"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// CSVOptions configures the CSV row reader.
type CSVOptions struct {
	Delimiter  rune // default ','
	Comment    rune // comment character (0 = none)
	LazyQuotes bool
	TrimSpace  bool
}

// RowReader reads CSV rows one at a time, resolving fields by header name.
// The first row is always treated as the header. Input is decoded as UTF-8
// with a leading byte-order mark stripped, so exported spreadsheets parse
// with clean column names.
type RowReader struct {
	reader *csv.Reader
	opts   CSVOptions
	header []string
	index  map[string]int
	line   int
}

// NewRowReader wraps r and consumes the header row.
func NewRowReader(r io.Reader, opts CSVOptions) (*RowReader, error) {
	decoded := transform.NewReader(r, unicode.UTF8BOM.NewDecoder())

	reader := csv.NewReader(decoded)
	if opts.Delimiter != 0 {
		reader.Comma = opts.Delimiter
	}
	if opts.Comment != 0 {
		reader.Comment = opts.Comment
	}
	reader.LazyQuotes = opts.LazyQuotes
	reader.FieldsPerRecord = -1 // allow variable fields

	rr := &RowReader{reader: reader, opts: opts}

	header, err := reader.Read()
	if err == io.EOF {
		return nil, eris.New("csv: missing header row")
	}
	if err != nil {
		return nil, eris.Wrap(err, "csv: read header")
	}
	if opts.TrimSpace {
		for i, field := range header {
			header[i] = strings.TrimSpace(field)
		}
	}

	rr.header = header
	rr.index = make(map[string]int, len(header))
	for i, name := range header {
		rr.index[name] = i
	}
	rr.line = 1

	return rr, nil
}

// Header returns the header row.
func (rr *RowReader) Header() []string {
	return rr.header
}

// Line returns the line number of the most recently read row, counting the
// header as line 1.
func (rr *RowReader) Line() int {
	return rr.line
}

// Next returns the next data row, or io.EOF when the input is exhausted.
func (rr *RowReader) Next() ([]string, error) {
	record, err := rr.reader.Read()
	if err == io.EOF {
		return nil, io.EOF
	}
	if err != nil {
		return nil, eris.Wrap(err, "csv: read row")
	}
	rr.line++

	if rr.opts.TrimSpace {
		for i, field := range record {
			record[i] = strings.TrimSpace(field)
		}
	}

	return record, nil
}

// Field returns the value of the named column in record, or "" when the
// column is absent from the header or the record is too short.
func (rr *RowReader) Field(record []string, name string) string {
	i, ok := rr.index[name]
	if !ok || i >= len(record) {
		return ""
	}
	return record[i]
}

// HasColumn reports whether the header contains the named column.
func (rr *RowReader) HasColumn(name string) bool {
	_, ok := rr.index[name]
	return ok
}
