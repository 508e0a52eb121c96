// Package parser decodes tabular CSV uploads into an ordered sequence of
// field-name to value records, using the first row as the header.
package parser

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"
)

// ErrMalformedInput marks input that cannot be decoded at all, as opposed to
// rows with bad field values, which are the caller's concern.
var ErrMalformedInput = errors.New("malformed input")

// Record is one data row mapped onto the header. Line is the 1-based position
// among data rows (the header does not count).
type Record struct {
	Line   int
	fields map[string]string
}

// Get returns the value for a header field, or "" if the row had no cell
// for it.
func (r Record) Get(name string) string {
	return r.fields[name]
}

// Reader yields records from a CSV byte stream. It is single-pass: once a
// record has been read it cannot be replayed.
type Reader struct {
	header []string
	csv    *csv.Reader
	line   int
}

// New validates the byte stream and reads the header row. Undecodable bytes
// or an unreadable header fail with ErrMalformedInput before any record is
// yielded.
func New(data []byte) (*Reader, error) {
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("%w: input is not valid UTF-8", ErrMalformedInput)
	}

	cr := csv.NewReader(bytes.NewReader(data))
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: read header: %v", ErrMalformedInput, err)
	}

	return &Reader{header: header, csv: cr}, nil
}

// Header returns the field names from the first row.
func (r *Reader) Header() []string {
	return r.header
}

// Next returns the next record, padding short rows with empty values and
// dropping cells beyond the header width. It returns io.EOF when the input
// is exhausted.
func (r *Reader) Next() (Record, error) {
	row, err := r.csv.Read()
	if err == io.EOF {
		return Record{}, io.EOF
	}
	if err != nil {
		return Record{}, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}

	r.line++
	fields := make(map[string]string, len(r.header))
	for i, name := range r.header {
		if i < len(row) {
			fields[name] = row[i]
		} else {
			fields[name] = ""
		}
	}

	return Record{Line: r.line, fields: fields}, nil
}

// ReadAll drains the remaining records. Total record counts are only known
// once this completes.
func (r *Reader) ReadAll() ([]Record, error) {
	var records []Record
	for {
		rec, err := r.Next()
		if err == io.EOF {
			return records, nil
		}
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
}
