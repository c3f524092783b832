// Copyright 2026 The gridtable Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package csv adapts comma/semicolon/tab separated files to the
// datatable.DataSource interface.
package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/forgeui/gridtable/datatable"
)

// Config controls how a CSV stream is read.
type Config struct {
	// Delimiter is the field separator.
	Delimiter rune

	// HasHeaders treats the first record as column names. Without it columns
	// are named column_1, column_2, ...
	HasHeaders bool

	// TrimSpace trims leading and trailing whitespace from every cell.
	TrimSpace bool

	// InferTypes promotes columns whose every non-empty cell parses as a
	// bool, int or float to that type. Empty cells become nulls in typed
	// columns.
	InferTypes bool
}

// DefaultConfig returns the config most files want: comma separated, headers
// in the first row, types inferred.
func DefaultConfig() Config {
	return Config{
		Delimiter:  ',',
		HasHeaders: true,
		InferTypes: true,
	}
}

// Source is a fully parsed CSV file. It is safe for concurrent reads.
type Source struct {
	names []string
	types []datatable.DataType
	rows  [][]datatable.Value
	meta  datatable.Metadata
}

var _ datatable.DataSource = (*Source)(nil)

// NewFromFile parses the file at path.
func NewFromFile(path string, config Config) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening csv file: %w", err)
	}
	defer f.Close()

	source, err := NewFromReader(f, config)
	if err != nil {
		return nil, err
	}
	source.meta["path"] = path
	return source, nil
}

// NewFromReader parses an entire CSV stream into memory.
func NewFromReader(r io.Reader, config Config) (*Source, error) {
	if config.Delimiter == 0 {
		config.Delimiter = ','
	}

	reader := csv.NewReader(r)
	reader.Comma = config.Delimiter
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading csv: %w", err)
	}
	if len(records) == 0 {
		return nil, datatable.ErrEmptyData
	}

	var names []string
	if config.HasHeaders {
		names = records[0]
		records = records[1:]
	} else {
		names = make([]string, len(records[0]))
		for i := range names {
			names[i] = fmt.Sprintf("column_%d", i+1)
		}
	}
	if config.TrimSpace {
		for i := range names {
			names[i] = strings.TrimSpace(names[i])
		}
		for _, rec := range records {
			for i := range rec {
				rec[i] = strings.TrimSpace(rec[i])
			}
		}
	}

	types := make([]datatable.DataType, len(names))
	for c := range types {
		types[c] = datatable.TypeString
		if config.InferTypes {
			types[c] = inferColumnType(records, c)
		}
	}

	rows := make([][]datatable.Value, len(records))
	for r, rec := range records {
		row := make([]datatable.Value, len(names))
		for c := range names {
			if c >= len(rec) {
				row[c] = datatable.NewNullValue(types[c])
				continue
			}
			row[c] = cellValue(rec[c], types[c])
		}
		rows[r] = row
	}

	return &Source{
		names: names,
		types: types,
		rows:  rows,
		meta:  datatable.Metadata{"adapter": "csv"},
	}, nil
}

// inferColumnType scans a column and returns the narrowest type every
// non-empty cell fits.
func inferColumnType(records [][]string, col int) datatable.DataType {
	sawValue := false
	isBool, isInt, isFloat := true, true, true
	for _, rec := range records {
		if col >= len(rec) || rec[col] == "" {
			continue
		}
		sawValue = true
		cell := rec[col]
		if _, err := strconv.ParseBool(cell); err != nil {
			isBool = false
		}
		if _, err := strconv.ParseInt(cell, 10, 64); err != nil {
			isInt = false
		}
		if _, err := strconv.ParseFloat(cell, 64); err != nil {
			isFloat = false
		}
		if !isBool && !isInt && !isFloat {
			return datatable.TypeString
		}
	}
	switch {
	case !sawValue:
		return datatable.TypeString
	case isBool:
		return datatable.TypeBool
	case isInt:
		return datatable.TypeInt
	case isFloat:
		return datatable.TypeFloat
	default:
		return datatable.TypeString
	}
}

// cellValue converts one cell into a typed Value. Cells that fail to parse
// as the column type fall back to string values rather than erroring; a
// column only gets a non-string type when every sampled cell agreed.
func cellValue(cell string, dataType datatable.DataType) datatable.Value {
	if cell == "" && dataType != datatable.TypeString {
		return datatable.NewNullValue(dataType)
	}
	switch dataType {
	case datatable.TypeBool:
		if b, err := strconv.ParseBool(cell); err == nil {
			return datatable.NewValue(b, dataType)
		}
	case datatable.TypeInt:
		if n, err := strconv.ParseInt(cell, 10, 64); err == nil {
			return datatable.NewValue(n, dataType)
		}
	case datatable.TypeFloat:
		if f, err := strconv.ParseFloat(cell, 64); err == nil {
			return datatable.NewValue(f, dataType)
		}
	}
	return datatable.NewValue(cell, datatable.TypeString)
}

// RowCount implements datatable.DataSource.
func (s *Source) RowCount() int { return len(s.rows) }

// ColumnCount implements datatable.DataSource.
func (s *Source) ColumnCount() int { return len(s.names) }

// ColumnName implements datatable.DataSource.
func (s *Source) ColumnName(col int) (string, error) {
	if col < 0 || col >= len(s.names) {
		return "", fmt.Errorf("%w: %d", datatable.ErrInvalidColumn, col)
	}
	return s.names[col], nil
}

// ColumnType implements datatable.DataSource.
func (s *Source) ColumnType(col int) (datatable.DataType, error) {
	if col < 0 || col >= len(s.types) {
		return 0, fmt.Errorf("%w: %d", datatable.ErrInvalidColumn, col)
	}
	return s.types[col], nil
}

// Cell implements datatable.DataSource.
func (s *Source) Cell(row, col int) (datatable.Value, error) {
	if row < 0 || row >= len(s.rows) {
		return datatable.Value{}, fmt.Errorf("%w: %d", datatable.ErrInvalidRow, row)
	}
	if col < 0 || col >= len(s.names) {
		return datatable.Value{}, fmt.Errorf("%w: %d", datatable.ErrInvalidColumn, col)
	}
	return s.rows[row][col], nil
}

// Row implements datatable.DataSource.
func (s *Source) Row(row int) ([]datatable.Value, error) {
	if row < 0 || row >= len(s.rows) {
		return nil, fmt.Errorf("%w: %d", datatable.ErrInvalidRow, row)
	}
	out := make([]datatable.Value, len(s.rows[row]))
	copy(out, s.rows[row])
	return out, nil
}

// Metadata implements datatable.DataSource.
func (s *Source) Metadata() datatable.Metadata { return s.meta }
