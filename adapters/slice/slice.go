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

// Package slice adapts in-memory Go slices to the datatable.DataSource
// interface.
package slice

import (
	"fmt"
	"sort"
	"time"

	"github.com/forgeui/gridtable/datatable"
)

// Source is an immutable, fully materialised data source. It is safe for
// concurrent reads.
type Source struct {
	names []string
	types []datatable.DataType
	rows  [][]datatable.Value
	meta  datatable.Metadata
}

var _ datatable.DataSource = (*Source)(nil)

// NewFromMaps builds a source from records keyed by column name. Columns are
// the union of all record keys in lexical order; missing keys become nulls.
// Column types are inferred from the first non-nil value seen.
func NewFromMaps(records []map[string]interface{}) (*Source, error) {
	if len(records) == 0 {
		return nil, datatable.ErrEmptyData
	}

	seen := make(map[string]struct{})
	names := make([]string, 0)
	for _, rec := range records {
		for key := range rec {
			if _, ok := seen[key]; !ok {
				seen[key] = struct{}{}
				names = append(names, key)
			}
		}
	}
	sort.Strings(names)
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: records have no keys", datatable.ErrEmptyData)
	}

	types := make([]datatable.DataType, len(names))
	for i, name := range names {
		types[i] = datatable.TypeString
		for _, rec := range records {
			if raw, ok := rec[name]; ok && raw != nil {
				types[i] = inferType(raw)
				break
			}
		}
	}

	rows := make([][]datatable.Value, len(records))
	for r, rec := range records {
		row := make([]datatable.Value, len(names))
		for c, name := range names {
			raw, ok := rec[name]
			if !ok || raw == nil {
				row[c] = datatable.NewNullValue(types[c])
				continue
			}
			row[c] = datatable.NewValue(raw, types[c])
		}
		rows[r] = row
	}

	return &Source{
		names: names,
		types: types,
		rows:  rows,
		meta:  datatable.Metadata{"adapter": "slice"},
	}, nil
}

// NewFromRecords builds a string-typed source from a header row and cell
// records. Short records are padded with nulls, long ones truncated.
func NewFromRecords(headers []string, records [][]string) (*Source, error) {
	if len(headers) == 0 {
		return nil, fmt.Errorf("%w: no headers", datatable.ErrEmptyData)
	}

	types := make([]datatable.DataType, len(headers))
	for i := range types {
		types[i] = datatable.TypeString
	}

	rows := make([][]datatable.Value, len(records))
	for r, rec := range records {
		row := make([]datatable.Value, len(headers))
		for c := range headers {
			if c >= len(rec) {
				row[c] = datatable.NewNullValue(datatable.TypeString)
				continue
			}
			row[c] = datatable.NewValue(rec[c], datatable.TypeString)
		}
		rows[r] = row
	}

	return &Source{
		names: append([]string(nil), headers...),
		types: types,
		rows:  rows,
		meta:  datatable.Metadata{"adapter": "slice"},
	}, nil
}

// inferType maps a raw Go value onto a DataType.
func inferType(raw interface{}) datatable.DataType {
	switch raw.(type) {
	case bool:
		return datatable.TypeBool
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return datatable.TypeInt
	case float32, float64:
		return datatable.TypeFloat
	case time.Time:
		return datatable.TypeTimestamp
	case []byte:
		return datatable.TypeBinary
	case map[string]interface{}:
		return datatable.TypeStruct
	case []interface{}:
		return datatable.TypeList
	default:
		return datatable.TypeString
	}
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
