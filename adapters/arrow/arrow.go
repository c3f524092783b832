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

// Package arrow adapts Apache Arrow tables to the datatable.DataSource
// interface. The table's rows are materialised into Values at construction,
// so the source keeps no reference to the Arrow memory afterwards.
package arrow

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"

	"github.com/forgeui/gridtable/datatable"
)

// Source is an immutable snapshot of an Arrow table. It is safe for
// concurrent reads.
type Source struct {
	names []string
	types []datatable.DataType
	rows  [][]datatable.Value
	meta  datatable.Metadata
}

var _ datatable.DataSource = (*Source)(nil)

// NewFromArrowTable flattens table into a data source. The caller keeps
// ownership of the table and may release it once this returns.
func NewFromArrowTable(table arrow.Table) (*Source, error) {
	if table == nil {
		return nil, datatable.ErrNoDataSource
	}

	schema := table.Schema()
	names := make([]string, schema.NumFields())
	types := make([]datatable.DataType, schema.NumFields())
	for i, field := range schema.Fields() {
		names[i] = field.Name
		types[i] = mapArrowType(field.Type)
	}

	rows := make([][]datatable.Value, 0, table.NumRows())
	tr := array.NewTableReader(table, 4096)
	defer tr.Release()

	for tr.Next() {
		rec := tr.Record()
		for pos := 0; pos < int(rec.NumRows()); pos++ {
			row := make([]datatable.Value, len(names))
			for c := range names {
				row[c] = cellValue(rec.Column(c), pos, types[c])
			}
			rows = append(rows, row)
		}
	}
	if err := tr.Err(); err != nil {
		return nil, fmt.Errorf("reading arrow table: %w", err)
	}

	return &Source{
		names: names,
		types: types,
		rows:  rows,
		meta:  datatable.Metadata{"adapter": "arrow", "schema": schema.String()},
	}, nil
}

// mapArrowType reduces an Arrow type onto the datatable type set.
func mapArrowType(dt arrow.DataType) datatable.DataType {
	switch dt.ID() {
	case arrow.BOOL:
		return datatable.TypeBool
	case arrow.INT8, arrow.INT16, arrow.INT32, arrow.INT64,
		arrow.UINT8, arrow.UINT16, arrow.UINT32, arrow.UINT64:
		return datatable.TypeInt
	case arrow.FLOAT16, arrow.FLOAT32, arrow.FLOAT64:
		return datatable.TypeFloat
	case arrow.DATE32, arrow.DATE64:
		return datatable.TypeDate
	case arrow.TIMESTAMP:
		return datatable.TypeTimestamp
	case arrow.BINARY, arrow.LARGE_BINARY, arrow.FIXED_SIZE_BINARY:
		return datatable.TypeBinary
	case arrow.DECIMAL128, arrow.DECIMAL256:
		return datatable.TypeDecimal
	case arrow.STRUCT:
		return datatable.TypeStruct
	case arrow.LIST, arrow.LARGE_LIST, arrow.FIXED_SIZE_LIST:
		return datatable.TypeList
	default:
		return datatable.TypeString
	}
}

// cellValue extracts one typed value from an Arrow array. Types without a
// natural Go scalar fall back to the array's string rendering.
func cellValue(col arrow.Array, pos int, dataType datatable.DataType) datatable.Value {
	if col.IsNull(pos) {
		return datatable.NewNullValue(dataType)
	}

	switch arr := col.(type) {
	case *array.String:
		return datatable.NewValue(arr.Value(pos), dataType)
	case *array.LargeString:
		return datatable.NewValue(arr.Value(pos), dataType)
	case *array.Boolean:
		return datatable.NewValue(arr.Value(pos), dataType)
	case *array.Int8:
		return datatable.NewValue(int64(arr.Value(pos)), dataType)
	case *array.Int16:
		return datatable.NewValue(int64(arr.Value(pos)), dataType)
	case *array.Int32:
		return datatable.NewValue(int64(arr.Value(pos)), dataType)
	case *array.Int64:
		return datatable.NewValue(arr.Value(pos), dataType)
	case *array.Uint8:
		return datatable.NewValue(int64(arr.Value(pos)), dataType)
	case *array.Uint16:
		return datatable.NewValue(int64(arr.Value(pos)), dataType)
	case *array.Uint32:
		return datatable.NewValue(int64(arr.Value(pos)), dataType)
	case *array.Uint64:
		return datatable.NewValue(int64(arr.Value(pos)), dataType)
	case *array.Float16:
		return datatable.NewValue(float64(arr.Value(pos).Float32()), dataType)
	case *array.Float32:
		return datatable.NewValue(float64(arr.Value(pos)), dataType)
	case *array.Float64:
		return datatable.NewValue(arr.Value(pos), dataType)
	case *array.Date32:
		return datatable.NewValue(arr.Value(pos).ToTime(), dataType)
	case *array.Date64:
		return datatable.NewValue(arr.Value(pos).ToTime(), dataType)
	case *array.Timestamp:
		unit := arr.DataType().(*arrow.TimestampType).Unit
		return datatable.NewValue(arr.Value(pos).ToTime(unit), dataType)
	case *array.Binary:
		return datatable.NewValue(arr.Value(pos), dataType)
	default:
		return datatable.NewValue(col.ValueStr(pos), dataType)
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
