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

package arrow

import (
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgeui/gridtable/datatable"
)

func buildTestTable(t *testing.T) arrow.Table {
	t.Helper()

	schema := arrow.NewSchema([]arrow.Field{
		{Name: "material", Type: arrow.BinaryTypes.String},
		{Name: "qty", Type: arrow.PrimitiveTypes.Int64, Nullable: true},
		{Name: "price", Type: arrow.PrimitiveTypes.Float64},
		{Name: "active", Type: arrow.FixedWidthTypes.Boolean},
	}, nil)

	b := array.NewRecordBuilder(memory.NewGoAllocator(), schema)
	defer b.Release()

	b.Field(0).(*array.StringBuilder).AppendValues(
		[]string{"Steel Plate", "Aluminum Sheet", "Copper Wire"}, nil)
	qty := b.Field(1).(*array.Int64Builder)
	qty.Append(40)
	qty.AppendNull()
	qty.Append(7)
	b.Field(2).(*array.Float64Builder).AppendValues([]float64{120.5, 89.9, 240}, nil)
	b.Field(3).(*array.BooleanBuilder).AppendValues([]bool{true, true, false}, nil)

	rec := b.NewRecord()
	defer rec.Release()

	return array.NewTableFromRecords(schema, []arrow.Record{rec})
}

func TestNewFromArrowTable(t *testing.T) {
	table := buildTestTable(t)
	defer table.Release()

	src, err := NewFromArrowTable(table)
	require.NoError(t, err)

	assert.Equal(t, 3, src.RowCount())
	assert.Equal(t, 4, src.ColumnCount())

	name, err := src.ColumnName(0)
	require.NoError(t, err)
	assert.Equal(t, "material", name)

	wantTypes := []datatable.DataType{
		datatable.TypeString,
		datatable.TypeInt,
		datatable.TypeFloat,
		datatable.TypeBool,
	}
	for i, want := range wantTypes {
		dt, err := src.ColumnType(i)
		require.NoError(t, err)
		assert.Equal(t, want, dt, i)
	}

	v, err := src.Cell(0, 0)
	require.NoError(t, err)
	assert.Equal(t, "Steel Plate", v.Formatted)

	v, err = src.Cell(0, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(40), v.Raw)

	v, err = src.Cell(2, 3)
	require.NoError(t, err)
	assert.Equal(t, false, v.Raw)
}

func TestNullsSurviveConversion(t *testing.T) {
	table := buildTestTable(t)
	defer table.Release()

	src, err := NewFromArrowTable(table)
	require.NoError(t, err)

	v, err := src.Cell(1, 1)
	require.NoError(t, err)
	assert.True(t, v.IsNull)
	assert.Equal(t, datatable.TypeInt, v.Type)
}

func TestSourceOutlivesArrowTable(t *testing.T) {
	table := buildTestTable(t)
	src, err := NewFromArrowTable(table)
	require.NoError(t, err)
	table.Release()

	v, err := src.Cell(2, 0)
	require.NoError(t, err)
	assert.Equal(t, "Copper Wire", v.Formatted)
}

func TestNewFromArrowTableNil(t *testing.T) {
	_, err := NewFromArrowTable(nil)
	assert.ErrorIs(t, err, datatable.ErrNoDataSource)
}

func TestRowAccess(t *testing.T) {
	table := buildTestTable(t)
	defer table.Release()

	src, err := NewFromArrowTable(table)
	require.NoError(t, err)

	row, err := src.Row(1)
	require.NoError(t, err)
	require.Len(t, row, 4)
	assert.Equal(t, "Aluminum Sheet", row[0].Formatted)

	_, err = src.Row(5)
	assert.ErrorIs(t, err, datatable.ErrInvalidRow)
}
