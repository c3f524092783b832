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

package slice

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgeui/gridtable/datatable"
)

func TestNewFromMaps(t *testing.T) {
	src, err := NewFromMaps([]map[string]interface{}{
		{"name": "Steel Plate", "qty": int64(40), "price": 120.5},
		{"name": "Copper Wire", "qty": int64(7)},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, src.RowCount())
	assert.Equal(t, 3, src.ColumnCount())

	// columns come out in lexical order
	for i, want := range []string{"name", "price", "qty"} {
		name, err := src.ColumnName(i)
		require.NoError(t, err)
		assert.Equal(t, want, name)
	}

	dt, err := src.ColumnType(2)
	require.NoError(t, err)
	assert.Equal(t, datatable.TypeInt, dt)
	dt, err = src.ColumnType(1)
	require.NoError(t, err)
	assert.Equal(t, datatable.TypeFloat, dt)

	// missing key becomes a null of the column type
	v, err := src.Cell(1, 1)
	require.NoError(t, err)
	assert.True(t, v.IsNull)
	assert.Equal(t, datatable.TypeFloat, v.Type)

	v, err = src.Cell(0, 2)
	require.NoError(t, err)
	assert.Equal(t, "40", v.Formatted)
}

func TestNewFromMapsInference(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	src, err := NewFromMaps([]map[string]interface{}{
		{"flag": true, "when": now, "blob": []byte{1, 2}, "tags": []interface{}{"a"}},
	})
	require.NoError(t, err)

	wantTypes := map[string]datatable.DataType{
		"blob": datatable.TypeBinary,
		"flag": datatable.TypeBool,
		"tags": datatable.TypeList,
		"when": datatable.TypeTimestamp,
	}
	for i := 0; i < src.ColumnCount(); i++ {
		name, err := src.ColumnName(i)
		require.NoError(t, err)
		dt, err := src.ColumnType(i)
		require.NoError(t, err)
		assert.Equal(t, wantTypes[name], dt, name)
	}
}

func TestNewFromMapsEmpty(t *testing.T) {
	_, err := NewFromMaps(nil)
	assert.ErrorIs(t, err, datatable.ErrEmptyData)

	_, err = NewFromMaps([]map[string]interface{}{{}})
	assert.ErrorIs(t, err, datatable.ErrEmptyData)
}

func TestNewFromRecords(t *testing.T) {
	src, err := NewFromRecords(
		[]string{"name", "status"},
		[][]string{
			{"Steel Plate", "active"},
			{"Copper Wire"},                   // short record padded
			{"Brass Fitting", "active", "ex"}, // long record truncated
		},
	)
	require.NoError(t, err)

	assert.Equal(t, 3, src.RowCount())
	assert.Equal(t, 2, src.ColumnCount())

	v, err := src.Cell(1, 1)
	require.NoError(t, err)
	assert.True(t, v.IsNull)

	row, err := src.Row(2)
	require.NoError(t, err)
	require.Len(t, row, 2)
	assert.Equal(t, "Brass Fitting", row[0].Formatted)
}

func TestNewFromRecordsNoHeaders(t *testing.T) {
	_, err := NewFromRecords(nil, [][]string{{"a"}})
	assert.ErrorIs(t, err, datatable.ErrEmptyData)
}

func TestBoundsErrors(t *testing.T) {
	src, err := NewFromRecords([]string{"a"}, [][]string{{"1"}})
	require.NoError(t, err)

	_, err = src.Cell(5, 0)
	assert.ErrorIs(t, err, datatable.ErrInvalidRow)
	_, err = src.Cell(0, 5)
	assert.ErrorIs(t, err, datatable.ErrInvalidColumn)
	_, err = src.ColumnName(-1)
	assert.ErrorIs(t, err, datatable.ErrInvalidColumn)
	_, err = src.Row(9)
	assert.ErrorIs(t, err, datatable.ErrInvalidRow)
}

func TestRowReturnsCopy(t *testing.T) {
	src, err := NewFromRecords([]string{"a"}, [][]string{{"x"}})
	require.NoError(t, err)

	row, err := src.Row(0)
	require.NoError(t, err)
	row[0] = datatable.NewValue("mutated", datatable.TypeString)

	again, err := src.Cell(0, 0)
	require.NoError(t, err)
	assert.Equal(t, "x", again.Formatted)
}
