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

package csv

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgeui/gridtable/datatable"
)

const sampleCSV = `id,material,price,qty,active
m-01,Steel Plate,120.5,40,true
m-02,Aluminum Sheet,89.9,12,true
m-03,Copper Wire,240.0,7,false
`

func TestNewFromReader(t *testing.T) {
	src, err := NewFromReader(strings.NewReader(sampleCSV), DefaultConfig())
	require.NoError(t, err)

	assert.Equal(t, 3, src.RowCount())
	assert.Equal(t, 5, src.ColumnCount())

	name, err := src.ColumnName(1)
	require.NoError(t, err)
	assert.Equal(t, "material", name)

	// inferred column types
	wantTypes := []datatable.DataType{
		datatable.TypeString,
		datatable.TypeString,
		datatable.TypeFloat,
		datatable.TypeInt,
		datatable.TypeBool,
	}
	for i, want := range wantTypes {
		dt, err := src.ColumnType(i)
		require.NoError(t, err)
		assert.Equal(t, want, dt, i)
	}

	v, err := src.Cell(0, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(40), v.Raw)
	assert.Equal(t, "40", v.Formatted)

	v, err = src.Cell(2, 4)
	require.NoError(t, err)
	assert.Equal(t, false, v.Raw)
}

func TestNewFromReaderNoInference(t *testing.T) {
	cfg := DefaultConfig()
	cfg.InferTypes = false
	src, err := NewFromReader(strings.NewReader(sampleCSV), cfg)
	require.NoError(t, err)

	dt, err := src.ColumnType(3)
	require.NoError(t, err)
	assert.Equal(t, datatable.TypeString, dt)
}

func TestNewFromReaderNoHeaders(t *testing.T) {
	cfg := DefaultConfig()
	cfg.HasHeaders = false
	src, err := NewFromReader(strings.NewReader("a,1\nb,2\n"), cfg)
	require.NoError(t, err)

	assert.Equal(t, 2, src.RowCount())
	name, err := src.ColumnName(0)
	require.NoError(t, err)
	assert.Equal(t, "column_1", name)
	name, err = src.ColumnName(1)
	require.NoError(t, err)
	assert.Equal(t, "column_2", name)
}

func TestNewFromReaderSemicolon(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Delimiter = ';'
	src, err := NewFromReader(strings.NewReader("name;qty\nSteel;40\n"), cfg)
	require.NoError(t, err)

	assert.Equal(t, 2, src.ColumnCount())
	v, err := src.Cell(0, 1)
	require.NoError(t, err)
	assert.Equal(t, "40", v.Formatted)
}

func TestNewFromReaderTrimSpace(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TrimSpace = true
	cfg.InferTypes = false
	src, err := NewFromReader(strings.NewReader("name , qty\n Steel , 40 \n"), cfg)
	require.NoError(t, err)

	name, err := src.ColumnName(0)
	require.NoError(t, err)
	assert.Equal(t, "name", name)
	v, err := src.Cell(0, 0)
	require.NoError(t, err)
	assert.Equal(t, "Steel", v.Formatted)
}

func TestEmptyCellsBecomeNulls(t *testing.T) {
	src, err := NewFromReader(strings.NewReader("qty\n40\n\n7\n"), DefaultConfig())
	require.NoError(t, err)

	// the blank line is skipped by the reader, both cells parse as ints
	assert.Equal(t, 2, src.RowCount())

	src, err = NewFromReader(strings.NewReader("qty,name\n40,a\n,b\n"), DefaultConfig())
	require.NoError(t, err)
	v, err := src.Cell(1, 0)
	require.NoError(t, err)
	assert.True(t, v.IsNull)
	assert.Equal(t, datatable.TypeInt, v.Type)
}

func TestMixedColumnStaysString(t *testing.T) {
	src, err := NewFromReader(strings.NewReader("code\n42\nA7\n"), DefaultConfig())
	require.NoError(t, err)

	dt, err := src.ColumnType(0)
	require.NoError(t, err)
	assert.Equal(t, datatable.TypeString, dt)
}

func TestNewFromReaderEmpty(t *testing.T) {
	_, err := NewFromReader(strings.NewReader(""), DefaultConfig())
	assert.ErrorIs(t, err, datatable.ErrEmptyData)
}

func TestNewFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "materials.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o644))

	src, err := NewFromFile(path, DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, 3, src.RowCount())
	assert.Equal(t, path, src.Metadata()["path"])

	_, err = NewFromFile(filepath.Join(t.TempDir(), "missing.csv"), DefaultConfig())
	assert.Error(t, err)
}
