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

package browser

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sliceadapter "github.com/forgeui/gridtable/adapters/slice"
	"github.com/forgeui/gridtable/datatable"
)

func exportModel(t *testing.T) *datatable.TableModel {
	t.Helper()
	source, err := sliceadapter.NewFromMaps([]map[string]interface{}{
		{"id": "m-01", "material": "Steel Plate", "qty": int64(40)},
		{"id": "m-02", "material": "Copper Wire", "qty": int64(120)},
		{"id": "m-03", "material": "Steel Rod", "qty": int64(90)},
	})
	require.NoError(t, err)
	model, err := datatable.NewTableModel(source)
	require.NoError(t, err)
	return model
}

func TestExportFormatExt(t *testing.T) {
	assert.Equal(t, ".csv", FormatCSV.Ext())
	assert.Equal(t, ".json", FormatJSON.Ext())
	assert.Equal(t, ".parquet", FormatParquet.Ext())
}

func TestExportCSVWritesFilteredSortedView(t *testing.T) {
	model := exportModel(t)
	model.SetFilterText("material", "steel")
	require.NoError(t, model.SetSort("qty", datatable.SortDescending))

	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, Export(model, FormatCSV, path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "id,material,qty\nm-03,Steel Rod,90\nm-01,Steel Plate,40\n", string(content))
}

func TestExportCSVSkipsHiddenColumns(t *testing.T) {
	model := exportModel(t)
	require.NoError(t, model.HideColumn("id"))

	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, Export(model, FormatCSV, path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "material,qty\nSteel Plate,40\nCopper Wire,120\nSteel Rod,90\n", string(content))
}

func TestExportJSONUsesRawValues(t *testing.T) {
	model := exportModel(t)
	model.SetFilterText("id", "m-02")

	path := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, Export(model, FormatJSON, path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	var rows []map[string]interface{}
	require.NoError(t, json.Unmarshal(content, &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "Copper Wire", rows[0]["material"])
	assert.Equal(t, float64(120), rows[0]["qty"])
}

func TestExportParquetRoundTrip(t *testing.T) {
	model := exportModel(t)
	require.NoError(t, model.SetSort("qty", datatable.SortAscending))

	path := filepath.Join(t.TempDir(), "out.parquet")
	require.NoError(t, Export(model, FormatParquet, path))

	source, err := LoadDataSource(path)
	require.NoError(t, err)

	assert.Equal(t, 3, source.RowCount())
	assert.Equal(t, 3, source.ColumnCount())

	cell, err := source.Cell(0, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(40), cell.Raw)
	cell, err = source.Cell(2, 1)
	require.NoError(t, err)
	assert.Equal(t, "Copper Wire", cell.Formatted)
}

func TestExportExportsAllPagesNotJustCurrent(t *testing.T) {
	rows := make([]map[string]interface{}, 30)
	for i := range rows {
		rows[i] = map[string]interface{}{"seq": int64(i)}
	}
	source, err := sliceadapter.NewFromMaps(rows)
	require.NoError(t, err)
	model, err := datatable.NewTableModel(source)
	require.NoError(t, err)
	require.NoError(t, model.SetPageSize(10))

	path := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, Export(model, FormatJSON, path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	var out []map[string]interface{}
	require.NoError(t, json.Unmarshal(content, &out))
	assert.Len(t, out, 30)
}
