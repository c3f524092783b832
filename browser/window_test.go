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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sliceadapter "github.com/forgeui/gridtable/adapters/slice"
	"github.com/forgeui/gridtable/datatable"
)

func TestCleanFilename(t *testing.T) {
	assert.Equal(t, "materials_2026.csv", cleanFilename("materials 2026.csv"))
	assert.Equal(t, "orders.parquet", cleanFilename("orders?.parquet"))
	assert.Equal(t, "a-b_c.json", cleanFilename("a-b_c.json"))
}

func TestTabTitle(t *testing.T) {
	assert.Equal(t, "short.csv", tabTitle("short.csv"))

	long := tabTitle("a_very_long_material_master_extract_2026.csv")
	assert.LessOrEqual(t, len([]rune(long)), 29)
	assert.Contains(t, long, "…")
	assert.Contains(t, long, ".csv")
}

func TestColumnNamesIncludesHiddenColumns(t *testing.T) {
	source, err := sliceadapter.NewFromMaps([]map[string]interface{}{
		{"id": "m-01", "material": "Steel Plate", "qty": int64(40)},
	})
	require.NoError(t, err)
	model, err := datatable.NewTableModel(source)
	require.NoError(t, err)
	require.NoError(t, model.HideColumn("qty"))

	assert.Equal(t, []string{"id", "material", "qty"}, columnNames(model))
}
