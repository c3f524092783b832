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

package widget

import (
	"fmt"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	fynewidget "fyne.io/fyne/v2/widget"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sliceadapter "github.com/forgeui/gridtable/adapters/slice"
	"github.com/forgeui/gridtable/datatable"
)

func testModel(t *testing.T, rows int) *datatable.TableModel {
	t.Helper()
	records := make([]map[string]interface{}, rows)
	for i := 0; i < rows; i++ {
		records[i] = map[string]interface{}{
			"id":       fmt.Sprintf("m-%02d", i),
			"material": fmt.Sprintf("Material %02d", i),
			"qty":      int64(i * 3),
		}
	}
	src, err := sliceadapter.NewFromMaps(records)
	require.NoError(t, err)
	m, err := datatable.NewTableModel(src)
	require.NoError(t, err)
	return m
}

func showTable(t *testing.T, dt *DataTable) fyne.Window {
	t.Helper()
	w := test.NewWindow(dt)
	w.Resize(fyne.NewSize(800, 600))
	t.Cleanup(w.Close)
	return w
}

func TestNewDataTableDefaults(t *testing.T) {
	test.NewApp()
	m := testModel(t, 3)
	dt := NewDataTable(m)
	showTable(t, dt)

	assert.Same(t, m, dt.Model())
	assert.False(t, dt.Loading())
	assert.Len(t, dt.body.Objects, 3)
}

func TestLoadingShowsSkeletonRows(t *testing.T) {
	test.NewApp()
	m := testModel(t, 30)
	config := DefaultConfig()
	config.PageSize = 5
	dt := NewDataTableWithConfig(m, config)
	showTable(t, dt)

	dt.SetLoading(true)
	assert.True(t, dt.Loading())
	assert.Len(t, dt.body.Objects, 5)
	assert.False(t, dt.pageBar.Visible())

	dt.SetLoading(false)
	assert.Len(t, dt.body.Objects, 5)
	assert.True(t, dt.pageBar.Visible())
}

func TestEmptyStateMessage(t *testing.T) {
	test.NewApp()
	src, err := sliceadapter.NewFromRecords([]string{"id", "material"}, nil)
	require.NoError(t, err)
	m, err := datatable.NewTableModel(src)
	require.NoError(t, err)

	config := DefaultConfig()
	config.EmptyMessage = "Nothing to show"
	dt := NewDataTableWithConfig(m, config)
	showTable(t, dt)

	require.Len(t, dt.body.Objects, 1)
	assert.False(t, dt.pageBar.Visible())
}

func TestEmptyStateAfterFiltering(t *testing.T) {
	test.NewApp()
	m := testModel(t, 4)
	dt := NewDataTable(m)
	showTable(t, dt)

	m.SetFilterText("material", "no such row")
	dt.Refresh()
	assert.Len(t, dt.body.Objects, 1)

	m.ClearFilters()
	dt.Refresh()
	assert.Len(t, dt.body.Objects, 4)
}

func TestHeaderTapSorts(t *testing.T) {
	test.NewApp()
	m := testModel(t, 4)
	dt := NewDataTable(m)
	showTable(t, dt)

	// columns in lexical order: id, material, qty
	test.Tap(dt.headerBtns[2])
	name, dir := m.SortColumn()
	assert.Equal(t, "qty", name)
	assert.Equal(t, datatable.SortAscending, dir)
	assert.True(t, dt.headerBtns[2].icon.Visible())

	test.Tap(dt.headerBtns[2])
	_, dir = m.SortColumn()
	assert.Equal(t, datatable.SortDescending, dir)
}

func TestFilterEntryUpdatesModel(t *testing.T) {
	test.NewApp()
	m := testModel(t, 10)
	dt := NewDataTable(m)
	showTable(t, dt)

	// first filter cell belongs to the selection column
	entry, ok := dt.filterCells[2].(*fynewidget.Entry)
	require.True(t, ok)
	entry.SetText("Material 03")

	assert.Equal(t, 1, m.VisibleRowCount())
	assert.Len(t, dt.body.Objects, 1)
}

func TestSelectAllTriState(t *testing.T) {
	test.NewApp()
	m := testModel(t, 30)
	config := DefaultConfig()
	config.PageSize = 10
	dt := NewDataTableWithConfig(m, config)
	showTable(t, dt)

	require.NotNil(t, dt.selectAll)
	assert.Equal(t, TriUnchecked, dt.selectAll.State())

	test.Tap(dt.selectAll)
	assert.Equal(t, 10, m.SelectedCount())
	assert.Equal(t, TriChecked, dt.selectAll.State())

	// tapping again deselects the page
	test.Tap(dt.selectAll)
	assert.Equal(t, 0, m.SelectedCount())
	assert.Equal(t, TriUnchecked, dt.selectAll.State())

	// a single selected row shows the partial state
	require.NoError(t, m.ToggleRowSelection(0))
	dt.Refresh()
	assert.Equal(t, TriPartial, dt.selectAll.State())

	// partial select-all promotes to the full page
	test.Tap(dt.selectAll)
	assert.Equal(t, 10, m.SelectedCount())
}

func TestSelectAllOnlyCurrentPage(t *testing.T) {
	test.NewApp()
	m := testModel(t, 30)
	config := DefaultConfig()
	config.PageSize = 10
	dt := NewDataTableWithConfig(m, config)
	showTable(t, dt)

	test.Tap(dt.selectAll)
	test.Tap(dt.nextBtn)

	assert.Equal(t, 2, m.Page())
	assert.Equal(t, TriUnchecked, dt.selectAll.State())
	assert.Equal(t, 10, m.SelectedCount())
}

func TestRowTapCallback(t *testing.T) {
	test.NewApp()
	m := testModel(t, 4)
	var tapped []datatable.Value
	config := DefaultConfig()
	config.OnRowTapped = func(row []datatable.Value) { tapped = row }
	dt := NewDataTableWithConfig(m, config)
	showTable(t, dt)

	row, ok := dt.body.Objects[1].(*tableRow)
	require.True(t, ok)
	test.Tap(row)

	require.Len(t, tapped, 3)
	assert.Equal(t, "m-01", tapped[0].Formatted)
}

func TestRowCheckboxDoesNotFireRowCallback(t *testing.T) {
	test.NewApp()
	m := testModel(t, 4)
	calls := 0
	config := DefaultConfig()
	config.OnRowTapped = func([]datatable.Value) { calls++ }
	dt := NewDataTableWithConfig(m, config)
	showTable(t, dt)

	row, ok := dt.body.Objects[0].(*tableRow)
	require.True(t, ok)
	check := findTriCheck(row.content)
	require.NotNil(t, check)
	test.Tap(check)

	assert.Equal(t, 0, calls)
	assert.True(t, m.IsRowSelected(0))
}

func findTriCheck(o fyne.CanvasObject) *TriCheck {
	switch v := o.(type) {
	case *TriCheck:
		return v
	case *fyne.Container:
		for _, child := range v.Objects {
			if found := findTriCheck(child); found != nil {
				return found
			}
		}
	}
	return nil
}

func TestPaginationControls(t *testing.T) {
	test.NewApp()
	m := testModel(t, 30)
	config := DefaultConfig()
	config.PageSize = 10
	dt := NewDataTableWithConfig(m, config)
	showTable(t, dt)

	assert.Equal(t, "Page 1 of 3", dt.pageLabel.Text)
	assert.True(t, dt.prevBtn.Disabled())
	assert.False(t, dt.nextBtn.Disabled())

	test.Tap(dt.nextBtn)
	assert.Equal(t, "Page 2 of 3", dt.pageLabel.Text)
	assert.False(t, dt.prevBtn.Disabled())

	test.Tap(dt.nextBtn)
	assert.Equal(t, "Page 3 of 3", dt.pageLabel.Text)
	assert.True(t, dt.nextBtn.Disabled())

	test.Tap(dt.prevBtn)
	assert.Equal(t, "Page 2 of 3", dt.pageLabel.Text)
}

func TestPageSizeSelect(t *testing.T) {
	test.NewApp()
	m := testModel(t, 30)
	config := DefaultConfig()
	config.PageSize = 10
	dt := NewDataTableWithConfig(m, config)
	showTable(t, dt)

	m.NextPage()
	dt.sizeSelect.SetSelected("25")

	assert.Equal(t, 25, m.PageSize())
	assert.Equal(t, 1, m.Page())
	assert.Len(t, dt.body.Objects, 25)
}

func TestPaginationDisabledShowsAllRows(t *testing.T) {
	test.NewApp()
	m := testModel(t, 30)
	config := DefaultConfig()
	config.Pagination = false
	dt := NewDataTableWithConfig(m, config)
	showTable(t, dt)

	assert.False(t, m.PaginationEnabled())
	assert.Len(t, dt.body.Objects, 30)
}

func TestStatusBarText(t *testing.T) {
	test.NewApp()
	m := testModel(t, 12)
	dt := NewDataTable(m)
	showTable(t, dt)

	assert.Equal(t, "12 rows", dt.statusLabel.Text)

	// Material 00 .. Material 09 match, 10 and 11 do not
	m.SetFilterText("material", "Material 0")
	require.NoError(t, m.ToggleRowSelection(0))
	require.NoError(t, m.SetSort("qty", datatable.SortDescending))
	dt.Refresh()

	assert.Equal(t, "10 of 12 rows | 1 selected | Sorted: qty ↓", dt.statusLabel.Text)
}

func TestReloadAfterColumnChange(t *testing.T) {
	test.NewApp()
	m := testModel(t, 4)
	dt := NewDataTable(m)
	showTable(t, dt)

	require.NoError(t, m.HideColumn("qty"))
	dt.Reload()

	assert.Len(t, dt.headerBtns, 2)
	assert.Len(t, dt.body.Objects, 4)
}

func TestTriCheckWidget(t *testing.T) {
	test.NewApp()
	var last *bool
	c := NewTriCheck(func(checked bool) { last = &checked })
	w := test.NewWindow(c)
	t.Cleanup(w.Close)

	assert.Equal(t, TriUnchecked, c.State())

	test.Tap(c)
	require.NotNil(t, last)
	assert.True(t, *last)
	assert.Equal(t, TriChecked, c.State())

	test.Tap(c)
	assert.False(t, *last)
	assert.Equal(t, TriUnchecked, c.State())

	// partial resolves to checked on tap
	c.SetState(TriPartial)
	last = nil
	test.Tap(c)
	assert.Equal(t, TriChecked, c.State())
	require.NotNil(t, last)
	assert.True(t, *last)

	// SetState must not fire the callback
	last = nil
	c.SetState(TriUnchecked)
	assert.Nil(t, last)
}
