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

package datatable

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
)

// DefaultPageSize is the page size used when the caller does not set one.
const DefaultPageSize = 25

// DefaultKeyColumn is the column consulted for row identity when no key
// function is configured.
const DefaultKeyColumn = "id"

// RowKeyFunc derives a row's identity from its source values. The boolean
// return is false when no usable key can be produced for the row.
type RowKeyFunc func(row []Value) (string, bool)

// TableModel owns the transient view state of a table: per-column text
// filters, a single sort column, 1-based pagination and a selection set keyed
// by row identity. The pipeline is always filter, then sort, then paginate.
// The model never mutates its DataSource.
//
// All state lives in memory and dies with the model. Methods are safe for
// concurrent use, though a table is normally driven from one UI goroutine.
type TableModel struct {
	mu sync.RWMutex

	source   DataSource
	columns  []Column
	colIndex map[string]int
	colNames []string
	hidden   map[string]struct{}

	filters   map[string]string
	rowFilter Filter
	filterErr error

	sortColumn string
	sortDir    SortDirection

	paginated bool
	pageSize  int
	page      int

	selected  map[string]struct{}
	keyColumn string
	keyFunc   RowKeyFunc

	// filtered caches source row indices after filter+sort.
	filtered []int
}

// NewTableModel creates a model over source with one sortable, filterable
// column per source column.
func NewTableModel(source DataSource) (*TableModel, error) {
	cols, err := ColumnsFromSource(source)
	if err != nil {
		return nil, err
	}
	return NewTableModelWithColumns(source, cols)
}

// NewTableModelWithColumns creates a model over source using the supplied
// column descriptors. Descriptor names must be unique and resolve to source
// columns.
func NewTableModelWithColumns(source DataSource, columns []Column) (*TableModel, error) {
	if source == nil {
		return nil, ErrNoDataSource
	}
	if err := validateColumns(columns); err != nil {
		return nil, err
	}

	m := &TableModel{
		source:    source,
		columns:   columns,
		hidden:    make(map[string]struct{}),
		filters:   make(map[string]string),
		selected:  make(map[string]struct{}),
		paginated: true,
		pageSize:  DefaultPageSize,
		page:      1,
		keyColumn: DefaultKeyColumn,
		sortDir:   SortNone,
	}
	if err := m.indexColumns(); err != nil {
		return nil, err
	}
	m.recompute()
	return m, nil
}

// indexColumns maps descriptor names to source column indices.
func (m *TableModel) indexColumns() error {
	count := m.source.ColumnCount()
	byName := make(map[string]int, count)
	names := make([]string, count)
	for i := 0; i < count; i++ {
		name, err := m.source.ColumnName(i)
		if err != nil {
			return err
		}
		byName[name] = i
		names[i] = name
	}
	for _, c := range m.columns {
		if _, ok := byName[c.Name]; !ok {
			return fmt.Errorf("%w: %q", ErrColumnNotFound, c.Name)
		}
	}
	m.colIndex = byName
	m.colNames = names
	return nil
}

// SetSource replaces the underlying rows while keeping filters, sort,
// pagination and selection state. Derived state is recomputed immediately and
// the current page is clamped.
func (m *TableModel) SetSource(source DataSource) error {
	if source == nil {
		return ErrNoDataSource
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	old := m.source
	m.source = source
	if err := m.indexColumns(); err != nil {
		m.source = old
		_ = m.indexColumns() // old source indexed fine before
		return err
	}
	m.recompute()
	return nil
}

// Source returns the underlying data source.
func (m *TableModel) Source() DataSource {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.source
}

// --- columns -------------------------------------------------------------

// Columns returns all column descriptors, hidden ones included.
func (m *TableModel) Columns() []Column {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Column, len(m.columns))
	copy(out, m.columns)
	return out
}

// VisibleColumns returns the descriptors currently shown, in order.
func (m *TableModel) VisibleColumns() []Column {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.visibleColumnsLocked()
}

func (m *TableModel) visibleColumnsLocked() []Column {
	out := make([]Column, 0, len(m.columns))
	for _, c := range m.columns {
		if _, off := m.hidden[c.Name]; !off {
			out = append(out, c)
		}
	}
	return out
}

// OriginalColumnCount returns the number of source columns.
func (m *TableModel) OriginalColumnCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.columns)
}

// VisibleColumnCount returns the number of columns currently shown.
func (m *TableModel) VisibleColumnCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.visibleColumnsLocked())
}

// VisibleColumnName returns the name of the visible column at col.
func (m *TableModel) VisibleColumnName(col int) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	vis := m.visibleColumnsLocked()
	if col < 0 || col >= len(vis) {
		return "", fmt.Errorf("%w: %d", ErrInvalidColumn, col)
	}
	return vis[col].Name, nil
}

// HideColumn removes a column from the visible set. Filters and sort keyed to
// the column become inert until it is shown again.
func (m *TableModel) HideColumn(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.colIndex[name]; !ok {
		return fmt.Errorf("%w: %q", ErrColumnNotFound, name)
	}
	m.hidden[name] = struct{}{}
	m.recompute()
	return nil
}

// ShowColumn returns a hidden column to the visible set.
func (m *TableModel) ShowColumn(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.colIndex[name]; !ok {
		return fmt.Errorf("%w: %q", ErrColumnNotFound, name)
	}
	delete(m.hidden, name)
	m.recompute()
	return nil
}

// IsColumnVisible reports whether the named column is currently shown.
func (m *TableModel) IsColumnVisible(name string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if _, ok := m.colIndex[name]; !ok {
		return false
	}
	_, off := m.hidden[name]
	return !off
}

// --- filtering -----------------------------------------------------------

// SetFilterText installs a case-insensitive substring filter on the named
// column and moves back to the first page. An empty text clears the column's
// filter. Names that match no current column are kept but inert, so a filter
// for a since-hidden column silently stops matching instead of failing.
func (m *TableModel) SetFilterText(column, text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if strings.TrimSpace(text) == "" {
		delete(m.filters, column)
	} else {
		m.filters[column] = strings.ToLower(text)
	}
	m.page = 1
	m.recompute()
}

// FilterText returns the active filter text for a column.
func (m *TableModel) FilterText(column string) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.filters[column]
}

// ClearFilters removes all per-column filters and the row filter.
func (m *TableModel) ClearFilters() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.filters = make(map[string]string)
	m.rowFilter = nil
	m.page = 1
	m.recompute()
}

// SetRowFilter installs an additional Filter evaluated against whole rows,
// combined with the per-column filters. Passing nil removes it.
func (m *TableModel) SetRowFilter(f Filter) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rowFilter = f
	m.page = 1
	m.recompute()
}

// FilterErr returns the first error produced by a row filter during the last
// recompute, or nil. Rows whose evaluation failed are excluded.
func (m *TableModel) FilterErr() error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.filterErr
}

// --- sorting -------------------------------------------------------------

// ToggleSort cycles the sort on the visible column at col: a new column sorts
// ascending, the same column again flips to descending, and descending flips
// back to ascending. The descending order is the exact reverse of the
// ascending order.
func (m *TableModel) ToggleSort(col int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	vis := m.visibleColumnsLocked()
	if col < 0 || col >= len(vis) {
		return fmt.Errorf("%w: %d", ErrInvalidSortColumn, col)
	}
	name := vis[col].Name
	if m.sortColumn == name && m.sortDir == SortAscending {
		m.sortDir = SortDescending
	} else {
		m.sortColumn = name
		m.sortDir = SortAscending
	}
	m.recompute()
	return nil
}

// SetSort sets the sort column by name and direction. SortNone clears any
// active sort.
func (m *TableModel) SetSort(column string, dir SortDirection) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if dir == SortNone {
		m.sortColumn = ""
		m.sortDir = SortNone
		m.recompute()
		return nil
	}
	if _, ok := m.colIndex[column]; !ok {
		return fmt.Errorf("%w: %q", ErrInvalidSortColumn, column)
	}
	m.sortColumn = column
	m.sortDir = dir
	m.recompute()
	return nil
}

// ClearSort removes any active sort, restoring source order.
func (m *TableModel) ClearSort() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sortColumn = ""
	m.sortDir = SortNone
	m.recompute()
}

// GetSortState returns the active sort as a visible column index plus
// direction. Column is -1 when unsorted or when the sort column is hidden.
func (m *TableModel) GetSortState() SortState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	state := SortState{Column: -1, Direction: m.sortDir}
	if m.sortColumn == "" || m.sortDir == SortNone {
		return SortState{Column: -1, Direction: SortNone}
	}
	for i, c := range m.visibleColumnsLocked() {
		if c.Name == m.sortColumn {
			state.Column = i
			return state
		}
	}
	return state
}

// SortColumn returns the sort column name and direction.
func (m *TableModel) SortColumn() (string, SortDirection) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sortColumn, m.sortDir
}

// --- pagination ----------------------------------------------------------

// SetPaginationEnabled switches between paged and single-page display. When
// disabled every filtered row is on page 1.
func (m *TableModel) SetPaginationEnabled(on bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.paginated = on
	m.clampPage()
}

// PaginationEnabled reports whether pagination is on.
func (m *TableModel) PaginationEnabled() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.paginated
}

// SetPageSize changes the rows-per-page and moves back to the first page.
func (m *TableModel) SetPageSize(size int) error {
	if size <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidPageSize, size)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pageSize = size
	m.page = 1
	return nil
}

// PageSize returns the configured rows-per-page.
func (m *TableModel) PageSize() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.pageSize
}

// Page returns the current 1-based page number.
func (m *TableModel) Page() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.page
}

// PageCount returns the number of pages for the current filtered set,
// never less than 1.
func (m *TableModel) PageCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.pageCountLocked()
}

func (m *TableModel) pageCountLocked() int {
	if !m.paginated {
		return 1
	}
	n := len(m.filtered)
	if n == 0 {
		return 1
	}
	return (n + m.pageSize - 1) / m.pageSize
}

// SetPage moves to the given 1-based page, clamped to the valid range.
func (m *TableModel) SetPage(page int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.page = page
	m.clampPage()
}

// NextPage advances one page, clamped at the last page.
func (m *TableModel) NextPage() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.page++
	m.clampPage()
}

// PrevPage moves back one page, clamped at the first page.
func (m *TableModel) PrevPage() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.page--
	m.clampPage()
}

func (m *TableModel) clampPage() {
	max := m.pageCountLocked()
	if m.page > max {
		m.page = max
	}
	if m.page < 1 {
		m.page = 1
	}
}

// --- row access ----------------------------------------------------------

// OriginalRowCount returns the number of rows in the source.
func (m *TableModel) OriginalRowCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.source.RowCount()
}

// VisibleRowCount returns the number of rows passing the active filters,
// across all pages.
func (m *TableModel) VisibleRowCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.filtered)
}

// PageRowCount returns the number of rows on the current page.
func (m *TableModel) PageRowCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.pageIndicesLocked())
}

// GetVisibleRowIndices returns the source indices of every filtered row in
// display order. Exporters use this to materialise the filtered, sorted view.
func (m *TableModel) GetVisibleRowIndices() []int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]int, len(m.filtered))
	copy(out, m.filtered)
	return out
}

// PageRowIndices returns the source indices of the rows on the current page,
// in display order.
func (m *TableModel) PageRowIndices() []int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	idx := m.pageIndicesLocked()
	out := make([]int, len(idx))
	copy(out, idx)
	return out
}

func (m *TableModel) pageIndicesLocked() []int {
	if !m.paginated {
		return m.filtered
	}
	start := (m.page - 1) * m.pageSize
	if start >= len(m.filtered) {
		return nil
	}
	end := start + m.pageSize
	if end > len(m.filtered) {
		end = len(m.filtered)
	}
	return m.filtered[start:end]
}

// VisibleRow returns the visible cells of the row at the given position on
// the current page.
func (m *TableModel) VisibleRow(row int) ([]Value, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	idx := m.pageIndicesLocked()
	if row < 0 || row >= len(idx) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidRow, row)
	}
	return m.projectRowLocked(idx[row])
}

// VisibleCell returns the cell at page-row row and visible column col.
func (m *TableModel) VisibleCell(row, col int) (Value, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	idx := m.pageIndicesLocked()
	if row < 0 || row >= len(idx) {
		return Value{}, fmt.Errorf("%w: %d", ErrInvalidRow, row)
	}
	vis := m.visibleColumnsLocked()
	if col < 0 || col >= len(vis) {
		return Value{}, fmt.Errorf("%w: %d", ErrInvalidColumn, col)
	}
	return m.source.Cell(idx[row], m.colIndex[vis[col].Name])
}

// projectRowLocked returns the source row narrowed to visible columns.
func (m *TableModel) projectRowLocked(sourceRow int) ([]Value, error) {
	vis := m.visibleColumnsLocked()
	out := make([]Value, len(vis))
	for i, c := range vis {
		v, err := m.source.Cell(sourceRow, m.colIndex[c.Name])
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// --- selection -----------------------------------------------------------

// SetKeyColumn names the column whose value identifies a row for selection.
func (m *TableModel) SetKeyColumn(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.keyColumn = name
}

// SetKeyFunc installs a row identity function that takes precedence over the
// key column.
func (m *TableModel) SetKeyFunc(f RowKeyFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.keyFunc = f
}

// RowKey returns the identity of the row at the given position on the current
// page. When neither the key function nor the key column yields a usable
// scalar the page-relative index is used; such keys are not unique across
// pages and are only suitable for transient selection state.
func (m *TableModel) RowKey(row int) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	idx := m.pageIndicesLocked()
	if row < 0 || row >= len(idx) {
		return "", fmt.Errorf("%w: %d", ErrInvalidRow, row)
	}
	return m.rowKeyLocked(idx[row], row), nil
}

func (m *TableModel) rowKeyLocked(sourceRow, pageRow int) string {
	if m.keyFunc != nil {
		if full, err := m.source.Row(sourceRow); err == nil {
			if key, ok := m.keyFunc(full); ok {
				return key
			}
		}
	}
	if col, ok := m.colIndex[m.keyColumn]; ok {
		if v, err := m.source.Cell(sourceRow, col); err == nil && !v.IsNull && v.Formatted != "" {
			return v.Formatted
		}
	}
	return strconv.Itoa(pageRow)
}

// ToggleRowSelection flips the selection of the row at the given position on
// the current page.
func (m *TableModel) ToggleRowSelection(row int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	idx := m.pageIndicesLocked()
	if row < 0 || row >= len(idx) {
		return fmt.Errorf("%w: %d", ErrInvalidRow, row)
	}
	key := m.rowKeyLocked(idx[row], row)
	if _, on := m.selected[key]; on {
		delete(m.selected, key)
	} else {
		m.selected[key] = struct{}{}
	}
	return nil
}

// IsRowSelected reports whether the row at the given position on the current
// page is selected.
func (m *TableModel) IsRowSelected(row int) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	idx := m.pageIndicesLocked()
	if row < 0 || row >= len(idx) {
		return false
	}
	_, on := m.selected[m.rowKeyLocked(idx[row], row)]
	return on
}

// SelectAllOnPage adds every row on the current page to the selection.
// Selections made on other pages are untouched.
func (m *TableModel) SelectAllOnPage() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for pageRow, sourceRow := range m.pageIndicesLocked() {
		m.selected[m.rowKeyLocked(sourceRow, pageRow)] = struct{}{}
	}
}

// DeselectAllOnPage removes exactly the current page's rows from the
// selection.
func (m *TableModel) DeselectAllOnPage() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for pageRow, sourceRow := range m.pageIndicesLocked() {
		delete(m.selected, m.rowKeyLocked(sourceRow, pageRow))
	}
}

// PageSelectionState reports whether none, some or all of the current page's
// rows are selected. It only reflects the visible page, never other pages.
func (m *TableModel) PageSelectionState() SelectionState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	idx := m.pageIndicesLocked()
	if len(idx) == 0 {
		return SelectionNone
	}
	count := 0
	for pageRow, sourceRow := range idx {
		if _, on := m.selected[m.rowKeyLocked(sourceRow, pageRow)]; on {
			count++
		}
	}
	switch count {
	case 0:
		return SelectionNone
	case len(idx):
		return SelectionAll
	default:
		return SelectionSome
	}
}

// SelectedKeys returns the selected row keys in no particular order.
func (m *TableModel) SelectedKeys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, 0, len(m.selected))
	for k := range m.selected {
		out = append(out, k)
	}
	return out
}

// SelectedCount returns the number of selected rows across all pages.
func (m *TableModel) SelectedCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.selected)
}

// ClearSelection empties the selection set.
func (m *TableModel) ClearSelection() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.selected = make(map[string]struct{})
}

// --- pipeline ------------------------------------------------------------

// recompute rebuilds the filtered and sorted index and clamps the page.
// Callers must hold the write lock.
func (m *TableModel) recompute() {
	m.filterErr = nil
	total := m.source.RowCount()
	keep := make([]int, 0, total)

	active := m.activeFiltersLocked()
	for row := 0; row < total; row++ {
		ok, err := m.rowPassesLocked(row, active)
		if err != nil && m.filterErr == nil {
			m.filterErr = err
		}
		if ok {
			keep = append(keep, row)
		}
	}

	_, sortHidden := m.hidden[m.sortColumn]
	if m.sortDir != SortNone && !sortHidden {
		if col, ok := m.colIndex[m.sortColumn]; ok {
			keys := make([]Value, len(keep))
			for i, row := range keep {
				v, err := m.source.Cell(row, col)
				if err == nil {
					keys[i] = v
				} else {
					keys[i] = NewNullValue(TypeString)
				}
			}
			order := make([]int, len(keep))
			for i := range order {
				order[i] = i
			}
			sort.SliceStable(order, func(a, b int) bool {
				return keys[order[a]].Compare(keys[order[b]]) < 0
			})
			sorted := make([]int, len(keep))
			for i, o := range order {
				sorted[i] = keep[o]
			}
			if m.sortDir == SortDescending {
				for i, j := 0, len(sorted)-1; i < j; i, j = i+1, j-1 {
					sorted[i], sorted[j] = sorted[j], sorted[i]
				}
			}
			keep = sorted
		}
	}

	m.filtered = keep
	m.clampPage()
}

type activeFilter struct {
	col   int
	query string
}

// activeFiltersLocked resolves filter texts to source column indices,
// dropping entries whose column is unknown or hidden.
func (m *TableModel) activeFiltersLocked() []activeFilter {
	out := make([]activeFilter, 0, len(m.filters))
	for name, q := range m.filters {
		if _, off := m.hidden[name]; off {
			continue
		}
		col, ok := m.colIndex[name]
		if !ok {
			continue
		}
		out = append(out, activeFilter{col: col, query: q})
	}
	return out
}

func (m *TableModel) rowPassesLocked(row int, active []activeFilter) (bool, error) {
	for _, f := range active {
		v, err := m.source.Cell(row, f.col)
		if err != nil {
			return false, err
		}
		if !strings.Contains(strings.ToLower(v.Formatted), f.query) {
			return false, nil
		}
	}
	if m.rowFilter != nil {
		values, err := m.source.Row(row)
		if err != nil {
			return false, err
		}
		pass, err := m.rowFilter.Evaluate(values, m.colNames)
		if err != nil {
			return false, err
		}
		if !pass {
			return false, nil
		}
	}
	return true, nil
}
