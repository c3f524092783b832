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
	"image/color"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/forgeui/gridtable/datatable"
)

// DataTable renders a TableModel as an interactive table with sortable
// headers, a per-column filter bar, row selection and pagination controls.
//
// The widget owns no data. Every interaction is forwarded to the model and
// the view is rebuilt from the model's current page.
type DataTable struct {
	widget.BaseWidget

	model  *datatable.TableModel
	config Config
	window fyne.Window

	loading bool

	colLayout *columnLayout

	headerBtns  []*sortHeader
	selectAll   *TriCheck
	filterCells []fyne.CanvasObject

	headerRow *fyne.Container
	filterRow *fyne.Container
	body      *fyne.Container
	bodyWrap  *fyne.Container

	statusLabel *widget.Label
	pageLabel   *widget.Label
	prevBtn     *widget.Button
	nextBtn     *widget.Button
	sizeSelect  *widget.Select
	pageBar     *fyne.Container

	// outer is the stable mount point; Reload swaps its content.
	outer *fyne.Container
}

// NewDataTable creates a table widget with the default configuration.
func NewDataTable(model *datatable.TableModel) *DataTable {
	return NewDataTableWithConfig(model, DefaultConfig())
}

// NewDataTableWithConfig creates a table widget with the given configuration.
func NewDataTableWithConfig(model *datatable.TableModel, config Config) *DataTable {
	d := &DataTable{model: model, config: config, outer: container.NewStack()}
	d.ExtendBaseWidget(d)

	if config.Pagination {
		if config.PageSize > 0 {
			_ = model.SetPageSize(config.PageSize)
		}
	} else {
		model.SetPaginationEnabled(false)
	}

	d.buildStaticParts()
	d.refreshData()
	return d
}

// Model returns the table model driving this widget.
func (d *DataTable) Model() *datatable.TableModel {
	return d.model
}

// SetWindow stores the parent window, used by dialogs opened from the table.
func (d *DataTable) SetWindow(w fyne.Window) {
	d.window = w
}

// Window returns the window set via SetWindow, or nil.
func (d *DataTable) Window() fyne.Window {
	return d.window
}

// SetOnRowTapped replaces the row tap callback.
func (d *DataTable) SetOnRowTapped(fn func(row []datatable.Value)) {
	d.config.OnRowTapped = fn
	d.Refresh()
}

// SetLoading toggles the loading state. While loading the table shows one
// skeleton placeholder row per page slot and ignores row interaction.
func (d *DataTable) SetLoading(loading bool) {
	if d.loading == loading {
		return
	}
	d.loading = loading
	d.Refresh()
}

// Loading reports whether the table is in the loading state.
func (d *DataTable) Loading() bool {
	return d.loading
}

// Reload rebuilds the header and filter bar from the model's current
// columns. Call it after the source or the column visibility changed.
func (d *DataTable) Reload() {
	d.buildStaticParts()
	d.Refresh()
}

// Refresh implements fyne.Widget.
func (d *DataTable) Refresh() {
	d.refreshData()
	d.BaseWidget.Refresh()
}

// CreateRenderer implements fyne.Widget.
func (d *DataTable) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(d.outer)
}

// columnWidthHints returns one width hint per rendered cell, including the
// fixed selection column when enabled.
func (d *DataTable) columnWidthHints() []float32 {
	cols := d.model.VisibleColumns()
	widths := make([]float32, 0, len(cols)+1)
	if d.config.ShowSelectionColumn {
		widths = append(widths, selectionColumnWidth)
	}
	for _, c := range cols {
		widths = append(widths, c.Width)
	}
	return widths
}

// buildStaticParts constructs the parts that survive a data refresh: the
// header row, the filter bar, the body container and the outer layout.
// Filter entries keep focus across refreshes because they are never rebuilt.
func (d *DataTable) buildStaticParts() {
	cols := d.model.VisibleColumns()
	d.colLayout = newColumnLayout(d.columnWidthHints(), d.config.MinColumnWidth)

	headerCells := make([]fyne.CanvasObject, 0, len(cols)+1)
	d.filterCells = make([]fyne.CanvasObject, 0, len(cols)+1)
	d.headerBtns = make([]*sortHeader, len(cols))

	if d.config.ShowSelectionColumn {
		d.selectAll = NewTriCheck(func(checked bool) {
			if checked {
				d.model.SelectAllOnPage()
			} else {
				d.model.DeselectAllOnPage()
			}
			d.Refresh()
		})
		headerCells = append(headerCells, container.NewCenter(d.selectAll))
		d.filterCells = append(d.filterCells, layoutSpacer())
	} else {
		d.selectAll = nil
	}

	for i, col := range cols {
		h := newSortHeader(col.Label(), col.Sortable)
		visIdx := i
		h.onTapped = func() {
			if err := d.model.ToggleSort(visIdx); err != nil {
				return
			}
			d.Refresh()
		}
		d.headerBtns[i] = h
		headerCells = append(headerCells, h)

		if col.Filterable {
			entry := widget.NewEntry()
			entry.SetPlaceHolder("Filter " + col.Label())
			name := col.Name
			entry.OnChanged = func(text string) {
				d.model.SetFilterText(name, text)
				d.Refresh()
			}
			d.filterCells = append(d.filterCells, entry)
		} else {
			d.filterCells = append(d.filterCells, layoutSpacer())
		}
	}

	d.headerRow = container.New(d.colLayout, headerCells...)
	d.filterRow = container.New(d.colLayout, d.filterCells...)
	d.body = container.NewVBox()

	d.statusLabel = widget.NewLabel("")
	d.pageLabel = widget.NewLabel("")
	d.prevBtn = widget.NewButtonWithIcon("", theme.NavigateBackIcon(), func() {
		d.model.PrevPage()
		d.Refresh()
	})
	d.nextBtn = widget.NewButtonWithIcon("", theme.NavigateNextIcon(), func() {
		d.model.NextPage()
		d.Refresh()
	})

	sizeOptions := d.config.PageSizeOptions
	if len(sizeOptions) == 0 {
		sizeOptions = []int{10, 25, 50, 100}
	}
	labels := make([]string, len(sizeOptions))
	for i, n := range sizeOptions {
		labels[i] = strconv.Itoa(n)
	}
	d.sizeSelect = widget.NewSelect(labels, func(s string) {
		n, err := strconv.Atoi(s)
		if err != nil {
			return
		}
		if n == d.model.PageSize() {
			return
		}
		if err := d.model.SetPageSize(n); err != nil {
			return
		}
		d.Refresh()
	})
	d.sizeSelect.SetSelected(strconv.Itoa(d.model.PageSize()))

	d.pageBar = container.NewHBox(
		widget.NewLabel("Rows per page"),
		d.sizeSelect,
		d.prevBtn,
		d.pageLabel,
		d.nextBtn,
	)

	top := container.NewVBox()
	if d.config.ShowHeader {
		top.Add(d.headerRow)
	}
	if d.config.ShowFilterBar {
		top.Add(d.filterRow)
	}
	top.Add(widget.NewSeparator())

	bottom := container.NewVBox(widget.NewSeparator())
	if d.config.Pagination {
		bottom.Add(container.NewHBox(layoutSpacer(), d.pageBar))
	}
	if d.config.ShowStatusBar {
		bottom.Add(d.statusLabel)
	}

	var root fyne.CanvasObject
	if d.config.StickyHeader {
		d.bodyWrap = container.NewStack(container.NewVScroll(d.body))
		root = container.NewBorder(top, bottom, nil, nil, d.bodyWrap)
	} else {
		scrolled := container.NewVScroll(container.NewVBox(top, d.body))
		d.bodyWrap = container.NewStack(scrolled)
		root = container.NewBorder(nil, bottom, nil, nil, d.bodyWrap)
	}
	d.outer.Objects = []fyne.CanvasObject{root}
	d.outer.Refresh()
}

// refreshData rebuilds the body rows and updates headers, status text and
// pagination controls from the model.
func (d *DataTable) refreshData() {
	d.colLayout.setWidths(d.columnWidthHints())
	d.refreshHeaders()
	d.refreshBody()
	d.refreshPageBar()
	d.refreshStatus()
}

func (d *DataTable) refreshHeaders() {
	state := d.model.GetSortState()
	for i, h := range d.headerBtns {
		dir := datatable.SortNone
		if state.Column == i {
			dir = state.Direction
		}
		h.setDirection(dir)
	}
	if d.selectAll != nil {
		switch d.model.PageSelectionState() {
		case datatable.SelectionAll:
			d.selectAll.SetState(TriChecked)
		case datatable.SelectionSome:
			d.selectAll.SetState(TriPartial)
		default:
			d.selectAll.SetState(TriUnchecked)
		}
	}
}

func (d *DataTable) refreshBody() {
	d.body.Objects = nil

	switch {
	case d.loading:
		cols := d.model.VisibleColumnCount()
		for i := 0; i < d.model.PageSize(); i++ {
			d.body.Add(d.buildSkeletonRow(cols))
		}
	case d.model.VisibleRowCount() == 0:
		d.body.Add(d.buildEmptyState())
	default:
		for row := 0; row < d.model.PageRowCount(); row++ {
			d.body.Add(d.buildRow(row))
		}
	}
	d.body.Refresh()
}

func (d *DataTable) refreshPageBar() {
	showBar := d.config.Pagination && !d.loading && d.model.VisibleRowCount() > 0
	if !showBar {
		d.pageBar.Hide()
		return
	}
	d.pageBar.Show()
	page := d.model.Page()
	count := d.model.PageCount()
	d.pageLabel.SetText(fmt.Sprintf("Page %d of %d", page, count))
	if page <= 1 {
		d.prevBtn.Disable()
	} else {
		d.prevBtn.Enable()
	}
	if page >= count {
		d.nextBtn.Disable()
	} else {
		d.nextBtn.Enable()
	}
}

func (d *DataTable) refreshStatus() {
	if d.statusLabel == nil {
		return
	}
	if d.loading {
		d.statusLabel.SetText("Loading...")
		return
	}

	visible := d.model.VisibleRowCount()
	total := d.model.OriginalRowCount()
	text := fmt.Sprintf("%d rows", total)
	if visible != total {
		text = fmt.Sprintf("%d of %d rows", visible, total)
	}
	if n := d.model.SelectedCount(); n > 0 {
		text += fmt.Sprintf(" | %d selected", n)
	}
	if name, dir := d.model.SortColumn(); dir != datatable.SortNone {
		arrow := "↑"
		if dir == datatable.SortDescending {
			arrow = "↓"
		}
		text += fmt.Sprintf(" | Sorted: %s %s", name, arrow)
	}
	d.statusLabel.SetText(text)
}

func (d *DataTable) buildEmptyState() fyne.CanvasObject {
	if d.config.EmptyState != nil {
		return container.NewCenter(d.config.EmptyState)
	}
	msg := d.config.EmptyMessage
	if msg == "" {
		msg = "No data"
	}
	label := widget.NewLabel(msg)
	label.Importance = widget.LowImportance
	return container.NewCenter(label)
}

func (d *DataTable) buildSkeletonRow(columns int) fyne.CanvasObject {
	cells := make([]fyne.CanvasObject, 0, columns+1)
	if d.config.ShowSelectionColumn {
		cells = append(cells, container.NewCenter(NewSkeleton(triCheckBoxSize, triCheckBoxSize)))
	}
	for i := 0; i < columns; i++ {
		cells = append(cells, NewSkeleton(0, 26))
	}
	return container.New(d.colLayout, cells...)
}

func (d *DataTable) buildRow(pageRow int) fyne.CanvasObject {
	values, err := d.model.VisibleRow(pageRow)
	if err != nil {
		return container.New(d.colLayout)
	}

	cols := d.model.VisibleColumns()
	cells := make([]fyne.CanvasObject, 0, len(values)+1)

	if d.config.ShowSelectionColumn {
		check := NewTriCheck(func(bool) {
			_ = d.model.ToggleRowSelection(pageRow)
			d.Refresh()
		})
		if d.model.IsRowSelected(pageRow) {
			check.SetState(TriChecked)
		}
		cells = append(cells, container.NewCenter(check))
	}

	for i, v := range values {
		text := v.Formatted
		if i < len(cols) {
			text = cols[i].DisplayString(v)
		}
		label := widget.NewLabel(text)
		label.Truncation = fyne.TextTruncateEllipsis
		cells = append(cells, label)
	}

	return newTableRow(d, values, container.New(d.colLayout, cells...))
}

// layoutSpacer fills a cell that has no control in it.
func layoutSpacer() fyne.CanvasObject {
	r := canvas.NewRectangle(color.Transparent)
	r.SetMinSize(fyne.NewSize(1, 1))
	return r
}

// sortHeader is a column header. Sortable headers act as buttons cycling the
// sort direction and show an arrow for the active direction.
type sortHeader struct {
	widget.BaseWidget

	label    *widget.Label
	icon     *widget.Icon
	sortable bool
	onTapped func()
}

func newSortHeader(title string, sortable bool) *sortHeader {
	h := &sortHeader{sortable: sortable}
	h.label = widget.NewLabel(title)
	h.label.TextStyle = fyne.TextStyle{Bold: true}
	h.label.Truncation = fyne.TextTruncateEllipsis
	h.icon = widget.NewIcon(theme.MenuDropUpIcon())
	h.icon.Hide()
	h.ExtendBaseWidget(h)
	return h
}

func (h *sortHeader) setDirection(dir datatable.SortDirection) {
	switch dir {
	case datatable.SortAscending:
		h.icon.SetResource(theme.MenuDropUpIcon())
		h.icon.Show()
	case datatable.SortDescending:
		h.icon.SetResource(theme.MenuDropDownIcon())
		h.icon.Show()
	default:
		h.icon.Hide()
	}
	h.Refresh()
}

// Tapped implements fyne.Tappable.
func (h *sortHeader) Tapped(*fyne.PointEvent) {
	if !h.sortable || h.onTapped == nil {
		return
	}
	h.onTapped()
}

// Cursor implements desktop.Cursorable.
func (h *sortHeader) Cursor() desktop.Cursor {
	if h.sortable {
		return desktop.PointerCursor
	}
	return desktop.DefaultCursor
}

func (h *sortHeader) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(container.NewBorder(nil, nil, nil, h.icon, h.label))
}

// tableRow is one data row. It forwards taps to the table's row callback and
// tints its background on hover. The selection checkbox inside the row sits
// above the row, so tapping it does not also fire the row callback.
type tableRow struct {
	widget.BaseWidget

	table   *DataTable
	values  []datatable.Value
	bg      *canvas.Rectangle
	content fyne.CanvasObject
}

func newTableRow(table *DataTable, values []datatable.Value, content fyne.CanvasObject) *tableRow {
	r := &tableRow{table: table, values: values, content: content}
	r.bg = canvas.NewRectangle(color.Transparent)
	r.ExtendBaseWidget(r)
	return r
}

// Tapped implements fyne.Tappable.
func (r *tableRow) Tapped(*fyne.PointEvent) {
	if r.table.config.OnRowTapped == nil {
		return
	}
	r.table.config.OnRowTapped(r.values)
}

// MouseIn implements desktop.Hoverable.
func (r *tableRow) MouseIn(*desktop.MouseEvent) {
	r.bg.FillColor = theme.Color(theme.ColorNameHover)
	r.bg.Refresh()
}

// MouseMoved implements desktop.Hoverable.
func (r *tableRow) MouseMoved(*desktop.MouseEvent) {}

// MouseOut implements desktop.Hoverable.
func (r *tableRow) MouseOut() {
	r.bg.FillColor = color.Transparent
	r.bg.Refresh()
}

// Cursor implements desktop.Cursorable.
func (r *tableRow) Cursor() desktop.Cursor {
	if r.table.config.OnRowTapped != nil {
		return desktop.PointerCursor
	}
	return desktop.DefaultCursor
}

func (r *tableRow) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(container.NewStack(r.bg, r.content))
}
