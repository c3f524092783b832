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

// Package browser is the tablebrowser desktop application: it opens CSV,
// Parquet and JSON files into DataTable tabs with query filtering, column
// toggling and export of the filtered view.
package browser

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/forgeui/gridtable/datatable"
	gridwidget "github.com/forgeui/gridtable/widget"
)

// tableView is the per-tab state: the model, the table rendering it, and the
// last query/script text so dialogs can restore them.
type tableView struct {
	name   string
	model  *datatable.TableModel
	table  *gridwidget.DataTable
	query  string
	script string
}

// MainWindow owns the application window, the document tabs and the status
// bar.
type MainWindow struct {
	a         fyne.App
	w         fyne.Window
	docTabs   *container.DocTabs
	statusBar *widget.Label
	views     map[*container.TabItem]*tableView
}

// CreateMainWindow builds the application window and its chrome. Call Run to
// show it.
func CreateMainWindow() *MainWindow {
	var t MainWindow
	t.build()
	return &t
}

func (t *MainWindow) build() {
	t.a = app.NewWithID("tablebrowser")
	t.a.Settings().SetTheme(&Theme{})
	t.views = make(map[*container.TabItem]*tableView)

	t.statusBar = widget.NewLabel("Ready")
	t.statusBar.TextStyle = fyne.TextStyle{Italic: true}

	t.w = t.a.NewWindow("Table Browser")
	t.w.Resize(fyne.NewSize(900, 640))

	welcome := widget.NewLabel("Open a CSV, Parquet or JSON file to begin.")
	welcome.Alignment = fyne.TextAlignCenter

	tabs := container.NewDocTabs(container.NewTabItem("Welcome", container.NewCenter(welcome)))
	tabs.CloseIntercept = func(ti *container.TabItem) {
		delete(t.views, ti)
		tabs.Remove(ti)
	}
	t.docTabs = tabs

	top := widget.NewToolbar(
		widget.NewToolbarAction(theme.FolderOpenIcon(), t.openFileDialog),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.SearchIcon(), t.withActiveView(t.showQueryDialog)),
		widget.NewToolbarAction(theme.ComputerIcon(), t.withActiveView(t.showScriptDialog)),
		widget.NewToolbarAction(theme.VisibilityIcon(), t.withActiveView(t.showColumnsDialog)),
		widget.NewToolbarAction(theme.ContentClearIcon(), t.withActiveView(t.clearFilters)),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.DocumentSaveIcon(), t.withActiveView(t.showExportDialog)),
		widget.NewToolbarSpacer(),
	)

	bottom := container.NewHBox(t.statusBar)

	t.w.SetContent(container.NewBorder(top, bottom, nil, nil, tabs))
}

// Run shows the window and enters the event loop.
func (t *MainWindow) Run() {
	t.w.ShowAndRun()
}

// Window exposes the underlying fyne.Window for dialogs and tests.
func (t *MainWindow) Window() fyne.Window {
	return t.w
}

// SetStatus updates the status bar message.
func (t *MainWindow) SetStatus(message string) {
	if t.statusBar != nil {
		t.statusBar.SetText(message)
	}
}

// activeView returns the view behind the selected tab, or nil for the
// welcome tab.
func (t *MainWindow) activeView() *tableView {
	return t.views[t.docTabs.Selected()]
}

// withActiveView adapts a per-view action into a toolbar callback that is a
// no-op with a status hint when no data tab is selected.
func (t *MainWindow) withActiveView(action func(*tableView)) func() {
	return func() {
		view := t.activeView()
		if view == nil {
			t.SetStatus("Open a file first")
			return
		}
		action(view)
	}
}

func (t *MainWindow) openFileDialog() {
	open := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, t.w)
			return
		}
		if reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()
		t.OpenFile(path)
	}, t.w)
	open.SetFilter(storage.NewExtensionFileFilter([]string{".csv", ".tsv", ".parquet", ".json"}))
	open.Resize(fyne.NewSize(700, 500))
	open.Show()
}

// OpenFile loads the file in the background and adds a tab for it.
func (t *MainWindow) OpenFile(path string) {
	name := filepath.Base(path)
	t.SetStatus("Loading " + name + "...")

	go func() {
		source, err := LoadDataSource(path)
		if err != nil {
			log.Printf("loading %s: %v", path, err)
			fyne.Do(func() {
				dialog.ShowError(err, t.w)
				t.SetStatus("Error loading " + name)
			})
			return
		}
		model, err := datatable.NewTableModel(source)
		if err != nil {
			fyne.Do(func() {
				dialog.ShowError(err, t.w)
				t.SetStatus("Error loading " + name)
			})
			return
		}
		fyne.Do(func() {
			t.displayTable(name, model)
		})
	}()
}

// displayTable puts the model in a new tab, replacing an existing tab with
// the same name.
func (t *MainWindow) displayTable(name string, model *datatable.TableModel) {
	table := gridwidget.NewDataTable(model)
	table.SetWindow(t.w)

	view := &tableView{name: name, model: model, table: table}
	table.SetOnRowTapped(func(row []datatable.Value) {
		t.showRowDetail(view, row)
	})

	title := tabTitle(name)
	for _, tab := range t.docTabs.Items {
		if tab.Text == title {
			delete(t.views, tab)
			tab.Content = table
			t.views[tab] = view
			t.docTabs.Select(tab)
			t.updateStatus(view)
			return
		}
	}

	tab := container.NewTabItem(title, table)
	t.views[tab] = view
	t.docTabs.Append(tab)
	t.docTabs.Select(tab)
	t.updateStatus(view)
}

func (t *MainWindow) clearFilters(view *tableView) {
	view.query = ""
	view.script = ""
	view.model.ClearFilters()
	view.model.SetRowFilter(nil)
	view.table.Refresh()
	t.SetStatus("Filters cleared")
}

func (t *MainWindow) updateStatus(view *tableView) {
	visible := view.model.VisibleRowCount()
	total := view.model.OriginalRowCount()
	if visible == total {
		t.SetStatus(fmt.Sprintf("%s: %d rows", view.name, total))
	} else {
		t.SetStatus(fmt.Sprintf("%s: %d of %d rows", view.name, visible, total))
	}
}

// showRowDetail pops a dialog listing every visible column of the tapped row.
func (t *MainWindow) showRowDetail(view *tableView, row []datatable.Value) {
	cols := view.model.VisibleColumns()
	form := widget.NewForm()
	for i, col := range cols {
		if i >= len(row) {
			break
		}
		value := widget.NewLabel(row[i].Formatted)
		value.Wrapping = fyne.TextWrapWord
		form.Append(col.Name, value)
	}
	scroll := container.NewVScroll(form)
	scroll.SetMinSize(fyne.NewSize(360, 280))
	dialog.ShowCustom("Row Detail", "Close", scroll, t.w)
}

// columnNames lists every column of the model's source, hidden ones
// included, for query validation.
func columnNames(model *datatable.TableModel) []string {
	cols := model.Columns()
	names := make([]string, len(cols))
	for i, col := range cols {
		names[i] = col.Name
	}
	return names
}

// tabTitle shortens long file names for tab labels.
func tabTitle(name string) string {
	if len(name) <= 28 {
		return name
	}
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	return base[:28-len(ext)-1] + "…" + ext
}
