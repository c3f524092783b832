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
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/forgeui/gridtable/internal/filter"
)

// showQueryDialog lets the user type a query expression that becomes the
// view's row filter. An empty query clears it.
func (t *MainWindow) showQueryDialog(view *tableView) {
	entry := widget.NewMultiLineEntry()
	entry.SetPlaceHolder("e.g. status = active AND qty >= 10 OR name ~ steel")
	entry.SetMinRowsVisible(3)
	if f := view.query; f != "" {
		entry.SetText(f)
	}

	help := widget.NewLabel("Conditions use = != > < >= <= ~ and combine with AND/OR.\nA bare word searches every column. Leave empty to clear.")
	help.TextStyle = fyne.TextStyle{Italic: true}

	content := container.NewVBox(entry, help)

	d := dialog.NewCustomConfirm("Filter Rows", "Apply", "Cancel", content, func(confirmed bool) {
		if !confirmed {
			return
		}
		names := columnNames(view.model)
		rowFilter, err := filter.ParseQuery(entry.Text, names)
		if err != nil {
			dialog.ShowError(err, t.w)
			return
		}
		view.query = entry.Text
		view.model.SetRowFilter(rowFilter)
		view.table.Refresh()
		if rowFilter == nil {
			t.SetStatus("Filter cleared")
		} else {
			t.SetStatus("Filter: " + rowFilter.Description())
		}
	}, t.w)

	d.Resize(fyne.NewSize(480, 260))
	d.Show()
}

// showScriptDialog installs a Go predicate as the view's row filter. The body
// receives the row as map[string]interface{} and returns bool.
func (t *MainWindow) showScriptDialog(view *tableView) {
	entry := widget.NewMultiLineEntry()
	entry.SetPlaceHolder("qty, ok := row[\"qty\"].(int64)\nreturn ok && qty > 10")
	entry.SetMinRowsVisible(8)
	entry.TextStyle = fyne.TextStyle{Monospace: true}
	if view.script != "" {
		entry.SetText(view.script)
	}

	help := widget.NewLabel("The body of func(row map[string]interface{}) bool.\nfmt, strconv and strings are available. Leave empty to clear.")
	help.TextStyle = fyne.TextStyle{Italic: true}

	content := container.NewVBox(entry, help)

	d := dialog.NewCustomConfirm("Script Filter", "Apply", "Cancel", content, func(confirmed bool) {
		if !confirmed {
			return
		}
		if entry.Text == "" {
			view.script = ""
			view.model.SetRowFilter(nil)
			view.table.Refresh()
			t.SetStatus("Script filter cleared")
			return
		}
		script, err := filter.NewScript(entry.Text)
		if err != nil {
			dialog.ShowError(err, t.w)
			return
		}
		view.script = entry.Text
		view.model.SetRowFilter(script)
		view.table.Refresh()
		if err := view.model.FilterErr(); err != nil {
			dialog.ShowError(fmt.Errorf("script failed on some rows: %w", err), t.w)
			return
		}
		t.SetStatus(fmt.Sprintf("Script filter active (%d rows match)", view.model.VisibleRowCount()))
	}, t.w)

	d.Resize(fyne.NewSize(520, 380))
	d.Show()
}

// showColumnsDialog toggles column visibility with one checkbox per column.
func (t *MainWindow) showColumnsDialog(view *tableView) {
	model := view.model
	checks := container.NewVBox()
	pending := make(map[string]bool)

	for _, col := range model.Columns() {
		name := col.Name
		check := widget.NewCheck(name, func(on bool) {
			pending[name] = on
		})
		check.SetChecked(model.IsColumnVisible(name))
		checks.Add(check)
	}

	scroll := container.NewVScroll(checks)
	scroll.SetMinSize(fyne.NewSize(300, 240))

	d := dialog.NewCustomConfirm("Columns", "Apply", "Cancel", scroll, func(confirmed bool) {
		if !confirmed {
			return
		}
		for name, on := range pending {
			if on {
				_ = model.ShowColumn(name)
			} else {
				_ = model.HideColumn(name)
			}
		}
		view.table.Reload()
		t.updateStatus(view)
	}, t.w)

	d.Show()
}

// showExportDialog picks a format, then a destination, and writes the current
// filtered view.
func (t *MainWindow) showExportDialog(view *tableView) {
	formats := map[string]ExportFormat{
		"CSV":     FormatCSV,
		"JSON":    FormatJSON,
		"Parquet": FormatParquet,
	}
	radio := widget.NewRadioGroup([]string{"CSV", "JSON", "Parquet"}, nil)
	radio.SetSelected("CSV")

	d := dialog.NewCustomConfirm("Export View", "Export", "Cancel", radio, func(confirmed bool) {
		if !confirmed || radio.Selected == "" {
			return
		}
		format := formats[radio.Selected]

		save := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
			if err != nil {
				dialog.ShowError(err, t.w)
				return
			}
			if writer == nil {
				return
			}
			path := writer.URI().Path()
			writer.Close()

			if err := Export(view.model, format, path); err != nil {
				dialog.ShowError(err, t.w)
				return
			}
			t.SetStatus(fmt.Sprintf("Exported %d rows to %s", view.model.VisibleRowCount(), path))
		}, t.w)

		save.SetFileName(cleanFilename(view.name) + format.Ext())
		save.Show()
	}, t.w)

	d.Show()
}

// cleanFilename keeps filename-safe characters, mapping spaces to
// underscores.
func cleanFilename(name string) string {
	out := make([]rune, 0, len(name))
	for _, r := range name {
		switch {
		case r == ' ':
			out = append(out, '_')
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-', r == '.':
			out = append(out, r)
		}
	}
	return string(out)
}
