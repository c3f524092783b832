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

// Package widget provides the Fyne DataTable widget built on the datatable
// model: header with sort affordances, per-column filter bar, paged body
// with a tri-state select-all column, and a status bar.
package widget

import (
	"fyne.io/fyne/v2"

	"github.com/forgeui/gridtable/datatable"
)

// Config controls which parts of the DataTable are shown and how it pages.
type Config struct {
	// ShowHeader shows the column header row.
	ShowHeader bool

	// ShowFilterBar shows a filter input under the header for every
	// filterable column.
	ShowFilterBar bool

	// ShowStatusBar shows the row/selection summary under the table.
	ShowStatusBar bool

	// ShowSelectionColumn shows the leading checkbox column with the
	// tri-state select-all control in the header.
	ShowSelectionColumn bool

	// Pagination pages the body. When false every filtered row is rendered
	// on a single page and the pagination bar is hidden.
	Pagination bool

	// PageSize is the initial rows-per-page.
	PageSize int

	// PageSizeOptions are the page sizes offered in the pagination bar.
	PageSizeOptions []int

	// StickyHeader keeps the header and filter bar fixed while the body
	// scrolls.
	StickyHeader bool

	// MinColumnWidth is the narrowest a column without a width hint gets.
	MinColumnWidth float32

	// EmptyMessage is shown when the filtered result set is empty and no
	// EmptyState object is configured.
	EmptyMessage string

	// EmptyState replaces the table body when the filtered result set is
	// empty. Optional.
	EmptyState fyne.CanvasObject

	// OnRowTapped is called with the tapped row's visible values. Rows render
	// with a hover affordance when set. Taps on the selection checkbox do not
	// reach the row. Optional.
	OnRowTapped func(row []datatable.Value)
}

// DefaultConfig returns the configuration used by NewDataTable: everything
// visible, sticky header, 25 rows per page.
func DefaultConfig() Config {
	return Config{
		ShowHeader:          true,
		ShowFilterBar:       true,
		ShowStatusBar:       true,
		ShowSelectionColumn: true,
		Pagination:          true,
		PageSize:            datatable.DefaultPageSize,
		PageSizeOptions:     []int{10, 25, 50, 100},
		StickyHeader:        true,
		MinColumnWidth:      100,
		EmptyMessage:        "No data",
	}
}
