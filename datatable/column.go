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

import "fmt"

// Column describes how one source column is presented and which table
// operations it participates in. The Name doubles as the identity used for
// sort and filter bookkeeping, so it must be unique across the table.
type Column struct {
	// Name is the source column name and the sort/filter key.
	Name string

	// Title is the display label. Defaults to Name when empty.
	Title string

	// Sortable enables the sort affordance on this column's header.
	Sortable bool

	// Filterable enables the filter input for this column.
	Filterable bool

	// Width is a layout hint in device-independent pixels. Zero means the
	// layout decides.
	Width float32

	// Format overrides the Value's pre-formatted string for display.
	// It must be a total function; it receives the derived Value untouched.
	Format func(Value) string
}

// Label returns the display label for the column.
func (c Column) Label() string {
	if c.Title != "" {
		return c.Title
	}
	return c.Name
}

// DisplayString renders a value through the column's Format hook when set.
func (c Column) DisplayString(v Value) string {
	if c.Format != nil {
		return c.Format(v)
	}
	return v.Formatted
}

// ColumnsFromSource builds a descriptor per source column with sorting and
// filtering enabled, the default when a caller does not supply descriptors.
func ColumnsFromSource(source DataSource) ([]Column, error) {
	if source == nil {
		return nil, ErrNoDataSource
	}
	cols := make([]Column, source.ColumnCount())
	for i := range cols {
		name, err := source.ColumnName(i)
		if err != nil {
			return nil, err
		}
		cols[i] = Column{Name: name, Sortable: true, Filterable: true}
	}
	return cols, nil
}

// validateColumns rejects empty descriptor lists and duplicate names.
// Duplicate names would make the sort/filter bookkeeping ambiguous.
func validateColumns(cols []Column) error {
	if len(cols) == 0 {
		return fmt.Errorf("%w: no columns", ErrEmptyData)
	}
	seen := make(map[string]struct{}, len(cols))
	for _, c := range cols {
		if c.Name == "" {
			return fmt.Errorf("%w: empty column name", ErrColumnNotFound)
		}
		if _, dup := seen[c.Name]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateColumn, c.Name)
		}
		seen[c.Name] = struct{}{}
	}
	return nil
}
