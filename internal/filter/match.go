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

// Package filter implements the row filters used by the table model: single
// column conditions, AND/OR composition and a small query language.
package filter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/forgeui/gridtable/datatable"
)

// Op is a comparison operator in a column condition.
type Op int

const (
	OpEqual Op = iota
	OpNotEqual
	OpGreater
	OpLess
	OpGreaterEqual
	OpLessEqual
	OpContains
)

// String returns the operator's query-language spelling.
func (op Op) String() string {
	switch op {
	case OpEqual:
		return "="
	case OpNotEqual:
		return "!="
	case OpGreater:
		return ">"
	case OpLess:
		return "<"
	case OpGreaterEqual:
		return ">="
	case OpLessEqual:
		return "<="
	case OpContains:
		return "~"
	default:
		return fmt.Sprintf("unknown(%d)", int(op))
	}
}

// Condition compares one column's value against a literal. Column matching is
// case-insensitive. Ordered operators compare numerically when both sides
// parse as numbers, lexicographically otherwise.
type Condition struct {
	Column string
	Op     Op
	Value  string
}

// Evaluate implements the datatable.Filter interface.
func (c *Condition) Evaluate(row []datatable.Value, columnNames []string) (bool, error) {
	col := -1
	for i, name := range columnNames {
		if strings.EqualFold(name, c.Column) {
			col = i
			break
		}
	}
	if col < 0 || col >= len(row) {
		return false, fmt.Errorf("%w: %q", datatable.ErrColumnNotFound, c.Column)
	}

	cell := row[col].Formatted
	switch c.Op {
	case OpEqual:
		return strings.EqualFold(cell, c.Value), nil
	case OpNotEqual:
		return !strings.EqualFold(cell, c.Value), nil
	case OpContains:
		return strings.Contains(strings.ToLower(cell), strings.ToLower(c.Value)), nil
	case OpGreater, OpLess, OpGreaterEqual, OpLessEqual:
		return ordered(cell, c.Value, c.Op), nil
	default:
		return false, fmt.Errorf("%w: operator %d", datatable.ErrInvalidFilter, int(c.Op))
	}
}

// Description implements the datatable.Filter interface.
func (c *Condition) Description() string {
	return fmt.Sprintf("%s %s %s", c.Column, c.Op, c.Value)
}

// ordered resolves the four ordering operators, numerically when possible.
func ordered(cell, literal string, op Op) bool {
	a, errA := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	b, errB := strconv.ParseFloat(strings.TrimSpace(literal), 64)

	var cmp int
	if errA == nil && errB == nil {
		switch {
		case a < b:
			cmp = -1
		case a > b:
			cmp = 1
		}
	} else {
		cmp = strings.Compare(strings.ToLower(cell), strings.ToLower(literal))
	}

	switch op {
	case OpGreater:
		return cmp > 0
	case OpLess:
		return cmp < 0
	case OpGreaterEqual:
		return cmp >= 0
	case OpLessEqual:
		return cmp <= 0
	}
	return false
}

// AnyColumnContains matches rows where any cell contains the query,
// case-insensitively. It backs the bare-term form of the query language.
type AnyColumnContains struct {
	Query string
}

// Evaluate implements the datatable.Filter interface.
func (f *AnyColumnContains) Evaluate(row []datatable.Value, _ []string) (bool, error) {
	q := strings.ToLower(f.Query)
	for _, v := range row {
		if strings.Contains(strings.ToLower(v.Formatted), q) {
			return true, nil
		}
	}
	return false, nil
}

// Description implements the datatable.Filter interface.
func (f *AnyColumnContains) Description() string {
	return fmt.Sprintf("any ~ %s", f.Query)
}
