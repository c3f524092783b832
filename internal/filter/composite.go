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

package filter

import (
	"fmt"
	"strings"

	"github.com/forgeui/gridtable/datatable"
)

// LogicOp represents a logical operator for combining filters.
type LogicOp int

const (
	// LogicAND requires all filters to pass.
	LogicAND LogicOp = iota
	// LogicOR requires at least one filter to pass.
	LogicOR
)

// String returns the string representation of a LogicOp.
func (op LogicOp) String() string {
	switch op {
	case LogicAND:
		return "AND"
	case LogicOR:
		return "OR"
	default:
		return fmt.Sprintf("unknown(%d)", int(op))
	}
}

// Composite combines multiple filters with a single AND or OR. An empty
// composite passes every row.
type Composite struct {
	Filters []datatable.Filter
	Logic   LogicOp
}

// Evaluate implements the datatable.Filter interface, short-circuiting on the
// first decisive result.
func (f *Composite) Evaluate(row []datatable.Value, columnNames []string) (bool, error) {
	if len(f.Filters) == 0 {
		return true, nil
	}

	switch f.Logic {
	case LogicAND:
		for _, sub := range f.Filters {
			passes, err := sub.Evaluate(row, columnNames)
			if err != nil {
				return false, err
			}
			if !passes {
				return false, nil
			}
		}
		return true, nil

	case LogicOR:
		for _, sub := range f.Filters {
			passes, err := sub.Evaluate(row, columnNames)
			if err != nil {
				return false, err
			}
			if passes {
				return true, nil
			}
		}
		return false, nil

	default:
		return false, fmt.Errorf("%w: unknown logic operator %d", datatable.ErrInvalidFilter, int(f.Logic))
	}
}

// Description implements the datatable.Filter interface.
func (f *Composite) Description() string {
	if len(f.Filters) == 0 {
		return "empty filter"
	}
	parts := make([]string, len(f.Filters))
	for i, sub := range f.Filters {
		parts[i] = sub.Description()
	}
	return "(" + strings.Join(parts, " "+f.Logic.String()+" ") + ")"
}

// Chain evaluates filters left to right with a logic operator between each
// neighbouring pair, the way a flat query string reads. There must be exactly
// one fewer operator than filters.
type Chain struct {
	Filters []datatable.Filter
	Ops     []LogicOp
}

// Evaluate implements the datatable.Filter interface.
func (f *Chain) Evaluate(row []datatable.Value, columnNames []string) (bool, error) {
	if len(f.Filters) == 0 {
		return true, nil
	}
	if len(f.Ops) != len(f.Filters)-1 {
		return false, fmt.Errorf("%w: %d filters joined by %d operators",
			datatable.ErrInvalidFilter, len(f.Filters), len(f.Ops))
	}

	result, err := f.Filters[0].Evaluate(row, columnNames)
	if err != nil {
		return false, err
	}
	for i, op := range f.Ops {
		next, err := f.Filters[i+1].Evaluate(row, columnNames)
		if err != nil {
			return false, err
		}
		switch op {
		case LogicAND:
			result = result && next
		case LogicOR:
			result = result || next
		default:
			return false, fmt.Errorf("%w: unknown logic operator %d", datatable.ErrInvalidFilter, int(op))
		}
	}
	return result, nil
}

// Description implements the datatable.Filter interface.
func (f *Chain) Description() string {
	if len(f.Filters) == 0 {
		return "empty filter"
	}
	var sb strings.Builder
	sb.WriteString(f.Filters[0].Description())
	for i, op := range f.Ops {
		if i+1 >= len(f.Filters) {
			break
		}
		sb.WriteString(" " + op.String() + " ")
		sb.WriteString(f.Filters[i+1].Description())
	}
	return sb.String()
}
