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

// Package datatable provides the model layer for the gridtable widget:
// typed cell values, column descriptors, data sources and the
// filter/sort/paginate/select state machine.
package datatable

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DataType represents the type of data in a column.
type DataType int

const (
	// TypeString represents string data.
	TypeString DataType = iota
	// TypeInt represents integer data (any size).
	TypeInt
	// TypeFloat represents floating-point data (any precision).
	TypeFloat
	// TypeBool represents boolean data.
	TypeBool
	// TypeDate represents date data (without time).
	TypeDate
	// TypeTimestamp represents timestamp data (date + time).
	TypeTimestamp
	// TypeBinary represents binary/blob data.
	TypeBinary
	// TypeDecimal represents decimal/numeric data (fixed precision).
	TypeDecimal
	// TypeStruct represents structured data (nested fields).
	TypeStruct
	// TypeList represents list/array data.
	TypeList
)

// String returns the string representation of a DataType.
func (dt DataType) String() string {
	switch dt {
	case TypeString:
		return "String"
	case TypeInt:
		return "Int"
	case TypeFloat:
		return "Float"
	case TypeBool:
		return "Bool"
	case TypeDate:
		return "Date"
	case TypeTimestamp:
		return "Timestamp"
	case TypeBinary:
		return "Binary"
	case TypeDecimal:
		return "Decimal"
	case TypeStruct:
		return "Struct"
	case TypeList:
		return "List"
	default:
		return fmt.Sprintf("Unknown(%d)", dt)
	}
}

// IsNumeric reports whether values of this type are compared numerically.
func (dt DataType) IsNumeric() bool {
	switch dt {
	case TypeInt, TypeFloat, TypeDecimal:
		return true
	}
	return false
}

// Value is a typed container for cell values.
// It holds the raw value, type information, and a pre-formatted string for
// display. Formatting happens once at construction so the UI never formats
// in a draw path.
type Value struct {
	// Raw holds the underlying value.
	// The type depends on the DataType field.
	Raw interface{}

	// Type indicates the data type of this value.
	Type DataType

	// IsNull indicates whether this value is null/nil.
	IsNull bool

	// Formatted is a pre-formatted string representation for display.
	Formatted string
}

// NewValue creates a new Value from a raw value and type.
func NewValue(raw interface{}, dataType DataType) Value {
	if raw == nil {
		return NewNullValue(dataType)
	}
	return Value{
		Raw:       raw,
		Type:      dataType,
		Formatted: formatValue(raw, dataType),
	}
}

// NewNullValue creates a null value of the specified type.
func NewNullValue(dataType DataType) Value {
	return Value{
		Raw:    nil,
		Type:   dataType,
		IsNull: true,
	}
}

// Float returns the value as a float64 when its type is numeric.
// The second return is false for nulls and non-numeric values.
func (v Value) Float() (float64, bool) {
	if v.IsNull {
		return 0, false
	}
	switch raw := v.Raw.(type) {
	case int:
		return float64(raw), true
	case int8:
		return float64(raw), true
	case int16:
		return float64(raw), true
	case int32:
		return float64(raw), true
	case int64:
		return float64(raw), true
	case uint:
		return float64(raw), true
	case uint8:
		return float64(raw), true
	case uint16:
		return float64(raw), true
	case uint32:
		return float64(raw), true
	case uint64:
		return float64(raw), true
	case float32:
		return float64(raw), true
	case float64:
		return raw, true
	}
	if v.Type.IsNumeric() {
		if f, err := strconv.ParseFloat(v.Formatted, 64); err == nil {
			return f, true
		}
	}
	return 0, false
}

// Compare orders two values: negative when v sorts before other, zero when
// they are equal, positive otherwise. Nulls sort first. Numeric types compare
// numerically, everything else compares on the formatted string without
// locale collation.
func (v Value) Compare(other Value) int {
	if v.IsNull || other.IsNull {
		switch {
		case v.IsNull && other.IsNull:
			return 0
		case v.IsNull:
			return -1
		default:
			return 1
		}
	}

	if a, ok := v.Float(); ok {
		if b, ok := other.Float(); ok {
			switch {
			case a < b:
				return -1
			case a > b:
				return 1
			default:
				return 0
			}
		}
	}

	if at, aok := v.timeValue(); aok {
		if bt, bok := other.timeValue(); bok {
			switch {
			case at.Before(bt):
				return -1
			case at.After(bt):
				return 1
			default:
				return 0
			}
		}
	}

	return strings.Compare(v.Formatted, other.Formatted)
}

func (v Value) timeValue() (time.Time, bool) {
	t, ok := v.Raw.(time.Time)
	return t, ok
}

// formatValue converts a raw value to its display string.
func formatValue(raw interface{}, dataType DataType) string {
	switch val := raw.(type) {
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float32:
		return strconv.FormatFloat(float64(val), 'g', -1, 32)
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64)
	case time.Time:
		if dataType == TypeDate {
			return val.Format("2006-01-02")
		}
		return val.Format(time.RFC3339)
	case []byte:
		return fmt.Sprintf("%d bytes", len(val))
	default:
		return fmt.Sprintf("%v", val)
	}
}

// Metadata holds optional metadata about a data source.
type Metadata map[string]interface{}

// SortDirection specifies the direction of sorting.
type SortDirection int

const (
	// SortNone indicates no sorting.
	SortNone SortDirection = iota
	// SortAscending indicates ascending sort order.
	SortAscending
	// SortDescending indicates descending sort order.
	SortDescending
)

// String returns the string representation of a SortDirection.
func (sd SortDirection) String() string {
	switch sd {
	case SortNone:
		return "None"
	case SortAscending:
		return "Ascending"
	case SortDescending:
		return "Descending"
	default:
		return fmt.Sprintf("Unknown(%d)", sd)
	}
}

// SortState represents the current sorting configuration.
type SortState struct {
	// Column is the index of the sorted column (-1 if unsorted).
	Column int
	// Direction is the sort direction.
	Direction SortDirection
}

// IsSorted returns true if this state represents an active sort.
func (s SortState) IsSorted() bool {
	return s.Column >= 0 && s.Direction != SortNone
}

// SelectionState describes how much of the current page is selected.
// It drives the tri-state select-all control.
type SelectionState int

const (
	// SelectionNone means no row on the current page is selected.
	SelectionNone SelectionState = iota
	// SelectionSome means at least one but not every row on the page is selected.
	SelectionSome
	// SelectionAll means every row on the current page is selected.
	SelectionAll
)

// String returns the string representation of a SelectionState.
func (ss SelectionState) String() string {
	switch ss {
	case SelectionNone:
		return "None"
	case SelectionSome:
		return "Some"
	case SelectionAll:
		return "All"
	default:
		return fmt.Sprintf("Unknown(%d)", ss)
	}
}
