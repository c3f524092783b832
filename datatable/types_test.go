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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewValueFormatting(t *testing.T) {
	assert.Equal(t, "Steel Plate", NewValue("Steel Plate", TypeString).Formatted)
	assert.Equal(t, "42", NewValue(int64(42), TypeInt).Formatted)
	assert.Equal(t, "120.5", NewValue(120.5, TypeFloat).Formatted)
	assert.Equal(t, "true", NewValue(true, TypeBool).Formatted)
	assert.Equal(t, "3 bytes", NewValue([]byte{1, 2, 3}, TypeBinary).Formatted)

	day := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	assert.Equal(t, "2026-03-14", NewValue(day, TypeDate).Formatted)
	assert.Equal(t, "2026-03-14T09:30:00Z", NewValue(day, TypeTimestamp).Formatted)

	// nil raw collapses to a null of the requested type
	v := NewValue(nil, TypeInt)
	assert.True(t, v.IsNull)
	assert.Equal(t, "", v.Formatted)
}

func TestValueFloat(t *testing.T) {
	f, ok := NewValue(int64(40), TypeInt).Float()
	assert.True(t, ok)
	assert.Equal(t, 40.0, f)

	f, ok = NewValue(float32(1.5), TypeFloat).Float()
	assert.True(t, ok)
	assert.Equal(t, 1.5, f)

	_, ok = NewValue("forty", TypeString).Float()
	assert.False(t, ok)

	_, ok = NewNullValue(TypeInt).Float()
	assert.False(t, ok)
}

func TestValueCompare(t *testing.T) {
	intVal := func(n int64) Value { return NewValue(n, TypeInt) }
	strVal := func(s string) Value { return NewValue(s, TypeString) }

	// numeric, not lexicographic
	assert.Negative(t, intVal(9).Compare(intVal(100)))
	assert.Positive(t, intVal(100).Compare(intVal(9)))
	assert.Zero(t, intVal(7).Compare(intVal(7)))

	assert.Negative(t, strVal("Aluminum").Compare(strVal("Steel")))
	assert.Positive(t, strVal("Steel").Compare(strVal("Aluminum")))

	// nulls sort first
	assert.Negative(t, NewNullValue(TypeInt).Compare(intVal(0)))
	assert.Positive(t, intVal(0).Compare(NewNullValue(TypeInt)))
	assert.Zero(t, NewNullValue(TypeInt).Compare(NewNullValue(TypeString)))

	earlier := NewValue(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), TypeTimestamp)
	later := NewValue(time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC), TypeTimestamp)
	assert.Negative(t, earlier.Compare(later))
	assert.Positive(t, later.Compare(earlier))
}

func TestDataTypeIsNumeric(t *testing.T) {
	assert.True(t, TypeInt.IsNumeric())
	assert.True(t, TypeFloat.IsNumeric())
	assert.True(t, TypeDecimal.IsNumeric())
	assert.False(t, TypeString.IsNumeric())
	assert.False(t, TypeBool.IsNumeric())
}

func TestSortStateIsSorted(t *testing.T) {
	assert.False(t, SortState{Column: -1, Direction: SortNone}.IsSorted())
	assert.False(t, SortState{Column: 2, Direction: SortNone}.IsSorted())
	assert.True(t, SortState{Column: 0, Direction: SortDescending}.IsSorted())
}
