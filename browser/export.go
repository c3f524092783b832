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
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/compress"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"

	"github.com/forgeui/gridtable/datatable"
)

// ExportFormat enumerates the formats an exported view can take.
type ExportFormat int

const (
	FormatCSV ExportFormat = iota
	FormatJSON
	FormatParquet
)

// Ext returns the file extension for the format, dot included.
func (f ExportFormat) Ext() string {
	switch f {
	case FormatParquet:
		return ".parquet"
	case FormatJSON:
		return ".json"
	default:
		return ".csv"
	}
}

// Export writes the model's current view, filtered and sorted, limited to the
// visible columns, to the file at path.
func Export(model *datatable.TableModel, format ExportFormat, path string) error {
	switch format {
	case FormatCSV:
		return exportCSV(model, path)
	case FormatJSON:
		return exportJSON(model, path)
	case FormatParquet:
		return exportParquet(model, path)
	default:
		return fmt.Errorf("%w: unknown format %d", datatable.ErrExportFailed, int(format))
	}
}

// viewColumns resolves the visible columns to their source indices.
func viewColumns(model *datatable.TableModel) ([]datatable.Column, []int, error) {
	source := model.Source()
	byName := make(map[string]int, source.ColumnCount())
	for i := 0; i < source.ColumnCount(); i++ {
		name, err := source.ColumnName(i)
		if err != nil {
			return nil, nil, err
		}
		byName[name] = i
	}

	cols := model.VisibleColumns()
	indices := make([]int, len(cols))
	for i, c := range cols {
		idx, ok := byName[c.Name]
		if !ok {
			return nil, nil, fmt.Errorf("%w: %q", datatable.ErrColumnNotFound, c.Name)
		}
		indices[i] = idx
	}
	return cols, indices, nil
}

func exportCSV(model *datatable.TableModel, path string) error {
	cols, srcCols, err := viewColumns(model)
	if err != nil {
		return fmt.Errorf("%w: %v", datatable.ErrExportFailed, err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %v", datatable.ErrExportFailed, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	headers := make([]string, len(cols))
	for i, c := range cols {
		headers[i] = c.Name
	}
	if err := w.Write(headers); err != nil {
		return fmt.Errorf("%w: writing header: %v", datatable.ErrExportFailed, err)
	}

	source := model.Source()
	record := make([]string, len(srcCols))
	for _, row := range model.GetVisibleRowIndices() {
		for i, col := range srcCols {
			v, err := source.Cell(row, col)
			if err != nil {
				return fmt.Errorf("%w: %v", datatable.ErrExportFailed, err)
			}
			record[i] = v.Formatted
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("%w: writing row: %v", datatable.ErrExportFailed, err)
		}
	}
	return nil
}

func exportJSON(model *datatable.TableModel, path string) error {
	cols, srcCols, err := viewColumns(model)
	if err != nil {
		return fmt.Errorf("%w: %v", datatable.ErrExportFailed, err)
	}

	source := model.Source()
	records := make([]map[string]interface{}, 0, model.VisibleRowCount())
	for _, row := range model.GetVisibleRowIndices() {
		record := make(map[string]interface{}, len(cols))
		for i, col := range srcCols {
			v, err := source.Cell(row, col)
			if err != nil {
				return fmt.Errorf("%w: %v", datatable.ErrExportFailed, err)
			}
			if v.IsNull {
				record[cols[i].Name] = nil
			} else {
				record[cols[i].Name] = v.Raw
			}
		}
		records = append(records, record)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %v", datatable.ErrExportFailed, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("%w: encoding json: %v", datatable.ErrExportFailed, err)
	}
	return nil
}

func exportParquet(model *datatable.TableModel, path string) error {
	table, err := buildArrowTable(model)
	if err != nil {
		return fmt.Errorf("%w: %v", datatable.ErrExportFailed, err)
	}
	defer table.Release()

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %v", datatable.ErrExportFailed, err)
	}
	defer f.Close()

	props := parquet.NewWriterProperties(parquet.WithCompression(compress.Codecs.Snappy))
	arrowProps := pqarrow.NewArrowWriterProperties(pqarrow.WithStoreSchema())

	writer, err := pqarrow.NewFileWriter(table.Schema(), f, props, arrowProps)
	if err != nil {
		return fmt.Errorf("%w: creating parquet writer: %v", datatable.ErrExportFailed, err)
	}
	defer writer.Close()

	if err := writer.WriteTable(table, table.NumRows()); err != nil {
		return fmt.Errorf("%w: writing parquet: %v", datatable.ErrExportFailed, err)
	}
	return nil
}

// buildArrowTable materialises the current view as an Arrow table. Column
// types map onto the closest Arrow scalar; anything without one is exported
// as its display string.
func buildArrowTable(model *datatable.TableModel) (arrow.Table, error) {
	cols, srcCols, err := viewColumns(model)
	if err != nil {
		return nil, err
	}
	source := model.Source()

	fields := make([]arrow.Field, len(cols))
	for i, c := range cols {
		dt, err := source.ColumnType(srcCols[i])
		if err != nil {
			return nil, err
		}
		fields[i] = arrow.Field{Name: c.Name, Type: arrowFieldType(dt), Nullable: true}
	}
	schema := arrow.NewSchema(fields, nil)

	pool := memory.NewGoAllocator()
	builder := array.NewRecordBuilder(pool, schema)
	defer builder.Release()

	rows := model.GetVisibleRowIndices()
	for _, row := range rows {
		for i, col := range srcCols {
			v, err := source.Cell(row, col)
			if err != nil {
				return nil, err
			}
			appendCell(builder.Field(i), v)
		}
	}

	rec := builder.NewRecord()
	defer rec.Release()
	return array.NewTableFromRecords(schema, []arrow.Record{rec}), nil
}

func arrowFieldType(dt datatable.DataType) arrow.DataType {
	switch dt {
	case datatable.TypeInt:
		return arrow.PrimitiveTypes.Int64
	case datatable.TypeFloat, datatable.TypeDecimal:
		return arrow.PrimitiveTypes.Float64
	case datatable.TypeBool:
		return arrow.FixedWidthTypes.Boolean
	case datatable.TypeTimestamp, datatable.TypeDate:
		return arrow.FixedWidthTypes.Timestamp_us
	default:
		return arrow.BinaryTypes.String
	}
}

func appendCell(b array.Builder, v datatable.Value) {
	if v.IsNull {
		b.AppendNull()
		return
	}
	switch builder := b.(type) {
	case *array.Int64Builder:
		if f, ok := v.Float(); ok {
			builder.Append(int64(f))
		} else {
			builder.AppendNull()
		}
	case *array.Float64Builder:
		if f, ok := v.Float(); ok {
			builder.Append(f)
		} else {
			builder.AppendNull()
		}
	case *array.BooleanBuilder:
		if raw, ok := v.Raw.(bool); ok {
			builder.Append(raw)
		} else {
			builder.AppendNull()
		}
	case *array.TimestampBuilder:
		if raw, ok := v.Raw.(time.Time); ok {
			builder.Append(arrow.Timestamp(raw.UnixMicro()))
		} else {
			builder.AppendNull()
		}
	case *array.StringBuilder:
		builder.Append(v.Formatted)
	default:
		b.AppendNull()
	}
}
