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
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/file"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"

	arrowadapter "github.com/forgeui/gridtable/adapters/arrow"
	csvadapter "github.com/forgeui/gridtable/adapters/csv"
	sliceadapter "github.com/forgeui/gridtable/adapters/slice"
	"github.com/forgeui/gridtable/datatable"
)

// FileType classifies a data file the browser can open.
type FileType int

const (
	FileTypeUnknown FileType = iota
	FileTypeCSV
	FileTypeParquet
	FileTypeJSON
)

// DetectFileType classifies a file by its extension.
func DetectFileType(path string) FileType {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".tsv":
		return FileTypeCSV
	case ".parquet":
		return FileTypeParquet
	case ".json":
		return FileTypeJSON
	default:
		return FileTypeUnknown
	}
}

// detectCSVSeparator sniffs the field separator from the first line, picking
// whichever known separator occurs most.
func detectCSVSeparator(path string) (rune, error) {
	f, err := os.Open(path)
	if err != nil {
		return ',', fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	if !scanner.Scan() {
		return ',', nil
	}
	firstLine := scanner.Text()
	if firstLine == "" {
		return ',', nil
	}

	counts := map[rune]int{
		',':  strings.Count(firstLine, ","),
		';':  strings.Count(firstLine, ";"),
		'\t': strings.Count(firstLine, "\t"),
		'|':  strings.Count(firstLine, "|"),
	}

	best := ','
	bestCount := 0
	for sep, count := range counts {
		if count > bestCount {
			bestCount = count
			best = sep
		}
	}
	return best, nil
}

func separatorName(sep rune) string {
	switch sep {
	case ',':
		return "comma"
	case ';':
		return "semicolon"
	case '\t':
		return "tab"
	case '|':
		return "pipe"
	default:
		return string(sep)
	}
}

// LoadDataSource opens the file at path with the adapter matching its type.
func LoadDataSource(path string) (datatable.DataSource, error) {
	switch DetectFileType(path) {
	case FileTypeCSV:
		return loadCSV(path)
	case FileTypeParquet:
		return loadParquet(path)
	case FileTypeJSON:
		return loadJSON(path)
	default:
		return nil, fmt.Errorf("unsupported file type: %s", filepath.Ext(path))
	}
}

func loadCSV(path string) (datatable.DataSource, error) {
	sep, err := detectCSVSeparator(path)
	if err != nil {
		sep = ','
	}

	config := csvadapter.DefaultConfig()
	config.TrimSpace = true
	config.Delimiter = sep

	source, err := csvadapter.NewFromFile(path, config)
	if err != nil {
		return nil, fmt.Errorf("loading csv: %w", err)
	}
	source.Metadata()["separator"] = separatorName(sep)
	return source, nil
}

func loadParquet(path string) (datatable.DataSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening parquet file: %w", err)
	}
	defer f.Close()

	pf, err := file.NewParquetReader(f, file.WithReadProps(&parquet.ReaderProperties{}))
	if err != nil {
		return nil, fmt.Errorf("reading parquet: %w", err)
	}
	defer pf.Close()

	reader, err := pqarrow.NewFileReader(pf, pqarrow.ArrowReadProperties{}, memory.NewGoAllocator())
	if err != nil {
		return nil, fmt.Errorf("creating arrow reader: %w", err)
	}

	table, err := reader.ReadTable(context.Background())
	if err != nil {
		return nil, fmt.Errorf("reading parquet data: %w", err)
	}
	defer table.Release()

	source, err := arrowadapter.NewFromArrowTable(table)
	if err != nil {
		return nil, err
	}
	source.Metadata()["path"] = path
	return source, nil
}

// loadJSON reads an array of objects, or a single object treated as one row.
func loadJSON(path string) (datatable.DataSource, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading json file: %w", err)
	}

	var records []map[string]interface{}
	if err := json.Unmarshal(content, &records); err != nil {
		var single map[string]interface{}
		if err := json.Unmarshal(content, &single); err != nil {
			return nil, fmt.Errorf("parsing json: %w", err)
		}
		records = []map[string]interface{}{single}
	}
	if len(records) == 0 {
		return nil, datatable.ErrEmptyData
	}

	source, err := sliceadapter.NewFromMaps(records)
	if err != nil {
		return nil, err
	}
	source.Metadata()["path"] = path
	return source, nil
}
