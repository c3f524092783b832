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

// Command tablebrowser browses CSV, Parquet and JSON files in sortable,
// filterable tables. Any paths given on the command line are opened on
// startup.
package main

import (
	"os"

	"github.com/forgeui/gridtable/browser"
)

func main() {
	w := browser.CreateMainWindow()
	for _, path := range os.Args[1:] {
		w.OpenFile(path)
	}
	w.Run()
}
