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

	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"

	"github.com/forgeui/gridtable/datatable"
)

// MatchFunc is the signature a filter script must provide: it receives the
// row as a map from column name to raw value and reports whether it matches.
type MatchFunc func(row map[string]interface{}) bool

// scriptTemplate wraps a bare function body. The blank assignments keep the
// pre-imported packages referenced even when the body does not use them.
const scriptTemplate = `package predicate

import (
	"fmt"
	"strconv"
	"strings"
)

var (
	_ = fmt.Sprint
	_ = strconv.Itoa
	_ = strings.Contains
)

func Match(row map[string]interface{}) bool {
%s
}
`

// Script filters rows with a user-supplied Go predicate evaluated in an
// embedded interpreter. The predicate is compiled once at construction.
type Script struct {
	source string
	match  MatchFunc
}

// NewScript compiles code into a row predicate. Code is either a bare
// function body (it may use fmt, strconv and strings) or a complete source
// file declaring a package with a Match function of the MatchFunc signature.
func NewScript(code string) (*Script, error) {
	if strings.TrimSpace(code) == "" {
		return nil, fmt.Errorf("%w: empty script", datatable.ErrInvalidFilter)
	}

	source := code
	if !strings.Contains(code, "package ") {
		source = fmt.Sprintf(scriptTemplate, code)
	}

	i := interp.New(interp.Options{})
	if err := i.Use(stdlib.Symbols); err != nil {
		return nil, fmt.Errorf("loading interpreter stdlib: %w", err)
	}
	if _, err := i.Eval(source); err != nil {
		return nil, fmt.Errorf("%w: %v", datatable.ErrInvalidFilter, err)
	}

	v, err := i.Eval("predicate.Match")
	if err != nil {
		return nil, fmt.Errorf("%w: script must define Match: %v", datatable.ErrInvalidFilter, err)
	}
	match, ok := v.Interface().(func(map[string]interface{}) bool)
	if !ok {
		return nil, fmt.Errorf("%w: Match must be func(map[string]interface{}) bool", datatable.ErrInvalidFilter)
	}

	return &Script{source: code, match: match}, nil
}

// Evaluate implements the datatable.Filter interface. Null cells appear in
// the row map as nil values.
func (s *Script) Evaluate(row []datatable.Value, columnNames []string) (bool, error) {
	if len(row) != len(columnNames) {
		return false, fmt.Errorf("%w: %d values for %d columns",
			datatable.ErrInvalidFilter, len(row), len(columnNames))
	}
	byName := make(map[string]interface{}, len(row))
	for i, v := range row {
		byName[columnNames[i]] = v.Raw
	}
	return s.match(byName), nil
}

// Description implements the datatable.Filter interface.
func (s *Script) Description() string {
	first := s.source
	if idx := strings.IndexByte(first, '\n'); idx >= 0 {
		first = first[:idx] + " …"
	}
	return "script: " + first
}
