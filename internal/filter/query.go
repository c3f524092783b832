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

// ParseQuery turns a query string like
//
//	status = active AND quantity >= 10 OR name ~ steel
//
// into a Filter. Conditions are joined left to right by AND/OR. A term
// without an operator becomes a contains-search across all columns. Column
// names are validated against columnNames, case-insensitively. An empty query
// yields nil.
func ParseQuery(query string, columnNames []string) (datatable.Filter, error) {
	if strings.TrimSpace(query) == "" {
		return nil, nil
	}

	known := make(map[string]struct{}, len(columnNames))
	for _, name := range columnNames {
		known[strings.ToLower(name)] = struct{}{}
	}

	chain := &Chain{}
	for _, tok := range splitQuery(query) {
		if tok.isLogic {
			if strings.EqualFold(tok.text, "AND") {
				chain.Ops = append(chain.Ops, LogicAND)
			} else {
				chain.Ops = append(chain.Ops, LogicOR)
			}
			continue
		}
		cond, err := parseCondition(tok.text, known)
		if err != nil {
			return nil, err
		}
		chain.Filters = append(chain.Filters, cond)
	}

	if len(chain.Filters) == 0 {
		return nil, fmt.Errorf("%w: empty query", datatable.ErrInvalidFilter)
	}
	if len(chain.Ops) != len(chain.Filters)-1 {
		return nil, fmt.Errorf("%w: mismatched conditions and operators", datatable.ErrInvalidFilter)
	}
	if len(chain.Filters) == 1 {
		return chain.Filters[0], nil
	}
	return chain, nil
}

type queryToken struct {
	text    string
	isLogic bool
}

// splitQuery cuts the query at word-boundary AND/OR while keeping the
// operators as tokens of their own.
func splitQuery(query string) []queryToken {
	tokens := make([]queryToken, 0, 4)
	var current strings.Builder

	flush := func() {
		if text := strings.TrimSpace(current.String()); text != "" {
			tokens = append(tokens, queryToken{text: text})
		}
		current.Reset()
	}

	i := 0
	for i < len(query) {
		if word, n := logicWordAt(query, i); n > 0 {
			flush()
			tokens = append(tokens, queryToken{text: word, isLogic: true})
			i += n
			continue
		}
		current.WriteByte(query[i])
		i++
	}
	flush()
	return tokens
}

// logicWordAt reports an AND/OR keyword starting at i, bounded by whitespace
// or the string edges.
func logicWordAt(query string, i int) (string, int) {
	for _, word := range [...]string{"AND", "OR"} {
		n := len(word)
		if i+n > len(query) || !strings.EqualFold(query[i:i+n], word) {
			continue
		}
		beforeOK := i == 0 || isSpace(query[i-1])
		afterOK := i+n == len(query) || isSpace(query[i+n])
		if beforeOK && afterOK {
			return word, n
		}
	}
	return "", 0
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

var condOps = [...]struct {
	symbol string
	op     Op
}{
	{">=", OpGreaterEqual},
	{"<=", OpLessEqual},
	{"!=", OpNotEqual},
	{"=", OpEqual},
	{">", OpGreater},
	{"<", OpLess},
	{"~", OpContains},
}

// parseCondition parses a single "column op literal" clause. The clause
// splits at the earliest operator occurrence, so operator characters inside
// the literal stay part of the literal; at the same position the longer
// symbol wins (">=" over ">"). A clause with no operator becomes a
// contains-search over every column.
func parseCondition(clause string, known map[string]struct{}) (datatable.Filter, error) {
	clause = strings.TrimSpace(clause)

	bestIdx := -1
	bestLen := 0
	var bestOp Op
	for _, candidate := range condOps {
		idx := strings.Index(clause, candidate.symbol)
		if idx <= 0 {
			continue
		}
		if bestIdx == -1 || idx < bestIdx || (idx == bestIdx && len(candidate.symbol) > bestLen) {
			bestIdx = idx
			bestLen = len(candidate.symbol)
			bestOp = candidate.op
		}
	}
	if bestIdx < 0 {
		return &AnyColumnContains{Query: clause}, nil
	}

	column := strings.TrimSpace(clause[:bestIdx])
	literal := strings.TrimSpace(clause[bestIdx+bestLen:])
	literal = strings.Trim(literal, `"'`)

	if _, ok := known[strings.ToLower(column)]; !ok {
		return nil, fmt.Errorf("%w: %q", datatable.ErrColumnNotFound, column)
	}
	return &Condition{Column: column, Op: bestOp, Value: literal}, nil
}
