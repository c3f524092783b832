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

package widget

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

const selectionColumnWidth = float32(36)

// columnLayout sizes a row of cells into table columns. Columns with a
// positive width hint are fixed; the rest share the remaining horizontal
// space equally, never dropping below the minimum column width.
//
// Header, filter and body rows of one table share a single instance so
// their cells stay aligned.
type columnLayout struct {
	widths   []float32
	minWidth float32
}

func newColumnLayout(widths []float32, minWidth float32) *columnLayout {
	if minWidth <= 0 {
		minWidth = 100
	}
	return &columnLayout{widths: widths, minWidth: minWidth}
}

// setWidths swaps the column hints, e.g. after columns are hidden or shown.
func (l *columnLayout) setWidths(widths []float32) {
	l.widths = widths
}

func (l *columnLayout) columnWidths(total float32) []float32 {
	out := make([]float32, len(l.widths))
	pad := theme.Padding()
	remaining := total - pad*float32(len(l.widths)-1)
	flexible := 0
	for i, w := range l.widths {
		if w > 0 {
			out[i] = w
			remaining -= w
		} else {
			flexible++
		}
	}
	if flexible > 0 {
		share := remaining / float32(flexible)
		if share < l.minWidth {
			share = l.minWidth
		}
		for i, w := range l.widths {
			if w <= 0 {
				out[i] = share
			}
		}
	}
	return out
}

func (l *columnLayout) MinSize(objects []fyne.CanvasObject) fyne.Size {
	pad := theme.Padding()
	width := float32(0)
	height := float32(0)
	for i, o := range objects {
		if i >= len(l.widths) {
			break
		}
		if i > 0 {
			width += pad
		}
		if w := l.widths[i]; w > 0 {
			width += w
		} else {
			width += l.minWidth
		}
		if h := o.MinSize().Height; h > height {
			height = h
		}
	}
	return fyne.NewSize(width, height)
}

func (l *columnLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	pad := theme.Padding()
	widths := l.columnWidths(size.Width)
	x := float32(0)
	for i, o := range objects {
		if i >= len(widths) {
			o.Hide()
			continue
		}
		o.Move(fyne.NewPos(x, 0))
		o.Resize(fyne.NewSize(widths[i], size.Height))
		x += widths[i] + pad
	}
}
