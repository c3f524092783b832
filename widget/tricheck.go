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
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// TriCheckState is the visual state of a TriCheck.
type TriCheckState int

const (
	// TriUnchecked shows an empty box.
	TriUnchecked TriCheckState = iota
	// TriChecked shows a check mark.
	TriChecked
	// TriPartial shows a dash, meaning "some but not all".
	TriPartial
)

const (
	triCheckBoxSize  float32 = 18
	triCheckPad      float32 = 5
	triCheckStroke   float32 = 2
	triCheckDashSpan float32 = 8
)

// TriCheck is a three-state checkbox. Tapping a checked box unchecks it;
// tapping an unchecked or partial box checks it. The partial state is only
// ever set programmatically. SetState never fires OnChanged, so callers can
// sync the control to model state without feedback loops.
type TriCheck struct {
	widget.BaseWidget

	// OnChanged receives the new checked state after a tap.
	OnChanged func(checked bool)

	state TriCheckState
}

var _ fyne.Tappable = (*TriCheck)(nil)

// NewTriCheck creates an unchecked TriCheck.
func NewTriCheck(onChanged func(checked bool)) *TriCheck {
	c := &TriCheck{OnChanged: onChanged}
	c.ExtendBaseWidget(c)
	return c
}

// State returns the current visual state.
func (c *TriCheck) State() TriCheckState {
	return c.state
}

// SetState updates the visual state without invoking OnChanged.
func (c *TriCheck) SetState(state TriCheckState) {
	if c.state == state {
		return
	}
	c.state = state
	c.Refresh()
}

// Tapped implements fyne.Tappable.
func (c *TriCheck) Tapped(*fyne.PointEvent) {
	checked := c.state != TriChecked
	if checked {
		c.state = TriChecked
	} else {
		c.state = TriUnchecked
	}
	c.Refresh()
	if c.OnChanged != nil {
		c.OnChanged(checked)
	}
}

// CreateRenderer implements fyne.Widget.
func (c *TriCheck) CreateRenderer() fyne.WidgetRenderer {
	box := canvas.NewRectangle(color.Transparent)
	box.StrokeWidth = triCheckStroke
	box.CornerRadius = 3

	mark := canvas.NewImageFromResource(theme.ConfirmIcon())
	mark.FillMode = canvas.ImageFillContain

	dash := canvas.NewRectangle(color.Transparent)
	dash.CornerRadius = 1

	r := &triCheckRenderer{check: c, box: box, mark: mark, dash: dash}
	r.Refresh()
	return r
}

type triCheckRenderer struct {
	check *TriCheck
	box   *canvas.Rectangle
	mark  *canvas.Image
	dash  *canvas.Rectangle
}

func (r *triCheckRenderer) MinSize() fyne.Size {
	side := triCheckBoxSize + 2*triCheckPad
	return fyne.NewSize(side, side)
}

func (r *triCheckRenderer) Layout(size fyne.Size) {
	boxPos := fyne.NewPos((size.Width-triCheckBoxSize)/2, (size.Height-triCheckBoxSize)/2)
	r.box.Move(boxPos)
	r.box.Resize(fyne.NewSize(triCheckBoxSize, triCheckBoxSize))

	inset := float32(2)
	r.mark.Move(boxPos.AddXY(inset, inset))
	r.mark.Resize(fyne.NewSize(triCheckBoxSize-2*inset, triCheckBoxSize-2*inset))

	r.dash.Move(fyne.NewPos((size.Width-triCheckDashSpan)/2, size.Height/2-triCheckStroke/2))
	r.dash.Resize(fyne.NewSize(triCheckDashSpan, triCheckStroke+1))
}

func (r *triCheckRenderer) Refresh() {
	primary := theme.Color(theme.ColorNamePrimary)
	switch r.check.state {
	case TriChecked:
		r.box.StrokeColor = primary
		r.box.FillColor = color.Transparent
		r.mark.Show()
		r.dash.Hide()
	case TriPartial:
		r.box.StrokeColor = primary
		r.box.FillColor = color.Transparent
		r.mark.Hide()
		r.dash.FillColor = primary
		r.dash.Show()
	default:
		r.box.StrokeColor = theme.Color(theme.ColorNameInputBorder)
		r.box.FillColor = color.Transparent
		r.mark.Hide()
		r.dash.Hide()
	}
	r.box.Refresh()
	r.mark.Refresh()
	r.dash.Refresh()
}

func (r *triCheckRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.box, r.mark, r.dash}
}

func (r *triCheckRenderer) Destroy() {}
