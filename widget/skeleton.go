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
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// Skeleton is a passive placeholder block rendered while real content loads.
// It has no state and no interaction.
type Skeleton struct {
	widget.BaseWidget

	minWidth  float32
	minHeight float32
}

// NewSkeleton creates a placeholder with the given minimum size. The block
// stretches horizontally with its cell.
func NewSkeleton(width, height float32) *Skeleton {
	s := &Skeleton{minWidth: width, minHeight: height}
	s.ExtendBaseWidget(s)
	return s
}

// CreateRenderer implements fyne.Widget.
func (s *Skeleton) CreateRenderer() fyne.WidgetRenderer {
	block := canvas.NewRectangle(theme.Color(theme.ColorNameDisabled))
	block.CornerRadius = 4
	return &skeletonRenderer{skeleton: s, block: block}
}

type skeletonRenderer struct {
	skeleton *Skeleton
	block    *canvas.Rectangle
}

func (r *skeletonRenderer) MinSize() fyne.Size {
	return fyne.NewSize(r.skeleton.minWidth, r.skeleton.minHeight)
}

func (r *skeletonRenderer) Layout(size fyne.Size) {
	pad := float32(3)
	r.block.Move(fyne.NewPos(0, pad))
	r.block.Resize(fyne.NewSize(size.Width, size.Height-2*pad))
}

func (r *skeletonRenderer) Refresh() {
	r.block.FillColor = theme.Color(theme.ColorNameDisabled)
	r.block.Refresh()
}

func (r *skeletonRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.block}
}

func (r *skeletonRenderer) Destroy() {}
