// SPDX-License-Identifier: EPL-2.0

package graph

import (
	"math"

	"github.com/viterin/vek/vek32"

	"github.com/ik5/audedit/audio"
)

// Peak is the extent of one display cell.
type Peak struct {
	Min, Max float32
}

// cellStart is the first frame of cell c: c·density rounded to the nearest
// frame. Cell boundaries sit on one grid per density so that overlapping
// queries agree on every shared cell.
func cellStart(c int, density float64) int {
	return int(math.Round(float64(c) * density))
}

// Overview reduces frames to per-channel min/max peaks for cells
// [cell, cell+width). The result stops early at the end of the data.
func Overview(f *audio.Frames, cell, width int, density float64) [][]Peak {
	out := make([][]Peak, f.Channels)
	n := f.Len()
	if cell < 0 {
		width += cell
		cell = 0
	}
	if width <= 0 || n == 0 {
		return out
	}

	first := min(max(cellStart(cell, density), 0), n)
	last := min(max(cellStart(cell+width, density), first), n)

	buf := make([]float32, last-first)
	for ch := range f.Channels {
		for i := range buf {
			buf[i] = f.Data[(first+i)*f.Channels+ch]
		}

		peaks := make([]Peak, 0, width)
		for c := cell; c < cell+width; c++ {
			a := cellStart(c, density)
			if a >= last {
				break
			}
			b := min(cellStart(c+1, density), last)
			if b <= a {
				b = a + 1
			}
			seg := buf[a-first : b-first]
			peaks = append(peaks, Peak{Min: vek32.Min(seg), Max: vek32.Max(seg)})
		}
		out[ch] = peaks
	}

	return out
}

// OverviewCache memoizes the last Overview query and reuses the cells it
// shares with the next one.
type OverviewCache struct {
	data *audio.Frames

	valid   bool
	cell    int
	width   int
	density float64
	peaks   [][]Peak
}

// SetData replaces the source buffer and drops the memo.
func (o *OverviewCache) SetData(f *audio.Frames) {
	o.data = f
	o.valid = false
	o.peaks = nil
}

// Get returns peaks for cells [cell, cell+width). Repeating the previous
// query returns the very same slices. Cells before 0 are dropped, as in
// Overview.
func (o *OverviewCache) Get(cell, width int, density float64) [][]Peak {
	if o.data == nil {
		return nil
	}
	if cell < 0 {
		width = max(width+cell, 0)
		cell = 0
	}
	if o.valid && cell == o.cell && width == o.width && density == o.density {
		return o.peaks
	}

	var peaks [][]Peak
	if o.valid && density == o.density {
		peaks = o.splice(cell, width)
	}
	if peaks == nil {
		peaks = Overview(o.data, cell, width, density)
	}

	o.valid = true
	o.cell, o.width, o.density = cell, width, density
	o.peaks = peaks
	return peaks
}

// splice builds the answer from a fresh head and tail around the cached
// overlap, or returns nil when the ranges are disjoint.
func (o *OverviewCache) splice(cell, width int) [][]Peak {
	a := max(cell, o.cell)
	b := min(cell+width, o.cell+o.width)
	if a >= b {
		return nil
	}

	var head, tail [][]Peak
	if cell < a {
		head = Overview(o.data, cell, a-cell, o.density)
	}
	if b < cell+width {
		tail = Overview(o.data, b, cell+width-b, o.density)
	}

	out := make([][]Peak, len(o.peaks))
	for ch, cached := range o.peaks {
		i := min(a-o.cell, len(cached))
		j := min(b-o.cell, len(cached))

		row := make([]Peak, 0, width)
		if head != nil {
			row = append(row, head[ch]...)
		}
		row = append(row, cached[i:j]...)
		if tail != nil {
			row = append(row, tail[ch]...)
		}
		out[ch] = row
	}
	return out
}
