// SPDX-License-Identifier: EPL-2.0

// Package graph is the view model behind a waveform display: which frames
// are visible, how many frames fall in one pixel column, and the min/max
// overview drawn for them.
package graph

import (
	"math"

	"github.com/ik5/audedit/audio"
	"github.com/ik5/audedit/event"
)

// Sound is what Graph reads from.
type Sound interface {
	Frames() *audio.Frames
	Changed() *event.Signal
}

const (
	DefaultWidth          = 100
	DefaultScrollFraction = 0.2
	DefaultZoomInOn       = 0.8
	DefaultZoomOutOn      = 1.25
)

// Mapping is a copy of the frame to pixel transform at one moment.
type Mapping struct {
	Start     float64
	Density   float64
	NumFrames int
}

// Pixel converts a frame index to a pixel column.
func (m Mapping) Pixel(frame int) int {
	if m.Density <= 0 {
		return 0
	}
	return int(math.Round((float64(frame) - m.Start) / m.Density))
}

// Graph scales a sound to a fixed number of pixel columns. The view is
// [start, start+length) in frames. Graph is not safe for concurrent use;
// Mapping hands a snapshot to other goroutines.
type Graph struct {
	sound  Sound
	handle event.Handle

	start  float64
	length float64
	width  int

	scroll    float64
	zoomInOn  float64
	zoomOutOn float64

	overview OverviewCache
	changed  event.Signal
}

type Option func(*Graph)

func WithWidth(w int) Option {
	return func(g *Graph) { g.width = max(w, 1) }
}

func WithScrollFraction(f float64) Option {
	return func(g *Graph) { g.scroll = f }
}

// WithZoomFactors sets the factors of ZoomInOn and ZoomOutOn.
func WithZoomFactors(in, out float64) Option {
	return func(g *Graph) {
		g.zoomInOn = in
		g.zoomOutOn = out
	}
}

func New(s Sound, opts ...Option) *Graph {
	g := &Graph{
		width:     DefaultWidth,
		scroll:    DefaultScrollFraction,
		zoomInOn:  DefaultZoomInOn,
		zoomOutOn: DefaultZoomOutOn,
	}
	for _, opt := range opts {
		opt(g)
	}
	g.SetSound(s)
	return g
}

// SetSound binds g to s and shows all of it.
func (g *Graph) SetSound(s Sound) {
	if g.sound != nil {
		g.sound.Changed().Disconnect(g.handle)
	}
	g.sound = s
	g.handle = s.Changed().Connect(g.onSoundChanged)
	g.start = 0
	g.length = float64(g.NumFrames())
	g.onSoundChanged()
}

// Close detaches g from its sound.
func (g *Graph) Close() {
	if g.sound != nil {
		g.sound.Changed().Disconnect(g.handle)
		g.sound = nil
	}
}

func (g *Graph) onSoundChanged() {
	g.overview.SetData(g.sound.Frames())
	g.update()
}

func (g *Graph) update() {
	g.adjustView()
	g.changed.Emit()
}

// Changed fires after every view change.
func (g *Graph) Changed() *event.Signal { return &g.changed }

func (g *Graph) NumFrames() int {
	if g.sound == nil {
		return 0
	}
	return g.sound.Frames().Len()
}

func (g *Graph) Width() int { return g.width }

// Density is the number of frames per pixel column, never below 1.
func (g *Graph) Density() float64 {
	return max(1, g.length/float64(g.width))
}

// View returns the visible frame range, end exclusive.
func (g *Graph) View() (start, end float64) { return g.start, g.start + g.length }

func (g *Graph) Mapping() Mapping {
	return Mapping{Start: g.start, Density: g.Density(), NumFrames: g.NumFrames()}
}

func (g *Graph) SetWidth(w int) {
	g.width = max(w, 1)
	g.update()
}

func (g *Graph) SetView(start, end float64) {
	g.start, g.length = start, end-start
	g.update()
}

// MoveTo shifts the view to begin at frame, keeping its length.
func (g *Graph) MoveTo(frame float64) {
	g.start = frame
	g.update()
}

// Middle is the frame at the centre of the view.
func (g *Graph) Middle() float64 {
	return g.start + (g.length-1)*0.5
}

// CenterOn moves the view so that Middle returns frame.
func (g *Graph) CenterOn(frame float64) {
	g.MoveTo(frame - (g.length-1)*0.5)
}

// Zoom scales the view length by factor around Middle. Factors below 1
// zoom in. Zoom(a) then Zoom(b) equals Zoom(a*b).
func (g *Graph) Zoom(factor float64) {
	mid := g.Middle()
	g.length *= factor
	g.CenterOn(mid)
}

func (g *Graph) ZoomIn()  { g.Zoom(0.5) }
func (g *Graph) ZoomOut() { g.Zoom(2) }

// ZoomOn scales the view by factor keeping the frame under pixel in place.
func (g *Graph) ZoomOn(pixel int, factor float64) {
	point := g.pxlToFrame(pixel)
	g.length *= factor
	g.MoveTo(point - float64(pixel)*g.Density())
}

func (g *Graph) ZoomInOn(pixel int)  { g.ZoomOn(pixel, g.zoomInOn) }
func (g *Graph) ZoomOutOn(pixel int) { g.ZoomOn(pixel, g.zoomOutOn) }

func (g *Graph) ZoomOutFull() {
	g.SetView(0, float64(g.NumFrames()))
}

func (g *Graph) IsZoomedOutFull() bool {
	return g.start == 0 && g.length == float64(g.NumFrames())
}

func (g *Graph) scrollBy(fraction float64) {
	g.MoveTo(g.start + g.length*fraction)
}

func (g *Graph) ScrollLeft()  { g.scrollBy(-g.scroll) }
func (g *Graph) ScrollRight() { g.scrollBy(g.scroll) }

// FrmToPxl converts a frame index to a pixel column.
func (g *Graph) FrmToPxl(frame int) int {
	return g.Mapping().Pixel(frame)
}

func (g *Graph) pxlToFrame(pixel int) float64 {
	f := g.start + float64(pixel)*g.Density()
	return min(max(f, 0), float64(g.NumFrames()))
}

// PxlToFrm converts a pixel column to a frame index in [0, NumFrames].
func (g *Graph) PxlToFrm(pixel int) int {
	return int(math.Round(g.pxlToFrame(pixel)))
}

// Channels returns the min/max overview of the view, one slice per
// channel. Each slice has Width entries, or NumFrames when the sound is
// shorter than the width.
func (g *Graph) Channels() [][]Peak {
	d := g.Density()
	cell := int(math.Floor(g.start / d))
	return g.overview.Get(cell, g.width, d)
}

// adjustView restores 0 <= start, start+length <= n and length >= width
// when the sound is long enough. Narrow views widen about their centre;
// views past an edge are shifted back.
func (g *Graph) adjustView() {
	n := float64(g.NumFrames())
	w := float64(g.width)

	if n <= w {
		g.start, g.length = 0, n
		return
	}

	if g.length < w {
		g.start += (g.length - w) * 0.5
		g.length = w
	}
	if g.length >= n {
		g.start, g.length = 0, n
		return
	}

	if g.start < 0 {
		g.start = 0
	}
	if g.start+g.length > n {
		g.start = n - g.length
	}
}
