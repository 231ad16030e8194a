// SPDX-License-Identifier: EPL-2.0

// Package selection tracks the selected frame range of a graph, driven by
// pixel positions from pointer input.
package selection

import "github.com/ik5/audedit/event"

// Graph converts between pixels and frames.
type Graph interface {
	PxlToFrm(pixel int) int
	FrmToPxl(frame int) int
	NumFrames() int
	Changed() *event.Signal
}

// FrameSetter receives the lower bound after every change; the cursor
// implements it.
type FrameSetter interface {
	SetFrame(frame int)
}

// Selection holds two frame anchors. end may be lower than start while
// dragging right to left; Get always returns them ordered.
type Selection struct {
	graph  Graph
	cursor FrameSetter
	handle event.Handle

	start, end int

	changed event.Signal
}

// New returns an empty selection on g. cursor may be nil.
func New(g Graph, cursor FrameSetter) *Selection {
	s := &Selection{graph: g, cursor: cursor}
	s.handle = g.Changed().Connect(s.changed.Emit)
	s.Unselect()
	return s
}

// Changed fires when the bounds move and when the graph changes, since
// the pixel positions move with it.
func (s *Selection) Changed() *event.Signal { return &s.changed }

// Close detaches s from its graph.
func (s *Selection) Close() {
	s.graph.Changed().Disconnect(s.handle)
}

// Set places both anchors, in frames.
func (s *Selection) Set(start, end int) {
	s.start, s.end = start, end
	s.notify()
}

func (s *Selection) notify() {
	if s.cursor != nil {
		s.cursor.SetFrame(min(s.start, s.end))
	}
	s.changed.Emit()
}

func (s *Selection) Unselect()  { s.Set(0, 0) }
func (s *Selection) SelectAll() { s.Set(0, s.graph.NumFrames()) }

func (s *Selection) SelectTillStart() {
	_, end := s.Get()
	s.Set(0, end)
}

func (s *Selection) SelectTillEnd() {
	start, _ := s.Get()
	s.Set(start, s.graph.NumFrames())
}

func (s *Selection) Selected() bool { return s.start != s.end }

// Pin starts a new selection at the frame under pixel.
func (s *Selection) Pin(pixel int) {
	f := s.graph.PxlToFrm(pixel)
	s.Set(f, f)
}

// Extend moves the end anchor to the frame under pixel.
func (s *Selection) Extend(pixel int) {
	s.end = s.graph.PxlToFrm(pixel)
	s.notify()
}

// MoveStartToPixel drags the lower bound, keeping the upper one.
func (s *Selection) MoveStartToPixel(pixel int) {
	_, end := s.Get()
	s.Set(end, end)
	s.Extend(pixel)
}

// MoveEndToPixel drags the upper bound, keeping the lower one.
func (s *Selection) MoveEndToPixel(pixel int) {
	start, _ := s.Get()
	s.Set(start, start)
	s.Extend(pixel)
}

// Get returns the selected frames with start <= end.
func (s *Selection) Get() (start, end int) {
	return min(s.start, s.end), max(s.start, s.end)
}

// Pixels returns Get mapped to pixel columns.
func (s *Selection) Pixels() (start, end int) {
	a, b := s.Get()
	return s.graph.FrmToPxl(a), s.graph.FrmToPxl(b)
}
