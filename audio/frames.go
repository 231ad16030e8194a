// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
	"slices"
)

// Frames is an in-memory block of interleaved samples. A frame is one
// sample per channel; Channels never changes for a given value, converting
// goes through MixChannels.
type Frames struct {
	Channels int
	Data     []float32
}

// NewFrames returns n frames of silence.
func NewFrames(channels, n int) *Frames {
	if channels < 1 {
		channels = 1
	}
	return &Frames{Channels: channels, Data: make([]float32, n*channels)}
}

// FromSamples wraps interleaved data without copying it.
func FromSamples(channels int, data []float32) (*Frames, error) {
	if channels < 1 || len(data)%channels != 0 {
		return nil, ErrInvalidDstSize
	}
	return &Frames{Channels: channels, Data: data}, nil
}

// Mono builds a single channel buffer from values.
func Mono(values ...float32) *Frames {
	return &Frames{Channels: 1, Data: slices.Clone(values)}
}

// Stack builds a buffer from one slice per frame. All frames must have the
// same length, which becomes the channel count; ragged input panics.
func Stack(frames ...[]float32) *Frames {
	if len(frames) == 0 {
		return NewFrames(1, 0)
	}
	ch := len(frames[0])
	f := NewFrames(ch, len(frames))
	for i, fr := range frames {
		if len(fr) != ch {
			panic(fmt.Sprintf("audio: frame %d has %d channels, want %d", i, len(fr), ch))
		}
		copy(f.Data[i*ch:], fr)
	}
	return f
}

// Len returns the number of frames.
func (f *Frames) Len() int {
	if f == nil || f.Channels < 1 {
		return 0
	}
	return len(f.Data) / f.Channels
}

// Frame returns the samples of frame i. The slice aliases f.
func (f *Frames) Frame(i int) []float32 {
	return f.Data[i*f.Channels : (i+1)*f.Channels]
}

// Slice copies frames [start, end).
func (f *Frames) Slice(start, end int) *Frames {
	return &Frames{
		Channels: f.Channels,
		Data:     slices.Clone(f.Data[start*f.Channels : end*f.Channels]),
	}
}

func (f *Frames) Clone() *Frames {
	return &Frames{Channels: f.Channels, Data: slices.Clone(f.Data)}
}

// Channel returns a deinterleaved copy of channel c.
func (f *Frames) Channel(c int) []float32 {
	n := f.Len()
	out := make([]float32, n)
	for i := range n {
		out[i] = f.Data[i*f.Channels+c]
	}
	return out
}

// Rows returns a copy of the buffer as one slice per frame.
func (f *Frames) Rows() [][]float32 {
	rows := make([][]float32, f.Len())
	for i := range rows {
		rows[i] = slices.Clone(f.Frame(i))
	}
	return rows
}

func (f *Frames) Equal(o *Frames) bool {
	if f.Len() == 0 && o.Len() == 0 {
		return true
	}
	return f.Channels == o.Channels && slices.Equal(f.Data, o.Data)
}

func (f *Frames) String() string {
	return fmt.Sprintf("Frames(channels=%d len=%d)", f.Channels, f.Len())
}

// Concat joins parts into a new buffer. Every part must already have
// the given channel count.
func Concat(channels int, parts ...*Frames) *Frames {
	size := 0
	for _, p := range parts {
		size += len(p.Data)
	}
	out := &Frames{Channels: channels, Data: make([]float32, 0, size)}
	for _, p := range parts {
		out.Data = append(out.Data, p.Data...)
	}
	return out
}

// Reader exposes f as a Source playing at sampleRate.
func (f *Frames) Reader(sampleRate int) Source {
	return &framesSource{f: f, rate: sampleRate}
}

type framesSource struct {
	f    *Frames
	rate int
	pos  int
}

func (s *framesSource) SampleRate() int { return s.rate }
func (s *framesSource) Channels() int   { return s.f.Channels }
func (s *framesSource) BufSize() int    { return 4096 }
func (s *framesSource) Close() error    { return nil }

func (s *framesSource) ReadSamples(dst []float32) (int, error) {
	if len(dst)%s.f.Channels != 0 {
		return 0, ErrInvalidDstSize
	}
	if s.pos >= len(s.f.Data) {
		return 0, io.EOF
	}
	n := copy(dst, s.f.Data[s.pos:])
	s.pos += n
	return n, nil
}
