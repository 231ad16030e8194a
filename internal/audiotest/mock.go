// SPDX-License-Identifier: EPL-2.0

// Package audiotest generates sample streams and buffers for tests. It
// satisfies audio.Source structurally so the audio package can import it
// from its own tests.
package audiotest

import (
	"io"
	"math"
)

// Waveform returns the sample for frame i on channel c.
type Waveform func(i, c int) float32

// Generator is a Source that synthesises frames on demand.
type Generator struct {
	rate     int
	channels int
	frames   int
	pos      int
	wave     Waveform

	// EOFWithData makes the last read return its samples together with
	// io.EOF, the way several decoders behave.
	EOFWithData bool
	// Err, when set, is returned by the first read instead of data.
	Err error
}

func NewGenerator(rate, channels, frames int, wave Waveform) *Generator {
	return &Generator{rate: rate, channels: channels, frames: frames, wave: wave}
}

func NewSilentSource(rate, channels, frames int) *Generator {
	return NewGenerator(rate, channels, frames, func(int, int) float32 { return 0 })
}

func NewSineSource(rate, channels, frames int, frequency float64) *Generator {
	return NewGenerator(rate, channels, frames, func(i, _ int) float32 {
		return float32(math.Sin(2 * math.Pi * frequency * float64(i) / float64(rate)))
	})
}

func NewConstantSource(rate, channels, frames int, value float32) *Generator {
	return NewGenerator(rate, channels, frames, func(int, int) float32 { return value })
}

func (g *Generator) SampleRate() int { return g.rate }
func (g *Generator) Channels() int   { return g.channels }
func (g *Generator) BufSize() int    { return 4096 }
func (g *Generator) Close() error    { return nil }

// Reset rewinds the generator.
func (g *Generator) Reset() { g.pos = 0 }

func (g *Generator) ReadSamples(dst []float32) (int, error) {
	if g.Err != nil {
		return 0, g.Err
	}
	if g.pos >= g.frames {
		return 0, io.EOF
	}

	n := min(len(dst)/g.channels, g.frames-g.pos)
	for f := range n {
		for c := range g.channels {
			dst[f*g.channels+c] = g.wave(g.pos+f, c)
		}
	}
	g.pos += n

	if g.EOFWithData && g.pos >= g.frames {
		return n * g.channels, io.EOF
	}
	return n * g.channels, nil
}

// Ramp returns 0, 1, ..., n-1 as float32.
func Ramp(n int) []float32 {
	out := make([]float32, n)
	for i := range out {
		out[i] = float32(i)
	}
	return out
}

// Sine returns n mono samples of a sine at frequency Hz.
func Sine(rate, n int, frequency float64) []float32 {
	out := make([]float32, n)
	for i := range out {
		out[i] = float32(math.Sin(2 * math.Pi * frequency * float64(i) / float64(rate)))
	}
	return out
}
