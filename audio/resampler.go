// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/audedit/utils"
)

// Resampler streams from src to target sample rate using cubic interpolation.
// Works on interleaved samples; preserves channel count.
// A one-pole low-pass runs on the input when downsampling.
type Resampler struct {
	src      Source
	dstRate  int
	step     float64 // source frames advanced per output frame
	channels int

	// window[0..3] hold frames t-1, t0, t+1 and t+2; pos is the fraction
	// between window[1] and window[2].
	window [4][]float32
	filled [4]bool
	primed bool
	pos    float64

	one  []float32
	eof  bool
	done bool

	lowpass bool
	state   []float32
}

const lowpassAlpha = 0.5

func NewResampler(src Source, dstRate int) *Resampler {
	ch := src.Channels()
	step := float64(src.SampleRate()) / float64(dstRate)

	r := &Resampler{
		src:      src,
		dstRate:  dstRate,
		step:     step,
		channels: ch,
		one:      make([]float32, ch),
		lowpass:  step > 1.0,
		state:    make([]float32, ch),
	}
	for i := range r.window {
		r.window[i] = make([]float32, ch)
	}

	return r
}

func (r *Resampler) SampleRate() int { return r.dstRate }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) BufSize() int    { return r.src.BufSize() }

func (r *Resampler) Close() error {
	if err := r.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// readFrame pulls a single frame into dst. When the source has nothing
// left dst keeps the previous frame's values copied from hold.
func (r *Resampler) readFrame(dst, hold []float32) (bool, error) {
	if r.eof {
		copy(dst, hold)
		return false, nil
	}

	n, err := r.src.ReadSamples(r.one)
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("%w", err)
	}
	r.eof = errors.Is(err, io.EOF)
	if n < r.channels {
		r.eof = true
		copy(dst, hold)
		return false, nil
	}

	copy(dst, r.one)
	if r.lowpass {
		for c := range dst {
			dst[c] = lowpassAlpha*dst[c] + (1-lowpassAlpha)*r.state[c]
			r.state[c] = dst[c]
		}
	}
	return true, nil
}

// prime loads the first frame as both t-1 and t0 and reads two frames of
// lookahead.
func (r *Resampler) prime() error {
	n, err := r.src.ReadSamples(r.one)
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w", err)
	}
	r.eof = errors.Is(err, io.EOF)
	if n < r.channels {
		return io.EOF
	}

	copy(r.window[1], r.one)
	copy(r.window[0], r.one)
	copy(r.state, r.one)
	r.filled[0], r.filled[1] = true, true

	for i := 2; i < len(r.window); i++ {
		ok, err := r.readFrame(r.window[i], r.window[i-1])
		if err != nil {
			return err
		}
		r.filled[i] = ok
	}
	r.primed = true
	return nil
}

// advance shifts the window by one source frame. It reports io.EOF once
// the last real frame has left position t0.
func (r *Resampler) advance() error {
	oldest := r.window[0]
	copy(r.window[:3], r.window[1:])
	copy(r.filled[:3], r.filled[1:])
	r.window[3] = oldest

	ok, err := r.readFrame(r.window[3], r.window[2])
	if err != nil {
		return err
	}
	r.filled[3] = ok

	if !r.filled[1] {
		return io.EOF
	}
	return nil
}

// ReadSamples produces dst samples at the target rate.
// dst length should be a multiple of r.channels.
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}
	if r.done {
		return 0, io.EOF
	}
	if !r.primed {
		if err := r.prime(); err != nil {
			r.done = errors.Is(err, io.EOF)
			return 0, err
		}
	}

	want := len(dst) / r.channels
	written := 0
	for written < want {
		for r.pos >= 1.0 {
			r.pos -= 1.0
			if err := r.advance(); err != nil {
				r.done = errors.Is(err, io.EOF)
				return written * r.channels, err
			}
		}

		alpha := float32(r.pos)
		out := dst[written*r.channels:]
		for c := range r.channels {
			out[c] = utils.CubicInterpolate(r.window[0][c], r.window[1][c], r.window[2][c], r.window[3][c], alpha)
		}

		written++
		r.pos += r.step
	}

	return written * r.channels, nil
}
