// SPDX-License-Identifier: EPL-2.0

package effect

import (
	"fmt"

	"github.com/mjibson/go-dsp/fft"
	"github.com/viterin/vek/vek32"

	"github.com/ik5/audedit/audio"
	"github.com/ik5/audedit/sound"
)

// ClipFunc returns the frames to convolve with and their sample rate. A nil
// clip means there is nothing to convolve with.
type ClipFunc func() (clip *audio.Frames, rate int)

// Convolve convolves frames [start, end) with the clip returned by clip and
// normalizes the result to a peak of 1. The result replaces the whole sound
// as a single edit. A mono side is duplicated to match the other side's
// channel count, and a clip at another rate is resampled first.
func Convolve(clip ClipFunc) Effect {
	return func(s *sound.Sound, start, end int) error {
		end = min(end, s.Len())
		if start == end {
			return nil
		}

		var h *audio.Frames
		var rate int
		if clip != nil {
			h, rate = clip()
		}
		if h == nil || h.Len() == 0 {
			return ErrNoClip
		}
		if rate > 0 && rate != s.SampleRate() {
			var err error
			if h, err = audio.Resample(h, rate, s.SampleRate()); err != nil {
				return fmt.Errorf("%w", err)
			}
		}

		x, err := s.Copy(start, end)
		if err != nil {
			return fmt.Errorf("%w", err)
		}

		n := max(x.Channels, h.Channels)
		if x, err = audio.MixChannelsAuto(x, n); err != nil {
			return fmt.Errorf("%w", err)
		}
		if h, err = audio.MixChannelsAuto(h, n); err != nil {
			return fmt.Errorf("%w", err)
		}

		y := audio.NewFrames(n, x.Len()+h.Len()-1)
		for c := range n {
			for i, v := range olaConvolve(x.Channel(c), h.Channel(c)) {
				y.Data[i*n+c] = v
			}
		}

		peak := y.Clone()
		vek32.Abs_Inplace(peak.Data)
		if m := vek32.Max(peak.Data); m != 0 {
			vek32.MulNumber_Inplace(y.Data, 1/m)
		}

		if err := s.Paste(0, s.Len(), y); err != nil {
			return fmt.Errorf("%w", err)
		}
		return nil
	}
}

// olaConvolve returns the full linear convolution of x and h, computed
// block by block with overlap-add.
func olaConvolve(x, h []float32) []float32 {
	nfft := nextPow2(2 * len(h))
	block := nfft - len(h) + 1

	hc := make([]complex128, nfft)
	for i, v := range h {
		hc[i] = complex(float64(v), 0)
	}
	H := fft.FFT(hc)

	acc := make([]float64, len(x)+len(h)-1)
	buf := make([]complex128, nfft)
	for start := 0; start < len(x); start += block {
		clear(buf)
		for i, v := range x[start:min(start+block, len(x))] {
			buf[i] = complex(float64(v), 0)
		}

		X := fft.FFT(buf)
		for k := range X {
			X[k] *= H[k]
		}
		for i, v := range fft.IFFT(X) {
			if start+i >= len(acc) {
				break
			}
			acc[start+i] += real(v)
		}
	}

	out := make([]float32, len(acc))
	for i, v := range acc {
		out[i] = float32(v)
	}
	return out
}

// nextPow2 is the smallest power of two >= n.
func nextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
