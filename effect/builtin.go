// SPDX-License-Identifier: EPL-2.0

package effect

import (
	"fmt"
	"math"

	"github.com/viterin/vek/vek32"

	"github.com/ik5/audedit/audio"
	"github.com/ik5/audedit/sound"
)

// Reverse plays the range backwards, frame by frame.
var Reverse = Overwrite(func(f *audio.Frames) {
	ch := f.Channels
	for i, j := 0, f.Len()-1; i < j; i, j = i+1, j-1 {
		a, b := f.Data[i*ch:(i+1)*ch], f.Data[j*ch:(j+1)*ch]
		for c := range ch {
			a[c], b[c] = b[c], a[c]
		}
	}
})

// Normalize scales the range so its loudest sample reaches 1. Silence is
// left alone.
var Normalize = Overwrite(func(f *audio.Frames) {
	if len(f.Data) == 0 {
		return
	}
	peak := f.Clone()
	vek32.Abs_Inplace(peak.Data)
	if m := vek32.Max(peak.Data); m != 0 {
		vek32.MulNumber_Inplace(f.Data, 1/m)
	}
})

var Negate = Overwrite(func(f *audio.Frames) {
	vek32.MulNumber_Inplace(f.Data, -1)
})

// FadeIn ramps linearly from 0 on the first frame to 1 on the last.
var FadeIn = Overwrite(func(f *audio.Frames) { fade(f, false) })

// FadeOut ramps linearly from 1 on the first frame to 0 on the last.
var FadeOut = Overwrite(func(f *audio.Frames) { fade(f, true) })

func fade(f *audio.Frames, out bool) {
	n := f.Len()
	if n < 2 {
		return
	}

	curve := make([]float32, len(f.Data))
	for i := range n {
		g := float32(i) / float32(n-1)
		if out {
			g = 1 - g
		}
		for c := range f.Channels {
			curve[i*f.Channels+c] = g
		}
	}
	vek32.Mul_Inplace(f.Data, curve)
}

// Volume scales the range by gain; 1 keeps it unchanged.
func Volume(gain float32) Effect {
	return Overwrite(func(f *audio.Frames) {
		vek32.MulNumber_Inplace(f.Data, gain)
	})
}

// BitCrusher quantises samples to bits of resolution, truncating toward
// zero.
func BitCrusher(bits int) (Effect, error) {
	if bits < 1 || bits > 32 {
		return nil, fmt.Errorf("%w: %d", ErrBits, bits)
	}

	amp := float32(math.Exp2(float64(bits)) / 2)
	return Overwrite(func(f *audio.Frames) {
		vek32.MulNumber_Inplace(f.Data, amp)
		for i, v := range f.Data {
			f.Data[i] = float32(math.Trunc(float64(v)))
		}
		vek32.MulNumber_Inplace(f.Data, 1/amp)
	}), nil
}

// FilterMode selects the output of the state-variable filter.
type FilterMode int

const (
	HighPass FilterMode = iota
	BandPass
	LowPass
)

func (m FilterMode) String() string {
	switch m {
	case HighPass:
		return "High Pass"
	case BandPass:
		return "Band Pass"
	case LowPass:
		return "Low Pass"
	default:
		return fmt.Sprintf("FilterMode(%d)", int(m))
	}
}

// Filter is a Chamberlin state-variable filter with cutoff frequency in Hz
// and damping in (0, 2]. The coefficient depends on the sound's rate, so
// it is computed per application. Each channel starts from rest.
func Filter(mode FilterMode, frequency, damping float64) (Effect, error) {
	if frequency <= 0 || damping <= 0 {
		return nil, fmt.Errorf("%w: frequency %v, damping %v", ErrFilter, frequency, damping)
	}

	q := float32(2 * damping)
	return func(s *sound.Sound, start, end int) error {
		f := float32(2 * math.Sin(math.Pi*frequency/float64(s.SampleRate())))
		return Overwrite(func(fr *audio.Frames) { svf(fr, mode, f, q) })(s, start, end)
	}, nil
}

func svf(fr *audio.Frames, mode FilterMode, f, q float32) {
	ch := fr.Channels
	for c := range ch {
		var low, band float32
		for i := c; i < len(fr.Data); i += ch {
			high := fr.Data[i] - low - q*band
			band += f * high
			low += f * band

			switch mode {
			case HighPass:
				fr.Data[i] = high
			case BandPass:
				fr.Data[i] = band
			case LowPass:
				fr.Data[i] = low
			}
		}
	}
}
