// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"

	"github.com/viterin/vek/vek32"
)

// MixChannels applies a gain matrix to f. The result has len(gains)
// channels; output channel o is the sum over input channels i of
// gains[o][i] times channel i. A matrix without rows is ErrGainMatrix.
func MixChannels(f *Frames, gains [][]float32) (*Frames, error) {
	if len(gains) == 0 {
		return nil, fmt.Errorf("%w: no output channels", ErrGainMatrix)
	}
	for o, row := range gains {
		if len(row) != f.Channels {
			return nil, fmt.Errorf("%w: row %d has %d gains for %d channels",
				ErrGainMatrix, o, len(row), f.Channels)
		}
	}

	n := f.Len()
	out := NewFrames(len(gains), n)
	if n == 0 {
		return out, nil
	}

	in := make([][]float32, f.Channels)
	for c := range in {
		in[c] = f.Channel(c)
	}

	acc := make([]float32, n)
	scaled := make([]float32, n)
	for o, row := range gains {
		vek32.Zeros_Into(acc, n)
		for i, g := range row {
			if g == 0 {
				continue
			}
			vek32.MulNumber_Into(scaled, in[i], g)
			vek32.Add_Inplace(acc, scaled)
		}
		for k, v := range acc {
			out.Data[k*out.Channels+o] = v
		}
	}

	return out, nil
}

// MixChannelsAuto converts f to n channels. Same count returns f itself,
// N to 1 averages, 1 to N duplicates. Anything else is
// ErrUnsupportedConversion.
func MixChannelsAuto(f *Frames, n int) (*Frames, error) {
	switch {
	case f.Channels == n:
		return f, nil
	case n == 1:
		row := make([]float32, f.Channels)
		g := 1 / float32(f.Channels)
		for i := range row {
			row[i] = g
		}
		return MixChannels(f, [][]float32{row})
	case f.Channels == 1 && n > 1:
		gains := make([][]float32, n)
		for o := range gains {
			gains[o] = []float32{1}
		}
		return MixChannels(f, gains)
	}

	return nil, fmt.Errorf("%w: %d to %d", ErrUnsupportedConversion, f.Channels, n)
}
