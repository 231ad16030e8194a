// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"
)

// ReadAll drains src into a single Frames value. Short reads are accepted;
// io.EOF ends the stream and is not returned.
func ReadAll(src Source) (*Frames, error) {
	ch := src.Channels()
	if ch < 1 {
		return nil, ErrInvalidDstSize
	}

	size := src.BufSize()
	if size < ch {
		size = 4096
	}
	size -= size % ch

	buf := make([]float32, size)
	out := NewFrames(ch, 0)
	for {
		n, err := src.ReadSamples(buf)
		if n > 0 {
			out.Data = append(out.Data, buf[:n]...)
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w", err)
		}
		if n == 0 {
			break
		}
	}
	out.Data = out.Data[:len(out.Data)-len(out.Data)%ch]

	return out, nil
}

// Resample converts f from fromRate to toRate with the cubic Resampler.
// Equal rates and empty buffers return f itself.
func Resample(f *Frames, fromRate, toRate int) (*Frames, error) {
	if fromRate <= 0 || toRate <= 0 {
		return nil, ErrInvalidRate
	}
	if fromRate == toRate || f.Len() == 0 {
		return f, nil
	}

	out, err := ReadAll(NewResampler(f.Reader(fromRate), toRate))
	if err != nil {
		return nil, fmt.Errorf("resample %d->%d: %w", fromRate, toRate, err)
	}
	return out, nil
}
