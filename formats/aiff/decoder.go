// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"fmt"
	"io"

	"github.com/go-audio/aiff"

	"github.com/ik5/audedit/audio"
	"github.com/ik5/audedit/internal/pcm"
)

type Decoder struct{}

// Decode reads signed PCM at 8, 16, 24 or 32 bits. The stream is buffered
// when r cannot seek.
func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	rs, err := pcm.Seekable(r)
	if err != nil {
		return nil, fmt.Errorf("reading aiff data: %w", err)
	}

	dec := aiff.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotAiffFile
	}
	dec.ReadInfo()

	bits := int(dec.BitDepth)
	switch bits {
	case 8, 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bits)
	}

	f := dec.Format()
	if f == nil || f.NumChannels == 0 {
		return nil, ErrUnsupportedAiffLayout
	}

	meta := audio.Format{Container: "aiff", BitDepth: bits}
	return pcm.NewSource(dec, f.SampleRate, f.NumChannels, meta, 0), nil
}
