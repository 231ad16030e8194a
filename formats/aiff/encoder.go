// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"fmt"
	"io"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"

	"github.com/ik5/audedit/audio"
	"github.com/ik5/audedit/utils"
)

type Encoder struct{}

// Encode writes f at meta.BitDepth, 16 when unset.
func (Encoder) Encode(w io.WriteSeeker, f *audio.Frames, sampleRate int, meta audio.Format) error {
	bits := meta.BitDepth
	if bits == 0 {
		bits = 16
	}
	switch bits {
	case 8, 16, 24, 32:
	default:
		return fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bits)
	}

	data := make([]int, len(f.Data))
	for i, x := range f.Data {
		data[i] = utils.FloatToPCM(x, bits)
	}

	enc := aiff.NewEncoder(w, sampleRate, bits, f.Channels)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: f.Channels, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: bits,
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("%w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}
