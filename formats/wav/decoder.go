// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	"github.com/go-audio/wav"

	"github.com/ik5/audedit/audio"
	"github.com/ik5/audedit/internal/pcm"
)

// Audio format tags from the fmt chunk.
const (
	FormatPCM        = 1
	FormatFloat      = 3
	FormatExtensible = 0xFFFE
)

type Decoder struct{}

// Decode reads integer PCM at 8, 16, 24 or 32 bits, plain or
// WAVE_FORMAT_EXTENSIBLE. The stream is buffered when r cannot seek.
func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	rs, err := pcm.Seekable(r)
	if err != nil {
		return nil, fmt.Errorf("reading wav data: %w", err)
	}

	dec := wav.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotWavFile
	}
	dec.ReadInfo()
	if err := dec.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotWavFile, err)
	}

	switch dec.WavAudioFormat {
	case FormatPCM, FormatExtensible:
	default:
		return nil, fmt.Errorf("%w: tag %#x", ErrUnsupportedFormat, dec.WavAudioFormat)
	}
	bits := int(dec.BitDepth)
	switch bits {
	case 8, 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bits)
	}
	if dec.NumChans == 0 {
		return nil, fmt.Errorf("%w: no channels", ErrNotWavFile)
	}

	// 8 bit WAV data is unsigned
	bias := 0
	if bits == 8 {
		bias = 128
	}

	meta := audio.Format{Container: "wav", BitDepth: bits, AudioFormat: int(dec.WavAudioFormat)}
	return pcm.NewSource(dec, int(dec.SampleRate), int(dec.NumChans), meta, bias), nil
}
