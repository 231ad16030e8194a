// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/ik5/audedit/audio"
	"github.com/ik5/audedit/utils"
)

type Encoder struct{}

// Encode writes f as integer PCM at meta.BitDepth, 16 when unset.
// Extensible files are written back with a plain PCM header.
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
	if meta.AudioFormat == FormatFloat {
		return fmt.Errorf("%w: float samples", ErrUnsupportedFormat)
	}

	enc := wav.NewEncoder(w, sampleRate, bits, f.Channels, FormatPCM)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: f.Channels, SampleRate: sampleRate},
		Data:           toPCM(f.Data, bits),
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

func toPCM(samples []float32, bits int) []int {
	offset := 0
	if bits == 8 {
		offset = 128
	}
	out := make([]int, len(samples))
	for i, x := range samples {
		out[i] = utils.FloatToPCM(x, bits) + offset
	}
	return out
}

// WritePCM16 streams f as a 16-bit PCM WAV to a writer that cannot seek.
func WritePCM16(w io.Writer, f *audio.Frames, sampleRate int) error {
	channels := uint16(f.Channels)
	blockAlign := channels * 2
	dataSize := uint32(len(f.Data) * 2)

	header := make([]byte, 44)
	copy(header[0:4], "RIFF")
	binary.LittleEndian.PutUint32(header[4:8], 36+dataSize)
	copy(header[8:12], "WAVE")

	copy(header[12:16], "fmt ")
	binary.LittleEndian.PutUint32(header[16:20], 16)
	binary.LittleEndian.PutUint16(header[20:22], FormatPCM)
	binary.LittleEndian.PutUint16(header[22:24], channels)
	binary.LittleEndian.PutUint32(header[24:28], uint32(sampleRate))
	binary.LittleEndian.PutUint32(header[28:32], uint32(sampleRate)*uint32(blockAlign))
	binary.LittleEndian.PutUint16(header[32:34], blockAlign)
	binary.LittleEndian.PutUint16(header[34:36], 16)

	copy(header[36:40], "data")
	binary.LittleEndian.PutUint32(header[40:44], dataSize)

	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("%w", err)
	}

	const chunk = 8192
	buf := make([]byte, 0, 2*min(len(f.Data), chunk))
	for i := 0; i < len(f.Data); i += chunk {
		buf = buf[:0]
		for _, x := range f.Data[i:min(i+chunk, len(f.Data))] {
			buf = binary.LittleEndian.AppendUint16(buf, uint16(int16(utils.FloatToPCM(x, 16))))
		}
		if _, err := w.Write(buf); err != nil {
			return fmt.Errorf("%w", err)
		}
	}

	return nil
}
