// SPDX-License-Identifier: EPL-2.0

// Package wav reads and writes WAV files through github.com/go-audio/wav.
//
// # Decoding
//
// Integer PCM at 8, 16, 24 and 32 bits is supported, including
// WAVE_FORMAT_EXTENSIBLE files. Samples are returned as float32 in [-1, 1):
//
//	src, err := wav.Decoder{}.Decode(file)
//	meta := src.(audio.FormatSource).Format() // {wav 24 1}
//
// # Encoding
//
// Encoder writes a Frames buffer back at the bit depth recorded in the
// audio.Format, so an unedited file keeps its resolution:
//
//	err := wav.Encoder{}.Encode(out, frames, 48000, meta)
//
// WritePCM16 produces a 16-bit file on any io.Writer, for outputs that
// cannot seek.
package wav
