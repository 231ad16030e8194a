// SPDX-License-Identifier: EPL-2.0

// Package aiff reads and writes AIFF files through github.com/go-audio/aiff.
//
// Signed PCM at 8, 16, 24 and 32 bits is supported in both directions.
// The decoder reports the bit depth as an audio.Format so a file saved
// back keeps its resolution:
//
//	src, err := aiff.Decoder{}.Decode(file)
//	frames, err := audio.ReadAll(src)
//	meta := src.(audio.FormatSource).Format()
//	err = aiff.Encoder{}.Encode(out, frames, src.SampleRate(), meta)
//
// go-audio needs an io.ReadSeeker; other readers are buffered in memory
// first.
package aiff
