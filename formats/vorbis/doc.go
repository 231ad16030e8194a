// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis files with github.com/jfreymuth/oggvorbis.
//
// Vorbis decodes straight to float32, so samples pass through unscaled
// with the channel count of the stream:
//
//	src, err := vorbis.Decoder{}.Decode(file)
//	frames, err := audio.ReadAll(src)
//
// Vorbis is read-only: there is no Encoder.
package vorbis
