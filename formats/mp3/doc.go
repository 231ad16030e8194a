// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MP3 files with github.com/hajimehoshi/go-mp3.
//
// The decoder always yields 16-bit stereo, whatever the channel layout of
// the file; a mono file comes out with both channels equal. Use
// audio.MixChannelsAuto to fold it down:
//
//	src, err := mp3.Decoder{}.Decode(file)
//	frames, err := audio.ReadAll(src)
//	mono, err := audio.MixChannelsAuto(frames, 1)
//
// MP3 is read-only: there is no Encoder, so a sound loaded from an MP3
// has to be saved under another extension.
package mp3
