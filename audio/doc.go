// SPDX-License-Identifier: EPL-2.0

// Package audio holds the sample buffer every other package edits, the
// channel mixer, and the streaming contracts used by the codecs.
//
// # Frames
//
// A Frames value is an interleaved block of float32 samples with a fixed
// channel count:
//
//	f := audio.Stack([]float32{1, 1}, []float32{2, 1})
//	f.Len()      // 2 frames
//	f.Frame(1)   // [2 1]
//	f.Slice(0, 1)
//
// Edits never write into a Frames that has been handed out. They build a
// new one, so a reader holding the old pointer keeps a stable view.
//
// # Channel Mixing
//
// MixChannels applies a gain matrix with one row per output channel and one
// column per input channel:
//
//	left, _ := audio.MixChannels(stereo, [][]float32{{1, 0}})
//
// MixChannelsAuto covers the common cases: averaging down to mono and
// duplicating mono up to N channels.
//
// # Source Interface
//
// Decoders produce a Source that is read in chunks:
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// ReadAll collects a Source into Frames and Frames.Reader goes the other way.
//
// # Resampling
//
// The Resampler changes the sample rate of a Source using cubic
// interpolation. Resample wraps it for whole buffers:
//
//	clip, err := audio.Resample(clip, 22050, 44100)
//
// # Format Registry
//
// The registry maps a file extension to a Decoder and, for writable
// containers, an Encoder:
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", wav.Decoder{})
//	registry.RegisterEncoder("wav", wav.Encoder{})
//
// # Sample Format
//
// Samples are float32 in the range [-1.0, 1.0]. Codecs convert to and from
// integer PCM at the stored bit depth.
package audio
