// SPDX-License-Identifier: EPL-2.0

// Package pcm turns the integer sample buffers of the go-audio decoders
// into an audio.Source.
package pcm

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"

	"github.com/ik5/audedit/audio"
	"github.com/ik5/audedit/utils"
)

// Reader is the part of wav.Decoder and aiff.Decoder a Source reads from.
type Reader interface {
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// Source scales integer samples at format.BitDepth to float32.
type Source struct {
	r        Reader
	rate     int
	channels int
	format   audio.Format
	bias     int
	buf      *goaudio.IntBuffer
}

// NewSource reads from r. bias is subtracted from every raw sample before
// scaling; unsigned 8-bit WAV data uses 128.
func NewSource(r Reader, rate, channels int, format audio.Format, bias int) *Source {
	return &Source{r: r, rate: rate, channels: channels, format: format, bias: bias}
}

func (s *Source) SampleRate() int      { return s.rate }
func (s *Source) Channels() int        { return s.channels }
func (s *Source) Close() error         { return nil }
func (s *Source) BufSize() int         { return 4096 }
func (s *Source) Format() audio.Format { return s.format }

// ReadSamples returns io.EOF together with the samples of a short read.
func (s *Source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	if s.buf == nil || cap(s.buf.Data) < len(dst) {
		s.buf = &goaudio.IntBuffer{
			Data:           make([]int, len(dst)),
			Format:         &goaudio.Format{NumChannels: s.channels, SampleRate: s.rate},
			SourceBitDepth: s.format.BitDepth,
		}
	}
	s.buf.Data = s.buf.Data[:len(dst)]

	n, err := s.r.PCMBuffer(s.buf)
	if err != nil && !errors.Is(err, io.EOF) {
		return 0, fmt.Errorf("%w", err)
	}

	for i, v := range s.buf.Data[:n] {
		dst[i] = utils.PCMToFloat(v-s.bias, s.format.BitDepth)
	}

	if n == 0 || n < len(dst) {
		return n, io.EOF
	}
	return n, nil
}

// Seekable returns r itself when it can seek and otherwise reads it into
// memory. The go-audio decoders seek between chunks.
func Seekable(r io.Reader) (io.ReadSeeker, error) {
	if rs, ok := r.(io.ReadSeeker); ok {
		return rs, nil
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	return bytes.NewReader(data), nil
}
