// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"errors"
	"fmt"
	"io"

	"github.com/jfreymuth/oggvorbis"

	"github.com/ik5/audedit/audio"
)

// frameReader is the part of oggvorbis.Reader a source needs.
type frameReader interface {
	SampleRate() int
	Channels() int
	Read([]float32) (int, error)
}

type source struct{ r frameReader }

func (s *source) SampleRate() int { return s.r.SampleRate() }
func (s *source) Channels() int   { return s.r.Channels() }
func (s *source) Close() error    { return nil }
func (s *source) BufSize() int    { return 4096 }

// Format reports no bit depth: Vorbis has no integer resolution to keep.
func (s *source) Format() audio.Format {
	return audio.Format{Container: "ogg"}
}

// ReadSamples decodes into dst directly. oggvorbis counts values, not
// frames, and always returns whole frames.
func (s *source) ReadSamples(dst []float32) (int, error) {
	n := len(dst) - len(dst)%s.r.Channels()
	if n == 0 {
		return 0, nil
	}

	read, err := s.r.Read(dst[:n])
	if err != nil && !errors.Is(err, io.EOF) {
		return read, fmt.Errorf("%w", err)
	}
	return read, err
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	if dec.Channels() < 1 {
		return nil, ErrNoChannels
	}
	return &source{r: dec}, nil
}
