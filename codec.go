// SPDX-License-Identifier: EPL-2.0

package audedit

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ik5/audedit/audio"
	"github.com/ik5/audedit/formats/aiff"
	"github.com/ik5/audedit/formats/mp3"
	"github.com/ik5/audedit/formats/vorbis"
	"github.com/ik5/audedit/formats/wav"
)

// DefaultRegistry knows every bundled format. wav and aiff can be written;
// mp3 and ogg are read-only.
func DefaultRegistry() *audio.Registry {
	r := audio.NewRegistry()
	for _, ext := range []string{"wav", "wave"} {
		r.Register(ext, wav.Decoder{})
		r.RegisterEncoder(ext, wav.Encoder{})
	}
	for _, ext := range []string{"aif", "aiff"} {
		r.Register(ext, aiff.Decoder{})
		r.RegisterEncoder(ext, aiff.Encoder{})
	}
	r.Register("mp3", mp3.Decoder{})
	r.Register("ogg", vorbis.Decoder{})
	return r
}

// FileCodec loads and saves sounds by file extension.
type FileCodec struct {
	Registry *audio.Registry
	Logger   *slog.Logger
}

// NewFileCodec returns a codec over DefaultRegistry.
func NewFileCodec(logger *slog.Logger) *FileCodec {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileCodec{Registry: DefaultRegistry(), Logger: logger}
}

func extension(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}

// Load decodes the whole file at path.
func (c *FileCodec) Load(path string) (*audio.Frames, int, audio.Format, error) {
	ext := extension(path)
	dec, ok := c.Registry.Get(ext)
	if !ok {
		return nil, 0, audio.Format{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, 0, audio.Format{}, fmt.Errorf("%w", err)
	}
	defer file.Close()

	src, err := dec.Decode(file)
	if err != nil {
		return nil, 0, audio.Format{}, fmt.Errorf("decode %s: %w", path, err)
	}
	defer src.Close()

	frames, err := audio.ReadAll(src)
	if err != nil {
		return nil, 0, audio.Format{}, fmt.Errorf("decode %s: %w", path, err)
	}

	meta := audio.Format{Container: ext}
	if fs, ok := src.(audio.FormatSource); ok {
		meta = fs.Format()
	}

	c.Logger.Debug("decoded", "file", path, "format", meta.Container, "bits", meta.BitDepth,
		"rate", src.SampleRate(), "channels", frames.Channels, "frames", frames.Len())
	return frames, src.SampleRate(), meta, nil
}

// Save encodes f into a temporary file next to path and renames it into
// place, so a failed save leaves the old file intact.
func (c *FileCodec) Save(path string, f *audio.Frames, sampleRate int, meta audio.Format) error {
	ext := extension(path)
	enc, ok := c.Registry.Encoder(ext)
	if !ok {
		if _, known := c.Registry.Get(ext); known {
			return fmt.Errorf("%w: %q", ErrReadOnlyFormat, ext)
		}
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".audedit-*")
	if err != nil {
		return fmt.Errorf("%w", err)
	}
	defer os.Remove(tmp.Name())

	if err := enc.Encode(tmp, f, sampleRate, meta); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("%w", err)
	}

	c.Logger.Debug("encoded", "file", path, "bits", meta.BitDepth, "rate", sampleRate,
		"channels", f.Channels, "frames", f.Len())
	return nil
}
