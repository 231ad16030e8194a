// SPDX-License-Identifier: EPL-2.0

package sound

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ik5/audedit/audio"
	"github.com/ik5/audedit/event"
	"github.com/ik5/audedit/history"
)

// DefaultSampleRate of a sound created from nothing.
const DefaultSampleRate = 44100

// Codec reads and writes whole sound files.
type Codec interface {
	Load(path string) (*audio.Frames, int, audio.Format, error)
	Save(path string, f *audio.Frames, sampleRate int, meta audio.Format) error
}

// DefaultFormat is used when saving a sound that was never loaded.
var DefaultFormat = audio.Format{Container: "wav", BitDepth: 16, AudioFormat: 1}

// Sound owns a sample buffer and the History of edits applied to it.
//
// The buffer returned by Frames is never written to. Every edit swaps in a
// new one, so readers on other goroutines can keep the pointer they got.
// All other methods belong to the goroutine that edits the sound.
type Sound struct {
	filename string
	frames   *audio.Frames
	rate     int
	format   audio.Format

	history  *history.History
	saved    int
	hasSaved bool

	codec  Codec
	logger *slog.Logger

	changed         event.Signal
	filenameChanged event.Signal
}

type Option func(*Sound)

func WithSampleRate(rate int) Option {
	return func(s *Sound) { s.rate = rate }
}

func WithCodec(c Codec) Option {
	return func(s *Sound) { s.codec = c }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Sound) { s.logger = l }
}

// WithFormat sets the container metadata used when saving.
func WithFormat(f audio.Format) Option {
	return func(s *Sound) { s.format = f }
}

func WithHistory(h *history.History) Option {
	return func(s *Sound) { s.history = h }
}

// New returns an empty mono sound that has never been saved.
func New(opts ...Option) *Sound {
	s := &Sound{
		frames: audio.NewFrames(1, 0),
		rate:   DefaultSampleRate,
		format: DefaultFormat,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.history == nil {
		s.history = history.New()
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// FromFrames wraps f in a new unsaved sound.
func FromFrames(f *audio.Frames, rate int, opts ...Option) *Sound {
	s := New(append([]Option{WithSampleRate(rate)}, opts...)...)
	s.frames = f
	return s
}

// Open loads path through codec. The sound starts out saved.
func Open(path string, codec Codec, opts ...Option) (*Sound, error) {
	s := New(append([]Option{WithCodec(codec)}, opts...)...)

	path, err := ExpandUser(path)
	if err != nil {
		return nil, err
	}

	f, rate, meta, err := codec.Load(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	s.filename = path
	s.frames = f
	s.rate = rate
	if meta.Container != "" {
		s.format = meta
	}
	s.markSaved()

	s.logger.Debug("sound loaded", "file", path, "frames", f.Len(),
		"channels", f.Channels, "rate", rate)
	return s, nil
}

// ExpandUser replaces a leading ~ with the home directory.
func ExpandUser(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~"+string(filepath.Separator)) {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("expand %s: %w", path, err)
	}
	return filepath.Join(home, path[1:]), nil
}

func (s *Sound) markSaved() {
	s.saved = s.history.Revision()
	s.hasSaved = true
}

// Save writes the sound to its current filename.
func (s *Sound) Save() error {
	if s.filename == "" {
		return ErrNoFilename
	}
	return s.SaveAs(s.filename)
}

// SaveAs writes the sound to path and makes path its filename.
func (s *Sound) SaveAs(path string) error {
	if path == "" {
		return ErrNoFilename
	}
	if s.codec == nil {
		return ErrNoCodec
	}

	path, err := ExpandUser(path)
	if err != nil {
		return err
	}
	if err := s.codec.Save(path, s.frames, s.rate, s.format); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}

	renamed := path != s.filename
	s.filename = path
	s.markSaved()
	s.logger.Debug("sound saved", "file", path, "revision", s.saved)

	if renamed {
		s.filenameChanged.Emit()
	}
	return nil
}

// SetCodec replaces the codec used by SaveAs.
func (s *Sound) SetCodec(c Codec) { s.codec = c }

// SetSampleRate changes the rate without touching the samples.
func (s *Sound) SetSampleRate(rate int) { s.rate = rate }

func (s *Sound) Frames() *audio.Frames { return s.frames }
func (s *Sound) Len() int              { return s.frames.Len() }
func (s *Sound) NumChan() int          { return s.frames.Channels }
func (s *Sound) SampleRate() int       { return s.rate }
func (s *Sound) Filename() string      { return s.filename }
func (s *Sound) Format() audio.Format  { return s.format }

func (s *Sound) History() *history.History { return s.history }

// Changed fires after every edit, undo and redo.
func (s *Sound) Changed() *event.Signal { return &s.changed }

// FilenameChanged fires when SaveAs moves the sound to a new file.
func (s *Sound) FilenameChanged() *event.Signal { return &s.filenameChanged }

func (s *Sound) IsEmpty() bool { return s.frames.Len() == 0 }

// IsFresh reports an empty sound that has never been edited.
func (s *Sound) IsFresh() bool { return s.IsEmpty() && s.history.IsEmpty() }

// IsSaved reports whether the current revision is the one last written or
// loaded.
func (s *Sound) IsSaved() bool {
	return s.hasSaved && s.saved == s.history.Revision()
}
