// SPDX-License-Identifier: EPL-2.0

package audedit

import (
	"fmt"
	"log/slog"

	"github.com/ik5/audedit/config"
	"github.com/ik5/audedit/cursor"
	"github.com/ik5/audedit/editor"
	"github.com/ik5/audedit/effect"
	"github.com/ik5/audedit/graph"
	"github.com/ik5/audedit/logging"
	"github.com/ik5/audedit/player"
	"github.com/ik5/audedit/selection"
	"github.com/ik5/audedit/sound"
)

// Session is one editing window: a sound with its view, selection,
// cursor, player and editor, built from a Config.
type Session struct {
	Config    config.Config
	Log       *slog.Logger
	Codec     *FileCodec
	Graph     *graph.Graph
	Selection *selection.Selection
	Cursor    *cursor.Cursor
	Player    *player.Player
	Editor    *editor.Editor
}

type SessionOption func(*sessionOptions)

type sessionOptions struct {
	log  *slog.Logger
	clip *editor.Clipboard
}

// WithLogger overrides the logger built from the config's log level.
func WithLogger(l *slog.Logger) SessionOption {
	return func(o *sessionOptions) { o.log = l }
}

// WithClipboard shares clip between sessions.
func WithClipboard(clip *editor.Clipboard) SessionOption {
	return func(o *sessionOptions) { o.clip = clip }
}

// NewSession wires an empty sound to dev.
func NewSession(cfg config.Config, dev player.Device, opts ...SessionOption) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var o sessionOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		l, err := logging.New(cfg.Log.Level, nil)
		if err != nil {
			return nil, fmt.Errorf("%w", err)
		}
		o.log = l
	}

	if o.clip == nil {
		o.clip = &editor.Clipboard{}
	}

	effects, err := effect.Defaults(effect.Params{
		Volume:          cfg.Effects.Volume,
		Bits:            cfg.Effects.Bits,
		FilterFrequency: cfg.Effects.FilterFrequency,
		FilterDamping:   cfg.Effects.FilterDamping,
		Clip:            o.clip.Get,
	})
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	s := &Session{Config: cfg, Log: o.log, Codec: NewFileCodec(o.log)}

	snd := sound.New(
		sound.WithCodec(s.Codec),
		sound.WithLogger(o.log),
		sound.WithSampleRate(cfg.Sound.DefaultRate),
	)
	s.Graph = graph.New(snd,
		graph.WithWidth(cfg.Graph.Width),
		graph.WithScrollFraction(cfg.Graph.ScrollFraction),
		graph.WithZoomFactors(cfg.Graph.ZoomInOn, cfg.Graph.ZoomOutOn),
	)
	s.Player = player.New(dev, player.WithLogger(o.log))
	s.Cursor = cursor.New(s.Graph, s.Player, cursor.WithInterval(cfg.Cursor.Interval))
	s.Selection = selection.New(s.Graph, s.Cursor)
	s.Editor = editor.New(snd, s.Player, s.Graph, s.Selection, o.clip,
		editor.WithCodec(s.Codec),
		editor.WithEffects(effects),
		editor.WithLogger(o.log),
	)

	return s, nil
}

// OpenSession builds a session and loads path into it.
func OpenSession(cfg config.Config, dev player.Device, path string, opts ...SessionOption) (*Session, error) {
	s, err := NewSession(cfg, dev, opts...)
	if err != nil {
		return nil, err
	}
	if err := s.Editor.Open(path); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

// Sound is the sound currently loaded in the editor.
func (s *Session) Sound() *sound.Sound { return s.Editor.Sound() }

// Close stops playback and detaches every component. Unsaved changes are
// dropped; check Editor.Close first to ask about them.
func (s *Session) Close() {
	_ = s.Editor.Close(true)
	s.Player.Wait()
	s.Cursor.Close()
	s.Selection.Close()
	s.Graph.Close()
}
