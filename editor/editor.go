// SPDX-License-Identifier: EPL-2.0

// Package editor ties a sound to its graph, selection and player and
// exposes the editing commands of one window.
//
// Every command that can fail returns the error and also publishes it on
// Errors, so a front end can show failures from a single place. Open and
// Close are the exception: ErrNotFresh and ErrNotSaved ask the caller to
// open another editor or to confirm, and are only returned.
package editor

import (
	"fmt"
	"log/slog"

	"github.com/ik5/audedit/audio"
	"github.com/ik5/audedit/effect"
	"github.com/ik5/audedit/event"
	"github.com/ik5/audedit/graph"
	"github.com/ik5/audedit/player"
	"github.com/ik5/audedit/selection"
	"github.com/ik5/audedit/sound"
)

type Option func(*Editor)

func WithLogger(l *slog.Logger) Option {
	return func(e *Editor) {
		if l != nil {
			e.log = l
		}
	}
}

// WithCodec sets the codec used to open files and for SaveSelectionAs.
func WithCodec(c sound.Codec) Option {
	return func(e *Editor) { e.codec = c }
}

func WithEffects(r *effect.Registry) Option {
	return func(e *Editor) { e.effects = r }
}

type Editor struct {
	sound     *sound.Sound
	player    *player.Player
	graph     *graph.Graph
	selection *selection.Selection
	clipboard *Clipboard

	codec   sound.Codec
	effects *effect.Registry
	log     *slog.Logger

	playerErrors event.Handle

	filenameChanged event.Signal
	errors          event.Feed[error]
}

func New(s *sound.Sound, p *player.Player, g *graph.Graph, sel *selection.Selection,
	clip *Clipboard, opts ...Option,
) *Editor {
	e := &Editor{
		sound:     s,
		player:    p,
		graph:     g,
		selection: sel,
		clipboard: clip,
		effects:   effect.NewRegistry(),
		log:       slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.clipboard == nil {
		e.clipboard = &Clipboard{}
	}
	e.playerErrors = p.Errors().Connect(func(err error) { e.errors.Emit(err) })

	return e
}

// Errors receives every failure reported by a command and by the player.
func (e *Editor) Errors() *event.Feed[error] { return &e.errors }

// FilenameChanged fires after LoadSound and SaveAs.
func (e *Editor) FilenameChanged() *event.Signal { return &e.filenameChanged }

func (e *Editor) Sound() *sound.Sound { return e.sound }
func (e *Editor) Filename() string    { return e.sound.Filename() }

func (e *Editor) report(op string, err error) error {
	if err == nil {
		return nil
	}
	err = fmt.Errorf("%s: %w", op, err)
	e.log.Error("command failed", "op", op, "error", err)
	e.errors.Emit(err)
	return err
}

// Open loads path when the editor holds a fresh sound. Otherwise it
// returns ErrNotFresh and leaves the sound alone.
func (e *Editor) Open(path string) error {
	if !e.sound.IsFresh() {
		return fmt.Errorf("%w: %s", ErrNotFresh, path)
	}
	return e.LoadSound(path)
}

// LoadSound replaces the current sound with the file at path.
func (e *Editor) LoadSound(path string) error {
	if e.codec == nil {
		return e.report("load", sound.ErrNoCodec)
	}
	e.player.Stop()

	s, err := sound.Open(path, e.codec, sound.WithLogger(e.log))
	if err != nil {
		return e.report("load", err)
	}

	e.sound = s
	e.graph.SetSound(s)
	e.selection.Unselect()
	e.filenameChanged.Emit()

	return nil
}

func (e *Editor) Save() error {
	return e.report("save", e.sound.Save())
}

func (e *Editor) SaveAs(path string) error {
	if err := e.sound.SaveAs(path); err != nil {
		return e.report("save as", err)
	}
	e.filenameChanged.Emit()
	return nil
}

// SaveSelectionAs writes the selected frames to a new file without
// touching the current sound.
func (e *Editor) SaveSelectionAs(path string) error {
	if !e.selection.Selected() {
		return e.report("save selection", ErrNoSelection)
	}

	start, end := e.selection.Get()
	clip, err := e.sound.Copy(start, end)
	if err != nil {
		return e.report("save selection", err)
	}

	out := sound.FromFrames(clip, e.sound.SampleRate(),
		sound.WithCodec(e.codec), sound.WithFormat(e.sound.Format()), sound.WithLogger(e.log))
	return e.report("save selection", out.SaveAs(path))
}

// Close stops playback. Unless force is set it refuses to drop unsaved
// changes.
func (e *Editor) Close(force bool) error {
	if !force && !e.sound.IsSaved() && !e.sound.IsFresh() {
		return ErrNotSaved
	}
	e.player.Stop()
	e.player.Errors().Disconnect(e.playerErrors)
	return nil
}

// Play starts at the selection. Without a selection it plays to the end.
func (e *Editor) Play() {
	start, end := e.selection.Get()
	if !e.selection.Selected() {
		end = e.sound.Len()
	}
	e.player.Play(e.sound.Frames(), e.sound.SampleRate(), start, end)
}

func (e *Editor) Stop() { e.player.Stop() }

func (e *Editor) TogglePlay() {
	if e.player.IsPlaying() {
		e.Stop()
		return
	}
	e.Play()
}

// OnSelectionChanged restarts playback from the new selection when the
// user moves it mid-play.
func (e *Editor) OnSelectionChanged() {
	if e.player.IsPlaying() {
		e.Stop()
		e.Play()
	}
}

func (e *Editor) GotoStart() {
	e.selection.Set(0, 0)
	e.graph.MoveTo(0)
}

func (e *Editor) GotoEnd() {
	end := e.sound.Len()
	e.selection.Set(end, end)
	e.graph.MoveTo(float64(end))
}

func (e *Editor) Cut() error {
	start, end := e.selection.Get()
	clip, err := e.sound.Cut(start, end)
	if err != nil {
		return e.report("cut", err)
	}
	e.clipboard.Set(clip, e.sound.SampleRate())
	e.selection.Set(start, start)
	return nil
}

func (e *Editor) Copy() error {
	start, end := e.selection.Get()
	clip, err := e.sound.Copy(start, end)
	if err != nil {
		return e.report("copy", err)
	}
	e.clipboard.Set(clip, e.sound.SampleRate())
	return nil
}

// clip returns the clipboard converted to the sound's rate. A fresh sound
// takes the clipboard rate instead.
func (e *Editor) clip() (*audio.Frames, error) {
	clip, rate := e.clipboard.Get()
	if clip == nil {
		return nil, ErrEmptyClipboard
	}
	if e.sound.IsFresh() {
		e.sound.SetSampleRate(rate)
	}
	return audio.Resample(clip, rate, e.sound.SampleRate())
}

// Paste replaces the selection with the clipboard and selects the pasted
// frames.
func (e *Editor) Paste() error {
	clip, err := e.clip()
	if err != nil {
		return e.report("paste", err)
	}

	start, end := e.selection.Get()
	full := e.graph.IsZoomedOutFull()
	if err := e.sound.Paste(start, end, clip); err != nil {
		return e.report("paste", err)
	}
	e.selection.Set(start, start+clip.Len())
	if full {
		e.graph.ZoomOutFull()
	}
	return nil
}

// Mix adds the clipboard onto the selection and selects the mixed frames.
func (e *Editor) Mix() error {
	clip, err := e.clip()
	if err != nil {
		return e.report("mix", err)
	}

	start, end := e.selection.Get()
	if err := e.sound.Mix(start, end, clip); err != nil {
		return e.report("mix", err)
	}

	n := clip.Len()
	if start != end {
		n = min(end-start, n)
	}
	e.selection.Set(start, start+n)
	return nil
}

func (e *Editor) Undo() bool {
	ok := e.sound.Undo()
	e.fixSelection()
	return ok
}

func (e *Editor) Redo() bool {
	ok := e.sound.Redo()
	e.fixSelection()
	return ok
}

// fixSelection pulls a selection that now runs past the end back inside
// the buffer.
func (e *Editor) fixSelection() {
	start, end := e.selection.Get()
	n := e.sound.Len()
	if end > n {
		e.selection.Set(min(start, n), n)
	}
}

// ZoomFit shows the selection, or the whole sound when nothing is
// selected.
func (e *Editor) ZoomFit() {
	if !e.selection.Selected() {
		e.graph.ZoomOutFull()
		return
	}
	start, end := e.selection.Get()
	e.graph.SetView(float64(start), float64(end))
}

// Effect applies the named effect to the selection, or to the whole sound
// when nothing is selected.
func (e *Editor) Effect(name string) error {
	start, end := 0, e.sound.Len()
	if e.selection.Selected() {
		start, end = e.selection.Get()
	}

	return e.report("effect", e.effects.Apply(name, e.sound, start, end))
}

// Effects lists the registered effect names.
func (e *Editor) Effects() []string { return e.effects.Names() }

func (e *Editor) SelectAll()       { e.selection.SelectAll() }
func (e *Editor) SelectTillStart() { e.selection.SelectTillStart() }
func (e *Editor) SelectTillEnd()   { e.selection.SelectTillEnd() }
func (e *Editor) ZoomIn()          { e.graph.ZoomIn() }
func (e *Editor) ZoomOut()         { e.graph.ZoomOut() }
