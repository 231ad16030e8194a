// SPDX-License-Identifier: EPL-2.0

package editor

import (
	"errors"
	"fmt"
	"slices"
	"testing"

	"github.com/ik5/audedit/audio"
	"github.com/ik5/audedit/effect"
	"github.com/ik5/audedit/graph"
	"github.com/ik5/audedit/internal/audiotest"
	"github.com/ik5/audedit/player"
	"github.com/ik5/audedit/selection"
	"github.com/ik5/audedit/sound"
)

type stored struct {
	frames *audio.Frames
	rate   int
	meta   audio.Format
}

type memCodec struct{ files map[string]stored }

func (c *memCodec) Load(path string) (*audio.Frames, int, audio.Format, error) {
	f, ok := c.files[path]
	if !ok {
		return nil, 0, audio.Format{}, fmt.Errorf("%s: not found", path)
	}
	return f.frames.Clone(), f.rate, f.meta, nil
}

func (c *memCodec) Save(path string, f *audio.Frames, rate int, meta audio.Format) error {
	c.files[path] = stored{frames: f.Clone(), rate: rate, meta: meta}
	return nil
}

type fixture struct {
	editor *Editor
	sel    *selection.Selection
	graph  *graph.Graph
	player *player.Player
	codec  *memCodec
	errs   []error
}

func newFixture(t *testing.T, s *sound.Sound, clip *Clipboard) *fixture {
	t.Helper()

	fx := &fixture{codec: &memCodec{files: map[string]stored{}}}
	fx.graph = graph.New(s)
	fx.sel = selection.New(fx.graph, nil)
	fx.player = player.New(player.NewNullDevice(64, false))
	effects, err := effect.Defaults(effect.Params{Volume: 0.5, Bits: 8, FilterFrequency: 500, FilterDamping: 0.5})
	if err != nil {
		t.Fatal(err)
	}
	s.SetCodec(fx.codec)
	fx.editor = New(s, fx.player, fx.graph, fx.sel, clip, WithCodec(fx.codec), WithEffects(effects))
	fx.editor.Errors().Connect(func(err error) { fx.errs = append(fx.errs, err) })
	t.Cleanup(func() {
		fx.player.Stop()
		fx.player.Wait()
	})
	return fx
}

func ramp(n int) *sound.Sound {
	return sound.FromFrames(audio.Mono(audiotest.Ramp(n)...), 44100)
}

func TestUndoFixesSelection(t *testing.T) {
	t.Parallel()

	s := ramp(1000)
	fx := newFixture(t, s, nil)
	e := fx.editor
	frames := s.Frames()

	fx.sel.Set(0, 999)
	if err := e.Copy(); err != nil {
		t.Fatal(err)
	}
	if err := e.Paste(); err != nil {
		t.Fatal(err)
	}
	fx.sel.Set(1500, 1500)
	e.Undo()
	if a, b := fx.sel.Get(); a != 1000 || b != 1000 {
		t.Errorf("selection after Undo() = %d, %d, want 1000, 1000", a, b)
	}
	if err := e.Paste(); err != nil {
		t.Fatal(err)
	}
	e.Undo()

	if !e.Sound().Frames().Equal(frames) {
		t.Error("frames differ from the original after paste and undo")
	}
}

func TestRedoFixesSelection(t *testing.T) {
	t.Parallel()

	s := ramp(1000)
	fx := newFixture(t, s, nil)
	e := fx.editor

	fx.sel.Set(10, 999)
	if err := e.Cut(); err != nil {
		t.Fatal(err)
	}
	e.Undo()
	fx.sel.Set(900, 900)
	e.Redo()
	if a, b := fx.sel.Get(); a != 11 || b != 11 {
		t.Errorf("selection after Redo() = %d, %d, want 11, 11", a, b)
	}

	frames := s.Frames()
	if err := e.Paste(); err != nil {
		t.Fatal(err)
	}
	e.Undo()
	if !s.Frames().Equal(frames) {
		t.Error("frames differ after paste and undo")
	}
}

func TestCutSetsClipboard(t *testing.T) {
	t.Parallel()

	clip := &Clipboard{}
	fx := newFixture(t, ramp(10), clip)

	fx.sel.Set(2, 5)
	if err := fx.editor.Cut(); err != nil {
		t.Fatal(err)
	}
	got, rate := clip.Get()
	if !got.Equal(audio.Mono(2, 3, 4)) || rate != 44100 {
		t.Errorf("clipboard = %v at %d, want [2 3 4] at 44100", got.Data, rate)
	}
	if a, b := fx.sel.Get(); a != 2 || b != 2 {
		t.Errorf("selection after Cut() = %d, %d, want 2, 2", a, b)
	}
}

func TestPasteSelectsClip(t *testing.T) {
	t.Parallel()

	clip := &Clipboard{}
	clip.Set(audio.Mono(7, 7, 7), 44100)
	fx := newFixture(t, ramp(10), clip)

	fx.sel.Set(4, 4)
	if err := fx.editor.Paste(); err != nil {
		t.Fatal(err)
	}
	if a, b := fx.sel.Get(); a != 4 || b != 7 {
		t.Errorf("selection after Paste() = %d, %d, want 4, 7", a, b)
	}
	if got := fx.editor.Sound().Len(); got != 13 {
		t.Errorf("Len() = %d, want 13", got)
	}
}

func TestPasteIntoFreshAdoptsRate(t *testing.T) {
	t.Parallel()

	clip := &Clipboard{}
	clip.Set(audio.Mono(audiotest.Ramp(100)...), 22050)
	fx := newFixture(t, sound.New(), clip)

	if err := fx.editor.Paste(); err != nil {
		t.Fatal(err)
	}
	s := fx.editor.Sound()
	if s.SampleRate() != 22050 || s.Len() != 100 {
		t.Errorf("SampleRate(), Len() = %d, %d, want 22050, 100", s.SampleRate(), s.Len())
	}
}

func TestPasteResamples(t *testing.T) {
	t.Parallel()

	clip := &Clipboard{}
	clip.Set(audio.Mono(audiotest.Sine(22050, 2205, 440)...), 22050)
	fx := newFixture(t, ramp(10), clip)

	fx.sel.Set(10, 10)
	if err := fx.editor.Paste(); err != nil {
		t.Fatal(err)
	}
	if got := fx.editor.Sound().Len(); got != 10+4410 {
		t.Errorf("Len() = %d, want %d", got, 10+4410)
	}
}

func TestPasteEmptyClipboard(t *testing.T) {
	t.Parallel()

	fx := newFixture(t, ramp(10), nil)
	if err := fx.editor.Paste(); !errors.Is(err, ErrEmptyClipboard) {
		t.Errorf("Paste() = %v, want %v", err, ErrEmptyClipboard)
	}
	if len(fx.errs) != 1 || !errors.Is(fx.errs[0], ErrEmptyClipboard) {
		t.Errorf("Errors() delivered %v, want one %v", fx.errs, ErrEmptyClipboard)
	}
}

func TestMixSelectsSpan(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		start, end int
		clip       *audio.Frames
		want       [2]int
	}{
		{"no selection", 2, 2, audio.Mono(1, 1, 1), [2]int{2, 5}},
		{"clip shorter", 2, 8, audio.Mono(1, 1), [2]int{2, 4}},
		{"clip longer", 2, 4, audio.Mono(1, 1, 1, 1), [2]int{2, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			clip := &Clipboard{}
			clip.Set(tt.clip, 44100)
			fx := newFixture(t, ramp(10), clip)

			fx.sel.Set(tt.start, tt.end)
			if err := fx.editor.Mix(); err != nil {
				t.Fatal(err)
			}
			if a, b := fx.sel.Get(); a != tt.want[0] || b != tt.want[1] {
				t.Errorf("selection = %d, %d, want %d, %d", a, b, tt.want[0], tt.want[1])
			}
		})
	}
}

func TestEffect(t *testing.T) {
	t.Parallel()

	fx := newFixture(t, sound.FromFrames(audio.Mono(1, 2, 3), 44100), nil)
	e := fx.editor

	if err := e.Effect("Negate"); err != nil {
		t.Fatal(err)
	}
	if got := e.Sound().Frames().Data; !slices.Equal(got, []float32{-1, -2, -3}) {
		t.Errorf("whole sound = %v, want [-1 -2 -3]", got)
	}

	fx.sel.Set(1, 2)
	if err := e.Effect("Negate"); err != nil {
		t.Fatal(err)
	}
	if got := e.Sound().Frames().Data; !slices.Equal(got, []float32{-1, 2, -3}) {
		t.Errorf("selection = %v, want [-1 2 -3]", got)
	}

	if err := e.Effect("Flanger"); !errors.Is(err, ErrUnknownEffect) {
		t.Errorf("Effect(Flanger) = %v, want %v", err, ErrUnknownEffect)
	}
	if len(e.Effects()) != 11 {
		t.Errorf("Effects() = %v, want 11 names", e.Effects())
	}
}

func TestOpenAndClose(t *testing.T) {
	t.Parallel()

	fx := newFixture(t, sound.New(), nil)
	e := fx.editor
	fx.codec.files["/snd/a.wav"] = stored{frames: audio.Mono(1, 2, 3, 4), rate: 8000, meta: sound.DefaultFormat}

	renamed := 0
	e.FilenameChanged().Connect(func() { renamed++ })

	if err := e.Open("/snd/a.wav"); err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if e.Filename() != "/snd/a.wav" || renamed != 1 {
		t.Errorf("Filename() = %q after %d renames, want /snd/a.wav after 1", e.Filename(), renamed)
	}
	if got := fx.graph.NumFrames(); got != 4 {
		t.Errorf("graph NumFrames() = %d, want 4", got)
	}

	if err := e.Open("/snd/b.wav"); !errors.Is(err, ErrNotFresh) {
		t.Errorf("second Open() = %v, want %v", err, ErrNotFresh)
	}

	if err := e.Close(false); err != nil {
		t.Errorf("Close() of a saved sound = %v, want nil", err)
	}

	fx.sel.Set(0, 1)
	if err := e.Cut(); err != nil {
		t.Fatal(err)
	}
	if err := e.Close(false); !errors.Is(err, ErrNotSaved) {
		t.Errorf("Close(false) = %v, want %v", err, ErrNotSaved)
	}
	if err := e.Close(true); err != nil {
		t.Errorf("Close(true) = %v, want nil", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	fx := newFixture(t, sound.New(), nil)
	if err := fx.editor.LoadSound("/nope.wav"); err == nil {
		t.Fatal("LoadSound() of a missing file returned nil error")
	}
	if len(fx.errs) != 1 {
		t.Errorf("Errors() delivered %d errors, want 1", len(fx.errs))
	}
}

func TestSaveAsAndSelection(t *testing.T) {
	t.Parallel()

	fx := newFixture(t, ramp(10), nil)
	e := fx.editor

	if err := e.SaveSelectionAs("/snd/part.wav"); !errors.Is(err, ErrNoSelection) {
		t.Errorf("SaveSelectionAs() = %v, want %v", err, ErrNoSelection)
	}

	fx.sel.Set(3, 6)
	if err := e.SaveSelectionAs("/snd/part.wav"); err != nil {
		t.Fatal(err)
	}
	if got := fx.codec.files["/snd/part.wav"].frames; !got.Equal(audio.Mono(3, 4, 5)) {
		t.Errorf("saved selection = %v, want [3 4 5]", got.Data)
	}
	if e.Filename() != "" {
		t.Errorf("Filename() = %q after SaveSelectionAs, want empty", e.Filename())
	}

	if err := e.SaveAs("/snd/all.wav"); err != nil {
		t.Fatal(err)
	}
	if e.Filename() != "/snd/all.wav" || !e.Sound().IsSaved() {
		t.Errorf("Filename() = %q, IsSaved() = %v", e.Filename(), e.Sound().IsSaved())
	}
	if err := e.Save(); err != nil {
		t.Errorf("Save() = %v", err)
	}
}

func TestGotoAndZoom(t *testing.T) {
	t.Parallel()

	fx := newFixture(t, ramp(1000), nil)
	e := fx.editor

	e.GotoEnd()
	if a, b := fx.sel.Get(); a != 1000 || b != 1000 {
		t.Errorf("GotoEnd() selection = %d, %d, want 1000, 1000", a, b)
	}
	e.GotoStart()
	if a, b := fx.sel.Get(); a != 0 || b != 0 {
		t.Errorf("GotoStart() selection = %d, %d, want 0, 0", a, b)
	}

	e.ZoomIn()
	if fx.graph.IsZoomedOutFull() {
		t.Error("IsZoomedOutFull() = true after ZoomIn()")
	}
	e.ZoomFit()
	if !fx.graph.IsZoomedOutFull() {
		t.Error("ZoomFit() without selection did not zoom out full")
	}

	fx.sel.Set(200, 400)
	e.ZoomFit()
	if start, end := fx.graph.View(); start != 200 || end != 400 {
		t.Errorf("View() = %v, %v, want 200, 400", start, end)
	}

	e.SelectAll()
	if a, b := fx.sel.Get(); a != 0 || b != 1000 {
		t.Errorf("SelectAll() = %d, %d, want 0, 1000", a, b)
	}
}

func TestPlayback(t *testing.T) {
	t.Parallel()

	fx := newFixture(t, ramp(300), nil)
	e := fx.editor

	fx.sel.Set(100, 100)
	e.Play()
	fx.player.Wait()
	if got := fx.player.Position(); got != 300 {
		t.Errorf("Position() = %d, want 300", got)
	}

	fx.sel.Set(10, 50)
	e.TogglePlay()
	fx.player.Wait()
	if got := fx.player.Position(); got != 50 {
		t.Errorf("Position() = %d, want 50", got)
	}
}
