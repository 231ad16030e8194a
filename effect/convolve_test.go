// SPDX-License-Identifier: EPL-2.0

package effect

import (
	"errors"
	"math"
	"testing"

	"github.com/ik5/audedit/audio"
	"github.com/ik5/audedit/sound"
)

func clipOf(f *audio.Frames, rate int) ClipFunc {
	return func() (*audio.Frames, int) { return f, rate }
}

func assertNear(t *testing.T, got *audio.Frames, channels int, want ...float32) {
	t.Helper()

	if got.Channels != channels || len(got.Data) != len(want) {
		t.Fatalf("Frames() = %d channels %v, want %d channels %v", got.Channels, got.Data, channels, want)
	}
	for i := range want {
		if math.Abs(float64(got.Data[i]-want[i])) > 1e-5 {
			t.Errorf("Frames().Data = %v, want %v", got.Data, want)
			return
		}
	}
}

func TestConvolveImpulseIsIdentity(t *testing.T) {
	t.Parallel()

	s := mono(1, -0.5, 0.5)
	if err := Convolve(clipOf(audio.Mono(1), 44100))(s, 0, 3); err != nil {
		t.Fatalf("Convolve() error = %v", err)
	}
	assertNear(t, s.Frames(), 1, 1, -0.5, 0.5)

	if got := s.History().Len(); got != 1 {
		t.Errorf("History().Len() = %d, want 1", got)
	}
	if !s.Undo() {
		t.Fatal("Undo() = false, want true")
	}
	assertData(t, s, 1, -0.5, 0.5)
	if s.Undo() {
		t.Error("second Undo() = true, want false")
	}
}

func TestConvolveDelayAndNormalize(t *testing.T) {
	t.Parallel()

	s := mono(0.5, -0.25, 0.25)
	if err := Convolve(clipOf(audio.Mono(0, 0.5), 44100))(s, 0, 3); err != nil {
		t.Fatalf("Convolve() error = %v", err)
	}
	assertNear(t, s.Frames(), 1, 0, 1, -0.5, 0.5)
}

func TestConvolveRangeReplacesSound(t *testing.T) {
	t.Parallel()

	s := mono(9, 1, 2, 9)
	if err := Convolve(clipOf(audio.Mono(1), 44100))(s, 1, 3); err != nil {
		t.Fatalf("Convolve() error = %v", err)
	}
	assertNear(t, s.Frames(), 1, 0.5, 1)
}

func TestConvolveMonoClipOnStereo(t *testing.T) {
	t.Parallel()

	s := sound.FromFrames(audio.Stack([]float32{0.5, -1}, []float32{0.25, 0.5}), 44100)
	if err := Convolve(clipOf(audio.Mono(1), 44100))(s, 0, 2); err != nil {
		t.Fatalf("Convolve() error = %v", err)
	}
	assertNear(t, s.Frames(), 2, 0.5, -1, 0.25, 0.5)
}

func TestConvolveAcrossBlocks(t *testing.T) {
	t.Parallel()

	x := make([]float32, 100)
	for i := range x {
		x[i] = float32(math.Sin(float64(i) * 0.3))
	}
	h := []float32{1, -0.5, 0.25}

	want := make([]float32, len(x)+len(h)-1)
	var peak float32
	for i := range x {
		for j := range h {
			want[i+j] += x[i] * h[j]
		}
	}
	for _, v := range want {
		peak = max(peak, float32(math.Abs(float64(v))))
	}
	for i := range want {
		want[i] /= peak
	}

	s := mono(x...)
	if err := Convolve(clipOf(audio.Mono(h...), 44100))(s, 0, len(x)); err != nil {
		t.Fatalf("Convolve() error = %v", err)
	}
	assertNear(t, s.Frames(), 1, want...)
}

func TestConvolveEmptyClip(t *testing.T) {
	t.Parallel()

	for name, fx := range map[string]Effect{
		"nil provider": Convolve(nil),
		"nil clip":     Convolve(clipOf(nil, 0)),
		"no frames":    Convolve(clipOf(audio.NewFrames(1, 0), 44100)),
	} {
		s := mono(1, 2)
		if err := fx(s, 0, 2); !errors.Is(err, ErrNoClip) {
			t.Errorf("%s: Convolve() error = %v, want %v", name, err, ErrNoClip)
		}
		if !s.History().IsEmpty() {
			t.Errorf("%s: History().IsEmpty() = false, want true", name)
		}
	}

	s := mono(1, 2)
	if err := Convolve(nil)(s, 1, 1); err != nil {
		t.Errorf("Convolve(empty range) error = %v, want nil", err)
	}
}

func TestConvolveRegistered(t *testing.T) {
	t.Parallel()

	p := testParams
	p.Clip = clipOf(audio.Mono(1), 44100)
	r, err := Defaults(p)
	if err != nil {
		t.Fatal(err)
	}

	s := mono(0.25, 0.5)
	if err := r.Apply("Convolve with clipboard", s, 0, 2); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	assertNear(t, s.Frames(), 1, 0.5, 1)
}
