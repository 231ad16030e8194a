// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"testing"

	"github.com/ik5/audedit/internal/audiotest"
)

func TestReadAll(t *testing.T) {
	t.Parallel()

	src := audiotest.NewGenerator(8000, 2, 5000, func(i, c int) float32 {
		return float32(i*2 + c)
	})
	src.EOFWithData = true

	f, err := ReadAll(src)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if f.Len() != 5000 || f.Channels != 2 {
		t.Fatalf("ReadAll() = %v, want 5000 stereo frames", f)
	}
	for i, v := range f.Data {
		if v != float32(i) {
			t.Fatalf("Data[%d] = %v, want %d", i, v, i)
		}
	}
}

func TestReadAll_Error(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	src := audiotest.NewSilentSource(8000, 1, 10)
	src.Err = boom

	if _, err := ReadAll(src); !errors.Is(err, boom) {
		t.Errorf("ReadAll() error = %v, want %v", err, boom)
	}
}

func TestResample(t *testing.T) {
	t.Parallel()

	f := Mono(audiotest.Ramp(100)...)

	same, err := Resample(f, 44100, 44100)
	if err != nil || same != f {
		t.Errorf("Resample() with equal rates = %p, %v, want input back", same, err)
	}

	up, err := Resample(f, 22050, 44100)
	if err != nil {
		t.Fatalf("Resample() error = %v", err)
	}
	if up.Len() != 200 {
		t.Errorf("Resample(22050->44100).Len() = %d, want 200", up.Len())
	}
	// cubic interpolation of a line stays on the line away from the edges
	if got := up.Data[101]; got < 50.4 || got > 50.6 {
		t.Errorf("Resample() frame 101 = %v, want 50.5", got)
	}

	if _, err := Resample(f, 0, 44100); !errors.Is(err, ErrInvalidRate) {
		t.Errorf("Resample(0, 44100) error = %v, want ErrInvalidRate", err)
	}
}
