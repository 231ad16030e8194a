// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"io"
	"math"
	"testing"

	"github.com/ik5/audedit/internal/audiotest"
)

func drain(t *testing.T, src Source, bufSize int) []float32 {
	t.Helper()

	buf := make([]float32, bufSize)
	var out []float32
	for {
		n, err := src.ReadSamples(buf)
		out = append(out, buf[:n]...)
		if err == io.EOF {
			return out
		}
		if err != nil {
			t.Fatalf("ReadSamples() error = %v", err)
		}
	}
}

func TestResampler_Metadata(t *testing.T) {
	t.Parallel()

	r := NewResampler(audiotest.NewSilentSource(44100, 2, 1000), 8000)
	if r.SampleRate() != 8000 {
		t.Errorf("Resampler.SampleRate() = %d, want 8000", r.SampleRate())
	}
	if r.Channels() != 2 {
		t.Errorf("Resampler.Channels() = %d, want 2", r.Channels())
	}
}

func TestResampler_FrameCounts(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		from, to int
		frames   int
		want     int
	}{
		{"same rate", 8000, 8000, 100, 100},
		{"double", 8000, 16000, 100, 200},
		{"half", 16000, 8000, 100, 50},
		{"44.1k to 8k", 44100, 8000, 44100, 8000},
		{"8k to 44.1k", 8000, 44100, 8000, 44100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			src := audiotest.NewSineSource(tt.from, 1, tt.frames, 440)
			got := len(drain(t, NewResampler(src, tt.to), 1024))
			if math.Abs(float64(got-tt.want)) > 1 {
				t.Errorf("resampled %d frames, want %d", got, tt.want)
			}
		})
	}
}

func TestResampler_EOFWithData(t *testing.T) {
	t.Parallel()

	src := audiotest.NewConstantSource(8000, 1, 10, 0.5)
	src.EOFWithData = true

	out := drain(t, NewResampler(src, 8000), 64)
	if len(out) != 10 {
		t.Fatalf("resampled %d frames, want 10", len(out))
	}
	for i, v := range out {
		if math.Abs(float64(v-0.5)) > 1e-6 {
			t.Errorf("out[%d] = %v, want 0.5", i, v)
		}
	}
}

func TestResampler_StereoPreserved(t *testing.T) {
	t.Parallel()

	src := audiotest.NewGenerator(44100, 2, 1000, func(_, c int) float32 {
		if c == 0 {
			return 0.3
		}
		return 0.7
	})

	out := drain(t, NewResampler(src, 8000), 20)
	if len(out)%2 != 0 || len(out) == 0 {
		t.Fatalf("resampled %d samples, want a positive even count", len(out))
	}
	for f := 0; f < len(out); f += 2 {
		if math.Abs(float64(out[f]-0.3)) > 0.01 || math.Abs(float64(out[f+1]-0.7)) > 0.01 {
			t.Errorf("frame %d = [%v %v], want [0.3 0.7]", f/2, out[f], out[f+1])
		}
	}
}

func TestResampler_EOFIsSticky(t *testing.T) {
	t.Parallel()

	r := NewResampler(audiotest.NewSilentSource(44100, 1, 100), 8000)
	_ = drain(t, r, 1024)

	n, err := r.ReadSamples(make([]float32, 16))
	if n != 0 || err != io.EOF {
		t.Errorf("ReadSamples() after EOF = %d, %v, want 0, io.EOF", n, err)
	}
}

func TestResampler_EmptySource(t *testing.T) {
	t.Parallel()

	r := NewResampler(audiotest.NewSilentSource(8000, 1, 0), 16000)
	n, err := r.ReadSamples(make([]float32, 16))
	if n != 0 || err != io.EOF {
		t.Errorf("ReadSamples() = %d, %v, want 0, io.EOF", n, err)
	}
}

func TestResampler_SingleFrame(t *testing.T) {
	t.Parallel()

	out := drain(t, NewResampler(Mono(0.25).Reader(8000), 8000), 8)
	if len(out) != 1 || out[0] != 0.25 {
		t.Errorf("resampled %v, want [0.25]", out)
	}
}

func TestResampler_SourceError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	src := audiotest.NewSilentSource(8000, 1, 100)
	src.Err = boom

	_, err := NewResampler(src, 16000).ReadSamples(make([]float32, 16))
	if !errors.Is(err, boom) {
		t.Errorf("ReadSamples() error = %v, want %v", err, boom)
	}
}

func TestResampler_InvalidDstSize(t *testing.T) {
	t.Parallel()

	r := NewResampler(audiotest.NewSilentSource(44100, 2, 1000), 8000)
	if _, err := r.ReadSamples(make([]float32, 7)); !errors.Is(err, ErrInvalidDstSize) {
		t.Errorf("ReadSamples() error = %v, want ErrInvalidDstSize", err)
	}
}

func BenchmarkResampler_Downsample(b *testing.B) {
	src := audiotest.NewSineSource(44100, 2, 100000, 440.0)
	buf := make([]float32, 4096)

	b.ReportAllocs()
	for b.Loop() {
		src.Reset()
		r := NewResampler(src, 8000)
		for {
			if _, err := r.ReadSamples(buf); err != nil {
				break
			}
		}
	}
}
