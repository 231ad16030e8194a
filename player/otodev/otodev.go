// SPDX-License-Identifier: EPL-2.0

// Package otodev plays audio through the system output with oto. The oto
// context is created on the first Configure and always runs in stereo
// float32; mono periods are duplicated to both channels.
package otodev

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"sync"

	"github.com/ebitengine/oto/v3"

	"github.com/ik5/audedit/audio"
	"github.com/ik5/audedit/player"
)

var (
	// ErrRateLocked is returned when Configure asks for a rate other than
	// the one the process-wide oto context was opened with.
	ErrRateLocked = errors.New("otodev: sample rate is fixed once the output is open")
	// ErrChannels is returned for more than two channels.
	ErrChannels = errors.New("otodev: only mono and stereo are supported")
)

const outputChannels = 2

type Device struct {
	period int

	mtx      sync.Mutex
	ctx      *oto.Context
	out      *oto.Player
	pipe     *io.PipeWriter
	rate     int
	channels int
	bytes    []byte
}

var _ player.Device = (*Device)(nil)

// New returns a closed device with the given period in frames.
func New(period int) *Device {
	if period <= 0 {
		period = player.DefaultPeriodSize
	}
	return &Device{period: period}
}

func (d *Device) PeriodSize() int { return d.period }

func (d *Device) Configure(rate, channels int) error {
	if channels < 1 {
		return player.ErrNoChannels
	}
	if channels > outputChannels {
		return fmt.Errorf("%w: got %d", ErrChannels, channels)
	}

	d.mtx.Lock()
	defer d.mtx.Unlock()

	if d.ctx == nil {
		ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
			SampleRate:   rate,
			ChannelCount: outputChannels,
			Format:       oto.FormatFloat32LE,
		})
		if err != nil {
			return fmt.Errorf("open output: %w", err)
		}
		<-ready
		d.ctx, d.rate = ctx, rate
	} else if rate != d.rate {
		return fmt.Errorf("%w: open at %d Hz, asked for %d Hz", ErrRateLocked, d.rate, rate)
	}

	// Reopened after Close on the same context.
	if d.pipe == nil {
		pr, pw := io.Pipe()
		d.pipe = pw
		d.out = d.ctx.NewPlayer(pr)
		d.out.Play()
	}
	d.channels = channels

	return nil
}

// Write blocks until oto has pulled the period from the pipe.
func (d *Device) Write(buf []float32) error {
	d.mtx.Lock()
	pipe, ch := d.pipe, d.channels
	d.mtx.Unlock()

	if pipe == nil {
		return player.ErrNotConfigured
	}

	f, err := audio.FromSamples(ch, buf)
	if err != nil {
		return fmt.Errorf("%w", err)
	}
	f, err = audio.MixChannelsAuto(f, outputChannels)
	if err != nil {
		return fmt.Errorf("%w", err)
	}

	b := encode(d.bytes[:0], f.Data)
	d.bytes = b
	if _, err := pipe.Write(b); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

// Close stops the oto player. The context itself lives until the process
// exits.
func (d *Device) Close() error {
	d.mtx.Lock()
	defer d.mtx.Unlock()

	if d.pipe == nil {
		return nil
	}
	_ = d.pipe.Close()
	d.pipe = nil

	if err := d.out.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

func encode(dst []byte, samples []float32) []byte {
	if cap(dst) < 4*len(samples) {
		dst = make([]byte, 0, 4*len(samples))
	}
	for _, s := range samples {
		dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(s))
	}
	return dst
}
