// SPDX-License-Identifier: EPL-2.0

package player

import (
	"slices"
	"sync"
	"time"
)

// Device is an audio output. Write receives exactly PeriodSize frames of
// interleaved samples and may block until the hardware has room.
type Device interface {
	Configure(rate, channels int) error
	Write(buf []float32) error
	PeriodSize() int
}

// NullDevice discards audio. With Realtime set, Write sleeps for the
// duration of the period so playback takes as long as it would on a sound
// card.
type NullDevice struct {
	Period   int
	Realtime bool
	// Fail, when set, is returned by Write.
	Fail error

	mtx      sync.Mutex
	rate     int
	channels int
	writes   int
	data     []float32
}

func NewNullDevice(period int, realtime bool) *NullDevice {
	return &NullDevice{Period: period, Realtime: realtime}
}

func (d *NullDevice) Configure(rate, channels int) error {
	if channels < 1 {
		return ErrNoChannels
	}

	d.mtx.Lock()
	defer d.mtx.Unlock()

	d.rate, d.channels = rate, channels
	return nil
}

func (d *NullDevice) PeriodSize() int {
	if d.Period <= 0 {
		return DefaultPeriodSize
	}
	return d.Period
}

func (d *NullDevice) Write(buf []float32) error {
	d.mtx.Lock()
	rate, ch := d.rate, d.channels
	if ch == 0 {
		d.mtx.Unlock()
		return ErrNotConfigured
	}
	if d.Fail != nil {
		d.mtx.Unlock()
		return d.Fail
	}
	d.writes++
	d.data = append(d.data, buf...)
	d.mtx.Unlock()

	if d.Realtime && rate > 0 {
		frames := len(buf) / ch
		time.Sleep(time.Duration(frames) * time.Second / time.Duration(rate))
	}
	return nil
}

// Config returns the last rate and channel count passed to Configure.
func (d *NullDevice) Config() (rate, channels int) {
	d.mtx.Lock()
	defer d.mtx.Unlock()

	return d.rate, d.channels
}

// Writes is the number of successful Write calls.
func (d *NullDevice) Writes() int {
	d.mtx.Lock()
	defer d.mtx.Unlock()

	return d.writes
}

// Data returns a copy of every sample written so far.
func (d *NullDevice) Data() []float32 {
	d.mtx.Lock()
	defer d.mtx.Unlock()

	return slices.Clone(d.data)
}
