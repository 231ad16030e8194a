// SPDX-License-Identifier: EPL-2.0

// Package player streams a range of frames to an output Device. Only one
// session plays at a time: starting a new one stops the current session
// and waits for it to release the device.
package player

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/ik5/audedit/audio"
	"github.com/ik5/audedit/event"
)

// DefaultPeriodSize is used when a device reports no period.
const DefaultPeriodSize = 1024

type Option func(*Player)

func WithLogger(l *slog.Logger) Option {
	return func(p *Player) {
		if l != nil {
			p.log = l
		}
	}
}

type Player struct {
	dev Device
	log *slog.Logger

	session  sync.Mutex
	playing  atomic.Bool
	position atomic.Int64

	started event.Signal
	stopped event.Signal
	errors  event.Feed[error]
}

func New(dev Device, opts ...Option) *Player {
	p := &Player{dev: dev, log: slog.Default()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Started fires on the session goroutine before the first period.
func (p *Player) Started() *event.Signal { return &p.started }

// Stopped fires on the session goroutine after the last period, before the
// device is released.
func (p *Player) Stopped() *event.Signal { return &p.stopped }

// Errors receives device failures.
func (p *Player) Errors() *event.Feed[error] { return &p.errors }

// Position is the frame following the last period handed to the device.
func (p *Player) Position() int { return int(p.position.Load()) }

func (p *Player) IsPlaying() bool { return p.playing.Load() }

// Stop asks the running session to end after its current period.
func (p *Player) Stop() { p.playing.Store(false) }

// Wait blocks until no session holds the device.
func (p *Player) Wait() {
	p.session.Lock()
	defer p.session.Unlock()
}

// Play streams frames [start, end) of f at rate. It stops any running
// session first and blocks until that session has released the device.
// The returned channel is closed when the new session is over.
func (p *Player) Play(f *audio.Frames, rate, start, end int) <-chan struct{} {
	p.playing.Store(false)
	p.session.Lock()
	p.playing.Store(true)

	done := make(chan struct{})
	go p.run(f, rate, start, end, done)

	return done
}

func (p *Player) run(f *audio.Frames, rate, start, end int, done chan struct{}) {
	defer close(done)
	defer p.session.Unlock()

	n := f.Len()
	start = min(max(start, 0), n)
	end = min(max(end, start), n)
	p.position.Store(int64(start))

	p.started.Emit()
	defer func() {
		p.playing.Store(false)
		p.stopped.Emit()
	}()

	if err := p.dev.Configure(rate, f.Channels); err != nil {
		p.fail(fmt.Errorf("configure %d Hz %d channels: %w", rate, f.Channels, err))
		return
	}

	period := p.dev.PeriodSize()
	if period <= 0 {
		period = DefaultPeriodSize
	}
	ch := f.Channels
	buf := make([]float32, period*ch)

	for pos := start; p.playing.Load() && pos < end; {
		next := min(pos+period, end)
		k := copy(buf, f.Data[pos*ch:next*ch])
		clear(buf[k:])

		p.position.Store(int64(next))
		if err := p.dev.Write(buf); err != nil {
			p.fail(fmt.Errorf("write at frame %d: %w", pos, err))
			return
		}
		pos = next
	}

	p.log.Debug("playback finished", "start", start, "end", end, "position", p.Position())
}

func (p *Player) fail(err error) {
	p.log.Error("playback failed", "error", err)
	p.errors.Emit(err)
}
