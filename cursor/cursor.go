// SPDX-License-Identifier: EPL-2.0

// Package cursor tracks the pixel column of the playback cursor. While a
// player is running the cursor follows its position from a poll goroutine;
// otherwise it sits on the frame set by the selection.
package cursor

import (
	"sync"
	"time"

	"github.com/ik5/audedit/event"
	"github.com/ik5/audedit/graph"
)

// DefaultInterval is the poll period while following playback.
const DefaultInterval = 50 * time.Millisecond

// Graph supplies the frame to pixel transform.
type Graph interface {
	Mapping() graph.Mapping
	Changed() *event.Signal
}

// Player reports the frame being played.
type Player interface {
	Position() int
	Started() *event.Signal
	Stopped() *event.Signal
}

type Option func(*Cursor)

// WithInterval sets the poll period. Non-positive values are ignored.
func WithInterval(d time.Duration) Option {
	return func(c *Cursor) {
		if d > 0 {
			c.interval = d
		}
	}
}

// Cursor is safe for concurrent use. Changed may fire on the poll
// goroutine or on the goroutine that stops the player.
type Cursor struct {
	graph  Graph
	player Player

	graphHandle   event.Handle
	startedHandle event.Handle
	stoppedHandle event.Handle

	interval time.Duration

	mtx         sync.Mutex
	mapping     graph.Mapping
	frame       int
	playerFrame int
	pixel       int
	poll        *poller

	changed event.Signal
}

func New(g Graph, p Player, opts ...Option) *Cursor {
	c := &Cursor{
		graph:    g,
		player:   p,
		interval: DefaultInterval,
		mapping:  g.Mapping(),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.graphHandle = g.Changed().Connect(c.onGraphChanged)
	c.startedHandle = p.Started().Connect(c.OnStartPlaying)
	c.stoppedHandle = p.Stopped().Connect(c.OnStopPlaying)

	return c
}

func (c *Cursor) Changed() *event.Signal { return &c.changed }

// Close disconnects the cursor and stops any running poller.
func (c *Cursor) Close() {
	c.graph.Changed().Disconnect(c.graphHandle)
	c.player.Started().Disconnect(c.startedHandle)
	c.player.Stopped().Disconnect(c.stoppedHandle)

	c.mtx.Lock()
	p := c.poll
	c.poll = nil
	c.mtx.Unlock()
	if p != nil {
		p.stop()
	}
}

// SetFrame records the resting frame. The pixel only moves when playback
// is not being followed.
func (c *Cursor) SetFrame(frame int) {
	c.mtx.Lock()
	c.frame = frame
	following := c.poll != nil
	c.mtx.Unlock()

	if !following {
		c.update(frame)
	}
}

func (c *Cursor) Frame() int {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	return c.frame
}

func (c *Cursor) Pixel() int {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	return c.pixel
}

// Following reports whether the poller is running.
func (c *Cursor) Following() bool {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	return c.poll != nil
}

func (c *Cursor) OnStartPlaying() {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	if c.poll == nil {
		c.poll = startPoller(c.interval, c.follow)
	}
}

// OnStopPlaying waits for the poller to exit and returns to the resting
// frame.
func (c *Cursor) OnStopPlaying() {
	c.mtx.Lock()
	p := c.poll
	c.poll = nil
	c.mtx.Unlock()

	if p != nil {
		p.stop()
	}
	c.SetFrame(c.Frame())
}

func (c *Cursor) follow() {
	f := c.player.Position()

	c.mtx.Lock()
	c.playerFrame = f
	c.mtx.Unlock()

	c.update(f)
}

func (c *Cursor) onGraphChanged() {
	m := c.graph.Mapping()

	c.mtx.Lock()
	c.mapping = m
	f := c.frame
	if c.poll != nil {
		f = c.playerFrame
	}
	c.mtx.Unlock()

	c.update(f)
}

func (c *Cursor) update(frame int) {
	c.mtx.Lock()
	px := c.mapping.Pixel(frame)
	moved := px != c.pixel
	c.pixel = px
	c.mtx.Unlock()

	if moved {
		c.changed.Emit()
	}
}

// poller calls fn immediately and then once per interval until stopped.
type poller struct {
	quit chan struct{}
	done chan struct{}
}

func startPoller(interval time.Duration, fn func()) *poller {
	p := &poller{quit: make(chan struct{}), done: make(chan struct{})}

	go func() {
		defer close(p.done)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			fn()
			select {
			case <-p.quit:
				return
			case <-ticker.C:
			}
		}
	}()

	return p
}

func (p *poller) stop() {
	close(p.quit)
	<-p.done
}
