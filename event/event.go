// SPDX-License-Identifier: EPL-2.0

// Package event provides synchronous change notification between the
// editing components. Handlers run on the goroutine that emits, in the
// order they were connected, and never under the feed's lock, so a handler
// may connect or disconnect others.
package event

import (
	"slices"
	"sync"
)

// Handle identifies one connection for Disconnect.
type Handle uint64

type subscriber[T any] struct {
	id Handle
	fn func(T)
}

// Feed delivers values of type T to its subscribers. The zero value is
// ready to use.
type Feed[T any] struct {
	mtx  sync.Mutex
	last Handle
	subs []subscriber[T]
}

func (f *Feed[T]) Connect(fn func(T)) Handle {
	f.mtx.Lock()
	defer f.mtx.Unlock()

	f.last++
	f.subs = append(f.subs, subscriber[T]{id: f.last, fn: fn})
	return f.last
}

// Disconnect removes the handler registered under h and reports whether it
// was connected.
func (f *Feed[T]) Disconnect(h Handle) bool {
	f.mtx.Lock()
	defer f.mtx.Unlock()

	i := slices.IndexFunc(f.subs, func(s subscriber[T]) bool { return s.id == h })
	if i < 0 {
		return false
	}
	f.subs = slices.Delete(f.subs, i, i+1)
	return true
}

func (f *Feed[T]) Emit(v T) {
	f.mtx.Lock()
	subs := slices.Clone(f.subs)
	f.mtx.Unlock()

	for _, s := range subs {
		s.fn(v)
	}
}

// Len is the number of connected handlers.
func (f *Feed[T]) Len() int {
	f.mtx.Lock()
	defer f.mtx.Unlock()

	return len(f.subs)
}

// Signal is a Feed without a payload.
type Signal struct {
	feed Feed[struct{}]
}

func (s *Signal) Connect(fn func()) Handle {
	return s.feed.Connect(func(struct{}) { fn() })
}

func (s *Signal) Disconnect(h Handle) bool { return s.feed.Disconnect(h) }
func (s *Signal) Emit()                    { s.feed.Emit(struct{}{}) }
func (s *Signal) Len() int                 { return s.feed.Len() }
