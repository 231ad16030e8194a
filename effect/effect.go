// SPDX-License-Identifier: EPL-2.0

// Package effect processes a frame range of a sound. Every effect copies
// the range, transforms the copy and pastes it back, so one application is
// one undoable step. Convolve is the exception on what it pastes: its
// result replaces the whole sound.
package effect

import (
	"fmt"
	"sort"
	"sync"

	"github.com/ik5/audedit/audio"
	"github.com/ik5/audedit/sound"
)

// Effect transforms frames [start, end) of s. end past the last frame is
// clamped; an empty range does nothing.
type Effect func(s *sound.Sound, start, end int) error

// Transform rewrites a copied range in place.
type Transform func(f *audio.Frames)

// Overwrite turns a Transform into an Effect.
func Overwrite(fn Transform) Effect {
	return func(s *sound.Sound, start, end int) error {
		end = min(end, s.Len())
		if start == end {
			return nil
		}

		clip, err := s.Copy(start, end)
		if err != nil {
			return fmt.Errorf("%w", err)
		}
		fn(clip)

		if err := s.Paste(start, end, clip); err != nil {
			return fmt.Errorf("%w", err)
		}
		return nil
	}
}

type Registry struct {
	effects map[string]Effect
	mtx     *sync.Mutex
}

func NewRegistry() *Registry {
	return &Registry{
		effects: make(map[string]Effect),
		mtx:     &sync.Mutex{},
	}
}

// Register adds or replaces the effect under name.
func (r *Registry) Register(name string, e Effect) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.effects[name] = e
}

func (r *Registry) Get(name string) (Effect, bool) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	e, ok := r.effects[name]
	return e, ok
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	names := make([]string, 0, len(r.effects))
	for name := range r.effects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) Apply(name string, s *sound.Sound, start, end int) error {
	e, ok := r.Get(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknown, name)
	}
	if err := e(s, start, end); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// Params configures the parameterised built-ins.
type Params struct {
	Volume          float32
	Bits            int
	FilterFrequency float64
	FilterDamping   float64
	// Clip feeds "Convolve with clipboard"; nil leaves it reporting ErrNoClip.
	Clip ClipFunc
}

// Defaults returns a registry holding the built-in effects.
func Defaults(p Params) (*Registry, error) {
	crush, err := BitCrusher(p.Bits)
	if err != nil {
		return nil, err
	}

	r := NewRegistry()
	r.Register("Reverse", Reverse)
	r.Register("Normalize", Normalize)
	r.Register("Negate", Negate)
	r.Register("Fade In", FadeIn)
	r.Register("Fade Out", FadeOut)
	r.Register("Volume", Volume(p.Volume))
	r.Register("Bit Crusher", crush)
	r.Register("Convolve with clipboard", Convolve(p.Clip))

	for _, mode := range []FilterMode{HighPass, BandPass, LowPass} {
		filter, err := Filter(mode, p.FilterFrequency, p.FilterDamping)
		if err != nil {
			return nil, err
		}
		r.Register("Filter: "+mode.String(), filter)
	}

	return r, nil
}
