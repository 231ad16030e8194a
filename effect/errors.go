// SPDX-License-Identifier: EPL-2.0

package effect

import "errors"

var (
	// ErrUnknown is returned by Apply for a name that was never registered.
	ErrUnknown = errors.New("effect: unknown effect")
	// ErrBits is returned by BitCrusher for a width outside [1, 32].
	ErrBits = errors.New("effect: bit width out of range")
	// ErrFilter is returned by Filter for a non-positive frequency or damping.
	ErrFilter = errors.New("effect: invalid filter parameters")
	// ErrNoClip is returned by Convolve when there is nothing to convolve with.
	ErrNoClip = errors.New("effect: clipboard is empty")
)
