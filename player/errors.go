// SPDX-License-Identifier: EPL-2.0

package player

import "errors"

var (
	// ErrNoChannels is returned by Configure for a zero channel count.
	ErrNoChannels = errors.New("player: channel count must be positive")
	// ErrNotConfigured is returned by Write before Configure.
	ErrNotConfigured = errors.New("player: device not configured")
)
