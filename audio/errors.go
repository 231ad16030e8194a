// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrInvalidDstSize        = errors.New("dst size must be multiple of channels")
	ErrUnsupportedConversion = errors.New("unsupported channel conversion")
	ErrGainMatrix            = errors.New("gain matrix needs a row per output channel, each as long as the input channel count")
	ErrInvalidRate           = errors.New("sample rate must be positive")
)
