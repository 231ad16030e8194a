// SPDX-License-Identifier: EPL-2.0

package sound

import "errors"

var (
	ErrNoFilename    = errors.New("sound has no filename")
	ErrInvalidRange  = errors.New("invalid frame range")
	ErrNegativeStart = errors.New("mix start is negative")
	ErrNoCodec       = errors.New("sound has no codec")
)
