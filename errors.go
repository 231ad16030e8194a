// SPDX-License-Identifier: EPL-2.0

package audedit

import "errors"

var (
	// ErrUnsupportedFormat is returned for a file extension with no decoder.
	ErrUnsupportedFormat = errors.New("unsupported audio format")
	// ErrReadOnlyFormat is returned when saving to a format that can only
	// be decoded.
	ErrReadOnlyFormat = errors.New("audio format cannot be written")
)
