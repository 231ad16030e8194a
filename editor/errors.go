// SPDX-License-Identifier: EPL-2.0

package editor

import (
	"errors"

	"github.com/ik5/audedit/effect"
)

var (
	// ErrNotFresh is returned by Open when the editor already holds a
	// loaded or edited sound; the caller opens another editor instead.
	ErrNotFresh = errors.New("editor: sound is not fresh")
	// ErrNotSaved is returned by Close for unsaved changes.
	ErrNotSaved = errors.New("editor: sound has unsaved changes")
	// ErrNoSelection is returned by operations that need a selection.
	ErrNoSelection = errors.New("editor: there is no selection")
	// ErrEmptyClipboard is returned by Paste and Mix before anything was
	// cut or copied.
	ErrEmptyClipboard = errors.New("editor: clipboard is empty")
	// ErrUnknownEffect matches effect names missing from the registry.
	ErrUnknownEffect = effect.ErrUnknown
)
