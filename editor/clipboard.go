// SPDX-License-Identifier: EPL-2.0

package editor

import (
	"sync"

	"github.com/ik5/audedit/audio"
)

// Clipboard holds the last cut or copied frames with their sample rate.
// One Clipboard is shared by every editor of an application.
type Clipboard struct {
	mtx  sync.Mutex
	clip *audio.Frames
	rate int
}

func (c *Clipboard) Set(clip *audio.Frames, rate int) {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	c.clip, c.rate = clip, rate
}

// Get returns the clip and its rate. clip is nil when nothing was stored.
func (c *Clipboard) Get() (clip *audio.Frames, rate int) {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	return c.clip, c.rate
}

func (c *Clipboard) Empty() bool {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	return c.clip == nil
}
