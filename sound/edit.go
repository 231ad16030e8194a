// SPDX-License-Identifier: EPL-2.0

package sound

import (
	"fmt"

	"github.com/viterin/vek/vek32"

	"github.com/ik5/audedit/audio"
)

func (s *Sound) checkRange(start, end int) error {
	if start < 0 || start > end || end > s.Len() {
		return fmt.Errorf("%w: [%d, %d) of %d frames", ErrInvalidRange, start, end, s.Len())
	}
	return nil
}

// conform converts clip to the sound's channel count.
func (s *Sound) conform(clip *audio.Frames) (*audio.Frames, error) {
	if clip.Len() == 0 {
		return audio.NewFrames(s.NumChan(), 0), nil
	}
	out, err := audio.MixChannelsAuto(clip, s.NumChan())
	if err != nil {
		return nil, fmt.Errorf("conform clip: %w", err)
	}
	return out, nil
}

// Cut removes frames [start, end) and returns them.
func (s *Sound) Cut(start, end int) (*audio.Frames, error) {
	if err := s.checkRange(start, end); err != nil {
		return nil, err
	}

	clip := s.frames.Slice(start, end)
	s.history.Add(
		func() any { return s.splice(start, end, nil) },
		func() any { return s.splice(start, start, clip) },
	)
	s.logger.Debug("cut", "start", start, "end", end)
	s.changed.Emit()

	return clip.Clone(), nil
}

// Copy returns frames [start, end) without recording anything.
func (s *Sound) Copy(start, end int) (*audio.Frames, error) {
	if err := s.checkRange(start, end); err != nil {
		return nil, err
	}
	return s.frames.Slice(start, end), nil
}

// Paste replaces frames [start, end) with clip. An empty sound takes the
// clip as its buffer, channel count included, and ignores the range.
func (s *Sound) Paste(start, end int, clip *audio.Frames) error {
	if s.IsEmpty() {
		s.adopt(clip)
		return nil
	}
	if err := s.checkRange(start, end); err != nil {
		return err
	}
	conv, err := s.conform(clip)
	if err != nil {
		return err
	}

	saved := s.frames.Slice(start, end)
	n := conv.Len()
	s.history.Add(
		func() any { return s.splice(start, end, conv) },
		func() any { return s.splice(start, start+n, saved) },
	)
	s.logger.Debug("paste", "start", start, "end", end, "frames", n)
	s.changed.Emit()

	return nil
}

// Mix adds clip onto the sound starting at start. With a selection
// (start != end) at most end-start frames are mixed; without one the sound
// grows as needed to fit the clip.
func (s *Sound) Mix(start, end int, clip *audio.Frames) error {
	if start < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeStart, start)
	}
	if s.IsEmpty() {
		s.adopt(clip)
		return nil
	}
	if err := s.checkRange(start, end); err != nil {
		return err
	}
	conv, err := s.conform(clip)
	if err != nil {
		return err
	}

	n := conv.Len()
	saved := s.frames.Slice(start, min(s.Len(), start+n))
	s.history.Add(
		func() any { return s.mixAt(start, end, conv) },
		func() any { return s.splice(start, start+n, saved) },
	)
	s.logger.Debug("mix", "start", start, "end", end, "frames", n)
	s.changed.Emit()

	return nil
}

// Undo reverts the last edit. It reports false when there was nothing to
// undo; Changed fires either way.
func (s *Sound) Undo() bool {
	_, ok := s.history.Undo()
	s.logger.Debug("undo", "applied", ok, "revision", s.history.Revision())
	s.changed.Emit()
	return ok
}

func (s *Sound) Redo() bool {
	_, ok := s.history.Redo()
	s.logger.Debug("redo", "applied", ok, "revision", s.history.Revision())
	s.changed.Emit()
	return ok
}

// adopt makes clip the whole buffer. A nil clip records nothing.
func (s *Sound) adopt(clip *audio.Frames) {
	if clip == nil {
		return
	}
	prev := s.frames
	next := clip.Clone()
	s.history.Add(
		func() any { s.frames = next; return nil },
		func() any { s.frames = prev; return nil },
	)
	s.logger.Debug("adopt clip", "frames", next.Len(), "channels", next.Channels)
	s.changed.Emit()
}

// splice builds a new buffer with [start, end) replaced by clip. end is
// clamped to the buffer length.
func (s *Sound) splice(start, end int, clip *audio.Frames) any {
	ch := s.frames.Channels
	old := s.frames.Data
	end = min(end, s.frames.Len())

	var ins []float32
	if clip != nil {
		ins = clip.Data
	}

	data := make([]float32, 0, len(old)-(end-start)*ch+len(ins))
	data = append(data, old[:start*ch]...)
	data = append(data, ins...)
	data = append(data, old[end*ch:]...)

	s.frames = &audio.Frames{Channels: ch, Data: data}
	return nil
}

func (s *Sound) mixAt(start, end int, clip *audio.Frames) any {
	ch := s.frames.Channels
	old := s.frames.Data

	var data []float32
	length := clip.Len()
	if start != end {
		length = min(end-start, length)
		data = make([]float32, len(old))
	} else {
		data = make([]float32, max(len(old), (start+length)*ch))
	}
	copy(data, old)

	if length > 0 {
		vek32.Add_Inplace(data[start*ch:(start+length)*ch], clip.Data[:length*ch])
	}

	s.frames = &audio.Frames{Channels: ch, Data: data}
	return nil
}
