// SPDX-License-Identifier: EPL-2.0

// Package audedit is the core of a waveform sound editor: a sound buffer
// with undoable edits, a zoomable overview, a selection, a playback cursor
// and the editor that binds them to user commands.
//
// # Packages
//
//   - audio: interleaved float32 Frames, channel mixing, resampling, and
//     the Source/Decoder/Encoder contracts
//   - formats/wav, formats/aiff: read and write PCM files
//   - formats/mp3, formats/vorbis: read-only decoders
//   - sound: a buffer plus its undo History, load and save
//   - graph: the visible window over a sound and its min/max overview
//   - selection, cursor: frame ranges and the play position in pixels
//   - player: plays a range of frames on an output Device
//   - effect: named whole-range transforms such as Reverse and Normalize
//   - editor: Cut, Copy, Paste, Mix, Undo and the rest of the commands
//   - config, logging: YAML settings and the slog logger
//
// # Quick Start
//
// A Session wires everything from a Config:
//
//	cfg, _, err := config.FromUserDir()
//	s, err := audedit.OpenSession(cfg, otodev.New(cfg.Player.PeriodSize), "song.wav")
//	defer s.Close()
//
//	s.Editor.SelectAll()
//	_ = s.Editor.Effect("Reverse")
//	_ = s.Editor.SaveAs("gnos.wav")
//
// # Files
//
// FileCodec picks a format by file extension. wav and aiff can be
// written; mp3 and ogg files can be opened and then saved as wav or aiff.
package audedit
