// SPDX-License-Identifier: EPL-2.0

// Package config loads editor preferences. Built-in defaults are embedded
// and a user file only needs the keys it changes.
package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ik5/audedit/logging"
)

type (
	Config struct {
		Graph   Graph   `yaml:"graph"`
		Cursor  Cursor  `yaml:"cursor"`
		Player  Player  `yaml:"player"`
		Sound   Sound   `yaml:"sound"`
		Effects Effects `yaml:"effects"`
		Log     Log     `yaml:"log"`
	}

	Graph struct {
		Width          int     `yaml:"width"`
		ScrollFraction float64 `yaml:"scroll_fraction"`
		ZoomInOn       float64 `yaml:"zoom_in_on"`
		ZoomOutOn      float64 `yaml:"zoom_out_on"`
	}

	Cursor struct {
		Interval time.Duration `yaml:"interval"`
	}

	Player struct {
		PeriodSize int `yaml:"period_size"`
	}

	Sound struct {
		DefaultRate int `yaml:"default_rate"`
	}

	Effects struct {
		Volume          float32 `yaml:"volume"`
		Bits            int     `yaml:"bits"`
		FilterFrequency float64 `yaml:"filter_frequency"`
		FilterDamping   float64 `yaml:"filter_damping"`
	}

	Log struct {
		Level string `yaml:"level"`
	}
)

// Dir and File name the user config under os.UserConfigDir.
const (
	Dir  = "audedit"
	File = "config.yml"
)

//go:embed defaults.yml
var defaultsYAML []byte

// Default returns the built-in preferences.
func Default() Config {
	var c Config
	if err := decode(defaultsYAML, &c); err != nil {
		panic(fmt.Errorf("config: embedded defaults: %w", err))
	}
	return c
}

// Parse overlays data on the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	c := Default()
	if err := decode(data, &c); err != nil {
		return Config{}, err
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Load reads the YAML file at path on top of the defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// FromUserDir loads <UserConfigDir>/audedit/config.yml. A missing file is
// not an error; found reports whether one was read.
func FromUserDir() (c Config, found bool, err error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return Default(), false, nil
	}
	c, err = Load(filepath.Join(dir, Dir, File))
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), false, nil
	}
	if err != nil {
		return Default(), true, err
	}
	return c, true, nil
}

func decode(data []byte, c *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

func (c Config) Validate() error {
	switch {
	case c.Graph.Width < 1:
		return fmt.Errorf("%w: graph.width %d", ErrInvalid, c.Graph.Width)
	case c.Graph.ScrollFraction <= 0 || c.Graph.ScrollFraction > 1:
		return fmt.Errorf("%w: graph.scroll_fraction %v", ErrInvalid, c.Graph.ScrollFraction)
	case c.Graph.ZoomInOn <= 0 || c.Graph.ZoomInOn >= 1:
		return fmt.Errorf("%w: graph.zoom_in_on %v", ErrInvalid, c.Graph.ZoomInOn)
	case c.Graph.ZoomOutOn <= 1:
		return fmt.Errorf("%w: graph.zoom_out_on %v", ErrInvalid, c.Graph.ZoomOutOn)
	case c.Cursor.Interval <= 0:
		return fmt.Errorf("%w: cursor.interval %v", ErrInvalid, c.Cursor.Interval)
	case c.Player.PeriodSize < 1:
		return fmt.Errorf("%w: player.period_size %d", ErrInvalid, c.Player.PeriodSize)
	case c.Sound.DefaultRate < 1:
		return fmt.Errorf("%w: sound.default_rate %d", ErrInvalid, c.Sound.DefaultRate)
	case c.Effects.Volume < 0:
		return fmt.Errorf("%w: effects.volume %v", ErrInvalid, c.Effects.Volume)
	case c.Effects.Bits < 1 || c.Effects.Bits > 32:
		return fmt.Errorf("%w: effects.bits %d", ErrInvalid, c.Effects.Bits)
	case c.Effects.FilterFrequency <= 0:
		return fmt.Errorf("%w: effects.filter_frequency %v", ErrInvalid, c.Effects.FilterFrequency)
	case c.Effects.FilterDamping <= 0:
		return fmt.Errorf("%w: effects.filter_damping %v", ErrInvalid, c.Effects.FilterDamping)
	}
	if _, err := logging.ResolveLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}
