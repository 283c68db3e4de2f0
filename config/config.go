// Package config holds conversion settings loaded from a YAML file.
package config

import (
	"bytes"
	"io"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/pshvedko/midibeep/basic"
	"github.com/pshvedko/midibeep/beep"
)

// Config is the main configuration structure
type Config struct {
	MinNoteLength int64  `yaml:"min_note_length"`
	PitchBase     int    `yaml:"pitch_base"`
	DefaultTempo  uint32 `yaml:"default_tempo"`
	LineStart     int    `yaml:"line_start"`
	LineStep      int    `yaml:"line_step"`
	Tracks        []int  `yaml:"tracks,omitempty"`
	Decoder       string `yaml:"decoder"`
}

const (
	DecoderNative = "native"
	DecoderGomidi = "gomidi"
)

// Default returns the settings used when no file is given.
func Default() *Config {
	return &Config{
		MinNoteLength: beep.MinNoteLength,
		PitchBase:     beep.PitchBase,
		DefaultTempo:  beep.DefaultTempo,
		LineStart:     basic.LineStart,
		LineStep:      basic.LineStep,
		Decoder:       DecoderNative,
	}
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	c := Default()
	if path == "" {
		return c, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return c, nil
		}
		return nil, errors.Wrap(err, "read config")
	}
	if err = c.decode(data); err != nil {
		return nil, errors.Wrapf(err, "parse %s", path)
	}
	return c, c.Validate()
}

func (c *Config) decode(data []byte) error {
	d := yaml.NewDecoder(bytes.NewReader(data))
	d.KnownFields(true)
	err := d.Decode(c)
	if err == io.EOF {
		return nil
	}
	return err
}

func (c *Config) Validate() error {
	switch {
	case c.MinNoteLength < 0:
		return errors.Errorf("min_note_length %d is negative", c.MinNoteLength)
	case c.DefaultTempo == 0:
		return errors.Wrap(beep.ErrTempo, "default_tempo")
	case c.LineStep <= 0:
		return errors.Errorf("line_step %d must be positive", c.LineStep)
	case c.LineStart < 0:
		return errors.Errorf("line_start %d is negative", c.LineStart)
	case c.Decoder != DecoderNative && c.Decoder != DecoderGomidi:
		return errors.Errorf("unknown decoder %q", c.Decoder)
	}
	for _, t := range c.Tracks {
		if t < 0 {
			return errors.Errorf("track %d is negative", t)
		}
	}
	return nil
}

// Options returns the conversion options for a file with the given time base.
func (c *Config) Options(ticksPerBeat uint16) beep.Options {
	return beep.Options{
		TicksPerBeat:  ticksPerBeat,
		DefaultTempo:  c.DefaultTempo,
		MinNoteLength: c.MinNoteLength,
		PitchBase:     c.PitchBase,
	}
}

func (c *Config) Emitter() basic.Emitter {
	return basic.Emitter{Start: c.LineStart, Step: c.LineStep}
}
