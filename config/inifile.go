package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	ini "github.com/lars-t-hansen/ini"

	"eegview/models"
)

const DEFAULTS_FILE = ".eegview"

// defaults is the parsed defaults file. A missing ~/.eegview is fine, a missing -config file is not.
type defaults struct {
	store   *ini.Store
	fields  map[string]*ini.Field
	palette [models.ChannelCount]*ini.Field
}

// parseDefaults reads the [input], [display] and [palette] sections.
func parseDefaults(r io.Reader) (*defaults, error) {
	p := ini.NewParser()
	d := &defaults{fields: map[string]*ini.Field{}}

	input := p.AddSection("input")
	for _, name := range []string{"driver", "serial-port", "kafka-brokers", "kafka-topic", "kafka-group"} {
		d.fields[name] = input.AddString(name)
	}

	display := p.AddSection("display")
	for _, name := range []string{"display", "addr"} {
		d.fields[name] = display.AddString(name)
	}

	palette := p.AddSection("palette")
	for i := range d.palette {
		d.palette[i] = palette.AddString(fmt.Sprintf("channel%d", i+1))
	}

	store, err := p.Parse(r)
	if err != nil {
		return nil, err
	}
	d.store = store
	return d, nil
}

func loadDefaults(filename string) (*defaults, error) {
	explicit := filename != ""
	if !explicit {
		home := os.Getenv("HOME")
		if home == "" {
			return nil, nil
		}
		filename = path.Join(path.Clean(home), DEFAULTS_FILE)
	}

	input, err := os.Open(filename)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open defaults %s: %w", filename, err)
	}
	defer input.Close()

	d, err := parseDefaults(input)
	if err != nil {
		return nil, fmt.Errorf("parse defaults %s: %w", filename, err)
	}
	return d, nil
}

// apply copies file values into targets whose flag was not given explicitly.
func (d *defaults) apply(explicit map[string]bool, targets map[string]*string) {
	for name, target := range targets {
		field, ok := d.fields[name]
		if !ok || explicit[name] || !field.Present(d.store) {
			continue
		}
		*target = os.ExpandEnv(field.StringVal(d.store))
	}
}

// applyPalette takes channel1..channel6 as hex colours, the # prefix is optional.
func (d *defaults) applyPalette(palette *[models.ChannelCount]models.Colour) error {
	for i, field := range d.palette {
		if !field.Present(d.store) {
			continue
		}
		value := strings.TrimSpace(field.StringVal(d.store))
		if !strings.HasPrefix(value, "#") {
			value = "#" + value
		}
		colour := models.Colour(value)
		if err := colour.Validate(); err != nil {
			return fmt.Errorf("palette channel%d: %w", i+1, err)
		}
		palette[i] = colour
	}
	return nil
}
