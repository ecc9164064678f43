package models

import (
	"fmt"
	"image/color"
	"strconv"
)

// Colour is a 3 byte hex colour with the # prefix, e.g. "#335599".
type Colour string

func (c Colour) Validate() error {
	if len(c) != 7 || c[0] != '#' {
		return fmt.Errorf("colour %q: want #rrggbb", string(c))
	}
	if _, err := strconv.ParseUint(string(c[1:]), 16, 32); err != nil {
		return fmt.Errorf("colour %q: %w", string(c), err)
	}
	return nil
}

// RGBA converts the colour for pixel based surfaces. Invalid colours come out opaque black.
func (c Colour) RGBA() color.RGBA {
	if c.Validate() != nil {
		return color.RGBA{A: 0xff}
	}
	v, _ := strconv.ParseUint(string(c[1:]), 16, 32)
	return color.RGBA{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: 0xff,
	}
}
