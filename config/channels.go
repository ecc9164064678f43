package config

import "eegview/models"

// HISTORY_CAPACITY is the declared size of every channel's history, one slot of which is kept in reserve.
const HISTORY_CAPACITY = 16384

const (
	DEFAULT_SURFACE_WIDTH  = 1024
	DEFAULT_SURFACE_HEIGHT = 512
)

const BLUE = "#0000ff"
const GREEN = "#00ff00"
const RED = "#ff0000"
const MAGENTA = "#ff00ff"
const SLATE_BLUE = "#335599"

// DefaultPalette gives each channel its colour, in channel order.
var DefaultPalette = [models.ChannelCount]models.Colour{
	BLUE,
	GREEN,
	RED,
	MAGENTA,
	GREEN,
	SLATE_BLUE,
}
