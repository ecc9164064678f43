package render

import "eegview/models"

// Mask selects which channels get drawn, bit i for channel i. The zero mask shows every channel.
type Mask uint8

const allChannels = Mask(1<<models.ChannelCount - 1)

func (m Mask) IsVisible(channel int) bool {
	if channel < 0 || channel >= models.ChannelCount {
		return false
	}
	return m == 0 || m&(1<<channel) != 0
}

// Set marks a channel as selected.
func (m Mask) Set(channel int) Mask {
	if channel < 0 || channel >= models.ChannelCount {
		return m
	}
	return m | 1<<channel
}

// Toggle flips a channel's visibility. Hiding the last visible channel is refused since an empty selection would
// read as "show everything".
func (m Mask) Toggle(channel int) Mask {
	if channel < 0 || channel >= models.ChannelCount {
		return m
	}
	if m == 0 {
		m = allChannels
	}
	toggled := m ^ 1<<channel
	if toggled == 0 {
		return m
	}
	if toggled == allChannels {
		return 0
	}
	return toggled
}
