package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChannelAppendInOrder(t *testing.T) {
	c := NewChannel(0, 16)
	samples := []uint16{5, 1, 65535, 0, 42}
	for _, s := range samples {
		c.Append(s)
	}

	assert.Equal(t, len(samples), c.Len())
	assert.Equal(t, samples, c.Values())

	tail, ok := c.Tail()
	require.True(t, ok)
	assert.Equal(t, uint16(42), tail)
}

func TestChannelHoldsOneLessThanCapacity(t *testing.T) {
	const capacity = 8
	c := NewChannel(3, capacity)
	assert.Equal(t, capacity-1, c.Limit())

	for i := 0; i < capacity-1; i++ {
		c.Append(uint16(i))
	}
	assert.Equal(t, capacity-1, c.Len())

	// One more pushes the oldest out and the count stays pinned.
	c.Append(100)
	assert.Equal(t, capacity-1, c.Len())
	assert.Equal(t, []uint16{1, 2, 3, 4, 5, 6, 100}, c.Values())
}

func TestChannelEvictsFIFO(t *testing.T) {
	const capacity = 5
	c := NewChannel(0, capacity)
	for i := 1; i <= 20; i++ {
		c.Append(uint16(i))
		want := i
		if want > capacity-1 {
			want = capacity - 1
		}
		require.Equal(t, want, c.Len(), "after %d appends", i)
	}

	assert.Equal(t, []uint16{17, 18, 19, 20}, c.Values())
	assert.Equal(t, uint16(17), c.At(0))
	assert.Equal(t, uint16(20), c.At(3))
}

func TestChannelDefaultCapacity(t *testing.T) {
	c := NewChannel(0, 16384)
	for i := 0; i < 16384; i++ {
		c.Append(uint16(i))
	}
	assert.Equal(t, 16383, c.Len())
	assert.Equal(t, uint16(1), c.At(0))
	assert.Equal(t, uint16(16383), c.At(c.Len()-1))
}

func TestChannelEmpty(t *testing.T) {
	c := NewChannel(5, 4)
	_, ok := c.Tail()
	assert.False(t, ok)
	assert.Empty(t, c.Values())
	assert.Equal(t, 5, c.Index())
	assert.Panics(t, func() { c.At(0) })
}

func TestNewChannelRejectsTinyCapacity(t *testing.T) {
	assert.Panics(t, func() { NewChannel(0, 1) })
}

func TestColourRGBA(t *testing.T) {
	tests := []struct {
		name   string
		colour Colour
		want   [3]uint8
		valid  bool
	}{
		{"slate blue", "#335599", [3]uint8{0x33, 0x55, 0x99}, true},
		{"magenta", "#ff00ff", [3]uint8{0xff, 0x00, 0xff}, true},
		{"missing hash", "335599", [3]uint8{}, false},
		{"not hex", "#zz0000", [3]uint8{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.valid {
				assert.Error(t, tt.colour.Validate())
				return
			}
			require.NoError(t, tt.colour.Validate())
			rgba := tt.colour.RGBA()
			assert.Equal(t, tt.want, [3]uint8{rgba.R, rgba.G, rgba.B})
			assert.Equal(t, uint8(0xff), rgba.A)
		})
	}
}
