package store

import (
	"testing"

	"eegview/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBankPushAppendsEveryChannel(t *testing.T) {
	b := NewBank(8)
	require.Len(t, b.Channels(), models.ChannelCount)

	b.Push(models.Record{1, 2, 3, 4, 5, 6})
	b.Push(models.Record{10, 20, 30, 40, 50, 60})

	for i, c := range b.Channels() {
		assert.Equal(t, i, c.Index())
		assert.Equal(t, 2, c.Len())
		assert.Equal(t, []uint16{uint16(i + 1), uint16(10 * (i + 1))}, c.Values())
	}
	assert.Same(t, b.Channels()[3], b.Channel(3))
}

func TestBankChannelsStayInLockstep(t *testing.T) {
	b := NewBank(4)
	for n := 0; n < 10; n++ {
		b.Push(models.Record{uint16(n), uint16(n), uint16(n), uint16(n), uint16(n), uint16(n)})
	}
	for _, c := range b.Channels() {
		assert.Equal(t, []uint16{7, 8, 9}, c.Values())
	}
}
