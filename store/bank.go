package store

import "eegview/models"

// Bank owns the six channel histories for the lifetime of the application.
type Bank struct {
	channels [models.ChannelCount]*models.Channel
}

func NewBank(capacity int) *Bank {
	b := &Bank{}
	for i := range b.channels {
		b.channels[i] = models.NewChannel(i, capacity)
	}
	return b
}

// Push appends one sample to every channel.
func (b *Bank) Push(record models.Record) {
	for i, c := range b.channels {
		c.Append(record[i])
	}
}

func (b *Bank) Channel(index int) *models.Channel {
	return b.channels[index]
}

func (b *Bank) Channels() []*models.Channel {
	return b.channels[:]
}
