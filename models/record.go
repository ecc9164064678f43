package models

// ChannelCount is the number of channels in every record and every plot.
const ChannelCount = 6

// Record is one accepted input line: a reading for each channel, in channel order.
type Record [ChannelCount]uint16
