package models

// MaxSample is the largest value a channel can hold. Readings above it are saturated on the way in.
const MaxSample = 0xFFFF

type Channel struct {
	// index is the channel's fixed slot, 0 to 5.
	index int
	// samples holds the history. Its length is one less than the declared capacity, the last slot is never used
	// so history tops out at capacity-1 samples.
	samples []uint16
	// head is the position of the oldest sample within samples.
	head int
	// count is how many samples are currently held.
	count int
}

// NewChannel creates an empty channel with room for capacity-1 samples.
func NewChannel(index, capacity int) *Channel {
	if capacity < 2 {
		panic("channel capacity must be at least 2")
	}
	return &Channel{
		index,
		make([]uint16, capacity-1),
		0,
		0,
	}
}

func (c *Channel) Index() int {
	return c.index
}

// Len is the number of samples held.
func (c *Channel) Len() int {
	return c.count
}

// Limit is the most samples the channel will ever hold.
func (c *Channel) Limit() int {
	return len(c.samples)
}

// Append records a sample at the tail. Once the channel is full the oldest sample is evicted.
func (c *Channel) Append(value uint16) {
	if c.count == len(c.samples) {
		c.samples[c.head] = value
		c.head = (c.head + 1) % len(c.samples)
		return
	}
	c.samples[(c.head+c.count)%len(c.samples)] = value
	c.count++
}

// At returns the i'th sample in arrival order, 0 being the oldest still held.
func (c *Channel) At(i int) uint16 {
	if i < 0 || i >= c.count {
		panic("channel index out of range")
	}
	return c.samples[(c.head+i)%len(c.samples)]
}

// Tail returns the most recent sample.
func (c *Channel) Tail() (uint16, bool) {
	if c.count == 0 {
		return 0, false
	}
	return c.At(c.count - 1), true
}

// Values copies the history out in arrival order.
func (c *Channel) Values() []uint16 {
	values := make([]uint16, c.count)
	for i := range values {
		values[i] = c.At(i)
	}
	return values
}
