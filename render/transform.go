package render

// Offset is one point of a relative polyline: it is drawn DX, DY away from the previous point. The first point of a
// polyline is relative to the surface origin, so it carries the absolute sample value.
type Offset struct {
	DX int32
	DY int32
}

// Series is a read only view of a channel's history in arrival order.
type Series interface {
	Len() int
	At(i int) uint16
}

// VisibleWindow picks the trailing part of a history of count samples that fits into width pixels.
func VisibleWindow(count, width int) (start, length int) {
	if count <= 0 || width <= 0 {
		return 0, 0
	}
	if count >= width {
		return count - width, width
	}
	return 0, count
}

// Polyline converts the visible window of s into relative drawing offsets, one horizontal pixel per sample.
// Differences are taken in 32 bits since samples span the whole uint16 range.
func Polyline(s Series, width int) []Offset {
	start, length := VisibleWindow(s.Len(), width)
	if length == 0 {
		return nil
	}

	offsets := make([]Offset, length)
	previous := int32(s.At(start))
	offsets[0] = Offset{0, previous}
	for j := 1; j < length; j++ {
		current := int32(s.At(start + j))
		offsets[j] = Offset{1, current - previous}
		previous = current
	}
	return offsets
}
