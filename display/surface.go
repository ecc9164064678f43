package display

import (
	"eegview/events"
	"eegview/models"
	"eegview/render"
)

// Surface is whatever the plot ends up on. Draw calls for one frame come in as Clear, one DrawPolyline per visible
// channel in channel order, then Flush. Surfaces must not keep the offsets slice after DrawPolyline returns.
type Surface interface {
	// Size reports the current drawable size, it is queried on every redraw.
	Size() (width, height int)
	Clear()
	DrawPolyline(colour models.Colour, offsets []render.Offset)
	Flush() error
	// Events delivers exposure, resize and toggle notifications.
	Events() <-chan *events.Event
	// Err delivers a fatal error once the surface can no longer be drawn on.
	Err() <-chan error
}
