package window

import (
	"sync"

	"eegview/display"
	"eegview/events"
	"eegview/models"
	"eegview/render"
)

// Surface is the plot in a native desktop window. The plotter fills it from the game loop's Update and Draw paints
// whatever was flushed last.
type Surface struct {
	mu      sync.Mutex
	width   int
	height  int
	pending []display.Polyline
	frame   []display.Polyline

	events chan *events.Event
	errs   chan error
}

func NewSurface(width, height int) *Surface {
	s := &Surface{
		width:  width,
		height: height,
		events: make(chan *events.Event, 16),
		errs:   make(chan error, 1),
	}
	// Mapping the window exposes it.
	s.events <- events.RedrawEvent()
	return s
}

func (s *Surface) Size() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.width, s.height
}

func (s *Surface) Clear() {
	s.pending = s.pending[:0]
}

func (s *Surface) DrawPolyline(colour models.Colour, offsets []render.Offset) {
	s.pending = append(s.pending, display.Polyline{Colour: colour, Offsets: append([]render.Offset(nil), offsets...)})
}

func (s *Surface) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frame, s.pending = s.pending, s.frame[:0]
	return nil
}

func (s *Surface) Events() <-chan *events.Event {
	return s.events
}

func (s *Surface) Err() <-chan error {
	return s.errs
}

// layout records the window's size, telling the plotter when it changed.
func (s *Surface) layout(width, height int) {
	s.mu.Lock()
	changed := width != s.width || height != s.height
	s.width, s.height = width, height
	s.mu.Unlock()

	if changed {
		select {
		case s.events <- events.ResizedEvent(width, height):
		default:
		}
	}
}

// segments walks the last flushed frame as absolute line segments, calling draw for each.
func (s *Surface) segments(draw func(colour models.Colour, x0, y0, x1, y1 float32)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, line := range s.frame {
		var x, y float32
		for j, o := range line.Offsets {
			if j == 0 {
				x, y = float32(o.DX), float32(o.DY)
				continue
			}
			nx, ny := x+float32(o.DX), y+float32(o.DY)
			draw(line.Colour, x, y, nx, ny)
			x, y = nx, ny
		}
	}
}
