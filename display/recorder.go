package display

import (
	"sync"

	"eegview/events"
	"eegview/models"
	"eegview/render"
)

type Polyline struct {
	Colour  models.Colour
	Offsets []render.Offset
}

type Frame struct {
	Width     int
	Height    int
	Polylines []Polyline
}

// Recorder is a surface without a screen. It keeps the last flushed frame, which makes it useful for tests and
// soak runs.
type Recorder struct {
	mu      sync.Mutex
	width   int
	height  int
	pending Frame
	last    Frame
	frames  int

	events chan *events.Event
	errs   chan error
}

func NewRecorder(width, height int) *Recorder {
	return &Recorder{
		width:  width,
		height: height,
		events: make(chan *events.Event, 16),
		errs:   make(chan error, 1),
	}
}

func (r *Recorder) Size() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.width, r.height
}

// Resize changes the size and notifies the plotter, like a window manager would.
func (r *Recorder) Resize(width, height int) {
	r.mu.Lock()
	r.width, r.height = width, height
	r.mu.Unlock()
	r.events <- events.ResizedEvent(width, height)
}

// Expose asks for a repaint.
func (r *Recorder) Expose() {
	r.events <- events.RedrawEvent()
}

// Fail makes the surface report a lost connection.
func (r *Recorder) Fail(err error) {
	r.errs <- err
}

func (r *Recorder) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pending = Frame{Width: r.width, Height: r.height}
}

func (r *Recorder) DrawPolyline(colour models.Colour, offsets []render.Offset) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pending.Polylines = append(r.pending.Polylines, Polyline{colour, append([]render.Offset(nil), offsets...)})
}

func (r *Recorder) Flush() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.last = r.pending
	r.pending = Frame{}
	r.frames++
	return nil
}

// Last returns the most recently flushed frame.
func (r *Recorder) Last() Frame {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last
}

// Frames counts flushed frames.
func (r *Recorder) Frames() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frames
}

func (r *Recorder) Events() <-chan *events.Event {
	return r.events
}

func (r *Recorder) Err() <-chan error {
	return r.errs
}
