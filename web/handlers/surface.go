package handlers

import (
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"strconv"
	"strings"
	"sync"

	ds "github.com/starfederation/datastar-go/datastar"

	"eegview/events"
	"eegview/models"
	"eegview/render"
	"eegview/utils"
	"eegview/web"
)

// MAX_SURFACE_SIZE bounds the size a client may report.
const MAX_SURFACE_SIZE = 1 << 14

// Surface draws the plot as an SVG that is streamed to browsers over datastar SSE. Relative polyline offsets map
// one to one onto SVG path commands: the first offset is a moveto, the rest are relative linetos.
type Surface struct {
	templates *template.Template
	palette   [models.ChannelCount]models.Colour
	hub       *frameHub

	mu     sync.Mutex
	width  int
	height int

	// pending is only touched by the plotter's goroutine.
	pending svgFrame
	seq     uint64

	events chan *events.Event
	errs   chan error
}

type svgPath struct {
	Colour models.Colour
	D      string
}

type svgFrame struct {
	Width  int
	Height int
	Paths  []svgPath
}

type channelButton struct {
	Index  int
	Number int
	Colour models.Colour
}

type surfaceSig struct {
	Surface struct {
		Width  int `json:"width"`
		Height int `json:"height"`
	} `json:"surface"`
}

type channelSig struct {
	Channel struct {
		Index int `json:"index"`
	} `json:"channel"`
}

func NewSurface(width, height int, palette [models.ChannelCount]models.Colour) (surface *Surface, err error) {
	surface = &Surface{
		palette: palette,
		hub:     newFrameHub(),
		width:   width,
		height:  height,
		events:  make(chan *events.Event, 16),
		errs:    make(chan error, 1),
	}
	surface.templates, err = template.ParseFS(web.Templates, "templates/*.gohtml")
	return surface, err
}

func (s *Surface) Templates() *template.Template {
	return s.templates
}

func (s *Surface) Handlers() map[string]func(w http.ResponseWriter, r *http.Request) {
	return map[string]func(w http.ResponseWriter, r *http.Request){
		"/surface":        s.SurfaceHandler,
		"/resize":         s.ResizeHandler,
		"/toggle-channel": s.ToggleChannelHandler,
	}
}

func (s *Surface) Static() fs.FS {
	return web.Static
}

func (s *Surface) Data() map[string]interface{} {
	buttons := make([]channelButton, models.ChannelCount)
	for i := range buttons {
		buttons[i] = channelButton{i, i + 1, s.palette[i]}
	}
	width, height := s.Size()
	return map[string]interface{}{
		"channels": buttons,
		"surface":  svgFrame{Width: width, Height: height},
	}
}

func (s *Surface) Size() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.width, s.height
}

func (s *Surface) Clear() {
	width, height := s.Size()
	s.pending = svgFrame{Width: width, Height: height}
}

func (s *Surface) DrawPolyline(colour models.Colour, offsets []render.Offset) {
	if len(offsets) == 0 {
		return
	}
	s.pending.Paths = append(s.pending.Paths, svgPath{colour, pathData(offsets)})
}

// Flush renders the pending frame and hands it to every connected client.
func (s *Surface) Flush() error {
	var writer strings.Builder
	if err := s.templates.ExecuteTemplate(&writer, "surface", s.pending); err != nil {
		return fmt.Errorf("render surface: %w", err)
	}
	s.seq++
	s.hub.Broadcast(&Frame{s.seq, writer.String()})
	return nil
}

func (s *Surface) Events() <-chan *events.Event {
	return s.events
}

func (s *Surface) Err() <-chan error {
	return s.errs
}

// Fail reports that the surface is gone for good, the plotter treats it as fatal.
func (s *Surface) Fail(err error) {
	select {
	case s.errs <- err:
	default:
	}
}

// SurfaceHandler streams frames to a client. A client attaching counts as an exposure.
func (s *Surface) SurfaceHandler(w http.ResponseWriter, r *http.Request) {
	var sig surfaceSig
	if err := ds.ReadSignals(r, &sig); err != nil {
		log.Printf("error reading signals: %s", err)
	}
	if sig.Surface.Width > 0 && sig.Surface.Height > 0 {
		s.resize(sig.Surface.Width, sig.Surface.Height)
	} else {
		s.notify(events.RedrawEvent())
	}

	id, frames, cancel := s.hub.Subscribe()
	defer cancel()
	log.Printf("surface %s attached", id)
	defer log.Printf("surface %s detached", id)

	sse := ds.NewSSE(w, r)
	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case frame, ok := <-frames:
			if !ok {
				return
			}
			if err := sse.PatchElements(frame.Markup); err != nil {
				log.Printf("error patching surface %s: %s", id, err)
				return
			}
		}
	}
}

// ResizeHandler is called when the client's plot area changes size.
func (s *Surface) ResizeHandler(w http.ResponseWriter, r *http.Request) {
	var sig surfaceSig
	if err := ds.ReadSignals(r, &sig); err != nil {
		log.Printf("error reading signals: %s", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	if sig.Surface.Width <= 0 || sig.Surface.Height <= 0 {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	s.resize(sig.Surface.Width, sig.Surface.Height)
	w.WriteHeader(http.StatusNoContent)
}

// ToggleChannelHandler is called when the client clicks a channel button.
func (s *Surface) ToggleChannelHandler(w http.ResponseWriter, r *http.Request) {
	var sig channelSig
	if err := ds.ReadSignals(r, &sig); err != nil {
		log.Printf("error reading signals: %s", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	if sig.Channel.Index < 0 || sig.Channel.Index >= models.ChannelCount {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	s.notify(events.ToggleChannelEvent(sig.Channel.Index))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Surface) resize(width, height int) {
	width = utils.ClampInt(width, 1, MAX_SURFACE_SIZE)
	height = utils.ClampInt(height, 1, MAX_SURFACE_SIZE)

	s.mu.Lock()
	s.width, s.height = width, height
	s.mu.Unlock()

	s.notify(events.ResizedEvent(width, height))
}

// notify never blocks an http handler. Dropping is safe: the size is read fresh on every redraw anyway.
func (s *Surface) notify(event *events.Event) {
	select {
	case s.events <- event:
	default:
		log.Printf("surface event queue full, dropping %s", event.Kind)
	}
}

// pathData encodes offsets as SVG path data, "M0,y0l1,dy1l1,dy2...".
func pathData(offsets []render.Offset) string {
	buf := make([]byte, 0, len(offsets)*6)
	for j, o := range offsets {
		if j == 0 {
			buf = append(buf, 'M')
		} else {
			buf = append(buf, 'l')
		}
		buf = strconv.AppendInt(buf, int64(o.DX), 10)
		buf = append(buf, ',')
		buf = strconv.AppendInt(buf, int64(o.DY), 10)
	}
	return string(buf)
}
