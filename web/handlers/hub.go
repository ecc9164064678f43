package handlers

import (
	"sync"

	"github.com/google/uuid"
)

// Frame is one rendered surface, ready to be patched into a client.
type Frame struct {
	Seq    uint64
	Markup string
}

// frameHub fans frames out to every connected client. Each subscriber only ever holds the newest frame, a client
// that can't keep up skips frames instead of holding up the plotter.
type frameHub struct {
	mu   sync.Mutex
	subs map[string]chan *Frame
	last *Frame
}

func newFrameHub() *frameHub {
	return &frameHub{subs: map[string]chan *Frame{}}
}

func (h *frameHub) Subscribe() (string, <-chan *Frame, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := uuid.NewString()
	ch := make(chan *Frame, 1)
	if h.last != nil {
		ch <- h.last
	}
	h.subs[id] = ch
	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if c, ok := h.subs[id]; ok {
			close(c)
			delete(h.subs, id)
		}
	}
	return id, ch, cancel
}

func (h *frameHub) Broadcast(frame *Frame) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.last = frame
	for _, ch := range h.subs {
		// Replace a stale frame nobody picked up yet.
		select {
		case <-ch:
		default:
		}
		ch <- frame
	}
}

func (h *frameHub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

func (h *frameHub) Last() *Frame {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.last
}
