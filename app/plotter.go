package app

import (
	"context"
	"errors"
	"fmt"
	"log"

	"eegview/display"
	"eegview/events"
	"eegview/models"
	"eegview/parsing"
	"eegview/render"
	"eegview/store"
)

// POLL_BUDGET caps how many ready items a single Poll handles, so a fast feed can't starve the surface.
const POLL_BUDGET = 1024

var (
	ErrInputExhausted        = errors.New("input exhausted")
	ErrDisplayConnectionLost = errors.New("display connection lost")
)

type Stats struct {
	Accepted  int
	Malformed int
	Invalid   int
	Redraws   int
}

// Plotter owns the channel bank and visibility mask. All of its methods must be called from one goroutine.
type Plotter struct {
	bank    *store.Bank
	surface display.Surface
	mask    render.Mask
	palette [models.ChannelCount]models.Colour
	stats   Stats

	exhausted bool
}

func NewPlotter(bank *store.Bank, surface display.Surface, mask render.Mask, palette [models.ChannelCount]models.Colour) *Plotter {
	return &Plotter{
		bank:    bank,
		surface: surface,
		mask:    mask,
		palette: palette,
	}
}

func (p *Plotter) Mask() render.Mask {
	return p.mask
}

func (p *Plotter) Stats() Stats {
	return p.stats
}

// Dispatch handles a single event to completion.
func (p *Plotter) Dispatch(event *events.Event) error {
	switch event.Kind {
	case events.NewRecord:
		record, err := parsing.ParseRecord(event.Line)
		if err != nil {
			// Bad records are dropped without a word, only the counters know.
			if errors.Is(err, parsing.ErrMalformedRecord) {
				p.stats.Malformed++
			} else {
				p.stats.Invalid++
			}
			return nil
		}
		p.bank.Push(record)
		p.stats.Accepted++
		return p.Redraw()

	case events.RedrawRequested, events.Resized:
		return p.Redraw()

	case events.ToggleChannel:
		p.mask = p.mask.Toggle(event.Channel)
		return p.Redraw()

	default:
		return fmt.Errorf("unknown event %s", event.Kind)
	}
}

// Redraw paints every visible channel at the surface's current width.
func (p *Plotter) Redraw() error {
	width, _ := p.surface.Size()

	p.surface.Clear()
	for i, channel := range p.bank.Channels() {
		if !p.mask.IsVisible(i) {
			continue
		}
		p.surface.DrawPolyline(p.palette[i], render.Polyline(channel, width))
	}
	p.stats.Redraws++

	if err := p.surface.Flush(); err != nil {
		return fmt.Errorf("%w: %w", ErrDisplayConnectionLost, err)
	}
	return nil
}

// Run multiplexes the input feed and the surface until the context ends or the surface is lost. When lines is
// closed the plotter keeps serving the surface with the last data it saw.
func (p *Plotter) Run(ctx context.Context, lines <-chan string) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case err := <-p.surface.Err():
			return fmt.Errorf("%w: %w", ErrDisplayConnectionLost, err)

		case line, ok := <-lines:
			if !ok {
				log.Printf("%s, holding last frame", ErrInputExhausted)
				lines = nil
				continue
			}
			if err := p.Dispatch(events.NewRecordEvent(line)); err != nil {
				return err
			}

		case event := <-p.surface.Events():
			if err := p.Dispatch(event); err != nil {
				return err
			}
		}
	}
}

// Poll handles whatever is ready right now and returns without waiting. It is for surfaces that own the main loop
// and call in once per tick. ErrInputExhausted is returned once, on the poll that first finds lines closed.
func (p *Plotter) Poll(lines <-chan string) error {
	if p.exhausted {
		lines = nil
	}

	for n := 0; n < POLL_BUDGET; n++ {
		select {
		case err := <-p.surface.Err():
			return fmt.Errorf("%w: %w", ErrDisplayConnectionLost, err)

		case line, ok := <-lines:
			if !ok {
				p.exhausted = true
				return ErrInputExhausted
			}
			if err := p.Dispatch(events.NewRecordEvent(line)); err != nil {
				return err
			}

		case event := <-p.surface.Events():
			if err := p.Dispatch(event); err != nil {
				return err
			}

		default:
			return nil
		}
	}
	return nil
}
