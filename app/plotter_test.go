package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"eegview/display"
	"eegview/events"
	"eegview/models"
	"eegview/render"
	"eegview/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testPalette = [models.ChannelCount]models.Colour{"#0000ff", "#00ff00", "#ff0000", "#ff00ff", "#00ff00", "#335599"}

func newTestPlotter(width int, mask render.Mask) (*Plotter, *store.Bank, *display.Recorder) {
	bank := store.NewBank(16384)
	recorder := display.NewRecorder(width, 100)
	return NewPlotter(bank, recorder, mask, testPalette), bank, recorder
}

func snapshot(bank *store.Bank) [][]uint16 {
	var values [][]uint16
	for _, c := range bank.Channels() {
		values = append(values, c.Values())
	}
	return values
}

func TestDispatchEndToEnd(t *testing.T) {
	p, bank, recorder := newTestPlotter(640, 0)

	require.NoError(t, p.Dispatch(events.NewRecordEvent("7|1|100|200|300|50000|1|2")))
	tail, ok := bank.Channel(0).Tail()
	require.True(t, ok)
	assert.Equal(t, uint16(100), tail)
	tail, _ = bank.Channel(3).Tail()
	assert.Equal(t, uint16(50000), tail)

	before := snapshot(bank)
	framesBefore := recorder.Frames()
	require.NoError(t, p.Dispatch(events.NewRecordEvent("8|1|x|1|1|1|1|1")))
	assert.Equal(t, before, snapshot(bank))
	assert.Equal(t, framesBefore, recorder.Frames(), "rejected records don't redraw")

	assert.Equal(t, Stats{Accepted: 1, Invalid: 1, Redraws: 1}, p.Stats())
}

func TestDispatchRejectsTruncatedRecordAtomically(t *testing.T) {
	p, bank, _ := newTestPlotter(640, 0)
	require.NoError(t, p.Dispatch(events.NewRecordEvent("1|1|5|5|5|5|5|5")))

	before := snapshot(bank)
	require.NoError(t, p.Dispatch(events.NewRecordEvent("2|1|6|6|6|6|6")))
	assert.Equal(t, before, snapshot(bank))
	assert.Equal(t, 1, p.Stats().Malformed)
}

func TestDispatchRangeBoundary(t *testing.T) {
	p, bank, _ := newTestPlotter(640, 0)

	require.NoError(t, p.Dispatch(events.NewRecordEvent("1|1|65537|1|1|1|1|1")))
	assert.Equal(t, 0, bank.Channel(0).Len())

	require.NoError(t, p.Dispatch(events.NewRecordEvent("1|1|65536|1|1|1|1|1")))
	assert.Equal(t, 1, bank.Channel(0).Len())
}

func TestRedrawDrawsVisibleChannelsInOrder(t *testing.T) {
	p, _, recorder := newTestPlotter(640, render.Mask(0b100010))

	require.NoError(t, p.Dispatch(events.NewRecordEvent("1|1|10|20|30|40|50|60")))
	require.NoError(t, p.Dispatch(events.NewRecordEvent("2|1|15|25|35|45|55|50")))

	frame := recorder.Last()
	require.Len(t, frame.Polylines, 2)
	assert.Equal(t, display.Polyline{Colour: "#00ff00", Offsets: []render.Offset{{DX: 0, DY: 20}, {DX: 1, DY: 5}}}, frame.Polylines[0])
	assert.Equal(t, display.Polyline{Colour: "#335599", Offsets: []render.Offset{{DX: 0, DY: 60}, {DX: 1, DY: -10}}}, frame.Polylines[1])
}

func TestRedrawUsesLiveSurfaceWidth(t *testing.T) {
	p, _, recorder := newTestPlotter(4, 0)
	for i := 0; i < 10; i++ {
		require.NoError(t, p.Dispatch(events.NewRecordEvent("0|0|1|1|1|1|1|1")))
	}
	assert.Len(t, recorder.Last().Polylines[0].Offsets, 4)

	recorder.Resize(8, 100)
	require.NoError(t, p.Dispatch(<-recorder.Events()))
	frame := recorder.Last()
	assert.Equal(t, 8, frame.Width)
	assert.Len(t, frame.Polylines[0].Offsets, 8)

	recorder.Resize(20, 100)
	require.NoError(t, p.Dispatch(<-recorder.Events()))
	assert.Len(t, recorder.Last().Polylines[0].Offsets, 10)
}

func TestRedrawEmptyChannels(t *testing.T) {
	p, _, recorder := newTestPlotter(640, 0)
	require.NoError(t, p.Dispatch(events.RedrawEvent()))

	frame := recorder.Last()
	require.Len(t, frame.Polylines, models.ChannelCount)
	for _, line := range frame.Polylines {
		assert.Empty(t, line.Offsets)
	}
}

func TestToggleKeepsHistory(t *testing.T) {
	p, bank, recorder := newTestPlotter(640, render.Mask(0b000001))
	require.NoError(t, p.Dispatch(events.NewRecordEvent("1|1|1|2|3|4|5|6")))
	require.NoError(t, p.Dispatch(events.NewRecordEvent("1|1|1|2|3|4|5|6")))
	require.Len(t, recorder.Last().Polylines, 1)

	require.NoError(t, p.Dispatch(events.ToggleChannelEvent(2)))
	assert.Equal(t, render.Mask(0b000101), p.Mask())

	frame := recorder.Last()
	require.Len(t, frame.Polylines, 2)
	assert.Equal(t, []render.Offset{{DX: 0, DY: 3}, {DX: 1, DY: 0}}, frame.Polylines[1].Offsets)
	assert.Equal(t, 2, bank.Channel(2).Len())
}

func TestRunHoldsLastFrameAfterInputExhausted(t *testing.T) {
	p, bank, recorder := newTestPlotter(640, 0)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	lines := make(chan string, 2)
	lines <- "1|1|1|1|1|1|1|1"
	lines <- "2|1|2|2|2|2|2|2"
	close(lines)

	done := make(chan error, 1)
	go func() { done <- p.Run(ctx, lines) }()

	require.Eventually(t, func() bool { return recorder.Frames() >= 2 }, time.Second, time.Millisecond)

	// Still serving the surface after the feed ran dry.
	recorder.Expose()
	require.Eventually(t, func() bool { return recorder.Frames() >= 3 }, time.Second, time.Millisecond)

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
	assert.Equal(t, 2, bank.Channel(0).Len())
}

func TestRunStopsWhenDisplayIsLost(t *testing.T) {
	p, _, recorder := newTestPlotter(640, 0)
	recorder.Fail(errors.New("broken pipe"))

	err := p.Run(context.Background(), make(chan string))
	assert.ErrorIs(t, err, ErrDisplayConnectionLost)
}

// brokenSurface accepts drawing but can't deliver it.
type brokenSurface struct {
	*display.Recorder
}

func (brokenSurface) Flush() error {
	return errors.New("write: broken pipe")
}

func TestRedrawFlushFailureLosesDisplay(t *testing.T) {
	bank := store.NewBank(16384)
	p := NewPlotter(bank, brokenSurface{display.NewRecorder(640, 100)}, 0, testPalette)

	err := p.Dispatch(events.NewRecordEvent("1|1|1|1|1|1|1|1"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDisplayConnectionLost), "got %v", err)
	assert.Contains(t, err.Error(), "broken pipe")
	assert.Equal(t, 1, bank.Channel(0).Len())

	lines := make(chan string, 1)
	lines <- "2|1|2|2|2|2|2|2"
	assert.ErrorIs(t, p.Run(context.Background(), lines), ErrDisplayConnectionLost)
}

func TestPoll(t *testing.T) {
	p, bank, recorder := newTestPlotter(640, 0)

	lines := make(chan string, 3)
	lines <- "1|1|1|1|1|1|1|1"
	lines <- "junk"
	lines <- "2|1|2|2|2|2|2|2"
	recorder.Expose()

	require.NoError(t, p.Poll(lines))
	assert.Equal(t, 2, bank.Channel(5).Len())
	assert.Equal(t, 3, recorder.Frames())

	// Nothing ready, nothing done.
	require.NoError(t, p.Poll(lines))
	assert.Equal(t, 3, recorder.Frames())

	close(lines)
	assert.ErrorIs(t, p.Poll(lines), ErrInputExhausted)
	assert.NoError(t, p.Poll(lines))
}
