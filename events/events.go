package events

import "fmt"

type Kind uint8

const (
	// NewRecord carries one raw input line in Line.
	NewRecord Kind = iota
	// RedrawRequested is raised when the surface was exposed and needs repainting.
	RedrawRequested
	// Resized carries the new surface size in Width and Height.
	Resized
	// ToggleChannel flips the visibility of Channel.
	ToggleChannel
)

func (k Kind) String() string {
	switch k {
	case NewRecord:
		return "new-record"
	case RedrawRequested:
		return "redraw-requested"
	case Resized:
		return "resized"
	case ToggleChannel:
		return "toggle-channel"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

type Event struct {
	Kind    Kind
	Line    string
	Width   int
	Height  int
	Channel int
}

func NewRecordEvent(line string) *Event {
	return &Event{Kind: NewRecord, Line: line}
}

func RedrawEvent() *Event {
	return &Event{Kind: RedrawRequested}
}

func ResizedEvent(width, height int) *Event {
	return &Event{Kind: Resized, Width: width, Height: height}
}

func ToggleChannelEvent(channel int) *Event {
	return &Event{Kind: ToggleChannel, Channel: channel}
}
