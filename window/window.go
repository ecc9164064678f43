//go:build cgo

package window

import (
	"context"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"eegview/models"
)

const TPS = 60

// ScreenSize is the size of the monitor, the default window size.
func ScreenSize() (int, int) {
	return ebiten.ScreenSizeInFullscreen()
}

// Run opens the window and blocks until it is closed or ctx ends. step runs once per tick on the window's thread.
func Run(ctx context.Context, title string, surface *Surface, step func() error) error {
	width, height := surface.Size()
	g := &plotGame{ctx: ctx, surface: surface, step: step, colours: map[models.Colour]color.RGBA{}}
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(TPS)
	return ebiten.RunGame(g)
}

type plotGame struct {
	ctx     context.Context
	surface *Surface
	step    func() error
	colours map[models.Colour]color.RGBA
}

func (g *plotGame) Update() error {
	if g.ctx.Err() != nil {
		return ebiten.Termination
	}
	if g.step != nil {
		if err := g.step(); err != nil {
			return err
		}
	}
	return nil
}

func (g *plotGame) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)
	g.surface.segments(func(colour models.Colour, x0, y0, x1, y1 float32) {
		vector.StrokeLine(screen, x0, y0, x1, y1, 1, g.rgba(colour), false)
	})
}

func (g *plotGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.surface.layout(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

func (g *plotGame) rgba(colour models.Colour) color.RGBA {
	c, ok := g.colours[colour]
	if !ok {
		c = colour.RGBA()
		g.colours[colour] = c
	}
	return c
}
