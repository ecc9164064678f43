package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"eegview/app"
	"eegview/config"
	"eegview/display"
	"eegview/drivers"
	"eegview/store"
	"eegview/web/handlers"
	"eegview/window"
)

// SHUTDOWN_GRACE is how long to wait for the feed to wind down so the raw log gets flushed.
const SHUTDOWN_GRACE = 2 * time.Second

func main() {
	flags, serialFlags, replayFlags, kafkaFlags, err := config.GetFlags(os.Args[0], os.Args[1:], os.Stderr)
	if err != nil {
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Create the correct driver
	var driver drivers.Driver
	switch flags.Driver {
	case config.Stdin:
		driver = drivers.NewStdin(os.Stdin)
	case config.Serial:
		driver = drivers.NewSerial(serialFlags)
	case config.Replay:
		driver = drivers.NewReplayer(replayFlags)
	case config.Kafka:
		driver = drivers.NewKafka(kafkaFlags)
	default:
		log.Fatalf("unsupported driver type: %s", flags.Driver)
	}

	// Start up the driver
	if err := driver.Init(); err != nil {
		log.Fatalf("couldn't init driver: %s", err)
	}
	defer func() {
		if err := driver.Close(); err != nil {
			log.Printf("error closing driver: %s", err)
		}
	}()

	// Replays are already on disk, everything else gets logged so it can be replayed later.
	var rawLog *drivers.RawLog
	if flags.Driver != config.Replay && flags.LogDir != "" {
		rawLog, err = drivers.OpenRawLog(flags.LogDir)
		if err != nil {
			log.Fatalf("couldn't open raw log: %s", err)
		}
		log.Printf("logging raw input to %s", rawLog.Path())
	}

	feedCtx, stopFeed := context.WithCancel(ctx)
	lines := drivers.Feed(feedCtx, driver, rawLog)
	bank := store.NewBank(config.HISTORY_CAPACITY)

	var plotter *app.Plotter
	switch flags.Display {
	case config.Web:
		width, height := surfaceSize(flags, config.DEFAULT_SURFACE_WIDTH, config.DEFAULT_SURFACE_HEIGHT)
		surface, err := handlers.NewSurface(width, height, flags.Palette)
		if err != nil {
			log.Fatalf("couldn't create surface: %v", err)
		}

		server := handlers.NewServer(surface)
		go func() {
			surface.Fail(server.Start(flags.Addr))
		}()

		plotter = app.NewPlotter(bank, surface, flags.Channels, flags.Palette)
		err = plotter.Run(ctx, lines)
		exitOn(err)

	case config.Window:
		screenWidth, screenHeight := window.ScreenSize()
		if screenWidth <= 0 || screenHeight <= 0 {
			screenWidth, screenHeight = config.DEFAULT_SURFACE_WIDTH, config.DEFAULT_SURFACE_HEIGHT
		}
		width, height := surfaceSize(flags, screenWidth, screenHeight)
		surface := window.NewSurface(width, height)

		plotter = app.NewPlotter(bank, surface, flags.Channels, flags.Palette)
		err = window.Run(ctx, "eegview", surface, func() error {
			err := plotter.Poll(lines)
			if errors.Is(err, app.ErrInputExhausted) {
				log.Printf("%s, holding last frame", err)
				return nil
			}
			return err
		})
		exitOn(err)

	case config.Headless:
		width, height := surfaceSize(flags, config.DEFAULT_SURFACE_WIDTH, config.DEFAULT_SURFACE_HEIGHT)
		surface := display.NewRecorder(width, height)

		plotter = app.NewPlotter(bank, surface, flags.Channels, flags.Palette)
		err = plotter.Run(ctx, lines)
		exitOn(err)

	default:
		log.Fatalf("unsupported display type: %s", flags.Display)
	}

	stats := plotter.Stats()
	log.Printf("records accepted %d, malformed %d, invalid %d, redraws %d",
		stats.Accepted, stats.Malformed, stats.Invalid, stats.Redraws)

	stopFeed()
	waitForFeed(lines, SHUTDOWN_GRACE)
}

// surfaceSize applies -w and -h over the display's own defaults.
func surfaceSize(flags *config.Flags, defaultWidth, defaultHeight int) (int, int) {
	width, height := defaultWidth, defaultHeight
	if flags.Width > 0 {
		width = flags.Width
	}
	if flags.Height > 0 {
		height = flags.Height
	}
	return width, height
}

func exitOn(err error) {
	if err == nil || errors.Is(err, context.Canceled) {
		return
	}
	if errors.Is(err, app.ErrDisplayConnectionLost) {
		log.Fatalf("%s", err)
	}
	log.Fatalf("error running plotter: %s", err)
}

// waitForFeed drains lines until the feed closes it or the grace period runs out. Stdin can't be interrupted, so
// the wait is bounded.
func waitForFeed(lines <-chan string, grace time.Duration) {
	timeout := time.After(grace)
	for {
		select {
		case _, ok := <-lines:
			if !ok {
				return
			}
		case <-timeout:
			return
		}
	}
}
