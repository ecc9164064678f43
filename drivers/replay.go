package drivers

import (
	"context"
	"errors"
	"io"
	"log"
	"os"
	"time"

	"eegview/config"
)

// Replayer plays a raw log back at a fixed line rate.
type Replayer struct {
	*config.ReplayFlags
}

func NewReplayer(replayFlags *config.ReplayFlags) *Replayer {
	replayer := &Replayer{
		replayFlags,
	}
	return replayer
}

func (r *Replayer) Init() error {
	// Fail early on a missing file rather than once the display is up.
	file, err := os.Open(r.Path)
	if err != nil {
		return err
	}
	return file.Close()
}

func (r *Replayer) Run(ctx context.Context, lines chan<- string) error {
	for {
		if err := r.playOnce(ctx, lines); err != nil {
			return err
		}
		if !r.Loop {
			break
		}
	}
	return nil
}

func (r *Replayer) Close() error {
	return nil
}

func (r *Replayer) playOnce(ctx context.Context, lines chan<- string) error {
	file, err := os.Open(r.Path)
	if err != nil {
		return err
	}
	defer func(file *os.File) {
		err := file.Close()
		if err != nil {
			log.Printf("couldn't close file: %s", err)
		}
	}(file)

	lr := newLineReader(file)

	var ticker *time.Ticker
	if r.Rate > 0 {
		ticker = time.NewTicker(time.Duration(float64(time.Second) / r.Rate))
		defer ticker.Stop()
	}

	lineIndex := 0
	for {
		line, err := lr.next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}

		if lineIndex < r.SkipLines {
			lineIndex++
			continue
		}

		if ticker != nil {
			select {
			case <-ticker.C:
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		if err := send(ctx, lines, line); err != nil {
			return err
		}
		lineIndex++
	}

	log.Println("end of replay")
	return nil
}
