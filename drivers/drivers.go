package drivers

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"log"
)

// MAX_LINE_LENGTH bounds a single input line, longer lines are dropped.
const MAX_LINE_LENGTH = 1 << 20

// Driver is an input feed producing one record line at a time.
type Driver interface {
	Init() error
	// Run sends lines until the feed ends (returning nil) or fails. It must return once ctx is done.
	Run(ctx context.Context, lines chan<- string) error
	Close() error
}

// Feed runs the driver on its own goroutine and hands its lines out, optionally through the raw log, which Feed then
// owns and closes. The returned channel is closed when the driver stops, which is how the plotter learns the input
// is exhausted.
func Feed(ctx context.Context, driver Driver, rawLog *RawLog) <-chan string {
	out := make(chan string, 64)
	in := out
	if rawLog != nil {
		in = make(chan string, 64)
		go func() {
			defer close(out)
			defer func() {
				if err := rawLog.Close(); err != nil {
					log.Printf("close rawlog: %v", err)
				}
			}()
			for line := range in {
				if err := rawLog.Write(line); err != nil {
					log.Printf("raw write: %v", err)
				}
				select {
				case out <- line:
				case <-ctx.Done():
					// Keep draining so the driver never blocks on us.
				}
			}
		}()
	}

	go func() {
		defer close(in)
		err := driver.Run(ctx, in)
		if err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("error running driver: %s", err)
		}
	}()

	return out
}

// lineReader splits a stream into lines. A line that doesn't fit in MAX_LINE_LENGTH is skipped up to the next
// newline, so a burst of line noise costs one record rather than the whole feed.
type lineReader struct {
	reader *bufio.Reader
}

func newLineReader(reader io.Reader) *lineReader {
	return &lineReader{bufio.NewReaderSize(reader, MAX_LINE_LENGTH)}
}

// next returns the next line without its terminator, or io.EOF once the stream is done.
func (l *lineReader) next() (string, error) {
	for {
		line, err := l.reader.ReadSlice('\n')
		if errors.Is(err, bufio.ErrBufferFull) {
			if err := l.skipLine(); err != nil {
				return "", err
			}
			continue
		}
		if err != nil && (!errors.Is(err, io.EOF) || len(line) == 0) {
			return "", err
		}
		line = bytes.TrimSuffix(line, []byte{'\n'})
		line = bytes.TrimSuffix(line, []byte{'\r'})
		return string(line), nil
	}
}

func (l *lineReader) skipLine() error {
	for {
		_, err := l.reader.ReadSlice('\n')
		if !errors.Is(err, bufio.ErrBufferFull) {
			return err
		}
	}
}

// scanLines splits reader into lines and sends them until EOF.
func scanLines(ctx context.Context, reader io.Reader, lines chan<- string) error {
	lr := newLineReader(reader)
	for {
		line, err := lr.next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := send(ctx, lines, line); err != nil {
			return err
		}
	}
}

func send(ctx context.Context, lines chan<- string, line string) error {
	select {
	case lines <- line:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
