package drivers

import (
	"context"
	"io"
)

// Stdin reads records from a plain stream, normally the process's standard input.
type Stdin struct {
	reader io.Reader
}

func NewStdin(reader io.Reader) *Stdin {
	return &Stdin{reader}
}

func (s *Stdin) Init() error {
	return nil
}

func (s *Stdin) Run(ctx context.Context, lines chan<- string) error {
	return scanLines(ctx, s.reader, lines)
}

func (s *Stdin) Close() error {
	return nil
}
