//go:build !cgo

package window

import (
	"context"
	"errors"
)

var errNoCgo = errors.New("window mode requires cgo (build/run with CGO_ENABLED=1)")

func ScreenSize() (int, int) {
	return 0, 0
}

func Run(_ context.Context, _ string, _ *Surface, _ func() error) error {
	return errNoCgo
}
