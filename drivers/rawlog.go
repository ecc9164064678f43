package drivers

import (
	"bufio"
	"fmt"
	"os"

	"eegview/utils"
)

const (
	LOG_NAME            = "RAWLOG"
	LOG_EXT             = ".txt"
	WRITE_EVERY_N_LINES = 100
)

// RawLog keeps every line a live driver received, exactly as received, so a session can be replayed later.
type RawLog struct {
	file   *os.File
	writer *bufio.Writer
	lines  int
}

func OpenRawLog(dir string) (*RawLog, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	filePath := utils.NextAvailableFilename(dir, LOG_NAME, LOG_EXT)
	file, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open rawlog: %w", err)
	}
	return &RawLog{
		file:   file,
		writer: bufio.NewWriterSize(file, 1<<20),
	}, nil
}

func (l *RawLog) Path() string {
	return l.file.Name()
}

func (l *RawLog) Write(line string) error {
	if _, err := l.writer.WriteString(line); err != nil {
		return err
	}
	if err := l.writer.WriteByte('\n'); err != nil {
		return err
	}
	l.lines++
	if (l.lines % WRITE_EVERY_N_LINES) == 0 {
		return l.writer.Flush()
	}
	return nil
}

func (l *RawLog) Close() error {
	if err := l.writer.Flush(); err != nil {
		_ = l.file.Close()
		return err
	}
	return l.file.Close()
}
