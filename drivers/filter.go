package drivers

import (
	"bufio"
	"errors"
	"io"

	"eegview/parsing"
)

type FilterCounts struct {
	Read int
	Kept int
}

// FilterRecords copies the lines of r that parse as records to w.
func FilterRecords(r io.Reader, w io.Writer) (FilterCounts, error) {
	var counts FilterCounts
	lr := newLineReader(r)
	writer := bufio.NewWriter(w)

	for {
		line, err := lr.next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return counts, err
		}
		counts.Read++
		if _, err := parsing.ParseRecord(line); err != nil {
			continue
		}
		if _, err := writer.WriteString(line + "\n"); err != nil {
			return counts, err
		}
		counts.Kept++
	}
	return counts, writer.Flush()
}
