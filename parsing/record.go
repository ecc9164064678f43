package parsing

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"eegview/models"
)

const (
	DELIMITER = "|"
	// MAX_READING is the largest reading a channel field may carry.
	MAX_READING = 65536
)

// Records look like <cycle>|<version>|<ch1>|<ch2>|<ch3>|<ch4>|<ch5>|<ch6>, anything after the sixth channel is
// ignored. Producers usually terminate the last channel with a delimiter too.
const (
	envelopeFields = 2
	recordFields   = envelopeFields + models.ChannelCount
)

var (
	ErrMalformedRecord     = errors.New("malformed record")
	ErrInvalidChannelValue = errors.New("invalid channel value")
)

// ParseRecord decodes a single input line. It either returns all six readings or an error, never a partial record.
func ParseRecord(line string) (models.Record, error) {
	line = strings.TrimRight(line, "\r\n")

	fields := strings.SplitN(line, DELIMITER, recordFields+1)
	if len(fields) < recordFields {
		return models.Record{}, fmt.Errorf("%d of %d fields: %w", len(fields), recordFields, ErrMalformedRecord)
	}

	var record models.Record
	for i, field := range fields[envelopeFields:recordFields] {
		value, err := strconv.ParseUint(numeral(field), 10, 32)
		if err != nil || value > MAX_READING {
			return models.Record{}, fmt.Errorf("channel %d %q: %w", i+1, field, ErrInvalidChannelValue)
		}
		record[i] = uint16(min(value, models.MaxSample))
	}

	return record, nil
}

// numeral drops the leading blanks and plus sign a reading may carry. Trailing blanks are still invalid.
func numeral(field string) string {
	field = strings.TrimLeft(field, " \t\v\f\r\n")
	return strings.TrimPrefix(field, "+")
}
