package batch

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"receipt_check/internal/fns"
)

const fieldsPerLine = 5

var ErrMalformedLine = errors.New("line must contain: phone password fn i fp")

// Line is one entry of a batch file. Err is set when the line could not be
// parsed; such lines are reported and never looked up.
type Line struct {
	Number int
	Text   string
	Params fns.RequestParams
	Err    error
}

func ParseLine(text string) (fns.RequestParams, error) {
	fields := strings.Fields(text)
	if len(fields) != fieldsPerLine {
		return fns.RequestParams{}, fmt.Errorf("%w: got %d fields", ErrMalformedLine, len(fields))
	}

	ids := make([]int64, 0, 3)
	for i, name := range []string{"fn", "i", "fp"} {
		v, err := strconv.ParseInt(fields[2+i], 10, 64)
		if err != nil {
			return fns.RequestParams{}, fmt.Errorf("%w: %s is not a number: %q", ErrMalformedLine, name, fields[2+i])
		}
		ids = append(ids, v)
	}

	return fns.RequestParams{
		Phone:           fields[0],
		Password:        fields[1],
		DeviceSerial:    ids[0],
		DocumentNumber:  ids[1],
		FiscalSignature: ids[2],
	}, nil
}

// Read parses a batch file. Blank lines and lines starting with '#' are
// skipped without being reported.
func Read(r io.Reader) ([]Line, error) {
	var lines []Line

	scanner := bufio.NewScanner(r)
	number := 0
	for scanner.Scan() {
		number++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		params, err := ParseLine(text)
		lines = append(lines, Line{Number: number, Text: text, Params: params, Err: err})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read batch: %w", err)
	}

	return lines, nil
}
