package batch

import (
	"errors"
	"strings"
	"testing"

	"receipt_check/internal/fns"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLine(t *testing.T) {
	testCases := []struct {
		name      string
		text      string
		expected  fns.RequestParams
		expectErr bool
	}{
		{
			name: "valid",
			text: "+79001234567 123456 8710000101125654 9512 2935184213",
			expected: fns.RequestParams{
				Phone:           "+79001234567",
				Password:        "123456",
				DeviceSerial:    8710000101125654,
				DocumentNumber:  9512,
				FiscalSignature: 2935184213,
			},
		},
		{
			name: "tabs and extra spaces",
			text: "\t+79001234567   123456\t1 2  3 ",
			expected: fns.RequestParams{
				Phone:           "+79001234567",
				Password:        "123456",
				DeviceSerial:    1,
				DocumentNumber:  2,
				FiscalSignature: 3,
			},
		},
		{name: "too few fields", text: "+79001234567 123456 1 2", expectErr: true},
		{name: "too many fields", text: "+79001234567 123456 1 2 3 4", expectErr: true},
		{name: "empty", text: "", expectErr: true},
		{name: "non numeric fn", text: "+79001234567 123456 fn 2 3", expectErr: true},
		{name: "non numeric fp", text: "+79001234567 123456 1 2 3.5", expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			params, err := ParseLine(tc.text)
			if tc.expectErr {
				assert.True(t, errors.Is(err, ErrMalformedLine), "%v", err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tc.expected, params)
			}
		})
	}
}

func TestRead(t *testing.T) {
	input := strings.Join([]string{
		"# phone password fn i fp",
		"+79001234567 123456 1 2 3",
		"",
		"broken line",
		"   ",
		"+79007654321 654321 4 5 6",
	}, "\n")

	lines, err := Read(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, lines, 3)

	assert.Equal(t, 2, lines[0].Number)
	assert.NoError(t, lines[0].Err)
	assert.Equal(t, int64(1), lines[0].Params.DeviceSerial)

	assert.Equal(t, 4, lines[1].Number)
	assert.Equal(t, "broken line", lines[1].Text)
	assert.True(t, errors.Is(lines[1].Err, ErrMalformedLine))

	assert.Equal(t, 6, lines[2].Number)
	assert.Equal(t, "+79007654321", lines[2].Params.Phone)
}
