package fns

import (
	"encoding/json"
	"fmt"
	"strconv"
	"unicode/utf8"

	"receipt_check/internal/receipt"

	"github.com/ansel1/merry"
)

const maxMessageLen = 200

var (
	ErrTransport            = merry.New("transport failure")
	ErrUnexpectedHTTPStatus = merry.New("unexpected HTTP status")
	ErrEmptyResponse        = merry.New("empty response")
	ErrMalformedEnvelope    = merry.New("response is not a JSON object")
	ErrDecode               = merry.New("response JSON malformed")
	ErrPayloadShape         = merry.New("response data malformed")
)

// RequestParams identifies one receipt lookup: the buyer credentials and the
// fn, i and fp values printed in the receipt QR code.
type RequestParams struct {
	Phone           string
	Password        string
	DeviceSerial    int64
	DocumentNumber  int64
	FiscalSignature int64
}

func (p RequestParams) pathParams() map[string]string {
	return map[string]string{
		"fn": strconv.FormatInt(p.DeviceSerial, 10),
		"fd": strconv.FormatInt(p.DocumentNumber, 10),
	}
}

func (p RequestParams) query() map[string]string {
	return map[string]string{
		"fiscalSign":  strconv.FormatInt(p.FiscalSignature, 10),
		"sendToEmail": "no",
	}
}

// FetchError is the failed side of an Outcome. Code is either a transport
// errno, an HTTP status, or one of the small body-validation codes.
type FetchError struct {
	Code    int
	Message string
	kind    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%d: %s", e.Code, e.Message)
}

func (e *FetchError) Unwrap() error {
	return e.kind
}

// Outcome is the result of a single lookup. Exactly one of Envelope and Err
// is set.
type Outcome struct {
	Envelope *receipt.Envelope
	Raw      json.RawMessage
	Err      *FetchError
}

func (o Outcome) OK() bool {
	return o.Err == nil && o.Envelope != nil
}

func success(env receipt.Envelope, raw []byte) Outcome {
	return Outcome{Envelope: &env, Raw: json.RawMessage(raw)}
}

func failure(kind error, code int, message string) Outcome {
	return Outcome{Err: &FetchError{Code: code, Message: truncate(message), kind: kind}}
}

func truncate(s string) string {
	if utf8.RuneCountInString(s) <= maxMessageLen {
		return s
	}
	return string([]rune(s)[:maxMessageLen])
}
