package fns

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"syscall"

	"receipt_check/internal/receipt"
)

const (
	codeEmptyResponse     = 1
	codeMalformedEnvelope = 2
	codeDecode            = 3
	codePayloadShape      = 4
)

func transportFailure(err error) Outcome {
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return failure(ErrTransport, int(errno), errno.Error())
	}
	return failure(ErrTransport, 0, err.Error())
}

// classifyResponse turns a completed HTTP exchange into an Outcome. The
// checks run in a fixed order and the first one that fails decides the code.
func classifyResponse(statusCode int, status string, body []byte) Outcome {
	if statusCode != http.StatusOK {
		return failure(ErrUnexpectedHTTPStatus, statusCode, reasonPhrase(statusCode, status))
	}

	if len(body) == 0 {
		return failure(ErrEmptyResponse, codeEmptyResponse, "Empty response")
	}

	text := string(body)
	if !strings.HasPrefix(text, "{") || !strings.HasSuffix(text, "}") {
		return failure(ErrMalformedEnvelope, codeMalformedEnvelope, text)
	}

	var env receipt.Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		var syntaxErr *json.SyntaxError
		if errors.As(err, &syntaxErr) {
			return failure(ErrDecode, codeDecode, "JSONDecodeError: "+err.Error()+": "+text)
		}
		return failure(ErrPayloadShape, codePayloadShape, "TypeError: "+err.Error()+": "+text)
	}

	return success(env, body)
}

// reasonPhrase prefers the phrase the server sent in its status line.
func reasonPhrase(statusCode int, status string) string {
	reason := strings.TrimSpace(strings.TrimPrefix(status, strconv.Itoa(statusCode)))
	if reason == "" {
		reason = http.StatusText(statusCode)
	}
	return reason
}
