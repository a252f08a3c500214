package exchange

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

//
// ErrInvalidUTF8 is reported in place of a response's text when its body is not valid UTF-8.
//
var ErrInvalidUTF8 = errors.New("response body is not valid UTF-8")

//
// TransportError means a request never produced an interpretable body: the connection, TLS
// handshake, or HTTP exchange itself failed. Nothing is retried.
//
type TransportError struct {
	Method string
	Path   string
	Err    error
}

func (o *TransportError) Error() string {
	return fmt.Sprintf("request %s %s failed: %s", o.Method, o.Path, o.Err)
}

func (o *TransportError) Unwrap() error {
	return o.Err
}

//
// DecodeError means a response body was received but could not be read as the expected schema.
// Err is the parse failure (or an *HTTPError when the status was not 2xx). The body is kept both as
// raw bytes and as text so that a rejection the exchange sent with an unexpected shape can still
// be diagnosed. When the body is not valid UTF-8, Text is empty and TextErr is ErrInvalidUTF8.
//
type DecodeError struct {
	Err        error
	StatusCode int
	Raw        []byte
	Text       string
	TextErr    error
}

//
// NewDecodeError builds a DecodeError for the provided cause and body.
//
func NewDecodeError(err error, statusCode int, body []byte) *DecodeError {
	decodeErr := &DecodeError{
		Err:        err,
		StatusCode: statusCode,
		Raw:        body,
	}

	if utf8.Valid(body) {
		decodeErr.Text = string(body)
	} else {
		decodeErr.TextErr = ErrInvalidUTF8
	}

	return decodeErr
}

//
// BodyText returns the response body as text, or ErrInvalidUTF8 if it could not be represented as
// such.
//
func (o *DecodeError) BodyText() (string, error) {
	if o.TextErr != nil {
		return "", o.TextErr
	}

	return o.Text, nil
}

//
// APIError returns the exchange's rejection object if the body held one.
//
func (o *DecodeError) APIError() (*APIError, bool) {
	if o.TextErr != nil {
		return nil, false
	}

	return ParseAPIError(o.Text)
}

func (o *DecodeError) Error() string {
	if o.TextErr != nil {
		return fmt.Sprintf("failed to decode response (status: %d): %s (body: %s)", o.StatusCode, o.Err, o.TextErr)
	}

	return fmt.Sprintf("failed to decode response (status: %d): %s (body: %q)", o.StatusCode, o.Err, truncate(o.Text))
}

func (o *DecodeError) Unwrap() error {
	return o.Err
}

const maxErrorText = 512

func truncate(text string) string {
	if len(text) <= maxErrorText {
		return text
	}

	//
	// Back off to a rune boundary so the truncated text stays valid UTF-8.
	//
	cut := maxErrorText
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}

	return text[:cut] + "..."
}
