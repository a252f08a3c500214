package exchange

import (
	"fmt"
	"net/http"
)

//
// HTTPError represents a non-2xx response from an API endpoint. It never reaches a caller on its
// own: the body of such a response is still worth reading, so it travels as the cause inside a
// DecodeError alongside that body's text.
//
type HTTPError struct {
	statusCode int
}

func NewHTTPError(statusCode int) *HTTPError {
	return &HTTPError{
		statusCode: statusCode,
	}
}

func (o *HTTPError) StatusCode() int {
	return o.statusCode
}

func (o *HTTPError) Error() string {
	return fmt.Sprintf("server responded with a %d (%s) status code", o.statusCode, http.StatusText(o.statusCode))
}

//
// IsSuccess reports whether the provided status code is in the 2xx range.
//
func IsSuccess(statusCode int) bool {
	return statusCode >= 200 && statusCode < 300
}
