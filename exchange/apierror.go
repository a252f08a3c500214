package exchange

import (
	"fmt"

	json "github.com/goccy/go-json"
)

//
// APIError is the structured rejection object that Coinbase Pro sends instead of the expected
// payload (e.g. {"message":"invalid signature"}). The client never decodes into it on its own;
// callers recover it from a DecodeError's text with ParseAPIError.
//
type APIError struct {
	Message string `json:"message"`
}

func (o *APIError) Error() string {
	return fmt.Sprintf("the Coinbase Pro endpoint returned an API error (message: %s)", o.Message)
}

//
// ParseAPIError attempts to read the provided response text as an APIError. The boolean is false
// when the text is not such an object.
//
func ParseAPIError(text string) (*APIError, bool) {
	apiErr := &APIError{}

	if err := json.Unmarshal([]byte(text), apiErr); err != nil {
		return nil, false
	}

	if !apiErr.populated() {
		return nil, false
	}

	return apiErr, true
}

//
// populated returns whether or not the structure appears to actually hold an error. This is useful
// when determining whether or not the deserialized response payload was actually an error that fit
// into the structure's model or not.
//
func (o *APIError) populated() bool {
	return o.Message != ""
}
