package coinbase

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
)

//
// ErrInvalidSecret is returned when an API secret is not valid base64.
//
var ErrInvalidSecret = errors.New("API secret is not valid base64")

//
// Signer computes the cb-access-sign value for private requests. The secret is decoded once, when
// the Signer is built, so a bad secret is caught before any request is attempted.
//
type Signer struct {
	key []byte
}

//
// NewSigner decodes the provided base64 secret into an HMAC key.
//
func NewSigner(secret string) (*Signer, error) {
	key, err := base64.StdEncoding.DecodeString(secret)
	if err != nil {
		return nil, fmt.Errorf("%w (%s)", ErrInvalidSecret, err)
	}

	return &Signer{key: key}, nil
}

//
// Sign returns base64(HMAC-SHA256(key, timestamp + method + requestPath + body)). The timestamp
// must be the exact value sent in the cb-access-timestamp header, and requestPath must be the
// path and query exactly as they go on the wire. Body is empty for GET requests.
//
func (o *Signer) Sign(timestamp int64, method string, requestPath string, body string) string {
	mac := hmac.New(sha256.New, o.key)

	mac.Write([]byte(strconv.FormatInt(timestamp, 10)))
	mac.Write([]byte(method))
	mac.Write([]byte(requestPath))
	mac.Write([]byte(body))

	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}
