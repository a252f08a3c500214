package coinbase

import (
	"bytes"
	"time"

	coinbasepro "github.com/preichenberger/go-coinbasepro/v2"
)

//
// Time is an instant reported by Coinbase Pro, always held in UTC. Most endpoints send RFC 3339
// timestamps, but some older ones send layouts such as "2006-01-02 15:04:05.999999+00", which are
// parsed with the go-coinbasepro library's layout list.
//
type Time struct {
	time.Time
}

func (o *Time) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}

	var rfc3339 time.Time

	if err := rfc3339.UnmarshalJSON(data); err == nil {
		o.Time = rfc3339.UTC()

		return nil
	}

	var fallback coinbasepro.Time

	if err := fallback.UnmarshalJSON(data); err != nil {
		return err
	}

	o.Time = fallback.Time().UTC()

	return nil
}

func (o Time) MarshalJSON() ([]byte, error) {
	return o.Time.UTC().MarshalJSON()
}
