package output

import (
	"fmt"
)

//
// Format is an enum that represents how records are written out.
//
type Format int

const (
	Text Format = iota
	CSV
)

//
// ParseFormat maps "text" or "csv" to the matching Format.
//
func ParseFormat(name string) (Format, error) {
	switch name {
	case "text", "":
		return Text, nil
	case "csv":
		return CSV, nil
	}

	return 0, fmt.Errorf("unknown output format %q (expected text or csv)", name)
}

func (o Format) String() string {
	switch o {
	case Text:
		return "text"
	case CSV:
		return "csv"
	}

	return fmt.Sprintf("Format(%d)", int(o))
}
