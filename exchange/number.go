package exchange

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"

	json "github.com/goccy/go-json"
	"github.com/shopspring/decimal"
)

//
// Numeric is the set of native Go number kinds that a Number can be constructed from.
//
type Numeric interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr |
		~float32 | ~float64
}

//
// Number is a decimal value kept as the exact text that an exchange sent (or that it was built
// from). Prices and sizes are never stored as floats. No arithmetic is defined on a Number; convert
// it with Decimal() when math is needed.
//
type Number struct {
	text string
}

//
// NewNumber wraps the provided text without validating it. Conversions will report whether or not
// the text actually holds a number.
//
func NewNumber(text string) Number {
	return Number{text: text}
}

//
// NumberFrom builds a Number from any native integer or float. Floats are rendered with the
// shortest text that parses back to the same value at their own bit size.
//
func NumberFrom[T Numeric](x T) Number {
	v := reflect.ValueOf(x)

	switch v.Kind() {
	case reflect.Float32:
		return Number{text: strconv.FormatFloat(v.Float(), 'f', -1, 32)}
	case reflect.Float64:
		return Number{text: strconv.FormatFloat(v.Float(), 'f', -1, 64)}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Number{text: strconv.FormatInt(v.Int(), 10)}
	default:
		return Number{text: strconv.FormatUint(v.Uint(), 10)}
	}
}

//
// NumberFromDecimal builds a Number from a shopspring decimal without losing digits.
//
func NumberFromDecimal(d decimal.Decimal) Number {
	return Number{text: d.String()}
}

//
// String returns the stored text unchanged.
//
func (o Number) String() string {
	return o.text
}

//
// IsZero reports whether the Number holds no text at all (e.g. an absent field).
//
func (o Number) IsZero() bool {
	return o.text == ""
}

//
// Float64 parses the stored text as a float64. Text that Decimal rejects (including NaN, infinity
// and hexadecimal spellings) and values that do not fit both produce an error.
//
func (o Number) Float64() (float64, error) {
	return o.parseFloat(64)
}

//
// Float32 parses the stored text as a float32 under the same rules as Float64.
//
func (o Number) Float32() (float32, error) {
	f, err := o.parseFloat(32)

	return float32(f), err
}

func (o Number) parseFloat(bitSize int) (float64, error) {
	if _, err := decimal.NewFromString(o.text); err != nil {
		return 0, &NumberError{Text: o.text, Err: strconv.ErrSyntax}
	}

	f, err := strconv.ParseFloat(o.text, bitSize)
	if err != nil {
		return 0, &NumberError{Text: o.text, Err: err}
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, &NumberError{Text: o.text, Err: strconv.ErrSyntax}
	}

	return f, nil
}

//
// Decimal parses the stored text into an arbitrary precision decimal.
//
func (o Number) Decimal() (decimal.Decimal, error) {
	d, err := decimal.NewFromString(o.text)
	if err != nil {
		return decimal.Zero, &NumberError{Text: o.text, Err: err}
	}

	return d, nil
}

//
// MarshalJSON always writes the Number as a JSON string, which is how Coinbase Pro expects
// monetary values.
//
func (o Number) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.text)
}

//
// UnmarshalJSON accepts either a JSON string or a bare JSON number and keeps its text verbatim.
// A JSON null leaves the Number untouched.
//
func (o *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var text string

		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}

		o.text = text

		return nil
	}

	if !json.Valid(data) || len(data) == 0 || !isJSONNumberStart(data[0]) {
		return fmt.Errorf("cannot decode %s into a number", data)
	}

	o.text = string(data)

	return nil
}

func isJSONNumberStart(c byte) bool {
	return c == '-' || (c >= '0' && c <= '9')
}

//
// NumberError describes a failed conversion of a Number's text.
//
type NumberError struct {
	Text string
	Err  error
}

func (o *NumberError) Error() string {
	return fmt.Sprintf("cannot convert %q to a number: %s", o.Text, o.Err)
}

func (o *NumberError) Unwrap() error {
	return o.Err
}

//
// IsRange reports whether the conversion failed because the value did not fit.
//
func (o *NumberError) IsRange() bool {
	return errors.Is(o.Err, strconv.ErrRange)
}
