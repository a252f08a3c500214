package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/logrusorgru/aurora"
	"github.com/lukehollenback/coinbase-api/constants"
)

//
// Field is one labelled value of a single record.
//
type Field struct {
	Label string
	Value string
}

//
// cellPadding is the number of spaces between two aligned text columns.
//
const cellPadding = 2

var ansiEscape = regexp.MustCompile("\x1b\\[[0-9;]*m")

//
// visibleWidth is the number of runes of text a terminal displays, colour sequences excluded.
//
func visibleWidth(text string) int {
	return utf8.RuneCountInString(ansiEscape.ReplaceAllString(text, ""))
}

//
// textLine is one buffered line of text output. Table lines are aligned with the table lines around
// them; other lines are written as they are.
//
type textLine struct {
	cells []string
	table bool
}

//
// Writer renders tables and single records either as aligned (optionally coloured) text or as
// CSV. Nothing is guaranteed to reach the underlying io.Writer until Flush is called.
//
type Writer struct {
	mu     sync.Mutex
	format Format
	color  aurora.Aurora
	out    io.Writer
	csv    *csv.Writer
	lines  []textLine
}

//
// NewWriter creates a new writer. Colours are only ever used for the text format.
//
func NewWriter(out io.Writer, format Format, colored bool) *Writer {
	o := &Writer{
		format: format,
		color:  aurora.NewAurora(colored && format == Text),
		out:    out,
	}

	if format == CSV {
		o.csv = csv.NewWriter(out)
	}

	return o
}

//
// Format returns the format the writer renders.
//
func (o *Writer) Format() Format {
	return o.format
}

//
// Header writes the header row of a table.
//
func (o *Writer) Header(columns ...string) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.format == CSV {
		return o.csv.Write(columns)
	}

	styled := make([]string, len(columns))
	for i, column := range columns {
		styled[i] = fmt.Sprint(o.color.Bold(column))
	}

	o.lines = append(o.lines, textLine{cells: styled, table: true})

	return nil
}

//
// Row writes one row of a table.
//
func (o *Writer) Row(values ...string) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.format == CSV {
		return o.csv.Write(values)
	}

	o.lines = append(o.lines, textLine{cells: append([]string(nil), values...), table: true})

	return nil
}

//
// Record writes a single record. As text it is one "label value" line per field; as CSV it is a
// header row of the labels followed by a row of the values.
//
func (o *Writer) Record(fields ...Field) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.format == CSV {
		labels := make([]string, len(fields))
		values := make([]string, len(fields))

		for i, field := range fields {
			labels[i] = field.Label
			values[i] = field.Value
		}

		if err := o.csv.Write(labels); err != nil {
			return err
		}

		return o.csv.Write(values)
	}

	for _, field := range fields {
		padded := fmt.Sprintf(constants.LabelFmt, field.Label)
		label := fmt.Sprint(o.color.Bold(field.Label)) + padded[len(field.Label):]

		o.lines = append(o.lines, textLine{cells: []string{label + field.Value}})
	}

	return nil
}

//
// Signed colours text green when sign is positive and red when it is negative.
//
func (o *Writer) Signed(text string, sign int) string {
	switch {
	case sign > 0:
		return fmt.Sprint(o.color.Green(text))
	case sign < 0:
		return fmt.Sprint(o.color.Red(text))
	}

	return text
}

//
// Flush writes any buffered output through to the underlying io.Writer.
//
func (o *Writer) Flush() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.format == CSV {
		o.csv.Flush()

		return o.csv.Error()
	}

	var b strings.Builder

	for start := 0; start < len(o.lines); {
		end := start + 1
		for o.lines[start].table && end < len(o.lines) && o.lines[end].table {
			end++
		}

		writeBlock(&b, o.lines[start:end])
		start = end
	}

	o.lines = nil

	_, err := io.WriteString(o.out, b.String())

	return err
}

//
// writeBlock writes consecutive lines, padding every cell but the last of each line to the widest
// visible cell of its column.
//
func writeBlock(b *strings.Builder, lines []textLine) {
	var widths []int

	for _, line := range lines {
		for i := 0; i < len(line.cells)-1; i++ {
			if i == len(widths) {
				widths = append(widths, 0)
			}

			if w := visibleWidth(line.cells[i]); w > widths[i] {
				widths[i] = w
			}
		}
	}

	for _, line := range lines {
		for i, cell := range line.cells {
			b.WriteString(cell)

			if i < len(line.cells)-1 {
				b.WriteString(strings.Repeat(" ", widths[i]-visibleWidth(cell)+cellPadding))
			}
		}

		b.WriteByte('\n')
	}
}
