package record

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/MrJamesThe3rd/sitebook/internal/contract"
)

// Text is a string that may arrive as a JSON string or number.
type Text string

// Number is an amount that may arrive as a number or a formatted string.
// Values that cannot be read decode to zero instead of failing.
type Number struct {
	d decimal.Decimal
}

// Date is a calendar date in any format the backend has used. Values that
// cannot be read decode to the zero time.
type Date struct {
	t time.Time
}

// Flag is a boolean that may arrive as true/false, 0/1 or "true"/"false".
type Flag bool

func NewNumber(d decimal.Decimal) Number { return Number{d: d} }
func NewDate(t time.Time) Date           { return Date{t: t} }

func (n Number) Decimal() decimal.Decimal { return n.d }
func (d Date) Time() time.Time            { return d.t }

// scalar returns the raw text of a JSON scalar, unquoting strings.
func scalar(data []byte) string {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return ""
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		return s
	}

	return string(data)
}

func (t *Text) UnmarshalJSON(data []byte) error {
	*t = Text(strings.TrimSpace(scalar(data)))
	return nil
}

func (t *Text) UnmarshalYAML(node *yaml.Node) error {
	*t = Text(strings.TrimSpace(node.Value))
	return nil
}

func (n *Number) UnmarshalJSON(data []byte) error {
	n.d = contract.ParseAmount(scalar(data))
	return nil
}

func (n *Number) UnmarshalYAML(node *yaml.Node) error {
	n.d = contract.ParseAmount(node.Value)
	return nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	d.t = contract.ParseDate(scalar(data))
	return nil
}

func (d *Date) UnmarshalYAML(node *yaml.Node) error {
	d.t = contract.ParseDate(node.Value)
	return nil
}

func (f *Flag) UnmarshalJSON(data []byte) error {
	*f = Flag(parseFlag(scalar(data)))
	return nil
}

func (f *Flag) UnmarshalYAML(node *yaml.Node) error {
	*f = Flag(parseFlag(node.Value))
	return nil
}

func parseFlag(s string) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		return false
	}

	return b
}
