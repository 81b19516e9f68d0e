package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Amount is a numeric form value that may be missing or malformed.
// It keeps whatever the user typed and only coerces on read.
type Amount string

// NewAmount returns the Amount for a float.
func NewAmount(f float64) Amount {
	return Amount(strconv.FormatFloat(f, 'f', -1, 64))
}

// Float returns the numeric value, or 0 when the amount is empty,
// non-numeric, NaN or infinite.
func (a Amount) Float() float64 {
	s := strings.TrimSpace(string(a))
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// IsNumeric reports whether the amount parses as a finite number.
func (a Amount) IsNumeric() bool {
	s := strings.TrimSpace(string(a))
	if s == "" {
		return false
	}
	f, err := strconv.ParseFloat(s, 64)
	return err == nil && !math.IsNaN(f) && !math.IsInf(f, 0)
}

// MarshalJSON writes numeric amounts as JSON numbers, empty amounts as null
// and anything else as the original string.
func (a Amount) MarshalJSON() ([]byte, error) {
	if strings.TrimSpace(string(a)) == "" {
		return []byte("null"), nil
	}
	if a.IsNumeric() {
		return []byte(strconv.FormatFloat(a.Float(), 'f', -1, 64)), nil
	}
	return json.Marshal(string(a))
}

// UnmarshalJSON accepts numbers, strings and null.
func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*a = ""
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("amount: %w", err)
		}
		*a = Amount(s)
	default:
		*a = Amount(data)
	}
	return nil
}

// MarshalYAML mirrors MarshalJSON.
func (a Amount) MarshalYAML() (any, error) {
	if strings.TrimSpace(string(a)) == "" {
		return nil, nil
	}
	if a.IsNumeric() {
		return a.Float(), nil
	}
	return string(a), nil
}

// UnmarshalYAML accepts any scalar.
func (a *Amount) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("amount: expected scalar at line %d", node.Line)
	}
	if node.Tag == "!!null" {
		*a = ""
		return nil
	}
	*a = Amount(node.Value)
	return nil
}
