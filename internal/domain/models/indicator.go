package models

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrInvalidInput marks every argument violation reported by the indicator layer.
var ErrInvalidInput = errors.New("invalid input")

// InvalidInputError carries the human-readable description of the violated constraint.
type InvalidInputError struct {
	Message string
}

func (e *InvalidInputError) Error() string { return e.Message }

// Is lets callers match with errors.Is(err, ErrInvalidInput).
func (e *InvalidInputError) Is(target error) bool { return target == ErrInvalidInput }

// InvalidInputf builds an InvalidInputError.
func InvalidInputf(format string, a ...interface{}) error {
	return &InvalidInputError{Message: fmt.Sprintf(format, a...)}
}

// Prices is a chronological (oldest first) price sequence.
// Decoding rejects null and non-numeric elements instead of zero-filling them.
type Prices []float64

func (p *Prices) UnmarshalJSON(b []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return InvalidInputf("prices must be a list of numbers")
	}
	if raw == nil {
		*p = nil
		return nil
	}
	out := make(Prices, len(raw))
	for i, item := range raw {
		var v *float64
		if err := json.Unmarshal(item, &v); err != nil || v == nil {
			return InvalidInputf("all items in prices must be numeric (index %d)", i)
		}
		out[i] = *v
	}
	*p = out
	return nil
}

// Series is an indicator line aligned 1:1 with the input prices.
// Nil entries mark positions without a value (warm-up window); they encode as JSON null.
type Series []*float64

// MACDResult holds the three MACD lines.
type MACDResult struct {
	MACD      Series `json:"macd"`
	Signal    Series `json:"signal"`
	Histogram Series `json:"histogram"`
}

// BBandsResult holds the Bollinger envelope.
type BBandsResult struct {
	Upper  Series `json:"upper"`
	Middle Series `json:"middle"`
	Lower  Series `json:"lower"`
}
