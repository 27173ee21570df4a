package handler

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	apperrors "usuarios-api/pkg/errors"
)

// Number is a numeric request field. It accepts a JSON number or a string holding one,
// so "31" and 31 bind to the same value. JSON null leaves the field absent.
type Number float64

// UnmarshalJSON implements json.Unmarshaler
func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	raw := string(data)
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &raw); err != nil {
			return apperrors.WrapValidationError("number", err)
		}
	}

	f, err := parseNumber(raw)
	if err != nil {
		return err
	}
	*n = Number(f)
	return nil
}

// Ptr returns the value as *float64, nil when n is nil
func (n *Number) Ptr() *float64 {
	if n == nil {
		return nil
	}
	f := float64(*n)
	return &f
}

// parseNumber converts s to a finite float64
func parseNumber(s string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, apperrors.NewValidationError("number", "Cast to Number failed for value \""+s+"\"")
	}
	return f, nil
}
