package models

import (
	"encoding/json"
	"strconv"
	"strings"
)

// FlexFloat is a float64 that tolerates the loose numeric shapes the admin UI
// sends: JSON numbers, quoted numeric strings, null, or empty strings.
// Anything that does not parse becomes 0 rather than an error, so a half-typed
// form field never fails a save.
type FlexFloat float64

func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "" || s == "null" {
		*f = 0
		return nil
	}

	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			*f = 0
			return nil
		}
		s = strings.TrimSpace(str)
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*f = 0
		return nil
	}
	*f = FlexFloat(v)
	return nil
}

func (f FlexFloat) Float64() float64 {
	return float64(f)
}

// VariancePct is a variance percentage that carries the "N/A" sentinel for
// categories that have no estimate to compare against. It marshals as a plain
// number when valid and as the string "N/A" otherwise.
type VariancePct struct {
	Valid bool
	Value float64
}

// Pct returns a valid percentage value.
func Pct(v float64) VariancePct {
	return VariancePct{Valid: true, Value: v}
}

// PctNA returns the "N/A" sentinel.
func PctNA() VariancePct {
	return VariancePct{}
}

func (p VariancePct) MarshalJSON() ([]byte, error) {
	if !p.Valid {
		return []byte(`"N/A"`), nil
	}
	return json.Marshal(p.Value)
}

func (p *VariancePct) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" || s == `"N/A"` || s == `""` {
		*p = VariancePct{}
		return nil
	}
	var f FlexFloat
	f.UnmarshalJSON(data) // never errors
	*p = VariancePct{Valid: true, Value: f.Float64()}
	return nil
}
