package contracts

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Metric is an optional numeric signal value. Upstream collaborators often
// cannot supply a number at all, and "unknown" carries different risk
// implications than zero (zero insider selling is bullish, unknown insider
// data is non-informative), so the two are never collapsed.
type Metric struct {
	value float64
	known bool
}

// Known creates a Metric carrying a value
func Known(v float64) Metric {
	return Metric{value: v, known: true}
}

// Unknown creates a Metric with no value
func Unknown() Metric {
	return Metric{}
}

// IsKnown reports whether the metric carries a value
func (m Metric) IsKnown() bool {
	return m.known
}

// Value returns the carried value and whether it is known
func (m Metric) Value() (float64, bool) {
	return m.value, m.known
}

// String formats the metric for rationale text
func (m Metric) String() string {
	if !m.known {
		return "unknown"
	}
	return fmt.Sprintf("%.2f", m.value)
}

// MarshalJSON encodes unknown as null, known as a plain number
func (m Metric) MarshalJSON() ([]byte, error) {
	if !m.known {
		return []byte("null"), nil
	}
	return json.Marshal(m.value)
}

// UnmarshalJSON decodes null (or a missing field) as unknown
func (m *Metric) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*m = Unknown()
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*m = Known(v)
	return nil
}
