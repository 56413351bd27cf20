package contracts

import (
	"encoding/json"
	"testing"
)

func TestMetric_KnownUnknown(t *testing.T) {
	m := Known(1.5)
	if !m.IsKnown() {
		t.Error("Known metric should report IsKnown")
	}
	if v, ok := m.Value(); !ok || v != 1.5 {
		t.Errorf("Value() = %v, %v, want 1.5, true", v, ok)
	}

	u := Unknown()
	if u.IsKnown() {
		t.Error("Unknown metric should not report IsKnown")
	}
	if _, ok := u.Value(); ok {
		t.Error("Unknown metric should not return a value")
	}
}

func TestMetric_ZeroIsNotUnknown(t *testing.T) {
	// Zero insider selling is bullish; unknown insider data is
	// non-informative. The two must stay distinct.
	z := Known(0)
	if !z.IsKnown() {
		t.Error("Known(0) must be a known value, not unknown")
	}
}

func TestMetric_JSON(t *testing.T) {
	type wrapper struct {
		PEG Metric `json:"peg"`
	}

	// Unknown encodes as null
	data, err := json.Marshal(wrapper{PEG: Unknown()})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(data) != `{"peg":null}` {
		t.Errorf("unknown metric encoded as %s, want null", data)
	}

	// null decodes as unknown
	var w wrapper
	if err := json.Unmarshal([]byte(`{"peg":null}`), &w); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if w.PEG.IsKnown() {
		t.Error("null should decode as unknown")
	}

	// Numbers round-trip
	if err := json.Unmarshal([]byte(`{"peg":0.8}`), &w); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if v, ok := w.PEG.Value(); !ok || v != 0.8 {
		t.Errorf("Value() = %v, %v, want 0.8, true", v, ok)
	}
}

func TestMetric_String(t *testing.T) {
	if s := Unknown().String(); s != "unknown" {
		t.Errorf("String() = %s, want unknown", s)
	}
	if s := Known(2.5).String(); s != "2.50" {
		t.Errorf("String() = %s, want 2.50", s)
	}
}
