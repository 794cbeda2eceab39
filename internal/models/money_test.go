package models

import (
	"encoding/json"
	"testing"
)

func TestMoneyJSONRoundTripsAsFixedString(t *testing.T) {
	var payload struct {
		Price Money `json:"price"`
	}
	for _, raw := range []string{`{"price":"19.995"}`, `{"price":19.995}`} {
		if err := json.Unmarshal([]byte(raw), &payload); err != nil {
			t.Fatalf("unmarshal %s failed: %v", raw, err)
		}
		if payload.Price.String() != "20.00" {
			t.Fatalf("%s should round half up to 20.00, got %s", raw, payload.Price)
		}
	}

	out, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(out) != `{"price":"20.00"}` {
		t.Fatalf("unexpected json: %s", out)
	}
}

func TestMoneyUnmarshalRejectsGarbage(t *testing.T) {
	var m Money
	if err := json.Unmarshal([]byte(`"twelve"`), &m); err == nil {
		t.Fatalf("non numeric money should fail")
	}
	if err := json.Unmarshal([]byte(`null`), &m); err != nil {
		t.Fatalf("null should be ignored: %v", err)
	}
}

func TestMoneyScanRounds(t *testing.T) {
	var m Money
	if err := m.Scan("10.005"); err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if m.String() != "10.01" {
		t.Fatalf("scan should round to 10.01 got %s", m)
	}
}
