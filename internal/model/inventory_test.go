package model

import (
	"encoding/json"
	"testing"
)

func TestStorageLocation_NextCycles(t *testing.T) {
	cases := []struct {
		from, want StorageLocation
	}{
		{Fridge, Freezer},
		{Freezer, Pantry},
		{Pantry, Fridge},
	}
	for _, c := range cases {
		if got := c.from.Next(); got != c.want {
			t.Errorf("%s.Next(): expected %s, got %s", c.from, c.want, got)
		}
	}

	loc := Fridge
	for i := 0; i < 3; i++ {
		loc = loc.Next()
	}
	if loc != Fridge {
		t.Errorf("expected cycle to close on Fridge, got %s", loc)
	}
}

func TestParseStorageLocation(t *testing.T) {
	for _, loc := range StorageLocations {
		parsed, err := ParseStorageLocation(loc.String())
		if err != nil {
			t.Fatalf("unexpected error for %s: %v", loc, err)
		}
		if parsed != loc {
			t.Errorf("expected %s, got %s", loc, parsed)
		}
	}

	if _, err := ParseStorageLocation("frigo"); err == nil {
		t.Error("expected error for lowercase wire name")
	}
	if _, err := ParseStorageLocation(""); err == nil {
		t.Error("expected error for empty location")
	}
}

func TestStorageLocation_JSON(t *testing.T) {
	var body struct {
		Place StorageLocation `json:"place"`
	}
	if err := json.Unmarshal([]byte(`{"place":"Congelo"}`), &body); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if body.Place != Freezer {
		t.Errorf("expected Freezer, got %s", body.Place)
	}

	if err := json.Unmarshal([]byte(`{"place":"Cave"}`), &body); err == nil {
		t.Error("expected error for unknown location")
	}

	var zero StorageLocation
	if _, err := json.Marshal(struct {
		Place StorageLocation `json:"place"`
	}{zero}); err == nil {
		t.Error("expected error marshalling zero location")
	}
}
