package types

import (
	"encoding/json"
	"testing"
)

func TestFlexListSingleAndArray(t *testing.T) {
	var body struct {
		StaffIDs FlexList[string] `json:"staffIds"`
	}

	if err := json.Unmarshal([]byte(`{"staffIds":"staff-1"}`), &body); err != nil {
		t.Fatalf("Unmarshal single failed: %v", err)
	}
	if len(body.StaffIDs) != 1 || body.StaffIDs[0] != "staff-1" {
		t.Errorf("Expected [staff-1], got %v", body.StaffIDs)
	}

	if err := json.Unmarshal([]byte(`{"staffIds":["a","b"]}`), &body); err != nil {
		t.Fatalf("Unmarshal array failed: %v", err)
	}
	if got := body.StaffIDs.Slice(); len(got) != 2 || got[1] != "b" {
		t.Errorf("Expected [a b], got %v", got)
	}
}

func TestFlexString(t *testing.T) {
	var body struct {
		Area   FlexString `json:"area"`
		Floors FlexString `json:"floors"`
		Year   FlexString `json:"year"`
	}

	if err := json.Unmarshal([]byte(`{"area":"45,5","floors":3,"year":null}`), &body); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if body.Area.String() != "45,5" {
		t.Errorf("Expected 45,5, got %q", body.Area)
	}
	if body.Floors.String() != "3" {
		t.Errorf("Expected 3, got %q", body.Floors)
	}
	if body.Year.String() != "" {
		t.Errorf("Expected empty year, got %q", body.Year)
	}

	if err := json.Unmarshal([]byte(`{"area":true}`), &body); err == nil {
		t.Error("Expected error for boolean value")
	}
}

func TestUniqueStrings(t *testing.T) {
	got := UniqueStrings([]string{"staff-1", " staff-1", "", "staff-2", "staff-1"})
	if len(got) != 2 || got[0] != "staff-1" || got[1] != "staff-2" {
		t.Errorf("Expected [staff-1 staff-2], got %v", got)
	}
}
