package vision

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestNormalize(t *testing.T) {
	t.Run("parses plain json", func(t *testing.T) {
		res := Normalize(`{"make":"Toyota","bodyType":"SUV","color":"red","confidence":0.9}`, searchFields)
		if !res.Success {
			t.Fatalf("expected success, got error %q", res.Error)
		}
		if res.Data["make"] != "Toyota" {
			t.Errorf("make = %v", res.Data["make"])
		}
	})

	t.Run("strips markdown code fences", func(t *testing.T) {
		raw := "```json\n{\"make\":\"BMW\",\"bodyType\":\"Sedan\",\"color\":\"black\",\"confidence\":0.75}\n```"
		res := Normalize(raw, searchFields)
		if !res.Success {
			t.Fatalf("expected success, got error %q", res.Error)
		}
		if res.Data["bodyType"] != "Sedan" {
			t.Errorf("bodyType = %v", res.Data["bodyType"])
		}
	})

	t.Run("strips bare fences without language tag", func(t *testing.T) {
		raw := "```\n{\"make\":\"Audi\",\"bodyType\":\"Coupe\",\"color\":\"white\",\"confidence\":1}\n```"
		res := Normalize(raw, searchFields)
		if !res.Success {
			t.Fatalf("expected success, got error %q", res.Error)
		}
	})

	t.Run("preserves confidence verbatim", func(t *testing.T) {
		res := Normalize(`{"make":"Ford","bodyType":"Truck","color":"blue","confidence":0.850}`, searchFields)
		if !res.Success {
			t.Fatalf("expected success, got error %q", res.Error)
		}
		n, ok := res.Data["confidence"].(json.Number)
		if !ok {
			t.Fatalf("confidence decoded as %T, want json.Number", res.Data["confidence"])
		}
		if n.String() != "0.850" {
			t.Errorf("confidence = %q, want 0.850", n.String())
		}
	})

	t.Run("reports every missing field", func(t *testing.T) {
		res := Normalize(`{"make":"Kia"}`, searchFields)
		if res.Success {
			t.Fatal("expected failure")
		}
		for _, f := range []string{"bodyType", "color", "confidence"} {
			if !strings.Contains(res.Error, f) {
				t.Errorf("error %q does not mention %s", res.Error, f)
			}
		}
		if strings.Contains(res.Error, "make") {
			t.Errorf("error %q mentions a present field", res.Error)
		}
	})

	t.Run("rejects non-json replies", func(t *testing.T) {
		res := Normalize("I could not identify the vehicle.", searchFields)
		if res.Success {
			t.Fatal("expected failure")
		}
		if !strings.Contains(res.Error, "parse") {
			t.Errorf("error = %q", res.Error)
		}
	})

	t.Run("full listing schema", func(t *testing.T) {
		raw := `{"make":"Honda","model":"Civic","year":2021,"color":"gray","price":21000,
			"mileage":32000,"bodyType":"Sedan","fuelType":"Gasoline","transmission":"Automatic",
			"description":"Clean one-owner sedan.","confidence":0.92}`
		res := Normalize(raw, listingFields)
		if !res.Success {
			t.Fatalf("expected success, got error %q", res.Error)
		}
		if len(res.Data) != len(listingFields) {
			t.Errorf("got %d fields, want %d", len(res.Data), len(listingFields))
		}
	})
}
