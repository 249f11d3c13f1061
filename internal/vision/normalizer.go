package vision

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Result is the outcome of normalizing a model reply against a schema.
// Invalid content never surfaces as an error return; callers check Success.
type Result struct {
	Success bool           `json:"success"`
	Data    map[string]any `json:"data,omitempty"`
	Error   string         `json:"error,omitempty"`
}

var codeFence = regexp.MustCompile("```(?:json)?\n?")

// Normalize strips Markdown code fences from a raw model reply, parses it as
// JSON and verifies every required field is present. Numbers are decoded as
// json.Number so values like confidence are reproduced verbatim.
func Normalize(raw string, required []string) Result {
	cleaned := strings.TrimSpace(codeFence.ReplaceAllString(raw, ""))

	dec := json.NewDecoder(strings.NewReader(cleaned))
	dec.UseNumber()
	var data map[string]any
	if err := dec.Decode(&data); err != nil {
		return Result{Success: false, Error: "failed to parse AI response as JSON"}
	}

	missing := make([]string, 0)
	for _, f := range required {
		if _, ok := data[f]; !ok {
			missing = append(missing, f)
		}
	}
	if len(missing) > 0 {
		return Result{Success: false, Error: "AI response missing required fields: " + strings.Join(missing, ", ")}
	}

	return Result{Success: true, Data: data}
}
