// internal/trial/schema.go
package trial

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// recordSchema describes the wire shape of a TrialRecord. Extra fields are
// deliberately allowed so future producers can add data without breaking
// older consumers.
var recordSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"trialNo": map[string]any{
			"type":    "integer",
			"minimum": 1,
		},
		"hyperParams": map[string]any{
			"type": "object",
		},
		"models": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"reward": map[string]any{"type": "number"},
					"fold":   map[string]any{"type": "integer"},
					"importances": map[string]any{
						"type": "array",
						"items": map[string]any{
							"type":     "object",
							"required": []string{"name", "importance"},
						},
					},
				},
				"required": []string{"reward"},
			},
		},
		"avgReward":  map[string]any{"type": "number"},
		"elapsed":    map[string]any{"type": "integer", "minimum": 0},
		"metricName": map[string]any{"type": "string"},
	},
	"required": []string{"trialNo", "models", "avgReward", "elapsed", "metricName"},
}

var schemaLoader = gojsonschema.NewGoLoader(recordSchema)

// ValidateJSON checks one serialized trial record against the record schema
// and returns a single error listing every violation.
func ValidateJSON(data []byte) error {
	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("schema validation error: %w", err)
	}
	if result.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		msgs = append(msgs, desc.String())
	}
	return fmt.Errorf("invalid trial record: %s", strings.Join(msgs, "; "))
}

// ParseRecord validates and decodes one serialized trial record. Unknown
// fields in the payload are ignored.
func ParseRecord(data []byte) (*TrialRecord, error) {
	if err := ValidateJSON(data); err != nil {
		return nil, err
	}
	var rec TrialRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decode trial record: %w", err)
	}
	return &rec, nil
}
