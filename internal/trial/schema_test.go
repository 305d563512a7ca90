// internal/trial/schema_test.go
package trial

import (
	"strings"
	"testing"
)

// TestParseRecordValid verifies that a well-formed record decodes and that
// unknown extra fields are ignored for forward compatibility.
func TestParseRecordValid(t *testing.T) {
	payload := `{
		"trialNo": 3,
		"hyperParams": {"max_depth": "5"},
		"models": [{"reward": 0.71, "fold": 0, "importances": [{"name": "age", "importance": 0.4}]}],
		"avgReward": 0.71,
		"elapsed": 95,
		"metricName": "auc",
		"futureField": {"ignored": true}
	}`

	rec, err := ParseRecord([]byte(payload))
	if err != nil {
		t.Fatalf("ParseRecord failed: %v", err)
	}
	if rec.TrialNo != 3 || rec.AvgReward != 0.71 || rec.Elapsed != 95 {
		t.Fatalf("unexpected record: %+v", rec)
	}
	if len(rec.Models) != 1 || rec.Models[0].Importances[0].Name != "age" {
		t.Fatalf("unexpected models: %+v", rec.Models)
	}
	if rec.HyperParams["max_depth"] != "5" {
		t.Fatalf("unexpected hyperparams: %+v", rec.HyperParams)
	}
}

// TestParseRecordInvalid verifies that records missing required fields or
// carrying wrong types are rejected with a descriptive error.
func TestParseRecordInvalid(t *testing.T) {
	cases := []struct {
		name    string
		payload string
	}{
		{"missing trialNo", `{"models":[{"reward":0.5}],"avgReward":0.5,"elapsed":10,"metricName":"auc"}`},
		{"empty models", `{"trialNo":1,"models":[],"avgReward":0.5,"elapsed":10,"metricName":"auc"}`},
		{"negative elapsed", `{"trialNo":1,"models":[{"reward":0.5}],"avgReward":0.5,"elapsed":-1,"metricName":"auc"}`},
		{"string reward", `{"trialNo":1,"models":[{"reward":"high"}],"avgReward":0.5,"elapsed":10,"metricName":"auc"}`},
	}

	for _, tc := range cases {
		if _, err := ParseRecord([]byte(tc.payload)); err == nil {
			t.Fatalf("%s: expected error", tc.name)
		} else if !strings.Contains(err.Error(), "invalid trial record") {
			t.Fatalf("%s: unexpected error: %v", tc.name, err)
		}
	}
}
