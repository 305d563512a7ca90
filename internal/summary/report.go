// internal/summary/report.go
package summary

import (
	"bytes"
	"encoding/json"
	"html/template"
)

// ReportData is the view model for the standalone HTML report.
type ReportData struct {
	Title       string
	SummaryJSON template.JS
	Summary     ExperimentSummary
}

// GenerateReport renders a standalone HTML page for one experiment summary.
// The raw summary is embedded as JSON so downstream tooling can scrape it.
func GenerateReport(s ExperimentSummary) (string, error) {
	payload, err := json.Marshal(s)
	if err != nil {
		return "", err
	}

	title := "trialscope: Experiment Report"
	if s.Name != "" {
		title = "trialscope: " + s.Name
	}
	viewModel := ReportData{
		Title:       title,
		SummaryJSON: template.JS(payload),
		Summary:     s,
	}

	var buf bytes.Buffer
	if err := reportTemplate.Execute(&buf, viewModel); err != nil {
		return "", err
	}
	return buf.String(), nil
}

var reportTemplate = template.Must(template.New("experiment-report").Funcs(template.FuncMap{
	"pct": func(f float64) int {
		if f < 0 {
			return 0
		}
		if f > 1 {
			return 100
		}
		return int(f * 100)
	},
}).Parse(reportTemplateHTML))

const reportTemplateHTML = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{ .Title }}</title>
  <link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/bootstrap@5.3.3/dist/css/bootstrap.min.css">
  <style>
    body { background-color: #F1F5F9; color: #0F172A; }
    .card { margin-bottom: 1rem; }
    .imp-bar { background-color: #3B82F6; height: 0.75rem; border-radius: 2px; }
  </style>
</head>
<body>
  <nav class="navbar navbar-dark bg-dark mb-4">
    <div class="container"><span class="navbar-brand">{{ .Title }}</span></div>
  </nav>
  <div class="container">
    <div class="row">
      <div class="col-md-6">
        <div class="card">
          <div class="card-header">Run</div>
          <div class="card-body">
            <p class="mb-1">Metric: <strong>{{ .Summary.MetricName }}</strong> ({{ .Summary.Direction }})</p>
            <p class="mb-1">Trials: <strong>{{ .Summary.Trials }}</strong></p>
            <p class="mb-1">Best: <strong>{{ printf "%.4f" .Summary.BestReward }}</strong> at trial #{{ .Summary.BestTrialNo }}</p>
            <p class="mb-0">Mean reward: {{ printf "%.4f" .Summary.Reward.Mean }} &plusmn; {{ printf "%.4f" .Summary.Reward.StdDev }}</p>
          </div>
        </div>
        {{ if .Summary.BestParams }}
        <div class="card">
          <div class="card-header">Best hyperparameters</div>
          <div class="card-body">
            <table class="table table-sm mb-0">
              {{ range $name, $value := .Summary.BestParams }}
              <tr><td>{{ $name }}</td><td><code>{{ $value }}</code></td></tr>
              {{ end }}
            </table>
          </div>
        </div>
        {{ end }}
      </div>
      <div class="col-md-6">
        {{ if .Summary.TopFeatures }}
        <div class="card">
          <div class="card-header">Top features (avg importance)</div>
          <div class="card-body">
            {{ range .Summary.TopFeatures }}
            <div class="mb-2">
              <div class="d-flex justify-content-between">
                <span>{{ .Name }}</span><span>{{ printf "%.4f" .Importance }}</span>
              </div>
              <div class="imp-bar" style="width: {{ pct .Importance }}%"></div>
            </div>
            {{ end }}
          </div>
        </div>
        {{ end }}
      </div>
    </div>
  </div>
  <script id="summary-data" type="application/json">{{ .SummaryJSON }}</script>
</body>
</html>
`
