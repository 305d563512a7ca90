// internal/summary/render.go
package summary

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"
)

// RenderText writes a colored terminal summary.
func RenderText(w io.Writer, s ExperimentSummary) {
	header := color.New(color.FgCyan, color.Bold)
	label := color.New(color.FgWhite, color.Bold)
	value := color.New(color.FgGreen)
	dim := color.New(color.FgHiBlack)

	title := "Experiment Summary"
	if s.Name != "" {
		title = fmt.Sprintf("Experiment Summary: %s", s.Name)
	}
	header.Fprintln(w, title)
	dim.Fprintln(w, strings.Repeat("-", len(title)))

	mode := "holdout"
	if s.CV {
		mode = fmt.Sprintf("%d-fold cv", s.NFolds)
	}
	label.Fprint(w, "Metric:     ")
	value.Fprintf(w, "%s (%s, %s)\n", s.MetricName, s.Direction, mode)

	label.Fprint(w, "Trials:     ")
	value.Fprintf(w, "%d\n", s.Trials)

	if s.Trials == 0 {
		dim.Fprintln(w, "No trials recorded.")
		return
	}

	label.Fprint(w, "Best:       ")
	value.Fprintf(w, "%.4f (trial #%d)\n", s.BestReward, s.BestTrialNo)

	label.Fprint(w, "Reward:     ")
	value.Fprintf(w, "mean %.4f  stddev %.4f  range [%.4f, %.4f]\n",
		s.Reward.Mean, s.Reward.StdDev(), s.Reward.Min, s.Reward.Max)

	label.Fprint(w, "Elapsed:    ")
	value.Fprintf(w, "total %s  mean %.0fs per trial\n", s.TotalElapsed, s.Elapsed.Mean)

	if len(s.BestParams) > 0 {
		label.Fprintln(w, "Best hyperparameters:")
		names := make([]string, 0, len(s.BestParams))
		for name := range s.BestParams {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(w, "  %s = %s\n", name, s.BestParams[name])
		}
	}

	if len(s.TopFeatures) > 0 {
		label.Fprintln(w, "Top features (avg importance):")
		maxImp := s.TopFeatures[0].Importance
		for _, imp := range s.TopFeatures {
			bar := importanceBar(imp.Importance, maxImp, 24)
			fmt.Fprintf(w, "  %-16s %s %.4f\n", imp.Name, bar, imp.Importance)
		}
	}
}

func importanceBar(value, max float64, width int) string {
	if max <= 0 {
		return ""
	}
	filled := int(value / max * float64(width))
	if filled <= 0 && value > 0 {
		filled = 1
	}
	return strings.Repeat("█", filled)
}
