// internal/chart/series.go
package chart

import (
	"fmt"
	"math"
	"strconv"

	"github.com/mwiater/trialscope/internal/trial"
)

// elapsedSeriesName labels the bar series on the secondary axis.
const elapsedSeriesName = "Elapsed"

// BuildOptions recomputes the full chart options from the accumulated trial
// history. Every series is index-aligned with the category axis: the label
// count, the elapsed series, and each reward series all have exactly one
// entry per trial.
//
// Elapsed values are plotted as whole minutes, rounded half away from zero
// (math.Round).
//
// When cfg.CV is true, each record must carry at least cfg.NFolds fold
// results; fewer is a data contract violation and BuildOptions fails rather
// than plotting gaps.
func BuildOptions(history []trial.TrialRecord, cfg trial.ExperimentConfig) (Options, error) {
	xData := make([]string, len(history))
	elapsedData := make([]float64, len(history))
	for i, rec := range history {
		xData[i] = "#" + strconv.Itoa(rec.TrialNo)
		elapsedData[i] = math.Round(float64(rec.Elapsed) / 60)
	}

	metric := cfg.MetricName
	if metric == "" && len(history) > 0 {
		metric = history[len(history)-1].MetricName
	}
	if metric == "" {
		metric = "reward"
	}

	var series []Series
	if cfg.CV {
		nFolds := cfg.NFolds
		if nFolds <= 0 {
			return Options{}, fmt.Errorf("cv enabled with nFolds=%d", nFolds)
		}
		for fold := 0; fold < nFolds; fold++ {
			data := make([]float64, len(history))
			for i, rec := range history {
				if len(rec.Models) <= fold {
					return Options{}, fmt.Errorf(
						"trial #%d has %d fold results, need %d", rec.TrialNo, len(rec.Models), nFolds)
				}
				data[i] = rec.Models[fold].Reward
			}
			series = append(series, Series{
				Name: fmt.Sprintf("fold %d", fold),
				Type: SeriesScatter,
				Data: data,
			})
		}
		avgData := make([]float64, len(history))
		for i, rec := range history {
			avgData[i] = rec.AvgReward
		}
		series = append(series, Series{
			Name: "avg " + metric,
			Type: SeriesLine,
			Data: avgData,
		})
	} else {
		data := make([]float64, len(history))
		for i, rec := range history {
			if len(rec.Models) == 0 {
				return Options{}, fmt.Errorf("trial #%d has no model results", rec.TrialNo)
			}
			data[i] = rec.Models[0].Reward
		}
		series = append(series, Series{
			Name: metric,
			Type: SeriesLine,
			Data: data,
		})
	}

	series = append(series, Series{
		Name:       elapsedSeriesName,
		Type:       SeriesBar,
		YAxisIndex: 1,
		Data:       elapsedData,
	})

	legend := make([]string, len(series))
	for i, s := range series {
		legend[i] = s.Name
	}

	return Options{
		Title:   Title{Text: "Trials"},
		Tooltip: Tooltip{Trigger: "axis"},
		Toolbox: Toolbox{Features: []string{"saveAsImage", "dataView"}},
		Legend:  Legend{Data: legend},
		Grid:    Grid{Left: "3%", Right: "4%", Bottom: "3%", ContainLabel: true},
		XAxis:   []Axis{{Type: AxisCategory, Data: xData}},
		YAxis: []Axis{
			{Type: AxisValue, Name: metric},
			{Type: AxisValue, Name: "elapsed (min)"},
		},
		Series: series,
	}, nil
}
