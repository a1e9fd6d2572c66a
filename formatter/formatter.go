package formatter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"hospital-planner/calibration"
)

// ActivityData is one activity's calibrated statistics, prepared for output.
type ActivityData struct {
	Activity string  `json:"activity"`
	MeanSec  float64 `json:"mean_sec"`
	StdSec   float64 `json:"std_sec"`
	Fallback bool    `json:"fallback"`
}

// VariantData is one trace variant with its observed probability.
type VariantData struct {
	Variant     string  `json:"variant"`
	Probability float64 `json:"probability"`
}

// ParamsData holds prepared calibration data used by all formatters
type ParamsData struct {
	Activities []ActivityData `json:"activities"`
	Variants   []VariantData  `json:"variants"`
}

// prepareParamsData extracts and organizes params for formatting, with
// activities and variants in stable sorted order.
func prepareParamsData(params *calibration.Params) *ParamsData {
	data := &ParamsData{}

	activities := make([]string, 0, len(params.MeanSec))
	for activity := range params.MeanSec {
		activities = append(activities, activity)
	}
	sort.Strings(activities)
	for _, activity := range activities {
		mean := params.MeanSec[activity]
		std := params.StdSec[activity]
		data.Activities = append(data.Activities, ActivityData{
			Activity: activity,
			MeanSec:  mean,
			StdSec:   std,
			Fallback: mean == calibration.DefaultMeanSec && std == calibration.DefaultStdSec,
		})
	}

	variants := make([]string, 0, len(params.VariantProbs))
	for variant := range params.VariantProbs {
		variants = append(variants, variant)
	}
	// Most frequent variants first, name as tie-breaker.
	sort.Slice(variants, func(i, j int) bool {
		pi, pj := params.VariantProbs[variants[i]], params.VariantProbs[variants[j]]
		if pi != pj {
			return pi > pj
		}
		return variants[i] < variants[j]
	})
	for _, variant := range variants {
		data.Variants = append(data.Variants, VariantData{
			Variant:     variant,
			Probability: params.VariantProbs[variant],
		})
	}

	return data
}

// FormatText returns the text representation of the calibration params
func FormatText(params *calibration.Params) string {
	data := prepareParamsData(params)
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Activities (%d):\n", len(data.Activities)))
	for _, a := range data.Activities {
		line := fmt.Sprintf("  %s : mean=%.1fs, std=%.1fs", a.Activity, a.MeanSec, a.StdSec)
		if a.Fallback {
			line += " (fallback)"
		}
		sb.WriteString(line + "\n")
	}

	sb.WriteString(fmt.Sprintf("Variants (%d):\n", len(data.Variants)))
	for _, v := range data.Variants {
		sb.WriteString(fmt.Sprintf("  %.4f : %s\n", v.Probability, v.Variant))
	}

	return sb.String()
}

// FormatJSON returns the JSON representation of the calibration params
func FormatJSON(params *calibration.Params) string {
	data := prepareParamsData(params)
	jsonBytes, _ := json.MarshalIndent(data, "", "  ")
	return string(jsonBytes)
}

// FormatCSV returns the CSV representation of the calibration params
func FormatCSV(params *calibration.Params) string {
	data := prepareParamsData(params)
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	writer.Write([]string{"Kind", "Name", "Mean (s)", "Std (s)", "Probability"})
	for _, a := range data.Activities {
		writer.Write([]string{
			"activity", a.Activity,
			fmt.Sprintf("%.2f", a.MeanSec),
			fmt.Sprintf("%.2f", a.StdSec),
			"",
		})
	}
	for _, v := range data.Variants {
		writer.Write([]string{
			"variant", v.Variant, "", "",
			fmt.Sprintf("%.6f", v.Probability),
		})
	}

	writer.Flush()
	return sb.String()
}
