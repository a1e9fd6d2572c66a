// Package calibration derives per-activity service-time statistics and
// trace-variant probabilities from a recorded event log, so an optimizer
// run can substitute historical distributions for the problem model's
// default samplers.
package calibration

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"sort"
	"strings"
	"time"

	"hospital-planner/errors"
	"hospital-planner/metrics"
)

// Defaults used when an activity has no usable duration samples.
const (
	DefaultMeanSec = 3600.0
	DefaultStdSec  = 1800.0
)

// Event log rows are: case id, activity label, start timestamp, completion
// timestamp. Timestamps may be in either layout below; an empty timestamp
// leaves the duration undefined for that row.
var timeLayouts = []string{"2006-01-02 15:04:05", time.RFC3339}

type logRow struct {
	caseID   string
	activity string
	start    time.Time
	hasSpan  bool
	duration float64 // seconds, valid only when hasSpan
}

// Extract reads an event log and computes calibration parameters: variant
// probabilities normalized over all observed traces, and per-activity
// sample mean and sample standard deviation of completion minus start, in
// seconds.
func Extract(r io.Reader) (*Params, error) {
	rows, err := readRows(r)
	if err != nil {
		return nil, err
	}

	params := &Params{
		VariantProbs: variantProbs(rows),
		MeanSec:      make(map[string]float64),
		StdSec:       make(map[string]float64),
	}

	durations := make(map[string][]float64)
	for _, row := range rows {
		if _, seen := durations[row.activity]; !seen {
			durations[row.activity] = nil
		}
		if row.hasSpan {
			durations[row.activity] = append(durations[row.activity], row.duration)
		}
	}
	for activity, samples := range durations {
		params.MeanSec[activity], params.StdSec[activity] = meanStd(samples)
	}

	metrics.ExtractorActivities.Set(float64(len(durations)))
	return params, nil
}

func readRows(r io.Reader) ([]logRow, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	var rows []logRow
	lineNum := 0
	for {
		record, err := reader.Read()
		lineNum++
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading CSV at line %d: %w", lineNum, err)
		}

		// Skip comments and the header row.
		if len(record) > 0 && (strings.HasPrefix(record[0], "#") || strings.EqualFold(strings.TrimSpace(record[0]), "case_id")) {
			continue
		}

		if len(record) < 4 {
			return nil, &errors.ParseError{
				Line:   lineNum,
				Record: record,
				Err:    errors.ErrInvalidFieldCount,
			}
		}

		row := logRow{
			caseID:   strings.TrimSpace(record[0]),
			activity: strings.TrimSpace(record[1]),
		}
		if row.activity == "" {
			return nil, &errors.ParseError{
				Line:   lineNum,
				Record: record,
				Err:    errors.ErrEmptyActivity,
			}
		}

		startField := strings.TrimSpace(record[2])
		completionField := strings.TrimSpace(record[3])

		row.start, err = parseTimestamp(startField)
		if err != nil {
			metrics.ExtractorErrorsTotal.WithLabelValues("invalid_start_time").Inc()
			return nil, &errors.ParseError{
				Line:   lineNum,
				Record: record,
				Err:    fmt.Errorf("%w: %v", errors.ErrInvalidStartTime, err),
			}
		}

		// An empty completion means the activity never finished in the log;
		// the row still counts toward the trace variant.
		if completionField != "" {
			completion, err := parseTimestamp(completionField)
			if err != nil {
				metrics.ExtractorErrorsTotal.WithLabelValues("invalid_completion_time").Inc()
				return nil, &errors.ParseError{
					Line:   lineNum,
					Record: record,
					Err:    fmt.Errorf("%w: %v", errors.ErrInvalidCompletionTime, err),
				}
			}
			row.hasSpan = true
			row.duration = completion.Sub(row.start).Seconds()
		}

		rows = append(rows, row)
		metrics.ExtractorRowsTotal.Inc()
	}
	return rows, nil
}

func parseTimestamp(value string) (time.Time, error) {
	var lastErr error
	for _, layout := range timeLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// variantProbs groups rows per case, orders each case's activities by start
// time, and normalizes variant counts over all observed traces.
func variantProbs(rows []logRow) map[string]float64 {
	byCase := make(map[string][]logRow)
	for _, row := range rows {
		byCase[row.caseID] = append(byCase[row.caseID], row)
	}

	counts := make(map[string]int)
	total := 0
	for _, trace := range byCase {
		sort.SliceStable(trace, func(i, j int) bool {
			return trace[i].start.Before(trace[j].start)
		})
		labels := make([]string, len(trace))
		for i, row := range trace {
			labels[i] = row.activity
		}
		counts[strings.Join(labels, ",")]++
		total++
	}

	probs := make(map[string]float64, len(counts))
	for variant, count := range counts {
		probs[variant] = float64(count) / float64(total)
	}
	return probs
}

// meanStd computes the sample mean and the sample (n-1) standard deviation.
// With no samples both fall back to the defaults; with a single sample the
// deviation is undefined and falls back.
func meanStd(samples []float64) (float64, float64) {
	if len(samples) == 0 {
		return DefaultMeanSec, DefaultStdSec
	}

	sum := 0.0
	for _, s := range samples {
		sum += s
	}
	mean := sum / float64(len(samples))
	if len(samples) < 2 {
		return mean, DefaultStdSec
	}

	variance := 0.0
	for _, s := range samples {
		variance += (s - mean) * (s - mean)
	}
	variance /= float64(len(samples) - 1)
	return mean, math.Sqrt(variance)
}
