// Package metrics provides Prometheus observability metrics for the hospital
// planner. It includes Critical and Important metrics for business and
// operational visibility.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry is the custom prometheus registry for our application
var Registry = prometheus.NewRegistry()

// factory allows us to register metrics to our custom Registry directly
var factory = promauto.With(Registry)

// =============================================================================
// CRITICAL METRICS - Business Impact Visibility
// =============================================================================

// CasesPlannedTotal counts admission decisions returned by planners.
var CasesPlannedTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "planner",
	Name:      "cases_planned_total",
	Help:      "Total admission decisions returned, by planner variant",
}, []string{"planner"})

// CasesDeferredTotal counts cases left unplanned on a planning call.
var CasesDeferredTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "planner",
	Name:      "cases_deferred_total",
	Help:      "Total cases left unplanned for a later call, by planner variant",
}, []string{"planner"})

// BacklogSize tracks the pending-case backlog seen at the last planning call.
var BacklogSize = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "planner",
	Name:      "backlog_size",
	Help:      "Pending plus replannable cases observed at the last planning call",
})

// DailyQuota tracks the most recently computed day-1 admission quota.
var DailyQuota = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "planner",
	Name:      "daily_quota",
	Help:      "Most recently computed day-1 admission quota after clamping",
})

// BanditReward tracks the reward observed at each nightly bandit update.
var BanditReward = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "bandit",
	Name:      "reward",
	Help:      "Reward observed at the last nightly staffing update",
})

// BanditActionsTotal counts staffing actions chosen, by OR level.
var BanditActionsTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "bandit",
	Name:      "actions_total",
	Help:      "Staffing actions chosen, broken down by OR level",
}, []string{"level"})

// OptimizerBestFitness tracks the best fitness seen so far in a pipeline run.
var OptimizerBestFitness = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "optimizer",
	Name:      "best_fitness",
	Help:      "Best admission-wait fitness observed so far in the current run",
})

// OptimizerGenerations counts genetic-algorithm generations completed.
var OptimizerGenerations = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "optimizer",
	Name:      "generations_total",
	Help:      "Genetic-algorithm generations completed",
})

// OptimizerEvaluationsTotal counts fitness evaluations, by pipeline stage.
var OptimizerEvaluationsTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "optimizer",
	Name:      "evaluations_total",
	Help:      "Simulation fitness evaluations performed, by stage",
}, []string{"stage"})

// =============================================================================
// IMPORTANT METRICS - Operational Health
// =============================================================================

// ExtractorErrorsTotal tracks event-log parse errors by error type.
var ExtractorErrorsTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "extractor",
	Name:      "errors_total",
	Help:      "Total event-log parse errors by error type",
}, []string{"error_type"})

// ExtractorRowsTotal tracks event-log rows successfully parsed.
var ExtractorRowsTotal = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "extractor",
	Name:      "rows_total",
	Help:      "Total event-log rows successfully parsed",
})

// ExtractorActivities tracks the number of distinct activities calibrated.
var ExtractorActivities = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "extractor",
	Name:      "activities",
	Help:      "Distinct activity labels found in the event log",
})

// ExtractorDurationSeconds tracks time to extract calibration parameters.
var ExtractorDurationSeconds = factory.NewHistogram(prometheus.HistogramOpts{
	Namespace: "extractor",
	Name:      "duration_seconds",
	Help:      "Time taken to extract calibration parameters from the event log",
	Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
})

// =============================================================================
// Helper Functions
// =============================================================================

// ResetPlannerGauges resets all planner gauges before a new run.
func ResetPlannerGauges() {
	BacklogSize.Set(0)
	DailyQuota.Set(0)
	BanditReward.Set(0)
	OptimizerBestFitness.Set(0)
	ExtractorActivities.Set(0)
}
