package monitor

import (
	"math"
	"sort"

	"github.com/riskfuse/riskfuse/internal/domain/model"
)

// MetricsSnapshot is the derived summary served by the metrics endpoint.
// It is recomputed per query and never persisted.
type MetricsSnapshot struct {
	PredictionCount  int                         `json:"prediction_count"`
	ErrorCount       int                         `json:"error_count"`
	AgreementRate    float64                     `json:"agreement_rate"`
	ErrorRate        float64                     `json:"error_rate"`
	MeanLatency      float64                     `json:"mean_latency"`
	P95Latency       float64                     `json:"p95_latency"`
	ErrorsByCategory map[model.ErrorCategory]int `json:"errors_by_category"`
	Collaborators    CollaboratorStatus          `json:"collaborators"`
}

// Summarize computes summary statistics over a store snapshot. It is a pure
// function of its input: the same snapshot always yields the same result,
// and an empty snapshot yields zero rates rather than NaN or an error.
//
// Latency statistics cover predictions only; errors carry no completed
// latency and contribute solely to error counts.
func Summarize(snap Snapshot) MetricsSnapshot {
	out := MetricsSnapshot{
		PredictionCount:  len(snap.Predictions),
		ErrorCount:       len(snap.Errors),
		ErrorsByCategory: make(map[model.ErrorCategory]int),
		Collaborators:    snap.Collaborators,
	}

	for _, e := range snap.Errors {
		out.ErrorsByCategory[e.Category]++
	}

	if total := out.PredictionCount + out.ErrorCount; total > 0 {
		out.ErrorRate = float64(out.ErrorCount) / float64(total)
	}

	if out.PredictionCount == 0 {
		return out
	}

	agreed := 0
	sum := 0.0
	latencies := make([]float64, 0, out.PredictionCount)
	for _, p := range snap.Predictions {
		if p.Agreement() {
			agreed++
		}
		sum += p.Latency
		latencies = append(latencies, p.Latency)
	}

	out.AgreementRate = float64(agreed) / float64(out.PredictionCount)
	out.MeanLatency = sum / float64(out.PredictionCount)
	out.P95Latency = percentile(latencies, 0.95)
	return out
}

// percentile returns the p-quantile of values using the nearest-rank
// method. values is copied, not mutated.
func percentile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	rank := int(math.Ceil(p*float64(len(sorted)))) - 1
	if rank < 0 {
		rank = 0
	}
	if rank >= len(sorted) {
		rank = len(sorted) - 1
	}
	return sorted[rank]
}
