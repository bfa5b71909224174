// Package trace transforms a flat agentic retrieval activity log into a
// structured, navigable session model: token and latency accounting,
// reconstructed iterations, and a top-level processed trace.
//
// Every function in this package is a pure transformation over an
// already-materialized response. Inputs are only read, outputs are freshly
// allocated, and malformed logs degrade gracefully instead of failing: this
// layer visualizes another system's log, it does not validate it.
package trace

import "github.com/foundryiq/agenttrace/types"

// TokenUsage summarizes token consumption per phase of the retrieval run.
// TotalTokens is always TotalInputTokens + TotalOutputTokens + ReasoningTokens.
type TokenUsage struct {
	PlanningInputTokens   int `json:"planning_input_tokens"`
	PlanningOutputTokens  int `json:"planning_output_tokens"`
	SynthesisInputTokens  int `json:"synthesis_input_tokens"`
	SynthesisOutputTokens int `json:"synthesis_output_tokens"`
	ReasoningTokens       int `json:"reasoning_tokens"`
	TotalInputTokens      int `json:"total_input_tokens"`
	TotalOutputTokens     int `json:"total_output_tokens"`
	TotalTokens           int `json:"total_tokens"`
}

// CalculateTokenUsage folds the activity log into a TokenUsage summary.
// Each activity contributes to exactly one bucket based on its variant tag;
// unknown or retrieval variants contribute zero. The fold is associative, so
// input order does not matter.
func CalculateTokenUsage(activities []types.Activity) TokenUsage {
	var usage TokenUsage
	for i := range activities {
		a := &activities[i]
		switch a.Type {
		case types.ActivityModelQueryPlanning:
			usage.PlanningInputTokens += a.InputTokens
			usage.PlanningOutputTokens += a.OutputTokens
		case types.ActivityModelAnswerSynthesis:
			usage.SynthesisInputTokens += a.InputTokens
			usage.SynthesisOutputTokens += a.OutputTokens
		case types.ActivityAgenticReasoning:
			usage.ReasoningTokens += a.ReasoningTokens
		}
	}
	usage.TotalInputTokens = usage.PlanningInputTokens + usage.SynthesisInputTokens
	usage.TotalOutputTokens = usage.PlanningOutputTokens + usage.SynthesisOutputTokens
	usage.TotalTokens = usage.TotalInputTokens + usage.TotalOutputTokens + usage.ReasoningTokens
	return usage
}

// SourceStats accumulates per-knowledge-source call statistics.
type SourceStats struct {
	Calls          int     `json:"calls"`
	TotalDocuments int     `json:"total_documents"`
	AvgElapsedMs   float64 `json:"avg_elapsed_ms"`
}

// PerformanceMetrics summarizes elapsed-time accounting for the run.
// Every activity's elapsed time counts toward TotalElapsedMs; retrieval,
// model, and reasoning activities additionally count toward their bucket.
type PerformanceMetrics struct {
	TotalElapsedMs     int                    `json:"total_elapsed_ms"`
	RetrievalElapsedMs int                    `json:"retrieval_elapsed_ms"`
	ModelElapsedMs     int                    `json:"model_elapsed_ms"`
	ReasoningElapsedMs int                    `json:"reasoning_elapsed_ms"`
	SourceStats        map[string]SourceStats `json:"source_stats"`
}

// GetPerformanceMetrics folds the activity log into PerformanceMetrics.
// Missing elapsedMs and count fields are treated as zero, never as an error.
// The per-source average is updated incrementally per call in input order;
// the final value is the true arithmetic mean of that source's elapsed times
// regardless of order.
func GetPerformanceMetrics(activities []types.Activity) PerformanceMetrics {
	metrics := PerformanceMetrics{
		SourceStats: make(map[string]SourceStats),
	}
	for i := range activities {
		a := &activities[i]
		metrics.TotalElapsedMs += a.ElapsedMs

		switch {
		case a.IsRetrieval():
			metrics.RetrievalElapsedMs += a.ElapsedMs
			stats := metrics.SourceStats[a.KnowledgeSourceName]
			stats.Calls++
			stats.TotalDocuments += a.Count
			stats.AvgElapsedMs = (stats.AvgElapsedMs*float64(stats.Calls-1) + float64(a.ElapsedMs)) / float64(stats.Calls)
			metrics.SourceStats[a.KnowledgeSourceName] = stats
		case a.IsModel():
			metrics.ModelElapsedMs += a.ElapsedMs
		case a.IsReasoning():
			metrics.ReasoningElapsedMs += a.ElapsedMs
		}
	}
	return metrics
}
