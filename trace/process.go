package trace

import (
	"context"

	"go.uber.org/zap"

	"github.com/foundryiq/agenttrace/types"
)

// Status classifies the outcome of a retrieval run as surfaced by its log.
type Status string

const (
	StatusSuccess Status = "success"
	StatusPartial Status = "partial"
	StatusFailed  Status = "failed"
)

// Summary aggregates the run-level statistics derived from the activity log.
type Summary struct {
	TokenUsage        TokenUsage         `json:"token_usage"`
	Performance       PerformanceMetrics `json:"performance"`
	IterationCount    int                `json:"iteration_count"`
	TotalResultsCount int                `json:"total_results_count"`
}

// ProcessedTrace is the presentation-ready session model derived from one
// retrieval response. All fields are freshly allocated per call; the input
// response is never mutated.
type ProcessedTrace struct {
	Summary         Summary           `json:"summary"`
	Iterations      []Iteration       `json:"iterations"`
	Reasoning       *types.Activity   `json:"reasoning,omitempty"`
	Synthesis       *types.Activity   `json:"synthesis,omitempty"`
	FinalReferences []types.Reference `json:"final_references"`
	AnswerText      string            `json:"answer_text"`
	HasError        bool              `json:"has_error"`
	Status          Status            `json:"status"`
}

// Process derives the full presentation model from a retrieval response:
// token and latency summaries, reconstructed iterations, the final answer
// text, and the surfaced error status. It never fails; upstream-reported
// activity errors are propagated structurally, not interpreted.
func Process(resp *types.RetrievalResponse) *ProcessedTrace {
	iterations, reasoning, synthesis := ReconstructIterations(resp.Activity)

	totalResults := 0
	hasError := false
	for i := range resp.Activity {
		a := &resp.Activity[i]
		if a.IsRetrieval() {
			totalResults += a.Count
		}
		if a.Error != nil {
			hasError = true
		}
	}

	status := StatusSuccess
	if hasError {
		status = StatusPartial
		if len(resp.References) == 0 {
			status = StatusFailed
		}
	}

	return &ProcessedTrace{
		Summary: Summary{
			TokenUsage:        CalculateTokenUsage(resp.Activity),
			Performance:       GetPerformanceMetrics(resp.Activity),
			IterationCount:    len(iterations),
			TotalResultsCount: totalResults,
		},
		Iterations:      iterations,
		Reasoning:       reasoning,
		Synthesis:       synthesis,
		FinalReferences: resp.References,
		AnswerText:      resp.AnswerText(),
		HasError:        hasError,
		Status:          status,
	}
}

// Processor wraps Process with structured logging. The zero-config processor
// logs nowhere; pass WithLogger to observe reconstruction stats.
type Processor struct {
	logger *zap.Logger
}

// ProcessorOption configures a Processor.
type ProcessorOption func(*Processor)

// WithLogger sets a custom zap logger. Defaults to zap.NewNop().
func WithLogger(logger *zap.Logger) ProcessorOption {
	return func(p *Processor) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewProcessor creates a Processor.
func NewProcessor(opts ...ProcessorOption) *Processor {
	p := &Processor{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Process derives the presentation model and logs the reconstruction outcome.
func (p *Processor) Process(resp *types.RetrievalResponse) *ProcessedTrace {
	return p.ProcessContext(context.Background(), resp)
}

// ProcessContext is like Process but annotates the log entry with the trace
// and run IDs carried by ctx, when present.
func (p *Processor) ProcessContext(ctx context.Context, resp *types.RetrievalResponse) *ProcessedTrace {
	logger := p.logger
	if id, ok := types.TraceID(ctx); ok {
		logger = logger.With(zap.String("trace_id", id))
	}
	if id, ok := types.RunID(ctx); ok {
		logger = logger.With(zap.String("run_id", id))
	}

	t := Process(resp)
	logger.Debug("processed retrieval trace",
		zap.Int("activities", len(resp.Activity)),
		zap.Int("iterations", t.Summary.IterationCount),
		zap.Int("references", len(t.FinalReferences)),
		zap.Int("total_results", t.Summary.TotalResultsCount),
		zap.Int("total_tokens", t.Summary.TokenUsage.TotalTokens),
		zap.String("status", string(t.Status)),
	)
	return t
}
