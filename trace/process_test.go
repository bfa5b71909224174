package trace

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"github.com/foundryiq/agenttrace/types"
)

func sampleResponse() *types.RetrievalResponse {
	return &types.RetrievalResponse{
		Response: []types.ResponseMessage{
			{Role: types.RoleAssistant, Content: []types.ContentPart{
				{Type: "text", Text: "Tents sleep four. [ref_id:0]"},
			}},
		},
		Activity: []types.Activity{
			{ID: 1, Type: types.ActivityModelQueryPlanning, ElapsedMs: 800, InputTokens: 1000, OutputTokens: 50},
			{ID: 2, Type: types.ActivitySearchIndex, KnowledgeSourceName: "products", Count: 5, ElapsedMs: 200},
			{ID: 3, Type: types.ActivityModelAnswerSynthesis, ElapsedMs: 600, InputTokens: 2000, OutputTokens: 150},
		},
		References: []types.Reference{
			{ID: "0", Type: types.ReferenceSearchIndex, ActivitySource: 2, DocKey: "product-17"},
		},
	}
}

func TestProcess(t *testing.T) {
	t.Parallel()

	resp := sampleResponse()
	processed := Process(resp)

	assert.Equal(t, StatusSuccess, processed.Status)
	assert.False(t, processed.HasError)
	assert.Equal(t, 1, processed.Summary.IterationCount)
	assert.Equal(t, 5, processed.Summary.TotalResultsCount)
	assert.Equal(t, 3200, processed.Summary.TokenUsage.TotalTokens)
	assert.Equal(t, 1600, processed.Summary.Performance.TotalElapsedMs)
	assert.Equal(t, "Tents sleep four. [ref_id:0]", processed.AnswerText)
	require.Len(t, processed.FinalReferences, 1)
	require.NotNil(t, processed.Synthesis)
	assert.Nil(t, processed.Reasoning)
}

func TestProcess_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	resp := sampleResponse()
	before := resp.Activity[0].ID
	firstType := resp.Activity[0].Type

	_ = Process(resp)
	_ = Process(resp)

	assert.Equal(t, before, resp.Activity[0].ID)
	assert.Equal(t, firstType, resp.Activity[0].Type)
	assert.Len(t, resp.Activity, 3)
}

func TestProcess_Status(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		activities []types.Activity
		references []types.Reference
		wantStatus Status
		wantError  bool
	}{
		{
			name: "no errors",
			activities: []types.Activity{
				{ID: 1, Type: types.ActivitySearchIndex, Count: 1},
			},
			references: []types.Reference{{ID: "0", ActivitySource: 1}},
			wantStatus: StatusSuccess,
		},
		{
			name: "error with references is partial",
			activities: []types.Activity{
				{ID: 1, Type: types.ActivitySearchIndex, Count: 1},
				{ID: 2, Type: types.ActivityWeb, Error: &types.ActivityError{Code: "Timeout", Message: "web source timed out"}},
			},
			references: []types.Reference{{ID: "0", ActivitySource: 1}},
			wantStatus: StatusPartial,
			wantError:  true,
		},
		{
			name: "error with no references is failed",
			activities: []types.Activity{
				{ID: 1, Type: types.ActivitySearchIndex, Error: &types.ActivityError{Code: "Forbidden", Message: "access denied"}},
			},
			wantStatus: StatusFailed,
			wantError:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			processed := Process(&types.RetrievalResponse{
				Activity:   tt.activities,
				References: tt.references,
			})
			assert.Equal(t, tt.wantStatus, processed.Status)
			assert.Equal(t, tt.wantError, processed.HasError)
		})
	}
}

func TestProcess_EmptyResponse(t *testing.T) {
	t.Parallel()

	processed := Process(&types.RetrievalResponse{})

	assert.Equal(t, StatusSuccess, processed.Status)
	assert.Equal(t, 0, processed.Summary.IterationCount)
	assert.Equal(t, "", processed.AnswerText)
	assert.Empty(t, processed.Iterations)
}

func TestProcessor_MatchesProcess(t *testing.T) {
	t.Parallel()

	resp := sampleResponse()
	direct := Process(resp)
	logged := NewProcessor(WithLogger(zaptest.NewLogger(t))).Process(resp)

	assert.Equal(t, direct, logged)
}

func TestProcessorContext_LogsCorrelationIDs(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.DebugLevel)
	p := NewProcessor(WithLogger(zap.New(core)))

	ctx := types.WithTraceID(context.Background(), "trace-7")
	ctx = types.WithRunID(ctx, "run-42")
	p.ProcessContext(ctx, sampleResponse())

	entries := logs.All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "trace-7", fields["trace_id"])
	assert.Equal(t, "run-42", fields["run_id"])
	assert.Equal(t, "success", fields["status"])
}

func TestProcessorContext_MatchesProcess(t *testing.T) {
	t.Parallel()

	resp := sampleResponse()
	p := NewProcessor()
	assert.Equal(t, Process(resp), p.ProcessContext(context.Background(), resp))
}

func TestProcessor_DefaultsToNopLogger(t *testing.T) {
	t.Parallel()

	p := NewProcessor()
	require.NotNil(t, p)
	assert.NotPanics(t, func() { p.Process(sampleResponse()) })
}
