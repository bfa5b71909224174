package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleResponse = `{
  "response": [
    {
      "role": "assistant",
      "content": [
        {"type": "text", "text": "The Alpine Explorer tent sleeps four people. [ref_id:0]"}
      ]
    }
  ],
  "activity": [
    {
      "id": 0,
      "type": "modelQueryPlanning",
      "elapsedMs": 812,
      "inputTokens": 1420,
      "outputTokens": 96
    },
    {
      "id": 1,
      "type": "searchIndex",
      "knowledgeSourceName": "products-index",
      "queryTime": "2025-06-03T17:42:11Z",
      "count": 5,
      "elapsedMs": 230,
      "arguments": {"search": "alpine explorer tent capacity"}
    },
    {
      "id": 2,
      "type": "agenticReasoning",
      "elapsedMs": 1500,
      "reasoningTokens": 40,
      "retrievalReasoningEffort": "medium"
    },
    {
      "id": 3,
      "type": "modelAnswerSynthesis",
      "elapsedMs": 960,
      "inputTokens": 2200,
      "outputTokens": 310
    }
  ],
  "references": [
    {
      "id": "0",
      "type": "searchIndex",
      "activitySource": 1,
      "docKey": "product-17",
      "rerankerScore": 0.92,
      "sourceData": {"title": "Alpine Explorer Tent", "snippet": "Sleeps 4."}
    }
  ]
}`

func TestParseRetrievalResponse(t *testing.T) {
	t.Parallel()

	resp, err := ParseRetrievalResponse([]byte(sampleResponse))
	require.NoError(t, err)
	require.Len(t, resp.Activity, 4)
	require.Len(t, resp.References, 1)

	planning := resp.Activity[0]
	assert.Equal(t, ActivityModelQueryPlanning, planning.Type)
	assert.Equal(t, 1420, planning.InputTokens)

	search := resp.Activity[1]
	assert.Equal(t, ActivitySearchIndex, search.Type)
	assert.Equal(t, "products-index", search.KnowledgeSourceName)
	assert.Equal(t, 5, search.Count)
	assert.Equal(t, "alpine explorer tent capacity", search.SearchQuery())

	reasoning := resp.Activity[2]
	assert.Equal(t, ReasoningEffortMedium, reasoning.RetrievalReasoningEffort)
	assert.Equal(t, 40, reasoning.ReasoningTokens)

	ref := resp.References[0]
	assert.Equal(t, "0", ref.ID)
	assert.Equal(t, 1, ref.ActivitySource)
	assert.Equal(t, "product-17", ref.DocKey)
	require.NotNil(t, ref.RerankerScore)
	assert.InDelta(t, 0.92, *ref.RerankerScore, 1e-9)
}

func TestParseRetrievalResponse_Malformed(t *testing.T) {
	t.Parallel()

	_, err := ParseRetrievalResponse([]byte(`{"activity": "not a list"}`))
	require.Error(t, err)
	assert.True(t, IsErrorCode(err, ErrMalformedResponse))
}

func TestRetrievalResponse_AnswerText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		messages []ResponseMessage
		want     string
	}{
		{
			name:     "no messages",
			messages: nil,
			want:     "",
		},
		{
			name: "no assistant message",
			messages: []ResponseMessage{
				{Role: RoleUser, Content: []ContentPart{{Type: "text", Text: "hi"}}},
			},
			want: "",
		},
		{
			name: "last assistant message wins",
			messages: []ResponseMessage{
				{Role: RoleAssistant, Content: []ContentPart{{Type: "text", Text: "draft"}}},
				{Role: RoleUser, Content: []ContentPart{{Type: "text", Text: "more"}}},
				{Role: RoleAssistant, Content: []ContentPart{{Type: "text", Text: "final"}}},
			},
			want: "final",
		},
		{
			name: "text parts concatenated, image parts skipped",
			messages: []ResponseMessage{
				{Role: RoleAssistant, Content: []ContentPart{
					{Type: "text", Text: "part one "},
					{Type: "image", Image: &ImageContent{URL: "https://example.com/x.png"}},
					{Type: "text", Text: "part two"},
				}},
			},
			want: "part one part two",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := &RetrievalResponse{Response: tt.messages}
			assert.Equal(t, tt.want, resp.AnswerText())
		})
	}
}
