// Package types defines the wire-level data model for agentic retrieval
// responses: the activity log, the reference list, and the response messages.
// This package has ZERO dependencies on other agenttrace packages to avoid
// circular imports. Field names and type tags follow the retrieval API
// contract byte-for-byte.
package types

// ActivityType discriminates the variants of an activity record.
type ActivityType string

const (
	ActivityModelQueryPlanning   ActivityType = "modelQueryPlanning"
	ActivitySearchIndex          ActivityType = "searchIndex"
	ActivityAzureBlob            ActivityType = "azureBlob"
	ActivityWeb                  ActivityType = "web"
	ActivityRemoteSharePoint     ActivityType = "remoteSharePoint"
	ActivityIndexedSharePoint    ActivityType = "indexedSharePoint"
	ActivityIndexedOneLake       ActivityType = "indexedOneLake"
	ActivityAgenticReasoning     ActivityType = "agenticReasoning"
	ActivityModelAnswerSynthesis ActivityType = "modelAnswerSynthesis"
)

// ReasoningEffort is the effort level reported by an agenticReasoning activity.
type ReasoningEffort string

const (
	ReasoningEffortMinimal ReasoningEffort = "minimal"
	ReasoningEffortLow     ReasoningEffort = "low"
	ReasoningEffortMedium  ReasoningEffort = "medium"
	ReasoningEffortHigh    ReasoningEffort = "high"
)

// ActivityError is an upstream-reported failure attached to an activity.
// The library only surfaces it; it never interprets or retries.
type ActivityError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Target  string `json:"target,omitempty"`
}

// SearchArguments carries the query a retrieval activity actually executed.
// Only Search is meaningful across all source variants; Filter is present on
// index-backed sources only.
type SearchArguments struct {
	Search string `json:"search,omitempty"`
	Filter string `json:"filter,omitempty"`
}

// Activity is one logged step of the retrieval engine's execution,
// discriminated by Type. Variant-specific fields are zero-valued on records of
// other variants; consumers must branch on Type, never on field presence.
type Activity struct {
	ID        int            `json:"id"`
	Type      ActivityType   `json:"type"`
	ElapsedMs int            `json:"elapsedMs,omitempty"`
	Error     *ActivityError `json:"error,omitempty"`

	// Retrieval variants (searchIndex, azureBlob, web, remoteSharePoint,
	// indexedSharePoint, indexedOneLake).
	KnowledgeSourceName string           `json:"knowledgeSourceName,omitempty"`
	QueryTime           string           `json:"queryTime,omitempty"`
	Count               int              `json:"count,omitempty"`
	Arguments           *SearchArguments `json:"arguments,omitempty"`

	// modelQueryPlanning and modelAnswerSynthesis.
	InputTokens  int `json:"inputTokens,omitempty"`
	OutputTokens int `json:"outputTokens,omitempty"`

	// agenticReasoning.
	ReasoningTokens          int             `json:"reasoningTokens,omitempty"`
	RetrievalReasoningEffort ReasoningEffort `json:"retrievalReasoningEffort,omitempty"`
}

// IsRetrieval reports whether the activity is a per-source retrieval call.
// The switch is exhaustive over the retrieval variants; unknown tags are false.
func (a *Activity) IsRetrieval() bool {
	switch a.Type {
	case ActivitySearchIndex, ActivityAzureBlob, ActivityWeb,
		ActivityRemoteSharePoint, ActivityIndexedSharePoint, ActivityIndexedOneLake:
		return true
	default:
		return false
	}
}

// IsModel reports whether the activity is a model call (planning or synthesis).
func (a *Activity) IsModel() bool {
	switch a.Type {
	case ActivityModelQueryPlanning, ActivityModelAnswerSynthesis:
		return true
	default:
		return false
	}
}

// IsReasoning reports whether the activity is an agentic reasoning step.
func (a *Activity) IsReasoning() bool {
	return a.Type == ActivityAgenticReasoning
}

// SearchQuery returns the query string this retrieval activity executed,
// or "" when no arguments were recorded.
func (a *Activity) SearchQuery() string {
	if a.Arguments == nil {
		return ""
	}
	return a.Arguments.Search
}
