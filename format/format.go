// Package format provides pure display-formatting utilities for trace
// rendering: elapsed time, token counts, and the fixed label tables for
// source types and activity phases.
//
// The threshold values are a display contract, not an implementation detail;
// changing them breaks the rendered UI strings.
package format

import (
	"fmt"
	"strconv"

	"github.com/foundryiq/agenttrace/types"
)

// ElapsedTime renders a millisecond duration for display.
// Below one second it stays in milliseconds, below one minute it becomes
// one-decimal seconds, beyond that whole minutes and seconds.
func ElapsedTime(ms int) string {
	switch {
	case ms < 1000:
		return fmt.Sprintf("%dms", ms)
	case ms < 60000:
		return fmt.Sprintf("%.1fs", float64(ms)/1000)
	default:
		return fmt.Sprintf("%dm %ds", ms/60000, (ms%60000)/1000)
	}
}

// TokenCount renders a token count for display: raw below 1000, one-decimal
// thousands below one million, two-decimal millions beyond.
func TokenCount(n int) string {
	switch {
	case n < 1000:
		return strconv.Itoa(n)
	case n < 1000000:
		return fmt.Sprintf("%.1fK", float64(n)/1000)
	default:
		return fmt.Sprintf("%.2fM", float64(n)/1000000)
	}
}

// sourceTypeLabels maps a source variant tag to its human label.
var sourceTypeLabels = map[string]string{
	string(types.ActivitySearchIndex):       "Search Index",
	string(types.ActivityAzureBlob):         "Azure Blob",
	string(types.ActivityWeb):               "Web",
	string(types.ActivityRemoteSharePoint):  "SharePoint (Remote)",
	string(types.ActivityIndexedSharePoint): "SharePoint (Indexed)",
	string(types.ActivityIndexedOneLake):    "OneLake",
}

// SourceTypeLabel returns the human label for a source variant tag.
// The tag is the shared discriminant used by both retrieval activities and
// reference records; unknown tags map to "Other".
func SourceTypeLabel(tag string) string {
	if label, ok := sourceTypeLabels[tag]; ok {
		return label
	}
	return "Other"
}

// Tone is a UI rendering hint attached to a phase.
type Tone string

const (
	ToneModel     Tone = "model"
	ToneRetrieval Tone = "retrieval"
	ToneReasoning Tone = "reasoning"
	ToneNeutral   Tone = "neutral"
)

// Phase describes how an activity type is presented.
type Phase struct {
	Label       string
	Tone        Tone
	Description string
}

// phaseDefault is returned for unrecognized activity types.
var phaseDefault = Phase{Label: "Processing", Tone: ToneNeutral, Description: "Processing step"}

// phaseInfo maps each activity type to its presentation entry.
var phaseInfo = map[types.ActivityType]Phase{
	types.ActivityModelQueryPlanning: {
		Label:       "Query Planning",
		Tone:        ToneModel,
		Description: "Model analyzed the question and planned retrieval queries",
	},
	types.ActivitySearchIndex: {
		Label:       "Index Search",
		Tone:        ToneRetrieval,
		Description: "Queried an Azure AI Search index",
	},
	types.ActivityAzureBlob: {
		Label:       "Blob Search",
		Tone:        ToneRetrieval,
		Description: "Queried an Azure Blob knowledge source",
	},
	types.ActivityWeb: {
		Label:       "Web Search",
		Tone:        ToneRetrieval,
		Description: "Queried the web",
	},
	types.ActivityRemoteSharePoint: {
		Label:       "SharePoint Search",
		Tone:        ToneRetrieval,
		Description: "Queried a remote SharePoint site",
	},
	types.ActivityIndexedSharePoint: {
		Label:       "SharePoint Search",
		Tone:        ToneRetrieval,
		Description: "Queried an indexed SharePoint source",
	},
	types.ActivityIndexedOneLake: {
		Label:       "OneLake Search",
		Tone:        ToneRetrieval,
		Description: "Queried an indexed OneLake source",
	},
	types.ActivityAgenticReasoning: {
		Label:       "Reasoning",
		Tone:        ToneReasoning,
		Description: "Model reasoned over the retrieved results",
	},
	types.ActivityModelAnswerSynthesis: {
		Label:       "Answer Synthesis",
		Tone:        ToneModel,
		Description: "Model synthesized the final answer",
	},
}

// PhaseInfo returns the presentation entry for an activity type.
// Unknown types get a generic fallback; this never panics on surprise tags.
func PhaseInfo(t types.ActivityType) Phase {
	if p, ok := phaseInfo[t]; ok {
		return p
	}
	return phaseDefault
}
