package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/foundryiq/agenttrace/citations"
	"github.com/foundryiq/agenttrace/config"
	"github.com/foundryiq/agenttrace/format"
	"github.com/foundryiq/agenttrace/trace"
	"github.com/foundryiq/agenttrace/types"
)

// renderer writes a processed trace as plain text sections: summary,
// iterations, answer, references.
type renderer struct {
	out io.Writer
	cfg config.DisplayConfig
}

func newRenderer(out io.Writer, cfg config.DisplayConfig) *renderer {
	return &renderer{out: out, cfg: cfg}
}

func (r *renderer) Render(t *trace.ProcessedTrace) {
	r.renderSummary(t)
	r.renderIterations(t)
	if t.Reasoning != nil {
		r.renderActivityLine(t.Reasoning)
		fmt.Fprintf(r.out, "  reasoning tokens: %s (effort: %s)\n",
			format.TokenCount(t.Reasoning.ReasoningTokens), t.Reasoning.RetrievalReasoningEffort)
	}
	if t.Synthesis != nil {
		r.renderActivityLine(t.Synthesis)
	}
	r.renderAnswer(t)
	r.renderReferences(t)
}

const (
	ansiReset  = "\x1b[0m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiRed    = "\x1b[31m"
)

func (r *renderer) statusLine(s trace.Status) string {
	line := fmt.Sprintf("Status: %s", s)
	if !r.cfg.Color {
		return line
	}
	color := ansiGreen
	switch s {
	case trace.StatusPartial:
		color = ansiYellow
	case trace.StatusFailed:
		color = ansiRed
	}
	return color + line + ansiReset
}

func (r *renderer) renderSummary(t *trace.ProcessedTrace) {
	fmt.Fprintln(r.out, r.statusLine(t.Status))
	fmt.Fprintf(r.out, "Iterations: %d  Results: %d  Tokens: %s  Elapsed: %s\n",
		t.Summary.IterationCount,
		t.Summary.TotalResultsCount,
		format.TokenCount(t.Summary.TokenUsage.TotalTokens),
		format.ElapsedTime(t.Summary.Performance.TotalElapsedMs),
	)
	names := make([]string, 0, len(t.Summary.Performance.SourceStats))
	for name := range t.Summary.Performance.SourceStats {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		stats := t.Summary.Performance.SourceStats[name]
		fmt.Fprintf(r.out, "  %s: %d calls, %d docs, avg %s\n",
			name, stats.Calls, stats.TotalDocuments, format.ElapsedTime(int(stats.AvgElapsedMs)))
	}
	fmt.Fprintln(r.out)
}

func (r *renderer) renderIterations(t *trace.ProcessedTrace) {
	for _, it := range t.Iterations {
		fmt.Fprintf(r.out, "--- Iteration %d ---\n", it.ID)
		if it.Planning != nil {
			r.renderActivityLine(it.Planning)
		}
		for _, ret := range it.Retrievals {
			r.renderActivityLine(ret)
			if q := ret.SearchQuery(); q != "" {
				fmt.Fprintf(r.out, "  query: %q\n", q)
			}
		}
		fmt.Fprintln(r.out)
	}
}

func (r *renderer) renderActivityLine(a *types.Activity) {
	phase := format.PhaseInfo(a.Type)
	line := fmt.Sprintf("[%s] %s", phase.Label, format.ElapsedTime(a.ElapsedMs))
	if a.IsRetrieval() {
		line += fmt.Sprintf("  %s (%s): %d docs",
			a.KnowledgeSourceName, format.SourceTypeLabel(string(a.Type)), a.Count)
	}
	if a.Error != nil {
		line += fmt.Sprintf("  ERROR %s: %s", a.Error.Code, a.Error.Message)
	}
	fmt.Fprintln(r.out, line)
}

func (r *renderer) renderAnswer(t *trace.ProcessedTrace) {
	if t.AnswerText == "" {
		return
	}
	fmt.Fprintln(r.out, "=== Answer ===")
	if !r.cfg.ShowCitations {
		fmt.Fprintln(r.out, citations.StripInline(t.AnswerText))
		fmt.Fprintln(r.out)
		return
	}

	segments := citations.Link(t.AnswerText, t.FinalReferences, activitiesOf(t))
	var b strings.Builder
	for _, seg := range segments {
		switch seg.Kind {
		case citations.SegmentText:
			b.WriteString(seg.Text)
		case citations.SegmentCitation:
			ids := make([]string, 0, len(seg.Citations))
			for _, c := range seg.Citations {
				ids = append(ids, c.RefID)
			}
			b.WriteString("[" + strings.Join(ids, ",") + "]")
		}
	}
	fmt.Fprintln(r.out, b.String())
	fmt.Fprintln(r.out)
}

func (r *renderer) renderReferences(t *trace.ProcessedTrace) {
	if len(t.FinalReferences) == 0 {
		return
	}
	fmt.Fprintln(r.out, "=== References ===")
	for i := range t.FinalReferences {
		ref := &t.FinalReferences[i]
		line := fmt.Sprintf("[%s] %s (%s)", ref.ID, ref.DisplayTitle(), format.SourceTypeLabel(string(ref.Type)))
		if ref.RerankerScore != nil {
			line += fmt.Sprintf(" score=%.2f", *ref.RerankerScore)
		}
		fmt.Fprintln(r.out, line)
		if r.cfg.ShowSourceData {
			if snippet := ref.Snippet(); snippet != "" {
				if runes := []rune(snippet); r.cfg.MaxSnippetLen > 0 && len(runes) > r.cfg.MaxSnippetLen {
					snippet = string(runes[:r.cfg.MaxSnippetLen]) + "..."
				}
				fmt.Fprintf(r.out, "  %s\n", snippet)
			}
		}
	}
}

// activitiesOf flattens the reconstructed iterations back to the activity
// records needed for citation resolution.
func activitiesOf(t *trace.ProcessedTrace) []types.Activity {
	var acts []types.Activity
	for _, it := range t.Iterations {
		if it.Planning != nil {
			acts = append(acts, *it.Planning)
		}
		for _, ret := range it.Retrievals {
			acts = append(acts, *ret)
		}
	}
	if t.Reasoning != nil {
		acts = append(acts, *t.Reasoning)
	}
	if t.Synthesis != nil {
		acts = append(acts, *t.Synthesis)
	}
	return acts
}
