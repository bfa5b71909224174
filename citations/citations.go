// Package citations parses inline citation markers embedded in synthesized
// answer text and links them to the reference records that back them.
//
// A marker has the literal form [ref_id:N] where N is an integer matching a
// Reference.ID. Markers are never dropped: an unresolved ID still yields a
// renderable citation so the reader can tell content was elided.
package citations

import (
	"regexp"
	"strings"

	"github.com/foundryiq/agenttrace/types"
)

var markerRe = regexp.MustCompile(`\[ref_id:(\d+)\]`)

// Marker is one inline citation occurrence. Start and End are the half-open
// character offsets of the full marker text, brackets included, in the
// original string.
type Marker struct {
	RefID string
	Start int
	End   int
}

// ParseInline scans text left to right for all non-overlapping citation
// markers.
func ParseInline(text string) []Marker {
	var markers []Marker
	for _, loc := range markerRe.FindAllStringSubmatchIndex(text, -1) {
		markers = append(markers, Marker{
			RefID: text[loc[2]:loc[3]],
			Start: loc[0],
			End:   loc[1],
		})
	}
	return markers
}

// HasInline reports whether text contains at least one citation marker.
func HasInline(text string) bool {
	return markerRe.MatchString(text)
}

// StripInline removes every marker substring verbatim, leaving all other
// characters untouched.
func StripInline(text string) string {
	return markerRe.ReplaceAllString(text, "")
}

// SegmentKind discriminates segment variants.
type SegmentKind string

const (
	SegmentText     SegmentKind = "text"
	SegmentCitation SegmentKind = "citation"
)

// Citation is one resolved (or unresolvable) citation inside a citation
// segment. Reference and Activity are nil when the ID did not match; the
// RefID is still rendered as a numbered fallback.
type Citation struct {
	RefID     string
	Reference *types.Reference
	Activity  *types.Activity
}

// Resolved reports whether the citation matched a reference record.
func (c Citation) Resolved() bool {
	return c.Reference != nil
}

// Segment is one renderable span of answer text: either plain text or a group
// of adjacent citations with no visible text of its own.
type Segment struct {
	Kind      SegmentKind
	Text      string
	Citations []Citation
}

// group merges consecutive markers into one group when the next marker starts
// exactly where the previous one ends — zero characters between them,
// whitespace included. Anything looser splits the group.
func group(markers []Marker) [][]Marker {
	var groups [][]Marker
	for _, m := range markers {
		if n := len(groups); n > 0 && groups[n-1][len(groups[n-1])-1].End == m.Start {
			groups[n-1] = append(groups[n-1], m)
			continue
		}
		groups = append(groups, []Marker{m})
	}
	return groups
}

// BuildSegments splits text into alternating text and citation segments.
// Text outside marker spans is preserved exactly; citation segments carry the
// grouped marker IDs unresolved. Use Link to attach reference records.
func BuildSegments(text string) []Segment {
	groups := group(ParseInline(text))
	if len(groups) == 0 {
		if text == "" {
			return nil
		}
		return []Segment{{Kind: SegmentText, Text: text}}
	}

	var segments []Segment
	pos := 0
	for _, g := range groups {
		if start := g[0].Start; start > pos {
			segments = append(segments, Segment{Kind: SegmentText, Text: text[pos:start]})
		}
		cites := make([]Citation, 0, len(g))
		for _, m := range g {
			cites = append(cites, Citation{RefID: m.RefID})
		}
		segments = append(segments, Segment{Kind: SegmentCitation, Citations: cites})
		pos = g[len(g)-1].End
	}
	if pos < len(text) {
		segments = append(segments, Segment{Kind: SegmentText, Text: text[pos:]})
	}
	return segments
}

// Link builds the segments for text and resolves each citation against the
// reference list and the activity log. Unresolved IDs stay in the output.
func Link(text string, references []types.Reference, activities []types.Activity) []Segment {
	refByID := make(map[string]*types.Reference, len(references))
	for i := range references {
		refByID[references[i].ID] = &references[i]
	}
	actByID := make(map[int]*types.Activity, len(activities))
	for i := range activities {
		actByID[activities[i].ID] = &activities[i]
	}

	segments := BuildSegments(text)
	for si := range segments {
		for ci := range segments[si].Citations {
			c := &segments[si].Citations[ci]
			if ref, ok := refByID[c.RefID]; ok {
				c.Reference = ref
				c.Activity = actByID[ref.ActivitySource]
			}
		}
	}
	return segments
}

// PlainText concatenates the text segments, ignoring citation segments.
// For any input this equals StripInline of the original text.
func PlainText(segments []Segment) string {
	var b strings.Builder
	for _, s := range segments {
		if s.Kind == SegmentText {
			b.WriteString(s.Text)
		}
	}
	return b.String()
}
