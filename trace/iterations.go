package trace

import (
	"sort"

	"github.com/foundryiq/agenttrace/types"
)

// Iteration is one reconstructed round of the retrieval engine's execution:
// an optional planning phase followed by its fan-out retrieval calls.
// ID is a 1-based sequence number assigned in emission order, unrelated to
// activity IDs. Reasoning and Synthesis exist on the round model for
// completeness but the reconstruction routes both to the trace level, so
// they remain nil here.
type Iteration struct {
	ID         int               `json:"id"`
	Planning   *types.Activity   `json:"planning,omitempty"`
	Retrievals []*types.Activity `json:"retrievals"`
	Reasoning  *types.Activity   `json:"reasoning,omitempty"`
	Synthesis  *types.Activity   `json:"synthesis,omitempty"`
}

// ReconstructIterations recovers the logical round structure from the flat
// activity log. The engine executes iteratively (plan, fan out searches,
// optionally re-plan, reason, answer) but only emits a flat sequence; round
// boundaries are recovered from the same two signals the engine uses to
// delimit them: planning starts a round, reasoning ends the round-collection
// phase.
//
// Activities are sorted ascending by ID before grouping — the source system
// assigns IDs in chronological order but does not guarantee the slice arrives
// pre-sorted. The returned reasoning and synthesis activities are trace-level
// slots; when multiple synthesis activities appear, the last one wins.
//
// The pass never fails: retrievals with no preceding planning open a
// planner-less round, and a reasoning activity still closes an empty or
// partial round. Malformed or incomplete logs degrade to whatever structure
// can be recovered.
func ReconstructIterations(activities []types.Activity) (iterations []Iteration, reasoning, synthesis *types.Activity) {
	ordered := make([]types.Activity, len(activities))
	copy(ordered, activities)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].ID < ordered[j].ID
	})

	var current *Iteration
	closeCurrent := func() {
		if current != nil {
			iterations = append(iterations, *current)
			current = nil
		}
	}

	for i := range ordered {
		a := &ordered[i]
		switch {
		case a.Type == types.ActivityModelQueryPlanning:
			closeCurrent()
			current = &Iteration{Planning: a, Retrievals: []*types.Activity{}}
		case a.IsRetrieval():
			if current == nil {
				current = &Iteration{Retrievals: []*types.Activity{}}
			}
			current.Retrievals = append(current.Retrievals, a)
		case a.IsReasoning():
			closeCurrent()
			reasoning = a
		case a.Type == types.ActivityModelAnswerSynthesis:
			synthesis = a
		}
	}
	closeCurrent()

	for i := range iterations {
		iterations[i].ID = i + 1
	}
	return iterations, reasoning, synthesis
}
