// Package agenttrace provides a top-level convenience entry point for
// processing agentic retrieval traces with minimal boilerplate.
//
// Usage:
//
//	import "github.com/foundryiq/agenttrace"
//
//	resp, err := agenttrace.Parse(body)
//	processed := agenttrace.Process(resp)
//
// This is a thin wrapper around [types.ParseRetrievalResponse] and
// [trace.Process]; use the subpackages directly when you need the
// aggregators, the citation linker, or the formatters on their own.
package agenttrace

import (
	"github.com/foundryiq/agenttrace/trace"
	"github.com/foundryiq/agenttrace/types"
)

// Parse decodes the JSON body of a retrieval call.
func Parse(data []byte) (*types.RetrievalResponse, error) {
	return types.ParseRetrievalResponse(data)
}

// Process derives the presentation-ready session model from a response.
func Process(resp *types.RetrievalResponse) *trace.ProcessedTrace {
	return trace.Process(resp)
}
