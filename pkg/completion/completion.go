// Package completion defines the boundary between the pipeline and the
// completion service that performs language generation and structured
// extraction. The pipeline only ever talks to a Gateway; concrete
// adapters (and a scripted test double) live in subpackages.
package completion

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/gridscope/gridscope/pkg/chat"
)

var (
	// ErrSchemaViolation indicates a step's output did not match its
	// declared shape (e.g. the classifier returned free text instead of a
	// label, or a plot payload omitted a required field).
	ErrSchemaViolation = errors.New("completion output violates declared schema")

	// ErrUpstreamUnavailable indicates the completion service could not
	// be reached or timed out. Never retried inside the pipeline.
	ErrUpstreamUnavailable = errors.New("completion service unavailable")
)

// Capability names a facility a step may use while generating.
type Capability string

const (
	// CapabilityRetrieval lets the step ground its answer in retrieved
	// documents.
	CapabilityRetrieval Capability = "retrieval"

	// CapabilityCodeExecution lets the step run code while answering,
	// e.g. to aggregate a dataset before describing it.
	CapabilityCodeExecution Capability = "code-execution"
)

// Step configures one invocation of the completion service.
type Step struct {
	// Name identifies the step in logs and in scripted test gateways.
	Name string

	// Instructions is the behavioral prompt for the step.
	Instructions string

	// Capabilities the step is allowed to use.
	Capabilities []Capability

	// Schema, when non-nil, is the JSON schema the step's output must
	// conform to. A gateway that cannot produce a conforming payload
	// fails with ErrSchemaViolation.
	Schema json.RawMessage
}

// Structured reports whether the step declared an output schema.
func (s Step) Structured() bool {
	return len(s.Schema) > 0
}

// Result is the product of one gateway invocation.
type Result struct {
	// NewTurns are the turns produced by the invocation, in order. The
	// caller appends them to its log; see the Gateway contract.
	NewTurns []chat.Turn

	// Text is the free-text output of unstructured steps.
	Text string

	// Payload is the raw JSON output of structured steps.
	Payload json.RawMessage
}

// Gateway invokes a named step against the completion service with the
// conversation history accumulated so far.
//
// Contract: implementations return the turns they produced even when
// they also return an error, so callers can append partial progress to
// the log before acting on the failure. Errors are ErrSchemaViolation
// or ErrUpstreamUnavailable (wrapped); retries, if any, belong behind
// the implementation, never to the caller.
type Gateway interface {
	Invoke(ctx context.Context, step Step, history []chat.Turn) (*Result, error)
}
