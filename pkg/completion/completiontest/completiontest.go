// Package completiontest provides a scripted, deterministic Gateway for
// exercising the pipeline without a live completion service. Embedders
// can use it in their own suites the same way this repo does.
package completiontest

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/gridscope/gridscope/pkg/chat"
	"github.com/gridscope/gridscope/pkg/completion"
)

// Response is one scripted reply for a step.
type Response struct {
	// Text is returned as the result's free-text output.
	Text string

	// Payload is returned as the result's structured output.
	Payload json.RawMessage

	// Err, when non-nil, is returned from Invoke. If Text or Payload is
	// also set, the corresponding turn is still produced so callers can
	// exercise the partial-progress contract.
	Err error
}

// Invocation records one Invoke call for later assertions.
type Invocation struct {
	Step       string
	HistoryLen int
}

// Gateway replays scripted responses keyed by step name.
//
// Responses for a step are consumed in order; the final response is
// sticky, so re-running an identical pipeline against the same script
// yields identical results. A step with no script fails the invocation.
type Gateway struct {
	mu          sync.Mutex
	scripts     map[string][]Response
	invocations []Invocation
}

// New creates an empty scripted gateway.
func New() *Gateway {
	return &Gateway{scripts: map[string][]Response{}}
}

// Script queues responses for the named step.
func (g *Gateway) Script(step string, responses ...Response) *Gateway {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.scripts[step] = append(g.scripts[step], responses...)
	return g
}

// Invocations returns the Invoke calls seen so far, in order.
func (g *Gateway) Invocations() []Invocation {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]Invocation, len(g.invocations))
	copy(out, g.invocations)
	return out
}

// StepsInvoked returns just the step names, in invocation order.
func (g *Gateway) StepsInvoked() []string {
	invs := g.Invocations()
	names := make([]string, len(invs))
	for i, inv := range invs {
		names[i] = inv.Step
	}
	return names
}

// Invoke implements completion.Gateway.
func (g *Gateway) Invoke(ctx context.Context, step completion.Step, history []chat.Turn) (*completion.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	g.mu.Lock()
	g.invocations = append(g.invocations, Invocation{Step: step.Name, HistoryLen: len(history)})

	queue, ok := g.scripts[step.Name]
	if !ok || len(queue) == 0 {
		g.mu.Unlock()
		return nil, fmt.Errorf("completiontest: no scripted response for step %q", step.Name)
	}

	resp := queue[0]
	if len(queue) > 1 {
		g.scripts[step.Name] = queue[1:]
	}
	g.mu.Unlock()

	result := &completion.Result{Text: resp.Text, Payload: resp.Payload}
	switch {
	case len(resp.Payload) > 0:
		result.NewTurns = []chat.Turn{chat.AssistantPayload(resp.Payload)}
	case resp.Text != "":
		result.NewTurns = []chat.Turn{chat.Assistant(resp.Text)}
	}

	if resp.Err != nil {
		if len(result.NewTurns) == 0 {
			return nil, resp.Err
		}
		return result, resp.Err
	}
	return result, nil
}
