// Package pipeline routes a user query through the classify → respond →
// evaluate → escalate graph and accumulates the conversation log shared
// by every stage. Each run is a single-threaded sequence of gateway
// invocations; independent runs share no mutable state.
package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/gridscope/gridscope/pkg/chat"
	"github.com/gridscope/gridscope/pkg/completion"
	"github.com/gridscope/gridscope/pkg/plot"
)

// ApprovalFunc supplies the escalation decision: true to escalate to a
// human expert, false to decline. It is synchronous and must always
// answer. Typically a terminal prompt or an automatic policy.
type ApprovalFunc func(offer string) bool

// Pipeline orchestrates runs. Safe for concurrent use: each run owns
// its log and all state lives on the stack of Run.
type Pipeline struct {
	gateway completion.Gateway
	steps   Steps
	approve ApprovalFunc
	logger  *slog.Logger
}

// Option configures a Pipeline created with New.
type Option func(*Pipeline)

// WithSteps replaces the default step configuration.
func WithSteps(steps Steps) Option {
	return func(p *Pipeline) {
		p.steps = steps
	}
}

// WithApproval sets the escalation approval source. Without one, runs
// that reach the escalation offer terminate with the escalationOffer
// outcome and the embedder completes the approval round-trip itself.
func WithApproval(fn ApprovalFunc) Option {
	return func(p *Pipeline) {
		p.approve = fn
	}
}

// WithLogger sets the structured logger. Defaults to a discard logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// New creates a Pipeline around the given completion gateway.
func New(gateway completion.Gateway, opts ...Option) *Pipeline {
	p := &Pipeline{
		gateway: gateway,
		steps:   DefaultSteps(),
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run routes one query through the pipeline and returns exactly one
// terminal outcome. priorHistory may be nil for a fresh conversation.
//
// On a fatal error (the completion service unreachable, or the plot
// responder emitting an invalid spec) the returned outcome is the
// generic failed terminal and the error carries the detail for the
// embedder's logs. Turns appended before the failure remain in effect;
// there is no rollback.
func (p *Pipeline) Run(ctx context.Context, query string, priorHistory []chat.Turn) (Outcome, error) {
	logger := p.logger.With("run", uuid.NewString())

	log := chat.NewLog(priorHistory)
	log.Append(chat.User(query))

	route, err := p.classify(ctx, logger, log)
	if err != nil {
		return failedOutcome(), err
	}
	logger.Debug("query classified", "route", route)

	// The plot route terminates directly with the responder's structured
	// output; the quality gate only judges free-text answers.
	if route == RoutePlot {
		spec, err := p.respondPlot(ctx, logger, log)
		if err != nil {
			return failedOutcome(), err
		}
		return plotOutcome(spec), nil
	}

	if err := p.respondData(ctx, logger, log); err != nil {
		return failedOutcome(), err
	}

	verdict, err := p.evaluate(ctx, logger, log)
	if err != nil {
		return failedOutcome(), err
	}
	logger.Debug("answer evaluated", "verdict", verdict)

	if verdict == VerdictSufficient {
		summary, err := p.summarize(ctx, logger, log)
		if err != nil {
			return failedOutcome(), err
		}
		return summaryOutcome(summary), nil
	}

	return p.escalate(ctx, logger, log)
}

// invoke calls the gateway and appends whatever turns it produced
// before surfacing any error, so partial progress always lands in the
// log in call order.
func (p *Pipeline) invoke(ctx context.Context, step completion.Step, log *chat.Log) (*completion.Result, error) {
	result, err := p.gateway.Invoke(ctx, step, log.Snapshot())
	if result != nil && len(result.NewTurns) > 0 {
		log.Append(result.NewTurns...)
	}
	return result, err
}

func (p *Pipeline) classify(ctx context.Context, logger *slog.Logger, log *chat.Log) (Route, error) {
	result, err := p.invoke(ctx, p.steps.Classifier, log)
	if err != nil {
		// A malformed classification falls through to the data arm; only
		// an unreachable service aborts the run.
		if errors.Is(err, completion.ErrSchemaViolation) {
			logger.Warn("classifier output malformed, taking data route", "err", err)
			return RouteData, nil
		}
		return "", fmt.Errorf("classifying query: %w", err)
	}

	label := result.Text
	if len(result.Payload) > 0 {
		var out struct {
			Label string `json:"label"`
		}
		if err := json.Unmarshal(result.Payload, &out); err == nil {
			label = out.Label
		}
	}
	return routeFor(label), nil
}

func (p *Pipeline) respondData(ctx context.Context, logger *slog.Logger, log *chat.Log) error {
	if _, err := p.invoke(ctx, p.steps.DataResponder, log); err != nil {
		return fmt.Errorf("data responder: %w", err)
	}
	logger.Debug("data responder answered", "turns", log.Len())
	return nil
}

func (p *Pipeline) respondPlot(ctx context.Context, logger *slog.Logger, log *chat.Log) (*plot.Spec, error) {
	result, err := p.invoke(ctx, p.steps.PlotResponder, log)
	if err != nil {
		return nil, fmt.Errorf("plot responder: %w", err)
	}

	// No safe default chart can be substituted, so a structurally invalid
	// spec is fatal, unlike the classifier and evaluator paths.
	spec, err := plot.Decode(result.Payload)
	if err != nil {
		return nil, fmt.Errorf("plot responder: %w: %v", completion.ErrSchemaViolation, err)
	}
	logger.Debug("plot spec produced", "chartKind", spec.ChartKind)
	return spec, nil
}

func (p *Pipeline) evaluate(ctx context.Context, logger *slog.Logger, log *chat.Log) (Verdict, error) {
	result, err := p.invoke(ctx, p.steps.Evaluator, log)
	if err != nil {
		// Same default arm as the classifier: a malformed verdict reads
		// as sufficient so the user still gets a summary. An unreachable
		// evaluator stays fatal.
		if errors.Is(err, completion.ErrSchemaViolation) {
			logger.Warn("evaluator output malformed, treating answer as sufficient", "err", err)
			return VerdictSufficient, nil
		}
		return "", fmt.Errorf("evaluating answer: %w", err)
	}

	label := result.Text
	if len(result.Payload) > 0 {
		var out struct {
			Verdict string `json:"verdict"`
		}
		if err := json.Unmarshal(result.Payload, &out); err == nil {
			label = out.Verdict
		}
	}
	return verdictFor(label), nil
}

func (p *Pipeline) summarize(ctx context.Context, logger *slog.Logger, log *chat.Log) (string, error) {
	result, err := p.invoke(ctx, p.steps.Summarizer, log)
	if err != nil {
		return "", fmt.Errorf("summarizing answer: %w", err)
	}
	logger.Debug("run summarized")
	return result.Text, nil
}

func (p *Pipeline) escalate(ctx context.Context, logger *slog.Logger, log *chat.Log) (Outcome, error) {
	result, err := p.invoke(ctx, p.steps.EscalationOffer, log)
	if err != nil {
		return failedOutcome(), fmt.Errorf("escalation offer: %w", err)
	}
	offer := result.Text

	if p.approve == nil {
		logger.Debug("escalation offered, approval deferred to embedder")
		return offerOutcome(offer), nil
	}

	if p.approve(offer) {
		logger.Info("escalation approved")
		return escalatedOutcome(), nil
	}
	logger.Info("escalation declined")
	return declinedOutcome(), nil
}
