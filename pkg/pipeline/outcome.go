package pipeline

import "github.com/gridscope/gridscope/pkg/plot"

// OutcomeKind discriminates the terminal result of a run.
type OutcomeKind string

const (
	// OutcomePlot carries the plot responder's validated spec.
	OutcomePlot OutcomeKind = "plot"

	// OutcomeSummary carries the final summarization of a sufficient
	// answer.
	OutcomeSummary OutcomeKind = "summary"

	// OutcomeEscalationOffer carries the escalation offer text when the
	// approval decision is deferred to the embedder (no approval func
	// supplied).
	OutcomeEscalationOffer OutcomeKind = "escalationOffer"

	// OutcomeEscalated and OutcomeDeclined carry fixed terminal messages.
	OutcomeEscalated OutcomeKind = "escalated"
	OutcomeDeclined  OutcomeKind = "declined"

	// OutcomeFailed is the single generic failure terminal. It carries no
	// diagnostic detail; the error returned alongside it does.
	OutcomeFailed OutcomeKind = "failed"
)

// Terminal messages. These are constants rather than generated text so
// they are byte-identical across runs.
const (
	EscalatedMessage = "Let's fill the contact form"
	DeclinedMessage  = "Can I help you with other queries then?"

	failedMessage = "Sorry, something went wrong while handling your request."
)

// Outcome is the orchestrator's sole externally visible product: exactly
// one variant per run. Spec is set only for OutcomePlot; Text for every
// other kind.
type Outcome struct {
	Kind OutcomeKind `json:"kind"`
	Spec *plot.Spec  `json:"spec,omitempty"`
	Text string      `json:"text,omitempty"`
}

func plotOutcome(spec *plot.Spec) Outcome {
	return Outcome{Kind: OutcomePlot, Spec: spec}
}

func summaryOutcome(text string) Outcome {
	return Outcome{Kind: OutcomeSummary, Text: text}
}

func offerOutcome(text string) Outcome {
	return Outcome{Kind: OutcomeEscalationOffer, Text: text}
}

func escalatedOutcome() Outcome {
	return Outcome{Kind: OutcomeEscalated, Text: EscalatedMessage}
}

func declinedOutcome() Outcome {
	return Outcome{Kind: OutcomeDeclined, Text: DeclinedMessage}
}

func failedOutcome() Outcome {
	return Outcome{Kind: OutcomeFailed, Text: failedMessage}
}
