package pipeline

import "strings"

// Verdict is the quality gate's judgment of the dispatched responder's
// answer.
type Verdict string

const (
	VerdictSufficient   Verdict = "sufficient"
	VerdictInsufficient Verdict = "insufficient"
)

// verdictFor maps an evaluator label to a Verdict. Labels outside the
// recognized set map to sufficient, the same permissive default arm as
// routeFor: a malformed evaluation must never block a response from
// reaching the user.
func verdictFor(label string) Verdict {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case string(VerdictInsufficient):
		return VerdictInsufficient
	case string(VerdictSufficient):
		return VerdictSufficient
	default:
		return VerdictSufficient
	}
}
