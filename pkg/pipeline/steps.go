package pipeline

import (
	"encoding/json"

	"github.com/gridscope/gridscope/pkg/completion"
)

// Step names, used for logging and for scripting test gateways.
const (
	StepClassify        = "classify"
	StepDataResponder   = "data-responder"
	StepPlotResponder   = "plot-responder"
	StepEvaluate        = "evaluate"
	StepSummarize       = "summarize"
	StepEscalationOffer = "escalation-offer"
)

// Steps holds the completion step configuration for every stage of the
// pipeline. DefaultSteps covers the energy/market analyst domain;
// embedders can swap any step via WithSteps.
type Steps struct {
	Classifier      completion.Step
	DataResponder   completion.Step
	PlotResponder   completion.Step
	Evaluator       completion.Step
	Summarizer      completion.Step
	EscalationOffer completion.Step
}

var (
	classifySchema = json.RawMessage(`{
		"type": "object",
		"properties": {"label": {"type": "string", "enum": ["data", "plot"]}},
		"required": ["label"]
	}`)

	evaluateSchema = json.RawMessage(`{
		"type": "object",
		"properties": {"verdict": {"type": "string", "enum": ["sufficient", "insufficient"]}},
		"required": ["verdict"]
	}`)

	plotSchema = json.RawMessage(`{
		"type": "object",
		"properties": {
			"chartKind": {"type": "string", "enum": ["line", "bar", "stackedBar"]},
			"title": {"type": "string"},
			"axis": {
				"type": "object",
				"properties": {"x": {"type": "string"}, "y": {"type": "string"}},
				"required": ["x", "y"]
			},
			"series": {"type": "array", "items": {
				"type": "object",
				"properties": {
					"label": {"type": "string"},
					"x": {"type": "array", "items": {"type": "string"}},
					"y": {"type": "array", "items": {"type": "number"}}
				},
				"required": ["label", "x", "y"]
			}},
			"stacks": {"type": "array", "items": {
				"type": "object",
				"properties": {
					"label": {"type": "string"},
					"values": {"type": "array", "items": {"type": "number"}}
				},
				"required": ["label", "values"]
			}},
			"encoding": {"type": "object"},
			"success": {"type": "boolean"}
		},
		"required": ["chartKind", "title", "axis", "success"]
	}`)
)

// DefaultSteps returns the stock step configuration.
func DefaultSteps() Steps {
	return Steps{
		Classifier: completion.Step{
			Name: StepClassify,
			Instructions: `You route analyst questions about energy and market datasets.
Classify the latest user message. Reply with {"label": "plot"} when the user asks
for a chart, graph, or visualization. Reply with {"label": "data"} for everything
else, including questions about figures, trends, installations, or prices.`,
			Schema: classifySchema,
		},
		DataResponder: completion.Step{
			Name: StepDataResponder,
			Instructions: `You answer analyst questions about energy and market datasets
(installed capacity, generation, market prices, company financials). Answer directly
from the available datasets. If the requested figures are not in the datasets, say so
plainly rather than guessing.`,
			Capabilities: []completion.Capability{
				completion.CapabilityRetrieval,
				completion.CapabilityCodeExecution,
			},
		},
		PlotResponder: completion.Step{
			Name: StepPlotResponder,
			Instructions: `Produce a chart specification for the user's request from the
available datasets. Emit only the JSON specification: chart kind (line, bar, or
stackedBar), title, axis labels, the series or stacks, and a success flag.`,
			Capabilities: []completion.Capability{
				completion.CapabilityCodeExecution,
			},
			Schema: plotSchema,
		},
		Evaluator: completion.Step{
			Name: StepEvaluate,
			Instructions: `Judge the assistant's most recent answer. Reply with
{"verdict": "insufficient"} when the answer states the requested data is unavailable
or does not directly answer the request. Reply with {"verdict": "sufficient"}
otherwise.`,
			Schema: evaluateSchema,
		},
		Summarizer: completion.Step{
			Name: StepSummarize,
			Instructions: `Summarize the answer just given for the user in a short,
readable reply. Keep concrete figures. Do not add new analysis.`,
		},
		EscalationOffer: completion.Step{
			Name: StepEscalationOffer,
			Instructions: `The assistant could not fully answer. Write a short recap of
what was found, then offer to connect the user with a human expert who can dig
further. End with a clear yes/no question about whether they want that.`,
		},
	}
}
