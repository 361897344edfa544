// Package plot defines the structured chart specification the plot
// responder must produce, and the shape validation applied to it. The
// pipeline never interprets the spec's data; it only checks the shape
// before handing the spec to a presentation layer.
package plot

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Chart kinds the presentation layer knows how to render.
const (
	KindLine       = "line"
	KindBar        = "bar"
	KindStackedBar = "stackedBar"
)

// Series is one plotted series: a label plus aligned x/y values.
type Series struct {
	Label string    `json:"label"`
	X     []string  `json:"x"`
	Y     []float64 `json:"y"`
}

// Stack is one segment of a stacked bar chart.
type Stack struct {
	Label  string    `json:"label"`
	Values []float64 `json:"values"`
}

// Axis holds the axis labels for a chart.
type Axis struct {
	X string `json:"x" validate:"required"`
	Y string `json:"y" validate:"required"`
}

// Spec is the chart specification emitted by the plot responder.
// Encoding holds renderer hints (colors, units, number formats) passed
// through opaquely.
type Spec struct {
	ChartKind string         `json:"chartKind" validate:"required,oneof=line bar stackedBar"`
	Title     string         `json:"title" validate:"required"`
	Axis      Axis           `json:"axis"`
	Series    []Series       `json:"series,omitempty"`
	Stacks    []Stack        `json:"stacks,omitempty"`
	Encoding  map[string]any `json:"encoding,omitempty"`
	Success   *bool          `json:"success" validate:"required"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Decode parses and validates a raw plot payload. There is no safe
// default chart to substitute, so any shape problem is an error the
// caller must treat as fatal.
func Decode(payload json.RawMessage) (*Spec, error) {
	var spec Spec
	if err := json.Unmarshal(payload, &spec); err != nil {
		return nil, fmt.Errorf("decoding plot spec: %w", err)
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &spec, nil
}

// Validate checks the spec's shape: a known chart kind, a title, both
// axis labels, a success flag, and at least one series or stack entry.
func (s *Spec) Validate() error {
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validating plot spec: %w", err)
	}
	if len(s.Series) == 0 && len(s.Stacks) == 0 {
		return fmt.Errorf("validating plot spec: no series or stack entries")
	}
	return nil
}
