// Package gemini implements the completion gateway against the Gemini
// API via the official genai client. It is a thin adapter: prompt
// assembly, capability mapping, and error classification only. Retries
// and rate limiting belong to the embedder's client configuration.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	genai "google.golang.org/genai"

	"github.com/gridscope/gridscope/pkg/chat"
	"github.com/gridscope/gridscope/pkg/completion"
)

const defaultModel = "gemini-2.5-flash"

// Gateway invokes pipeline steps against the Gemini API.
type Gateway struct {
	cli   *genai.Client
	model string
}

// Option configures a Gateway created with New.
type Option func(*Gateway)

// WithModel overrides the default model.
func WithModel(model string) Option {
	return func(g *Gateway) {
		if model != "" {
			g.model = model
		}
	}
}

// New creates a Gateway. The API key may be empty, in which case the
// genai client reads it from the environment.
func New(ctx context.Context, apiKey string, opts ...Option) (*Gateway, error) {
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}

	g := &Gateway{cli: cli, model: defaultModel}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Invoke implements completion.Gateway.
func (g *Gateway) Invoke(ctx context.Context, step completion.Step, history []chat.Turn) (*completion.Result, error) {
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemPrompt(step), genai.RoleUser),
	}
	if step.Structured() {
		cfg.ResponseMIMEType = "application/json"
	} else {
		// The Gemini API rejects tool use combined with a JSON response
		// MIME type, so capabilities only apply to free-text steps;
		// structured steps carry their schema in the system prompt.
		cfg.Tools = toolsFor(step.Capabilities)
	}

	resp, err := g.cli.Models.GenerateContent(ctx, g.model, contentsFor(history), cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", completion.ErrUpstreamUnavailable, err)
	}

	text := responseText(resp)
	if text == "" {
		return nil, fmt.Errorf("%w: empty completion", completion.ErrUpstreamUnavailable)
	}

	if step.Structured() {
		raw := json.RawMessage(text)
		if !json.Valid(raw) {
			// Return the malformed turn anyway so the caller can keep it
			// in the log per the gateway contract.
			result := &completion.Result{
				NewTurns: []chat.Turn{chat.Assistant(text)},
				Text:     text,
			}
			return result, fmt.Errorf("%w: output is not valid JSON", completion.ErrSchemaViolation)
		}
		return &completion.Result{
			NewTurns: []chat.Turn{chat.AssistantPayload(raw)},
			Payload:  raw,
		}, nil
	}

	return &completion.Result{
		NewTurns: []chat.Turn{chat.Assistant(text)},
		Text:     text,
	}, nil
}

// systemPrompt renders the step instructions, inlining the output
// schema for structured steps.
func systemPrompt(step completion.Step) string {
	if !step.Structured() {
		return step.Instructions
	}
	return step.Instructions + "\n\nYour reply must be JSON conforming to this schema:\n" + string(step.Schema)
}

// contentsFor maps the conversation history to genai contents.
func contentsFor(history []chat.Turn) []*genai.Content {
	contents := make([]*genai.Content, 0, len(history))
	for _, turn := range history {
		role := genai.Role(genai.RoleUser)
		if turn.Role == chat.RoleAssistant {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(turn.Content(), role))
	}
	return contents
}

// toolsFor maps step capabilities to genai tools.
func toolsFor(caps []completion.Capability) []*genai.Tool {
	var tools []*genai.Tool
	for _, c := range caps {
		switch c {
		case completion.CapabilityRetrieval:
			tools = append(tools, &genai.Tool{GoogleSearch: &genai.GoogleSearch{}})
		case completion.CapabilityCodeExecution:
			tools = append(tools, &genai.Tool{CodeExecution: &genai.ToolCodeExecution{}})
		}
	}
	return tools
}

// responseText concatenates the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil {
			sb.WriteString(part.Text)
		}
	}
	return strings.TrimSpace(sb.String())
}
