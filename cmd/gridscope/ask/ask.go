// Package askcmder provides the ask command: run a single query through
// the routing pipeline and print the terminal outcome.
package askcmder

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gridscope/gridscope/pkg/cliui"
	"github.com/gridscope/gridscope/pkg/completion/gemini"
	"github.com/gridscope/gridscope/pkg/config"
	"github.com/gridscope/gridscope/pkg/logger"
	"github.com/gridscope/gridscope/pkg/pipeline"
)

const askLongDesc string = `Ask the assistant a single question.

The query is classified and routed: data questions are answered with
retrieval and computation, then quality-checked before the final
summary; chart requests produce a plot specification printed as JSON;
questions the assistant cannot answer well trigger an escalation offer.

With --approval prompt (the default) the escalation offer is answered
interactively. With --approval defer the offer text is printed and the
decision is left to the caller.

The Gemini API key is read from the GEMINI_API_KEY environment variable.

Examples:
  gridscope ask "How much PV capacity did Italy install last year?"
  gridscope ask --model gemini-2.5-pro "Plot monthly wind output for 2025"
  gridscope ask --approval defer "Why did zonal prices diverge in June?"`

const askShortDesc string = "Ask the assistant a single question"

const approvalPrompt = "prompt"

type askCommander struct {
	model    string
	approval string
	debug    bool

	cfg    *config.Config
	logger *slog.Logger
}

func NewAskCmd() *cobra.Command {
	cmder := &askCommander{}

	cmd := &cobra.Command{
		Use:   "ask [query]",
		Short: askShortDesc,
		Long:  askLongDesc,
		Args:  cobra.MinimumNArgs(1),
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			configDir, _ := cmd.Flags().GetString("config-dir")
			v, err := config.InitViper(configDir)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			config.BindRegisteredFlags(v, cmd, config.Flags, []string{
				config.FlagModel,
				config.FlagApproval,
			})

			cmder.cfg = config.FromViper(v)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cmder.debug, err = cmd.Flags().GetBool("debug")
			if err != nil {
				return fmt.Errorf("could not get debug flag: %w", err)
			}

			return cmder.run(cmd.Context(), strings.Join(args, " "))
		},
	}

	config.AddStringFlag(cmd, config.Flags, config.FlagModel, &cmder.model)
	config.AddStringFlag(cmd, config.Flags, config.FlagApproval, &cmder.approval)

	return cmd
}

func (c *askCommander) run(ctx context.Context, query string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	c.logger = logger.New(
		logger.WithDebug(c.debug),
		logger.WithJSON(c.cfg.Log.JSON),
		logger.WithPretty(!c.cfg.Log.JSON),
		logger.WithWriter(os.Stderr),
	)

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return errors.New("GEMINI_API_KEY environment variable is not set")
	}

	gateway, err := gemini.New(ctx, apiKey, gemini.WithModel(c.cfg.LLM.Model))
	if err != nil {
		return fmt.Errorf("creating completion gateway: %w", err)
	}

	opts := []pipeline.Option{pipeline.WithLogger(c.logger)}
	interactive := c.cfg.Pipeline.Approval == approvalPrompt
	if interactive {
		opts = append(opts, pipeline.WithApproval(func(offer string) bool {
			fmt.Println()
			fmt.Println(offer)
			return cliui.PromptYesNo(os.Stdin, os.Stdout, "Escalate to a human expert?")
		}))
	}

	pipe := pipeline.New(gateway, opts...)

	var outcome pipeline.Outcome
	runFn := func() error {
		var err error
		outcome, err = pipe.Run(ctx, query, nil)
		return err
	}

	// The spinner owns the terminal while it runs, so interactive
	// approval runs without it.
	if interactive {
		err = runFn()
	} else {
		err = cliui.Step(os.Stderr, "Thinking", runFn)
	}
	if err != nil {
		fmt.Println(outcome.Text)
		return err
	}

	return c.render(outcome)
}

// render prints the terminal outcome: plot specs as JSON so they can be
// piped into a charting front end, summaries as rendered markdown, and
// the fixed escalation messages verbatim.
func (c *askCommander) render(outcome pipeline.Outcome) error {
	switch outcome.Kind {
	case pipeline.OutcomePlot:
		data, err := json.MarshalIndent(outcome.Spec, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding plot spec: %w", err)
		}
		fmt.Println(string(data))

	case pipeline.OutcomeSummary, pipeline.OutcomeEscalationOffer:
		rendered, err := cliui.RenderMarkdown(outcome.Text)
		if err != nil {
			fmt.Println(outcome.Text)
			return nil
		}
		fmt.Print(rendered)

	default:
		fmt.Println(outcome.Text)
	}

	return nil
}
