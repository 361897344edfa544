// Package gridscopecmder
package gridscopecmder

import (
	"github.com/spf13/cobra"

	askcmder "github.com/gridscope/gridscope/cmd/gridscope/ask"
	versioncmder "github.com/gridscope/gridscope/cmd/version"
)

const gridscopeLongDesc string = `Gridscope is an energy market analyst assistant.

Ask it about power generation, market data, and policy:
  gridscope ask "How much PV capacity did Italy install last year?"

Data questions are answered with retrieval and computation. Chart
requests produce a machine-readable plot specification. Questions the
assistant cannot answer well are offered for escalation to a human
expert.`

const gridscopeShortDesc string = "Gridscope - Energy Market Analyst Assistant"

func NewGridscopeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gridscope",
		Short: gridscopeShortDesc,
		Long:  gridscopeLongDesc,
	}

	// Global flags
	cmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging")
	cmd.PersistentFlags().String("config-dir", "", "Config directory (defaults to ./.gridscope or ~/.gridscope)")

	// Add subcommands
	cmd.AddCommand(askcmder.NewAskCmd())
	cmd.AddCommand(versioncmder.NewVersionCmd())

	return cmd
}
