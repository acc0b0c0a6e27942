package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/wincnc-tools/cnchist/internal/render"
	"github.com/wincnc-tools/cnchist/internal/tui"
	"golang.org/x/term"
)

func listCmd() *cobra.Command {
	var human bool
	var noColor bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print all sessions to the console and exit",
		Long:  `Console mode: prints every session as a text block with derived elapsed times, durations and idle gaps. Colors are dropped automatically when output is piped.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sessions, path, err := loadSessions()
			if err != nil {
				return err
			}
			if len(sessions) == 0 {
				return fmt.Errorf("no sessions found in %s", path)
			}

			opts := render.Options{
				Color: !noColor && term.IsTerminal(int(os.Stdout.Fd())),
				Human: human,
			}
			fmt.Print(render.Sessions(sessions, opts))
			return nil
		},
	}

	cmd.Flags().BoolVar(&human, "human", false, "Use friendly dates (Thu, Apr 25) instead of log-style 04-25-19")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colors even on a terminal")

	return cmd
}

// tuiCmd is an explicit alias for the root behavior, handy in scripts that
// always pass a subcommand.
func tuiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "view",
		Short: "Open the interactive session browser (same as running bare)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sessions, _, err := loadSessions()
			if err != nil {
				return err
			}
			return tui.Run(sessions, true)
		},
	}
}
