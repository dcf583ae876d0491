package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/walteh/textrepair/cmd/textrepair/opts"
	"github.com/walteh/textrepair/pkg/text"
)

// NewRulesCmd creates a new rules command
func NewRulesCmd(rootOpts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules [preset]",
		Short: "List built-in presets or show the rules of one preset",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if len(args) == 0 {
				tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
				for _, name := range text.PresetNames() {
					p, err := text.LookupPreset(name)
					if err != nil {
						return err
					}
					fmt.Fprintf(tw, "%s\t%d rules\t%s\n", color.CyanString(p.Name), len(p.Rules), p.Description)
				}
				return tw.Flush()
			}

			p, err := text.LookupPreset(args[0])
			if err != nil {
				return err
			}
			for i, r := range p.Rules {
				fmt.Fprintf(out, "%2d  %s\n", i+1, r)
			}
			return nil
		},
	}

	return cmd
}
