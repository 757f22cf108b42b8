package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDevicesCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "devices",
		Short: "List supported devices",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := o.registry()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, name := range reg.Names() {
				p, err := reg.Lookup(name)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%-10s %5d fuses  %2d OLMCs  %3d rows x %d columns\n",
					p.Name, p.TotalFuses, p.NumOLMCs, p.NumRows(), p.RowWidth)
			}
			return nil
		},
	}
}
