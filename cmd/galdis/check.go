package main

import (
	"fmt"

	"github.com/pborges/galdis/internal/eqn"
	"github.com/spf13/cobra"
)

func newCheckCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "check <file.jed> <expected.eqn>",
		Short: "Compare a fuse map against an expected equation listing",
		Long: `Disassemble a fuse map and compare it with an equation listing in the
format galdis prints. Terms are compared as sets, so term and literal order
do not matter. Lines starting with '#' are ignored.

Examples:
  galdis check design.jed design.eqn
  galdis check --minimize design.jed reduced.eqn`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.runCheck(cmd, args[0], args[1])
		},
	}
}

func (o *options) runCheck(cmd *cobra.Command, jedPath, eqnPath string) error {
	parser, err := eqn.NewParser()
	if err != nil {
		return err
	}
	want, err := parser.ParseFile(eqnPath)
	if err != nil {
		return fmt.Errorf("%s: %w", eqnPath, err)
	}
	listing, err := o.decode(cmd, jedPath)
	if err != nil {
		return err
	}

	diffs := eqn.Compare(eqn.FromEquations(listing.Equations), want)
	out := cmd.OutOrStdout()
	for _, d := range diffs {
		fmt.Fprintln(out, d)
	}
	if len(diffs) > 0 {
		return fmt.Errorf("%w: %d output(s)", errCheckFailed, len(diffs))
	}
	fmt.Fprintf(out, "%s: %d equation(s) match\n", jedPath, len(listing.Equations))
	return nil
}
