package main

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/pborges/galdis/internal/diag"
	"github.com/spf13/cobra"
)

func newEventsCmd() *cobra.Command {
	var (
		level string
		stage string
		runID string
	)
	cmd := &cobra.Command{
		Use:   "events <file>",
		Short: "Print a diagnostic event file",
		Long: `Print the events recorded with --events in human-readable form.

Examples:
  galdis events run.glog
  galdis events --level debug --stage mode run.glog`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := diag.Filter{RunID: runID}
			if level != "" {
				l, err := parseLevel(level)
				if err != nil {
					return err
				}
				filter.MinLevel = l
			}
			if stage != "" {
				s, err := parseStage(stage)
				if err != nil {
					return err
				}
				filter.Stage = &s
			}
			r, err := diag.OpenReader(args[0], filter)
			if err != nil {
				return err
			}
			defer r.Close()
			out := cmd.OutOrStdout()
			for {
				e, err := r.Next()
				if errors.Is(err, io.EOF) {
					return nil
				}
				if err != nil {
					return fmt.Errorf("%s: %w", args[0], err)
				}
				fmt.Fprintln(out, formatEvent(e))
			}
		},
	}
	cmd.Flags().StringVar(&level, "level", "", "minimum level: trace, debug, info, warn")
	cmd.Flags().StringVar(&stage, "stage", "", "only events of this stage: profile, mode, row, polarity, control, minimize")
	cmd.Flags().StringVar(&runID, "run", "", "only events of this run id")
	return cmd
}

func parseLevel(s string) (diag.Level, error) {
	for l := diag.LevelTrace; l <= diag.LevelWarn; l++ {
		if strings.EqualFold(l.String(), s) {
			return l, nil
		}
	}
	return 0, fmt.Errorf("unknown level %q", s)
}

func parseStage(s string) (diag.Stage, error) {
	for st := diag.StageProfile; st <= diag.StageMinimize; st++ {
		if strings.EqualFold(st.String(), s) {
			return st, nil
		}
	}
	return 0, fmt.Errorf("unknown stage %q", s)
}

func formatEvent(e diag.Event) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %-5s %-8s", e.Timestamp.Format("15:04:05.000"), e.Level, e.Stage)
	if e.OLMC != diag.NoOLMC {
		fmt.Fprintf(&b, " olmc=%d", e.OLMC)
	}
	fmt.Fprintf(&b, " %s", e.Message)
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%s", k, e.Fields[k])
	}
	return b.String()
}
