package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pborges/galdis"
	"github.com/pborges/galdis/internal/diag"
	"github.com/pborges/galdis/internal/disasm"
	"github.com/pborges/galdis/internal/gal"
	"github.com/pborges/galdis/internal/jed"
	"github.com/spf13/cobra"
)

type options struct {
	device   string
	verbose  int
	minimize bool
	events   string
	profiles string

	format   string
	controls bool
}

func newRootCmd() *cobra.Command {
	o := &options{}
	root := &cobra.Command{
		Use:   "galdis [flags] <file.jed>",
		Short: "GAL fuse map disassembler",
		Long: `Disassemble the fuse map of a programmed GAL20V8 or GAL22V10 into the
sum-of-products equation driving each output pin.

Examples:
  galdis -d gal22v10 design.jed          # Print equations
  galdis -vv design.jed                  # Trace every decoded row
  galdis --format yaml --controls a.jed  # YAML, including AR/OE/SP rows
  galdis check design.jed design.eqn     # Audit against expected equations`,
		Version:       galdis.Version(),
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.runDisassemble(cmd, args[0])
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&o.device, "device", "d", "", "device type (GAL20V8, GAL22V10); defaults to the device named in the file")
	pf.CountVarP(&o.verbose, "verbose", "v", "increase verbosity (-v debug, -vv trace)")
	pf.BoolVar(&o.minimize, "minimize", false, "reduce equations with Quine-McCluskey")
	pf.StringVar(&o.events, "events", "", "append diagnostic events to a CBOR event file")
	pf.StringVar(&o.profiles, "profiles", "", "YAML file with additional device profiles")

	root.Flags().StringVar(&o.format, "format", "text", "output format: text or yaml")
	root.Flags().BoolVar(&o.controls, "controls", false, "include decoded control rows (AR, OE, SP)")

	root.AddCommand(newCheckCmd(o), newDevicesCmd(o), newEventsCmd())
	return root
}

func (o *options) runDisassemble(cmd *cobra.Command, path string) error {
	var write func(io.Writer, *disasm.Listing, bool) error
	switch strings.ToLower(o.format) {
	case "text":
		write = disasm.WriteText
	case "yaml":
		write = disasm.WriteYAML
	default:
		return fmt.Errorf("unknown output format %q", o.format)
	}
	listing, err := o.decode(cmd, path)
	if err != nil {
		return err
	}
	return write(cmd.OutOrStdout(), listing, o.controls)
}

// decode reads a JEDEC file and disassembles it. Diagnostic events are
// forwarded to the console logger and the event file whether or not
// decoding succeeds.
func (o *options) decode(cmd *cobra.Command, path string) (*disasm.Listing, error) {
	logger := newLogger(cmd.ErrOrStderr(), o.verbose)

	reg, err := o.registry()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	file, err := jed.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	logger.Info("loaded fuse map", "file", path, "device", file.Device, "fuses", len(file.Fuses))

	profile, err := o.profile(reg, file)
	if err != nil {
		return nil, err
	}

	var sink diag.Logger = diag.NewSlogAdapter(logger)
	if o.events != "" {
		fl, err := diag.NewFileLogger(o.events)
		if err != nil {
			return nil, err
		}
		defer func() {
			if cerr := fl.Close(); cerr != nil {
				logger.Warn("event file not fully written", "file", o.events, "error", cerr)
			}
		}()
		sink = diag.NewMultiLogger(sink, fl)
	}

	listing, err := disasm.Decode(profile, file.Fuses, disasm.Options{Minimize: o.minimize})
	events := disasm.Events(err)
	if listing != nil {
		events = listing.Events
	}
	diag.Forward(sink, events, uuid.New().String(), time.Now())
	return listing, err
}

func (o *options) registry() (*gal.Registry, error) {
	reg := gal.DefaultRegistry()
	if o.profiles == "" {
		return reg, nil
	}
	f, err := os.Open(o.profiles)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	if _, err := gal.LoadProfiles(reg, f); err != nil {
		return nil, fmt.Errorf("%s: %w", o.profiles, err)
	}
	return reg, nil
}

// profile picks the device profile: the --device selector when given,
// otherwise the device named in the JEDEC file.
func (o *options) profile(reg *gal.Registry, file *jed.File) (*gal.Profile, error) {
	if o.device != "" {
		return reg.Lookup(o.device)
	}
	if file.Device == "" {
		return nil, fmt.Errorf("%w: file names no device, use --device", gal.ErrUnknownDevice)
	}
	if p, err := reg.Lookup(file.Device); err == nil {
		return p, nil
	}
	if c := gal.ChipFromDeviceName(file.Device); c != gal.ChipUnknown {
		return c.Profile(), nil
	}
	return nil, fmt.Errorf("%w: %q named in file, use --device", gal.ErrUnknownDevice, file.Device)
}

func newLogger(w io.Writer, verbosity int) *slog.Logger {
	level := slog.LevelInfo
	switch {
	case verbosity >= 2:
		level = diag.SlogLevelTrace
	case verbosity == 1:
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) > 0 {
				return a
			}
			switch a.Key {
			case slog.TimeKey:
				return slog.Attr{}
			case slog.LevelKey:
				if lvl, ok := a.Value.Any().(slog.Level); ok && lvl == diag.SlogLevelTrace {
					a.Value = slog.StringValue("TRACE")
				}
			}
			return a
		},
	}))
}
