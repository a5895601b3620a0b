// Package cli implements the cubes command-line interface.
//
// cubes writes ASCII STL files of gauge cubes: a cube of a given side
// length with an optional bore along z and the bore diameter engraved on
// the front face. A sweep of diameters writes one file per cube.
//
// # Logging
//
// --verbose (-v) enables debug-level logging. The logger is passed through
// context.Context.
//
// # Configuration
//
// --config (-c) loads a TOML or YAML file whose keys match the long flag
// names. Flags given explicitly on the command line win over the file.
package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/winksaville/cubes/helpers/matter"
	"github.com/winksaville/cubes/internal/config"
)

const appName = "cubes"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

var (
	version = "dev" // semantic version (e.g., "v1.2.3")
	commit  string  // git commit SHA
	date    string  // build timestamp
)

// SetVersion sets the version information displayed by --version.
// It is typically called from main with values injected via ldflags.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance logging to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the cubes command. Errors are not printed by the
// command; callers print them and the usage text when IsUsageError.
func (c *CLI) RootCommand() *cobra.Command {
	var (
		flags      = config.Default()
		configPath string
		verbose    bool
	)
	root := &cobra.Command{
		Use:   appName + " <side_length>",
		Short: "cubes writes STL gauge cubes with a labelled bore",
		Long: `cubes writes ASCII STL files of cubes with an optional cylindrical bore
along z, labelled with the bore diameter. With --cube-count N the bore
diameter steps by --tube-diameter-step from --min-tube-diameter, writing
one file per cube.`,
		Example: `  cubes 10
  cubes 20 -d 0.005 --label-scale 1000
  cubes 10 -n 5 -d 0.002 -s 0.0005 -o out --preview`,
		Version:       version,
		Args:          usageArgs(cobra.RangeArgs(0, 1)),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				c.SetLogLevel(LogDebug)
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd.Flags(), flags, configPath, args)
			if err != nil {
				return err
			}
			return c.generate(cmd.Context(), cfg)
		},
	}
	root.SetVersionTemplate(fmt.Sprintf("%s %s\ncommit: %s\nbuilt: %s\n", appName, version, commit, date))
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error { return asUsage(err) })

	bindFlags(root.Flags(), flags)
	root.Flags().StringVarP(&configPath, "config", "c", "", "TOML or YAML file with the same keys as the long flags")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	return root
}

// bindFlags registers the settings flags on fs, with cfg holding defaults
// and receiving parsed values.
func bindFlags(fs *pflag.FlagSet, cfg *config.Config) {
	fs.IntVarP(&cfg.CubeCount, "cube-count", "n", cfg.CubeCount, "number of cubes in the sweep")
	fs.Float64VarP(&cfg.MinTubeDiameter, "min-tube-diameter", "d", cfg.MinTubeDiameter, "bore diameter of the first cube, 0 for no bore")
	fs.Float64VarP(&cfg.TubeDiameterStep, "tube-diameter-step", "s", cfg.TubeDiameterStep, "bore diameter increment between cubes")
	fs.IntVar(&cfg.Segments, "segments", cfg.Segments, "number of bore facets, at least 3")
	fs.BoolVar(&cfg.NoLabel, "no-label", cfg.NoLabel, "do not label the bore diameter")
	fs.Float64VarP(&cfg.TubeWallThickness, "tube-wall-thickness", "w", cfg.TubeWallThickness, "wall thickness of a tube around the bore, 0 for none")
	fs.StringVarP(&cfg.OutputDir, "output-dir", "o", cfg.OutputDir, "directory for the STL files")
	fs.IntVar(&cfg.Cells, "cells", cfg.Cells, "mesh cells along the longest axis")
	fs.Float64Var(&cfg.Simplify, "simplify", cfg.Simplify, "fraction of mesh triangles kept on output, 1 keeps the full mesh")
	fs.Float64Var(&cfg.LabelScale, "label-scale", cfg.LabelScale, "label units per model unit")
	fs.Float64Var(&cfg.Sink, "sink", cfg.Sink, "fraction of the label depth sunk into the face")
	fs.StringVar(&cfg.Order, "order", cfg.Order, "boolean order: label-first, bore-first")
	fs.StringVar(&cfg.Material, "material", cfg.Material, fmt.Sprintf("bore compensation material: none, %v", matter.Names()))
	fs.IntVarP(&cfg.Jobs, "jobs", "j", cfg.Jobs, "cubes built in parallel")
	fs.BoolVar(&cfg.Preview, "preview", cfg.Preview, "also write a PNG preview of every STL")
}

// resolveConfig returns the settings of a run: the config file if any,
// overridden by explicitly set flags, with side_length from args.
func resolveConfig(fs *pflag.FlagSet, flags *config.Config, path string, args []string) (*config.Config, error) {
	cfg := flags
	if path != "" {
		loaded, err := config.LoadFromPath(path)
		if err != nil {
			return nil, asUsage(err)
		}
		overlay := pflag.NewFlagSet("overlay", pflag.ContinueOnError)
		bindFlags(overlay, loaded)
		fs.Visit(func(f *pflag.Flag) {
			if o := overlay.Lookup(f.Name); o != nil && err == nil {
				err = o.Value.Set(f.Value.String())
			}
		})
		if err != nil {
			return nil, asUsage(err)
		}
		cfg = loaded
	}
	if len(args) == 1 {
		side, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return nil, asUsage(fmt.Errorf("side_length %q is not a number", args[0]))
		}
		cfg.SideLength = side
	}
	if cfg.SideLength == 0 {
		return nil, asUsage(errors.New("side_length is required"))
	}
	return cfg, nil
}

func usageArgs(fn cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		return asUsage(fn(cmd, args))
	}
}
