// Package config holds the settings of a cubes run and loads them from
// TOML or YAML files. Keys match the long command line flags with dashes
// replaced by underscores.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/winksaville/cubes/csg"
	"github.com/winksaville/cubes/helpers/matter"
	"github.com/winksaville/cubes/part"
	"github.com/winksaville/cubes/sweep"
)

// ErrFormat is returned for configuration files of unknown type.
var ErrFormat = errors.New("unknown config format, want .toml, .yaml or .yml")

// Config is the complete set of run settings.
type Config struct {
	SideLength        float64 `toml:"side_length" yaml:"side_length"`
	CubeCount         int     `toml:"cube_count" yaml:"cube_count"`
	MinTubeDiameter   float64 `toml:"min_tube_diameter" yaml:"min_tube_diameter"`
	TubeDiameterStep  float64 `toml:"tube_diameter_step" yaml:"tube_diameter_step"`
	Segments          int     `toml:"segments" yaml:"segments"`
	NoLabel           bool    `toml:"no_label" yaml:"no_label"`
	TubeWallThickness float64 `toml:"tube_wall_thickness" yaml:"tube_wall_thickness"`
	OutputDir         string  `toml:"output_dir" yaml:"output_dir"`
	Cells             int     `toml:"cells" yaml:"cells"`
	Simplify          float64 `toml:"simplify" yaml:"simplify"`
	LabelScale        float64 `toml:"label_scale" yaml:"label_scale"`
	Sink              float64 `toml:"sink" yaml:"sink"`
	Order             string  `toml:"order" yaml:"order"`
	Material          string  `toml:"material" yaml:"material"`
	Jobs              int     `toml:"jobs" yaml:"jobs"`
	Preview           bool    `toml:"preview" yaml:"preview"`
}

// Default returns the settings used when nothing is configured.
func Default() *Config {
	p := part.DefaultPolicy()
	return &Config{
		CubeCount:  1,
		Segments:   50,
		OutputDir:  ".",
		Cells:      csg.DefaultCells,
		Simplify:   csg.DefaultSimplify,
		LabelScale: p.LabelScale,
		Sink:       p.SinkFraction,
		Order:      p.Order.String(),
		Material:   "none",
		Jobs:       1,
	}
}

// LoadFromPath returns Default overlaid with the file at path. The format
// follows the file extension and unknown keys are errors.
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		md, err := toml.Decode(string(data), cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			sort.Strings(keys)
			return nil, fmt.Errorf("parse config %s: unknown keys %s", path, strings.Join(keys, ", "))
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("%s: %w", path, ErrFormat)
	}
	return cfg, nil
}

// Sweep returns the diameters to build.
func (c *Config) Sweep() sweep.Spec {
	return sweep.Spec{
		Count:         c.CubeCount,
		StartDiameter: c.MinTubeDiameter,
		Step:          c.TubeDiameterStep,
	}
}

// Template returns the parameters shared by every part.
func (c *Config) Template() sweep.Template {
	return sweep.Template{
		SideLength:    c.SideLength,
		WallThickness: c.TubeWallThickness,
		Segments:      c.Segments,
		EmitLabel:     !c.NoLabel,
	}
}

// Engine returns the meshing engine for the configured resolution and
// decimation.
func (c *Config) Engine() (*csg.SDFEngine, error) {
	if !(c.Simplify > 0) || c.Simplify > 1 {
		return nil, fmt.Errorf("%w: simplify fraction %g must be within (0, 1]", part.ErrInvalidSpec, c.Simplify)
	}
	e := csg.NewSDFEngine(c.Cells)
	e.Simplify = c.Simplify
	return e, nil
}

// Policy returns the part construction policy.
func (c *Config) Policy() (part.Policy, error) {
	p := part.DefaultPolicy()
	order, err := part.ParseBoreOrder(c.Order)
	if err != nil {
		return p, err
	}
	m, err := matter.Lookup(c.Material)
	if err != nil {
		return p, fmt.Errorf("%w: %w", part.ErrInvalidSpec, err)
	}
	if !(c.LabelScale > 0) {
		return p, fmt.Errorf("%w: label scale %g must be positive", part.ErrInvalidSpec, c.LabelScale)
	}
	if c.Sink < 0 || c.Sink > 1 {
		return p, fmt.Errorf("%w: sink fraction %g must be within [0, 1]", part.ErrInvalidSpec, c.Sink)
	}
	p.Order = order
	p.Material = m
	p.LabelScale = c.LabelScale
	p.SinkFraction = c.Sink
	return p, nil
}
