package cli

import (
	"context"
	"fmt"

	"github.com/winksaville/cubes/form2/text"
	"github.com/winksaville/cubes/internal/config"
	"github.com/winksaville/cubes/part"
	"github.com/winksaville/cubes/preview"
	"github.com/winksaville/cubes/sweep"
)

// generate builds and writes every cube described by cfg.
func (c *CLI) generate(ctx context.Context, cfg *config.Config) error {
	logger := loggerFromContext(ctx)
	policy, err := cfg.Policy()
	if err != nil {
		return err
	}
	engine, err := cfg.Engine()
	if err != nil {
		return err
	}
	font, err := text.Default()
	if err != nil {
		return err
	}
	builder := &part.Builder{
		Engine: engine,
		Font:   font,
		Policy: policy,
		Logger: logger,
	}
	sink := sweep.DirSink{Dir: cfg.OutputDir}
	driver := &sweep.Driver{
		Builder: builder,
		Sink:    sink,
		Jobs:    cfg.Jobs,
		Logger:  logger,
	}
	if cfg.Preview {
		opts := preview.DefaultOptions()
		driver.Written = func(name string) error {
			stl := sink.Path(name)
			png := preview.PathFor(stl)
			if err := preview.Render(stl, png, opts); err != nil {
				return fmt.Errorf("preview %s: %w", name, err)
			}
			logger.Debug("preview", "file", png)
			return nil
		}
	}
	logger.Debug("sweep",
		"side_length", cfg.SideLength,
		"count", cfg.CubeCount,
		"diameters", cfg.Sweep().Diameters(),
		"segments", cfg.Segments,
		"order", policy.Order,
		"cells", cfg.Cells,
		"simplify", cfg.Simplify,
	)
	prog := newProgress(logger)
	names, err := driver.Run(ctx, cfg.Sweep(), cfg.Template())
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Wrote %d file(s) to %s", len(names), cfg.OutputDir))
	return nil
}
