package sweep

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/winksaville/cubes/part"
	"golang.org/x/sync/errgroup"
)

// Driver builds every part of a sweep and writes it to Sink.
type Driver struct {
	Builder *part.Builder
	Sink    Sink
	// Jobs is the number of parts built concurrently. Values below 2 run
	// the sweep sequentially.
	Jobs int
	// Logger for progress. Nil selects log.Default.
	Logger *log.Logger
	// Written, when set, is called after each artifact is closed. It is
	// called concurrently when Jobs > 1.
	Written func(name string) error
}

func (d *Driver) logger() *log.Logger {
	if d.Logger != nil {
		return d.Logger
	}
	return log.Default()
}

// Run builds and writes every part of the sweep and returns the artifact
// names in index order. The first error stops the sweep.
func (d *Driver) Run(ctx context.Context, s Spec, t Template) ([]string, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	// Reject bad templates before anything is written.
	for i := 0; i < s.Count; i++ {
		if err := t.Part(s.Diameter(i)).Validate(); err != nil {
			return nil, fmt.Errorf("cube %d: %w", i, err)
		}
	}
	names := make([]string, s.Count)
	for i := range names {
		names[i] = Name(i, s.Count, t.Part(s.Diameter(i)))
	}
	if d.Jobs < 2 || s.Count == 1 {
		for i := range names {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			if err := d.one(t.Part(s.Diameter(i)), names[i]); err != nil {
				return nil, err
			}
		}
		return names, nil
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(d.Jobs)
	for i := range names {
		spec, name := t.Part(s.Diameter(i)), names[i]
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return d.one(spec, name)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return names, nil
}

func (d *Driver) one(spec part.Spec, name string) error {
	start := time.Now()
	solid, err := d.Builder.Build(spec)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	w, err := d.Sink.Create(name)
	if err != nil {
		return err
	}
	err = d.Builder.Engine.WriteASCII(w, solid, SolidName(name))
	if cerr := w.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	d.logger().Infof("Wrote %s (%s)", name, time.Since(start).Round(time.Millisecond))
	if d.Written != nil {
		return d.Written(name)
	}
	return nil
}
