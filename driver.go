package cfgmat

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"git.fractalqb.de/fractalqb/cfgmat/run"
)

// ErrNoFlags is the fatal error for a header that declares no feature-disable
// flags. The matrix would be meaningless, so no external command is run.
var ErrNoFlags = errors.New("no feature-disable flags found")

// Driver owns the configuration header and the build directory for the
// duration of one matrix run. Everything happens on the calling goroutine,
// one external process at a time.
type Driver struct {
	Cfg    *Config
	Runner run.Runner
	Tracer Tracer
}

// Run executes the full matrix: setup once, one cell pair per flag in
// extraction order, the all-enabled composite passes last. Failing build or
// test commands are recorded in the returned matrix. A non-nil error means
// the run was aborted outside the matrix – bad configuration, no flags, a
// missing guard block, a failing setup command – and the matrix is nil.
//
// The on-disk header is restored from its snapshot on every return path.
func (d *Driver) Run(ctx context.Context) (*Matrix, error) {
	if err := d.Cfg.Check(); err != nil {
		return nil, err
	}
	snap, err := TakeSnapshot(d.headerFile())
	if err != nil {
		return nil, fmt.Errorf("snapshot header: %w", err)
	}
	defer func() {
		if err := snap.Restore(); err != nil {
			d.tracer().Warn("failed to restore `header`: `error`",
				`header`, d.headerFile(),
				`error`, err,
			)
		}
	}()

	orig := snap.Header()
	flags := orig.Flags(d.Cfg.Prefix)
	if len(flags) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoFlags, d.headerFile())
	}
	start := time.Now()
	d.tracer().StartRun(d.headerFile(), flags)
	m := NewMatrix(flags)

	if err := d.setup(ctx); err != nil {
		return nil, err
	}
	for _, f := range flags {
		hdr, err := orig.Enable(f)
		if err != nil {
			return nil, err
		}
		unit := d.Cfg.RunUnit && !d.Cfg.excludesUnit(f)
		if err := d.checkCells(ctx, m, f, hdr, unit, d.Cfg.RunHdr); err != nil {
			return nil, err
		}
	}
	// The composite flag sets differ per category: unit tests leave the
	// excluded flags at 0, the header check enables every flag.
	if d.Cfg.RunUnit {
		var unitFlags []Flag
		for _, f := range flags {
			if !d.Cfg.excludesUnit(f) {
				unitFlags = append(unitFlags, f)
			}
		}
		hdr, err := orig.EnableAll(unitFlags)
		if err != nil {
			return nil, err
		}
		if err := d.checkCells(ctx, m, AllFlags, hdr, true, false); err != nil {
			return nil, err
		}
	}
	if d.Cfg.RunHdr {
		hdr, err := orig.EnableAll(flags)
		if err != nil {
			return nil, err
		}
		if err := d.checkCells(ctx, m, AllFlags, hdr, false, true); err != nil {
			return nil, err
		}
	}
	d.tracer().DoneRun(m, time.Since(start))
	return m, nil
}

// setup runs the one-time environment setup. Any command that cannot be run
// or exits non-zero aborts the whole run before the matrix begins.
func (d *Driver) setup(ctx context.Context) error {
	for i := range d.Cfg.Setup {
		c := d.cmd(d.Cfg.Setup[i])
		res, err := d.exec(ctx, c)
		if err != nil {
			return fmt.Errorf("setup %s: %w", c.Describe(), err)
		}
		if !res.Ok() {
			return fmt.Errorf("setup %s: exit status %d", c.Describe(), res.ExitCode)
		}
	}
	return nil
}

// checkCells runs one matrix row: write the toggled header, clean, then the
// requested test categories. Test failures are recorded, never returned.
func (d *Driver) checkCells(
	ctx context.Context,
	m *Matrix, f Flag, hdr Header,
	unit, hcheck bool,
) error {
	if !unit && !hcheck {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.WriteFile(d.headerFile(), []byte(hdr), 0666); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	d.clean(ctx)
	if unit {
		d.runCell(ctx, m, f, UnitTest)
	}
	if hcheck {
		d.runCell(ctx, m, f, HdrTest)
	}
	return nil
}

// clean's exit status is not judged, a stale-artifact problem surfaces as a
// failing test cell anyway.
func (d *Driver) clean(ctx context.Context) {
	c := d.cmd(d.Cfg.Clean)
	if _, err := d.exec(ctx, c); err != nil {
		d.tracer().Warn("`clean` did not run: `error`",
			`clean`, c.Describe(),
			`error`, err,
		)
	}
}

func (d *Driver) runCell(ctx context.Context, m *Matrix, f Flag, cat Category) {
	start := time.Now()
	d.tracer().StartCell(f, cat)
	res, err := d.exec(ctx, d.cellCmd(cat))
	ok := err == nil && res.Ok()
	if err != nil {
		d.tracer().Warn("`category` for `flag` did not run: `error`",
			`category`, cat.String(),
			`flag`, string(f),
			`error`, err,
		)
	}
	m.Set(f, cat, ok)
	d.tracer().DoneCell(f, cat, ok, time.Since(start))
}

func (d *Driver) exec(ctx context.Context, c *run.Cmd) (run.Result, error) {
	d.tracer().RunCmd(c)
	return d.Runner.Run(ctx, c)
}

func (d *Driver) cmd(c Command) *run.Cmd {
	return &run.Cmd{Exe: c.Exe, Args: c.Args, Dir: d.Cfg.Dir}
}

func (d *Driver) cellCmd(cat Category) *run.Cmd {
	switch cat {
	case UnitTest:
		return d.cmd(d.Cfg.Unit)
	case HdrTest:
		c := d.cmd(d.Cfg.Hdr)
		if p := d.Cfg.HdrPath; p != "" {
			c.Tags = map[string]string{
				"PATH": p + string(os.PathListSeparator) + os.Getenv("PATH"),
			}
		}
		return c
	}
	panic(fmt.Sprintf("no command for category %d", int(cat)))
}

func (d *Driver) headerFile() string {
	return filepath.Join(d.Cfg.Dir, d.Cfg.Header)
}

func (d *Driver) tracer() Tracer {
	if d.Tracer == nil {
		d.Tracer = DefaultTracer()
	}
	return d.Tracer
}
