package run

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"path/filepath"
)

// Cmd is one external invocation given as an argv vector. Tags extend or
// override the runner's Env for this invocation only, e.g. to prepend an
// install prefix to PATH for a header-compatibility check.
type Cmd struct {
	Exe  string
	Args []string
	Dir  string
	Tags map[string]string
	Desc string
}

func (c *Cmd) Describe() string {
	if c.Desc == "" {
		c.Desc = fmt.Sprintf("%s$%s%v", filepath.Base(c.Exe), c.Exe, c.Args)
	}
	return c.Desc
}

// Result is what a [Runner] observed about one finished command.
type Result struct {
	ExitCode int
	Output   []byte
}

func (r Result) Ok() bool { return r.ExitCode == 0 }

// Runner runs one command at a time and blocks until the process exits. The
// returned error reports a failure to run the command at all; a process that
// ran and exited non-zero is a non-Ok Result, not an error.
type Runner interface {
	Run(ctx context.Context, c *Cmd) (Result, error)
}

// ExecRunner runs commands with os/exec. The combined output of every
// command is captured into its Result and also appended to Log as a side
// channel for post-mortem diagnosis.
type ExecRunner struct {
	Env *Env
	Log io.Writer
}

var _ Runner = (*ExecRunner)(nil)

func (r *ExecRunner) Run(ctx context.Context, c *Cmd) (Result, error) {
	env := r.Env
	if len(c.Tags) > 0 {
		if env == nil {
			env = OSEnv()
		}
		env = env.Clone()
		for k, v := range c.Tags {
			env.SetTag(k, v)
		}
	}
	cmd := exec.CommandContext(ctx, c.Exe, c.Args...)
	cmd.Dir = c.Dir
	if env != nil {
		xenv, err := env.ExecEnv()
		if err != nil {
			return Result{}, err
		}
		cmd.Env = xenv
		cmd.Stdin = env.In
	}
	var out bytes.Buffer
	sink := io.Writer(&out)
	if r.Log != nil {
		sink = io.MultiWriter(&out, r.Log)
	}
	cmd.Stdout = sink
	cmd.Stderr = sink
	err := cmd.Run()
	res := Result{Output: out.Bytes()}
	var xerr *exec.ExitError
	switch {
	case err == nil:
	case errors.As(err, &xerr):
		res.ExitCode = xerr.ExitCode()
	default:
		return res, err
	}
	return res, nil
}
