// cfgmat checks that a C library builds and tests green for every variation
// of its feature-disable flags: each flag enabled alone, then all flags
// enabled at once. Exits non-zero if any variation fails.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"

	"git.fractalqb.de/fractalqb/cfgmat"
	"git.fractalqb.de/fractalqb/cfgmat/run"
)

var (
	tracer = &cfgmat.WriteTracer{W: os.Stderr, Log: cfgmat.DefaultTraceLog}

	cfgFile  string
	buildDir string
	runUnit  bool
	runHdr   bool
)

func flags() *cfgmat.Config {
	flag.StringVar(&cfgFile, "c", "", "Read run configuration from TOML `file`")
	flag.StringVar(&buildDir, "C", "", "Override the build `dir`ectory")
	flag.BoolVar(&runUnit, "u", runUnit, "Run the unit-test suite per variation")
	flag.BoolVar(&runHdr, "p", runHdr, "Run the header-compatibility check per variation")
	fTrace := flag.String("trace", "", "Set trace level (off, warn, info, debug)")
	flag.Parse()

	if err := tracer.ParseLevelFlag(*fTrace); err != nil {
		fail(err)
	}
	cfg := cfgmat.DefaultConfig()
	if cfgFile != "" {
		var err error
		if cfg, err = cfgmat.LoadConfig(cfgFile); err != nil {
			fail(err)
		}
	}
	if buildDir != "" {
		cfg.Dir = buildDir
	}
	cfg.RunUnit = cfg.RunUnit || runUnit
	cfg.RunHdr = cfg.RunHdr || runHdr
	return cfg
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}

func main() {
	cfg := flags()

	var cmdLog io.Writer
	if cfg.Log != "" {
		logPath := cfg.Log
		if !filepath.IsAbs(logPath) {
			logPath = filepath.Join(cfg.Dir, logPath)
		}
		logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fail(err)
		}
		defer logFile.Close()
		cmdLog = logFile
	}

	// No timeouts anywhere; an interrupt is the only way to cut a hanging
	// build short and it still restores the header.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	drv := &cfgmat.Driver{
		Cfg:    cfg,
		Runner: &run.ExecRunner{Env: run.OSEnv(), Log: cmdLog},
		Tracer: tracer,
	}
	m, err := drv.Run(ctx)
	if err != nil {
		fail(err)
	}
	if !cfgmat.Report(os.Stdout, m) {
		os.Exit(1)
	}
}
