package cfgmat

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"git.fractalqb.de/fractalqb/cfgmat/run"
	"git.fractalqb.de/fractalqb/sllm/v3"
)

type WriteTracer struct {
	W   io.Writer
	Log TraceLog
}

var _ Tracer = (*WriteTracer)(nil)

func DefaultTracer() Tracer {
	return &WriteTracer{W: os.Stderr, Log: DefaultTraceLog}
}

func (tr *WriteTracer) ParseLevelFlag(f string) error {
	switch f {
	case "":
		return nil
	case "off":
		tr.Log = 0
	case "warn", "w":
		tr.Log = TraceWarn
	case "info", "i":
		tr.Log = TraceWarn | TraceInfo
	case "debug", "d":
		tr.Log = TraceWarn | TraceInfo | TraceDebug
	default:
		return fmt.Errorf("write tracer: illegal log flag '%s'", f)
	}
	return nil
}

func (tr *WriteTracer) Debug(msg string, args ...any) {
	if tr.Log&TraceDebug == 0 {
		return
	}
	fmt.Fprint(tr.W, "  DEBUG ")
	sllm.Fprint(tr.W, msg, sllmArgs(args).append)
	fmt.Fprintln(tr.W)
}

func (tr *WriteTracer) Info(msg string, args ...any) {
	if tr.Log&(TraceInfo|TraceDebug) == 0 {
		return
	}
	fmt.Fprint(tr.W, "  INFO  ")
	sllm.Fprint(tr.W, msg, sllmArgs(args).append)
	fmt.Fprintln(tr.W)
}

func (tr *WriteTracer) Warn(msg string, args ...any) {
	if tr.Log&(TraceWarn|TraceInfo|TraceDebug) == 0 {
		return
	}
	fmt.Fprint(tr.W, "  WARN  ")
	sllm.Fprint(tr.W, msg, sllmArgs(args).append)
	fmt.Fprintln(tr.W)
}

func (tr *WriteTracer) StartRun(header string, flags []Flag) {
	fmt.Fprintf(tr.W, "{ checking %d flag variations of %s\n", len(flags), header)
}

func (tr *WriteTracer) DoneRun(m *Matrix, dt time.Duration) {
	verdict := "pass"
	if m.Failed() {
		verdict = "fail"
	}
	fmt.Fprintf(tr.W, "} variations %s, took %s\n", verdict, dt)
}

func (tr *WriteTracer) StartCell(f Flag, c Category) {
	fmt.Fprintf(tr.W, "  running %s with %s set to 1\n", c, cellName(f))
}

func (tr *WriteTracer) DoneCell(f Flag, c Category, ok bool, dt time.Duration) {
	if tr.Log&(TraceInfo|TraceDebug) == 0 {
		return
	}
	verdict := "pass"
	if !ok {
		verdict = "fail"
	}
	fmt.Fprintf(tr.W, "  %s with %s set to 1: %s after %s\n", c, cellName(f), verdict, dt)
}

func (tr *WriteTracer) RunCmd(c *run.Cmd) {
	if tr.Log&(TraceInfo|TraceDebug) == 0 {
		return
	}
	fmt.Fprintf(tr.W, "  exec %s\n", c.Describe())
}

func cellName(f Flag) string {
	if f == AllFlags {
		return "all flags"
	}
	return string(f)
}

type sllmArgs []any

func (as sllmArgs) append(buf []byte, _ int, n string) ([]byte, error) {
	for len(as) > 0 {
		switch k := as[0].(type) {
		case string:
			if len(as) == 1 {
				return buf, fmt.Errorf("no value for key '%s'", n)
			}
			if k == n {
				return sllm.AppendArg(buf, as[1]), nil
			}
			as = as[2:]
		case slog.Attr:
			if k.Key == n {
				return sllm.AppendArg(buf, k.Value), nil
			}
			as = as[1:]
		default:
			return buf, fmt.Errorf("illegal key type %T", k)
		}
	}
	return buf, fmt.Errorf("no key '%s'", n)
}
