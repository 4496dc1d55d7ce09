package cfgmat

import (
	"time"

	"git.fractalqb.de/fractalqb/cfgmat/run"
)

// Tracer receives the progress events of one matrix run.
type Tracer interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)

	StartRun(header string, flags []Flag)
	DoneRun(m *Matrix, dt time.Duration)

	StartCell(f Flag, c Category)
	DoneCell(f Flag, c Category, ok bool, dt time.Duration)

	RunCmd(c *run.Cmd)
}

type TraceLog int

var DefaultTraceLog TraceLog = TraceWarn

const (
	TraceWarn TraceLog = (1 << iota)
	TraceInfo
	TraceDebug
)
