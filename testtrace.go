package cfgmat

import (
	"testing"
	"time"

	"git.fractalqb.de/fractalqb/cfgmat/run"
)

type TestTracer struct{ t *testing.T }

var _ Tracer = TestTracer{}

func (tr TestTracer) Debug(msg string, args ...any) {
	tr.t.Logf("cfgmat-DEBUG: "+msg, args...)
}

func (tr TestTracer) Info(msg string, args ...any) {
	tr.t.Logf("cfgmat-INFO: "+msg, args...)
}

func (tr TestTracer) Warn(msg string, args ...any) {
	tr.t.Logf("cfgmat-WARN: "+msg, args...)
}

func (tr TestTracer) StartRun(header string, flags []Flag) {
	tr.t.Logf("cfgmat-StartRun: %s %v", header, flags)
}

func (tr TestTracer) DoneRun(m *Matrix, dt time.Duration) {
	tr.t.Logf("cfgmat-DoneRun: failed=%t %s", m.Failed(), dt)
}

func (tr TestTracer) StartCell(f Flag, c Category) {
	tr.t.Logf("cfgmat-StartCell: %s %s", f, c)
}

func (tr TestTracer) DoneCell(f Flag, c Category, ok bool, dt time.Duration) {
	tr.t.Logf("cfgmat-DoneCell: %s %s ok=%t %s", f, c, ok, dt)
}

func (tr TestTracer) RunCmd(c *run.Cmd) {
	tr.t.Logf("cfgmat-RunCmd: %s", c.Describe())
}
