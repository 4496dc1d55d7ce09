package cfgmat

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"
)

// Category is one of the two test categories recorded per matrix cell.
type Category int

const (
	UnitTest Category = iota
	HdrTest

	categories
)

func (c Category) String() string {
	switch c {
	case UnitTest:
		return "unit tests"
	case HdrTest:
		return "header tests"
	}
	return fmt.Sprintf("!Category(%d)!", int(c))
}

// AllFlags is the synthetic matrix key for the composite pass with all flags
// enabled simultaneously.
const AllFlags Flag = "all_flags"

// Matrix records one boolean outcome per (flag, category) cell. The key set
// is fixed on creation as the extracted flags plus [AllFlags]; no keys are
// added or removed later. Cells start in the not-run state. Only cells that
// ran are judged by [Report].
type Matrix struct {
	flags []Flag
	index map[Flag]uint
	ran   [categories]*bitset.BitSet
	pass  [categories]*bitset.BitSet
}

func NewMatrix(flags []Flag) *Matrix {
	m := &Matrix{
		flags: append(append([]Flag(nil), flags...), AllFlags),
		index: make(map[Flag]uint, len(flags)+1),
	}
	for i, f := range m.flags {
		m.index[f] = uint(i)
	}
	n := uint(len(m.flags))
	for c := range m.ran {
		m.ran[c] = bitset.New(n)
		m.pass[c] = bitset.New(n)
	}
	return m
}

// Flags returns the matrix keys in extraction order with [AllFlags] last.
func (m *Matrix) Flags() []Flag { return m.flags }

// Set marks the (f, c) cell as run and stores its outcome. f must be a key
// of m.
func (m *Matrix) Set(f Flag, c Category, pass bool) {
	i, ok := m.index[f]
	if !ok {
		panic(fmt.Sprintf("matrix: set unknown flag %s", f))
	}
	m.ran[c].Set(i)
	m.pass[c].SetTo(i, pass)
}

// Ran tells if the (f, c) cell was run.
func (m *Matrix) Ran(f Flag, c Category) bool {
	i, ok := m.index[f]
	return ok && m.ran[c].Test(i)
}

// Pass tells if the (f, c) cell was run and passed.
func (m *Matrix) Pass(f Flag, c Category) bool {
	i, ok := m.index[f]
	return ok && m.pass[c].Test(i)
}

// Failed tells if any cell that ran did not pass.
func (m *Matrix) Failed() bool {
	for c := range m.ran {
		if !m.ran[c].Difference(m.pass[c]).None() {
			return true
		}
	}
	return false
}
