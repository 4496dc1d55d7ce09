package cfgmat

import (
	"fmt"
	"io"
)

// Report writes one line per failing matrix cell to w, naming the flag and
// the failing category, and a closing verdict. It returns true iff every
// cell that ran passed – no partial credit. Cells that never ran, i.e.
// categories that were not requested and unit tests of excluded flags, are
// not judged.
func Report(w io.Writer, m *Matrix) bool {
	ok := true
	fmt.Fprintln(w, "Summary:")
	for _, f := range m.Flags() {
		for c := Category(0); c < categories; c++ {
			if !m.Ran(f, c) || m.Pass(f, c) {
				continue
			}
			ok = false
			if f == AllFlags {
				fmt.Fprintf(w, "all flags to 1: %s fail!\n", c)
			} else {
				fmt.Fprintf(w, "%s: %s fail\n", f, c)
			}
		}
	}
	if ok {
		fmt.Fprintln(w, "Tests pass for all configuration variations!")
	}
	return ok
}
