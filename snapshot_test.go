package cfgmat

import (
	"os"
	"path/filepath"
	"testing"

	"git.fractalqb.de/fractalqb/testerr"
)

func TestSnapshot_Restore(t *testing.T) {
	file := filepath.Join(t.TempDir(), "uconfig.h")
	testerr.Shall(os.WriteFile(file, []byte(testHeader), 0640)).BeNil(t)

	snap := testerr.Shall1(TakeSnapshot(file)).BeNil(t)
	if snap.Header() != testHeader {
		t.Error("snapshot differs from file content")
	}
	testerr.Shall(os.WriteFile(file, []byte("clobbered"), 0640)).BeNil(t)
	testerr.Shall(snap.Restore()).BeNil(t)

	data := testerr.Shall1(os.ReadFile(file)).BeNil(t)
	if Header(data) != testHeader {
		t.Error("restore did not bring back the original content")
	}
	st := testerr.Shall1(os.Stat(file)).BeNil(t)
	if st.Mode().Perm() != 0640 {
		t.Errorf("restored file mode %o, want 0640", st.Mode().Perm())
	}
}

func TestSnapshot_missingFile(t *testing.T) {
	_, err := TakeSnapshot(filepath.Join(t.TempDir(), "nope.h"))
	if err == nil {
		t.Error("snapshot of missing file did not fail")
	}
}
