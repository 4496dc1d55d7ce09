package cfgmat

import (
	"io/fs"
	"os"
)

// Snapshot keeps the original content of the configuration header so that
// the file can be put back no matter how the run ends. Take it before the
// first mutation and defer Restore right away.
type Snapshot struct {
	path string
	data []byte
	mode fs.FileMode
}

func TakeSnapshot(path string) (*Snapshot, error) {
	st, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return &Snapshot{path: path, data: data, mode: st.Mode().Perm()}, nil
}

// Header returns the snapshotted text.
func (s *Snapshot) Header() Header { return Header(s.data) }

// Restore writes the snapshotted content back to its file.
func (s *Snapshot) Restore() error {
	return os.WriteFile(s.path, s.data, s.mode)
}
