package cfgmat

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/pelletier/go-toml/v2"
)

// Command configures one external invocation as an argv vector.
type Command struct {
	Exe  string   `toml:"exe"`
	Args []string `toml:"args"`
}

// Config describes one matrix run. The zero value is not usable; start from
// [DefaultConfig] or read a TOML file with [ReadConfig].
type Config struct {
	// Dir is the build directory; commands run in it and Header is
	// relative to it.
	Dir string `toml:"dir"`
	// Header is the configuration header that is rewritten between matrix
	// cells. Its content is volatile during a run and restored afterwards.
	Header string `toml:"header"`
	// Prefix selects the feature-disable flags extracted from Header.
	Prefix string `toml:"prefix"`
	// Log is the file that receives the combined output of every external
	// command. Relative paths are resolved against Dir.
	Log string `toml:"log"`

	// Setup commands run once before the matrix. Any failure is fatal.
	Setup []Command `toml:"setup"`
	// Clean invalidates stale build artifacts before each matrix cell
	// pair. Its exit status is not judged.
	Clean Command `toml:"clean"`
	// Unit runs the native unit-test suite.
	Unit Command `toml:"unit"`
	// Hdr runs the header-compatibility check.
	Hdr Command `toml:"hdr"`
	// HdrPath, if set, is prepended to PATH for Hdr invocations.
	HdrPath string `toml:"hdr-path"`

	// ExcludeUnit names flags known-incompatible with the unit-test
	// category. They are skipped there; header tests still run for them.
	ExcludeUnit []Flag `toml:"exclude-unit"`

	// RunUnit and RunHdr select the test categories. A category runs if
	// and only if it is requested; at least one must be.
	RunUnit bool `toml:"run-unit"`
	RunHdr  bool `toml:"run-hdr"`
}

// DefaultConfig mirrors the classic ICU4C uconfig variations check.
func DefaultConfig() *Config {
	return &Config{
		Dir:    "icu4c/source",
		Header: "common/unicode/uconfig.h",
		Prefix: DefaultPrefix,
		Log:    "uconfig_test.log",
		Setup: []Command{
			{Exe: "mkdir", Args: []string{"-p", "/tmp/icu_cnfg"}},
			{Exe: "./runConfigureICU", Args: []string{"Linux", "--prefix=/tmp/icu_cnfg"}},
			{Exe: "make", Args: []string{"-j2", "install"}},
			{Exe: "ln", Args: []string{"-sf",
				"common/unicode/uconfig.h",
				"/tmp/icu_cnfg/include/unicode/uconfig.h",
			}},
		},
		Clean:       Command{Exe: "make", Args: []string{"clean"}},
		Unit:        Command{Exe: "make", Args: []string{"-j2", "check"}},
		Hdr:         Command{Exe: "make", Args: []string{"-C", "test/hdrtst", "check"}},
		HdrPath:     "/tmp/icu_cnfg/bin",
		ExcludeUnit: []Flag{"UCONFIG_NO_CONVERSION", "UCONFIG_NO_FILE_IO"},
	}
}

// ReadConfig reads a TOML run configuration. Keys the file does not set keep
// their [DefaultConfig] value. Unknown keys are an error. Note that the
// result is not checked; [Config.Check] runs once command line flags had
// their say.
func ReadConfig(r io.Reader) (*Config, error) {
	var cfg Config
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return nil, err
	}
	cfg.fillDefaults()
	return &cfg, nil
}

func (cfg *Config) fillDefaults() {
	def := DefaultConfig()
	if cfg.Dir == "" {
		cfg.Dir = def.Dir
	}
	if cfg.Header == "" {
		cfg.Header = def.Header
	}
	if cfg.Prefix == "" {
		cfg.Prefix = def.Prefix
	}
	if cfg.Log == "" {
		cfg.Log = def.Log
	}
	if cfg.Setup == nil {
		cfg.Setup = def.Setup
	}
	if cfg.Clean.Exe == "" {
		cfg.Clean = def.Clean
	}
	if cfg.Unit.Exe == "" {
		cfg.Unit = def.Unit
	}
	if cfg.Hdr.Exe == "" {
		cfg.Hdr = def.Hdr
		if cfg.HdrPath == "" {
			cfg.HdrPath = def.HdrPath
		}
	}
	if cfg.ExcludeUnit == nil {
		cfg.ExcludeUnit = def.ExcludeUnit
	}
}

func LoadConfig(file string) (*Config, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	cfg, err := ReadConfig(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	return cfg, nil
}

func (cfg *Config) Check() error {
	switch {
	case cfg.Header == "":
		return errors.New("config: no header file")
	case cfg.Prefix == "":
		return errors.New("config: no flag prefix")
	case !cfg.RunUnit && !cfg.RunHdr:
		return errors.New("config: neither unit nor header tests requested")
	case cfg.Clean.Exe == "":
		return errors.New("config: no clean command")
	case cfg.RunUnit && cfg.Unit.Exe == "":
		return errors.New("config: unit tests requested without unit command")
	case cfg.RunHdr && cfg.Hdr.Exe == "":
		return errors.New("config: header tests requested without hdr command")
	}
	return nil
}

func (cfg *Config) excludesUnit(f Flag) bool {
	return slices.Contains(cfg.ExcludeUnit, f)
}
