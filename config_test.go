package cfgmat

import (
	"slices"
	"strings"
	"testing"

	"git.fractalqb.de/fractalqb/testerr"
)

func TestReadConfig_overridesDefaults(t *testing.T) {
	cfg := testerr.Shall1(ReadConfig(strings.NewReader(`
dir = "build"
run-unit = true
exclude-unit = ["UCONFIG_NO_CONVERSION"]

[unit]
exe = "ninja"
args = ["test"]
`))).BeNil(t)
	if cfg.Dir != "build" {
		t.Errorf("dir '%s', want 'build'", cfg.Dir)
	}
	if cfg.Unit.Exe != "ninja" || !slices.Equal(cfg.Unit.Args, []string{"test"}) {
		t.Errorf("unit command %s %v", cfg.Unit.Exe, cfg.Unit.Args)
	}
	if !cfg.RunUnit || cfg.RunHdr {
		t.Error("requested categories not taken from file")
	}
	if !slices.Equal(cfg.ExcludeUnit, []Flag{"UCONFIG_NO_CONVERSION"}) {
		t.Errorf("exclusions %v", cfg.ExcludeUnit)
	}
	// untouched keys keep the ICU defaults
	if cfg.Prefix != DefaultPrefix {
		t.Errorf("prefix '%s', want '%s'", cfg.Prefix, DefaultPrefix)
	}
	if cfg.Clean.Exe != "make" {
		t.Errorf("clean command '%s', want 'make'", cfg.Clean.Exe)
	}
}

func TestReadConfig_unknownKey(t *testing.T) {
	_, err := ReadConfig(strings.NewReader("nonsense = 1\n"))
	if err == nil {
		t.Error("unknown config key not rejected")
	}
}

func TestConfig_Check(t *testing.T) {
	cfg := DefaultConfig()
	testerr.Shall(cfg.Check()).
		Check(t, testerr.Msg("config: neither unit nor header tests requested"))
	cfg.RunUnit = true
	testerr.Shall(cfg.Check()).BeNil(t)
	cfg.Unit.Exe = ""
	testerr.Shall(cfg.Check()).
		Check(t, testerr.Msg("config: unit tests requested without unit command"))
	cfg.RunUnit, cfg.RunHdr = false, true
	testerr.Shall(cfg.Check()).BeNil(t)
	cfg.Header = ""
	testerr.Shall(cfg.Check()).Check(t, testerr.Msg("config: no header file"))
}
