package cfgmat

import (
	"slices"
	"strings"
	"testing"

	"git.fractalqb.de/fractalqb/testerr"
)

const testHeader = Header(`// sample configuration header
#ifndef UCONFIG_NO_FOO
#   define UCONFIG_NO_FOO 0
#endif

#if UCONFIG_NO_FOO
// FOO is compiled out
#endif

#ifndef UCONFIG_NO_FOO_BAR
#   define UCONFIG_NO_FOO_BAR 0
#endif

#if UCONFIG_NO_QUUX
// QUUX has no guard block of its own
#endif

#ifndef UCONFIG_NO_BAR
#   define UCONFIG_NO_BAR 0
#endif
`)

func TestHeader_Flags(t *testing.T) {
	flags := testHeader.Flags(DefaultPrefix)
	expect := []Flag{
		"UCONFIG_NO_FOO", "UCONFIG_NO_FOO_BAR", "UCONFIG_NO_QUUX", "UCONFIG_NO_BAR",
	}
	if !slices.Equal(flags, expect) {
		t.Errorf("extracted %v, want %v", flags, expect)
	}
}

func TestHeader_Flags_none(t *testing.T) {
	if flags := Header("#define FOO 1\n").Flags(DefaultPrefix); len(flags) != 0 {
		t.Errorf("extracted %v from flagless header", flags)
	}
}

func TestHeader_Enable(t *testing.T) {
	on := testerr.Shall1(testHeader.Enable("UCONFIG_NO_FOO")).BeNil(t)
	expect := strings.Replace(string(testHeader),
		"#   define UCONFIG_NO_FOO 0",
		"#   define UCONFIG_NO_FOO 1",
		1,
	)
	if string(on) != expect {
		t.Errorf("enabled header:\n%s\nwant:\n%s", on, expect)
	}
	if !strings.Contains(string(on), "#   define UCONFIG_NO_FOO_BAR 0") {
		t.Error("guard block of UCONFIG_NO_FOO_BAR was touched")
	}
	if !strings.Contains(string(on), "#   define UCONFIG_NO_BAR 0") {
		t.Error("guard block of UCONFIG_NO_BAR was touched")
	}
	again := testerr.Shall1(testHeader.Enable("UCONFIG_NO_FOO")).BeNil(t)
	if again != on {
		t.Error("Enable is not referentially transparent")
	}
}

func TestHeader_Enable_anchored(t *testing.T) {
	// UCONFIG_NO_FOO must not match inside UCONFIG_NO_FOO_BAR's block
	on := testerr.Shall1(testHeader.Enable("UCONFIG_NO_FOO_BAR")).BeNil(t)
	if !strings.Contains(string(on), "#   define UCONFIG_NO_FOO 0") {
		t.Error("guard block of UCONFIG_NO_FOO was touched")
	}
	if !strings.Contains(string(on), "#   define UCONFIG_NO_FOO_BAR 1") {
		t.Error("guard block of UCONFIG_NO_FOO_BAR not enabled")
	}
}

func TestHeader_Enable_noGuardBlock(t *testing.T) {
	testerr.Shall1(testHeader.Enable("UCONFIG_NO_QUUX")).
		Check(t, testerr.Msg("no definition for flag UCONFIG_NO_QUUX"))
	testerr.Shall1(testHeader.Enable("UCONFIG_NO_BAZ")).
		Check(t, testerr.Msg("no definition for flag UCONFIG_NO_BAZ"))
}

func TestHeader_EnableAll(t *testing.T) {
	flags := []Flag{"UCONFIG_NO_FOO", "UCONFIG_NO_FOO_BAR", "UCONFIG_NO_BAR"}
	all := testerr.Shall1(testHeader.EnableAll(flags)).BeNil(t)
	for _, f := range flags {
		if !strings.Contains(string(all), "define "+string(f)+" 1") {
			t.Errorf("flag %s not enabled in composite", f)
		}
	}
	// toggling values never changes which flags exist
	if !slices.Equal(all.Flags(DefaultPrefix), testHeader.Flags(DefaultPrefix)) {
		t.Error("composite header yields different flag set")
	}
}
