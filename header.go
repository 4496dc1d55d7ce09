package cfgmat

import (
	"fmt"
	"regexp"
)

// Flag names a feature-disable switch declared in a configuration header.
type Flag string

// DefaultPrefix selects the feature-disable flags of ICU's uconfig.h.
const DefaultPrefix = "UCONFIG_NO_"

// Header is the full text of one configuration header. All operations derive
// new text; a Header is never changed in place. Keep the original around for
// the whole run so every single-flag variant is derived from the same text.
type Header string

func flagPattern(prefix string) *regexp.Regexp {
	return regexp.MustCompile(regexp.QuoteMeta(prefix) + "[A-Z_]*")
}

// Flags returns the distinct flags in h that match prefix followed by
// uppercase letters and underscores, ordered by first occurrence. Repeated
// textual occurrences of a flag do not create duplicates.
func (h Header) Flags(prefix string) []Flag {
	var (
		flags []Flag
		seen  = make(map[Flag]bool)
	)
	for _, m := range flagPattern(prefix).FindAllString(string(h), -1) {
		if f := Flag(m); !seen[f] {
			seen[f] = true
			flags = append(flags, f)
		}
	}
	return flags
}

// guardPattern matches f's complete guard block. The flag name is quoted and
// bounded on both sides, so flags sharing a name prefix never cross-match.
// Group 1 ends right before the default value 0.
func guardPattern(f Flag) *regexp.Regexp {
	name := regexp.QuoteMeta(string(f))
	return regexp.MustCompile(
		`(?m)^(#ifndef ` + name + `\n#[ \t]*define ` + name + `[ \t]+)0\n#endif$`,
	)
}

// Enable returns a copy of h in which f's guard block
//
//	#ifndef <f>
//	#   define <f> 0
//	#endif
//
// defines <f> as 1. All other text stays byte-identical. A header without
// such a block for f is an error; Enable never silently no-ops.
func (h Header) Enable(f Flag) (Header, error) {
	m := guardPattern(f).FindStringSubmatchIndex(string(h))
	if m == nil {
		return "", fmt.Errorf("no definition for flag %s", f)
	}
	return h[:m[3]] + "1" + h[m[3]+1:], nil
}

// EnableAll folds [Header.Enable] over flags, accumulating a composite
// header with every given flag enabled.
func (h Header) EnableAll(flags []Flag) (Header, error) {
	var err error
	for _, f := range flags {
		if h, err = h.Enable(f); err != nil {
			return "", err
		}
	}
	return h, nil
}
