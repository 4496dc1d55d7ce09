// Package cfgmat checks the configuration variations of a C library build.
// The library's central configuration header declares feature-disable flags
// as guarded defines:
//
//	#ifndef UCONFIG_NO_COLLATION
//	#   define UCONFIG_NO_COLLATION 0
//	#endif
//
// cfgmat extracts all such flags from the header, enables each one alone,
// rebuilds and runs the native test harness, and finally repeats the check
// once with all flags enabled simultaneously to catch interaction bugs that
// single-flag runs cannot see. The outcome is a per-flag, per-test-category
// pass/fail matrix; its summary decides the process exit status.
//
// cfgmat is just a small Go library around the core concepts of [Header],
// [Flag] and [Matrix]. The ready-made command lives in cmd/cfgmat. The whole
// run is sequential: one external process at a time, flags in extraction
// order, the all-enabled composite last.
package cfgmat
