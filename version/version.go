/*
 * cfvm - a class-file inspector and bytecode interpreter
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

// Package version maps a class file's major_version field to the Java
// release that introduced it, a thin lookup table the render package
// consults for display purposes only -- it plays no role in parsing or
// interpretation.
package version

import "fmt"

var releases = map[uint16]string{
	45: "1.1", 46: "1.2", 47: "1.3", 48: "1.4", 49: "5", 50: "6",
	51: "7", 52: "8", 53: "9", 54: "10", 55: "11", 56: "12",
	57: "13", 58: "14", 59: "15", 60: "16", 61: "17", 62: "18",
	63: "19", 64: "20", 65: "21", 66: "22",
}

// Release returns the Java release name for a major_version value, or
// "unknown" if it falls outside the known table.
func Release(major uint16) string {
	if name, ok := releases[major]; ok {
		return name
	}
	return "unknown"
}

// String renders "major.minor (Java release)" for display headers.
func String(major, minor uint16) string {
	return fmt.Sprintf("%d.%d (Java %s)", major, minor, Release(major))
}
