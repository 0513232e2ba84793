/*
 * cfvm - a class-file inspector and bytecode interpreter
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package classfile

import "strings"

// TrimNul strips the trailing NUL byte that Utf8BytesAt appends for
// convenience, returning the raw modified-UTF-8 payload as it appeared
// in the class file.
func TrimNul(b []byte) []byte {
	if n := len(b); n > 0 && b[n-1] == 0 {
		return b[:n-1]
	}
	return b
}

// BinaryClassName converts a CP Class entry's '/'-separated internal
// form (java/lang/Object) to the dotted form (java.lang.Object) that
// diagnostics and disassembly listings print.
func BinaryClassName(internal string) string {
	return strings.ReplaceAll(internal, "/", ".")
}

// ClassNameAt resolves idx as a TagClass entry and returns its name in
// dotted form, or "" if idx does not name a valid Class entry.
func ClassNameAt(cp *ConstantPool, idx uint16) (string, bool) {
	nameIdx, ok := cp.ClassAt(idx)
	if !ok {
		return "", false
	}
	name, ok := cp.Utf8At(nameIdx)
	if !ok {
		return "", false
	}
	return BinaryClassName(name), true
}
