/*
 * cfvm - a class-file inspector and bytecode interpreter
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

// Package render formats a parsed ClassFile for the CLI's two output
// modes. JSON marshals the struct tree directly (classfile's json tags
// do the work); pretty styles a disassembly listing with lipgloss.
package render

import (
	"bytes"
	"encoding/json"

	"cfvm/classfile"
)

// JSON marshals cf as indented JSON. The constant pool is intentionally
// excluded (ClassFile.ConstantPool carries json:"-"): it is an internal
// structure-of-arrays representation, not something a JSON consumer of
// this tool's output should depend on.
func JSON(cf *classfile.ClassFile) ([]byte, error) {
	raw, err := json.Marshal(cf)
	if err != nil {
		return nil, err
	}
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, raw, "", "  "); err != nil {
		return nil, err
	}
	return pretty.Bytes(), nil
}
