/*
 * cfvm - a class-file inspector and bytecode interpreter
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"cfvm/classfile"
	"cfvm/disasm"
	"cfvm/version"
)

// Styling is purely cosmetic here -- nothing downstream branches on
// these styles, matching mabhi256-jdiag's internal/tui/styles.go usage
// of lipgloss to decorate panels the TUI's logic doesn't otherwise
// depend on.
var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#4682B4"))
	mnemonicStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#228B22"))
	operandStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
)

// PrettyOptions controls what Pretty includes in its listing.
type PrettyOptions struct {
	NoCode bool
}

// Pretty renders cf as a styled, human-readable listing: a header with
// the class's version and name, its constant pool summary, and a
// disassembly of each method's Code attribute (unless NoCode is set).
func Pretty(cf *classfile.ClassFile, opts PrettyOptions) string {
	var b strings.Builder

	className, _ := classfile.ClassNameAt(cf.ConstantPool, cf.ThisClass)
	if className == "" {
		className = "?"
	}
	fmt.Fprintln(&b, headerStyle.Render(fmt.Sprintf("class %s", className)))
	fmt.Fprintf(&b, "  version: %s\n", version.String(cf.MajorVersion, cf.MinorVersion))
	fmt.Fprintf(&b, "  constant pool: %d entries\n", cf.ConstantPool.Count())
	fmt.Fprintf(&b, "  fields: %d, methods: %d\n\n", len(cf.Fields), len(cf.Methods))

	if opts.NoCode {
		return b.String()
	}

	for _, m := range cf.Methods {
		name, _ := cf.ConstantPool.Utf8At(m.NameIndex)
		desc, _ := cf.ConstantPool.Utf8At(m.DescriptorIndex)
		fmt.Fprintln(&b, headerStyle.Render(fmt.Sprintf("method %s%s", name, desc)))

		raw, ok := classfile.FindCodeAttribute(cf.ConstantPool, m)
		if !ok {
			fmt.Fprintln(&b, "  (no Code attribute)")
			continue
		}
		code, err := classfile.ParseCodeAttribute(cf.ConstantPool, raw)
		if err != nil {
			fmt.Fprintf(&b, "  (Code attribute error: %v)\n", err)
			continue
		}
		fmt.Fprintf(&b, "  max_stack=%d max_locals=%d\n", code.MaxStack, code.MaxLocals)

		for _, insn := range disasm.Decode(cf.ConstantPool, code.Code) {
			line := fmt.Sprintf("%6d: %s", insn.PC, mnemonicStyle.Render(insn.Mnemonic))
			if insn.Operand != "" {
				line += " " + operandStyle.Render(insn.Operand)
			}
			fmt.Fprintln(&b, line)
		}
		fmt.Fprintln(&b)
	}

	return b.String()
}
