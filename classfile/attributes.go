/*
 * cfvm - a class-file inspector and bytecode interpreter
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package classfile

// CodeAttribute is the lifted form of a method's Code attribute: the
// bytecode itself plus the tables the VM and a disassembler need to make
// sense of it. Parsing it is a second pass over a RawAttribute's Info,
// separate from the structural class-file walk in Parse.
type CodeAttribute struct {
	MaxStack     uint16
	MaxLocals    uint16
	Code         []byte
	ExceptionTable []ExceptionTableEntry
	LineNumbers  []LineNumberEntry
	LocalVars    []LocalVariableEntry
}

// ExceptionTableEntry describes one protected region of code and the
// handler that catches it. CatchType is a CP index into a Class entry,
// or 0 to mean "catches everything" (the compiled form of finally).
type ExceptionTableEntry struct {
	StartPC   uint16
	EndPC     uint16
	HandlerPC uint16
	CatchType uint16
}

// LineNumberEntry maps a bytecode offset to a source line, from a
// LineNumberTable attribute nested inside Code.
type LineNumberEntry struct {
	StartPC    uint16
	LineNumber uint16
}

// LocalVariableEntry describes the scope and type of one local variable
// slot, from a LocalVariableTable attribute nested inside Code.
type LocalVariableEntry struct {
	StartPC   uint16
	Length    uint16
	NameIndex uint16
	DescIndex uint16
	Index     uint16
}

// FindCodeAttribute returns the Code attribute of m, if it has one.
// A method with ACC_NATIVE or ACC_ABSTRACT set legitimately has none.
func FindCodeAttribute(cp *ConstantPool, m MethodInfo) (RawAttribute, bool) {
	for _, a := range m.Attributes {
		if a.Name(cp) == "Code" {
			return a, true
		}
	}
	return RawAttribute{}, false
}

// ParseCodeAttribute lifts raw's Info payload into a CodeAttribute:
// max_stack, max_locals, a length-prefixed code array, an exception
// table, and a nested attribute list (of which only LineNumberTable and
// LocalVariableTable are interpreted here; anything else nested is
// silently ignored).
func ParseCodeAttribute(cp *ConstantPool, raw RawAttribute) (*CodeAttribute, error) {
	r := NewByteReader(raw.Info)

	maxStack, err := r.U2()
	if err != nil {
		return nil, err
	}
	maxLocals, err := r.U2()
	if err != nil {
		return nil, err
	}
	codeLength, err := r.U4()
	if err != nil {
		return nil, err
	}
	if codeLength == 0 || codeLength > 65535 {
		return nil, cfe(ErrCPTag, r.Pos(), "code_length must be in range (0, 65535]")
	}
	code, err := r.Bytes(int(codeLength))
	if err != nil {
		return nil, err
	}

	excCount, err := r.U2()
	if err != nil {
		return nil, err
	}
	excTable := make([]ExceptionTableEntry, 0, excCount)
	for i := 0; i < int(excCount); i++ {
		startPC, err := r.U2()
		if err != nil {
			return nil, err
		}
		endPC, err := r.U2()
		if err != nil {
			return nil, err
		}
		handlerPC, err := r.U2()
		if err != nil {
			return nil, err
		}
		catchType, err := r.U2()
		if err != nil {
			return nil, err
		}
		if !(startPC < endPC && endPC <= uint16(codeLength)) {
			return nil, cfe(ErrCPTag, r.Pos(), "exception table entry has start_pc >= end_pc or end_pc beyond code")
		}
		if handlerPC >= uint16(codeLength) {
			return nil, cfe(ErrCPTag, r.Pos(), "exception table entry has handler_pc beyond code")
		}
		excTable = append(excTable, ExceptionTableEntry{
			StartPC:   startPC,
			EndPC:     endPC,
			HandlerPC: handlerPC,
			CatchType: catchType,
		})
	}

	nestedAttrs, err := parseRawAttributes(r)
	if err != nil {
		return nil, err
	}

	attr := &CodeAttribute{
		MaxStack:       maxStack,
		MaxLocals:      maxLocals,
		Code:           code,
		ExceptionTable: excTable,
	}

	for _, na := range nestedAttrs {
		switch na.Name(cp) {
		case "LineNumberTable":
			lines, err := parseLineNumberTable(na.Info)
			if err != nil {
				return nil, err
			}
			attr.LineNumbers = lines
		case "LocalVariableTable":
			vars, err := parseLocalVariableTable(na.Info)
			if err != nil {
				return nil, err
			}
			attr.LocalVars = vars
		}
	}

	return attr, nil
}

func parseLineNumberTable(info []byte) ([]LineNumberEntry, error) {
	r := NewByteReader(info)
	count, err := r.U2()
	if err != nil {
		return nil, err
	}
	out := make([]LineNumberEntry, 0, count)
	for i := 0; i < int(count); i++ {
		startPC, err := r.U2()
		if err != nil {
			return nil, err
		}
		lineNum, err := r.U2()
		if err != nil {
			return nil, err
		}
		out = append(out, LineNumberEntry{StartPC: startPC, LineNumber: lineNum})
	}
	return out, nil
}

func parseLocalVariableTable(info []byte) ([]LocalVariableEntry, error) {
	r := NewByteReader(info)
	count, err := r.U2()
	if err != nil {
		return nil, err
	}
	out := make([]LocalVariableEntry, 0, count)
	for i := 0; i < int(count); i++ {
		startPC, err := r.U2()
		if err != nil {
			return nil, err
		}
		length, err := r.U2()
		if err != nil {
			return nil, err
		}
		nameIdx, err := r.U2()
		if err != nil {
			return nil, err
		}
		descIdx, err := r.U2()
		if err != nil {
			return nil, err
		}
		index, err := r.U2()
		if err != nil {
			return nil, err
		}
		out = append(out, LocalVariableEntry{
			StartPC:   startPC,
			Length:    length,
			NameIndex: nameIdx,
			DescIndex: descIdx,
			Index:     index,
		})
	}
	return out, nil
}
