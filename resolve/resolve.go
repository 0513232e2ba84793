/*
 * cfvm - a class-file inspector and bytecode interpreter
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

// Package resolve walks constant-pool dereference chains on behalf of
// the disassembler and the interpreter: a Methodref entry names a
// class_index and a name_and_type_index, each of which is itself a CP
// index one level down, and the caller wants the fully resolved strings
// rather than three more lookups.
package resolve

import "cfvm/classfile"

// Literal renders the value of a CP entry as a display string, for use
// by the disassembler's operand column. It does not error: an entry it
// cannot render comes back as "?", since disassembly is a best-effort
// listing, not a validator.
func Literal(cp *classfile.ConstantPool, idx uint16) string {
	switch cp.TagAt(idx) {
	case classfile.TagUtf8:
		s, _ := cp.Utf8At(idx)
		return s
	case classfile.TagClass:
		name, ok := classfile.ClassNameAt(cp, idx)
		if !ok {
			return "?"
		}
		return name
	case classfile.TagString:
		strIdx, _ := cp.StringAt(idx)
		s, ok := cp.Utf8At(strIdx)
		if !ok {
			return "?"
		}
		return s
	case classfile.TagInteger:
		v, _ := cp.IntegerAt(idx)
		return formatInt32(int32(v))
	case classfile.TagFloat:
		v, _ := cp.FloatAt(idx)
		return formatFloat32(v)
	case classfile.TagLong:
		hi, lo, _ := cp.LongAt(idx)
		return formatInt64(joinU64(hi, lo))
	case classfile.TagDouble:
		hi, lo, _ := cp.DoubleAt(idx)
		return formatFloat64(joinU64(hi, lo))
	case classfile.TagFieldref, classfile.TagMethodref, classfile.TagInterfaceMethodref:
		class, name, desc, ok := Ref(cp, idx)
		if !ok {
			return "?"
		}
		return class + "." + name + ":" + desc
	case classfile.TagNameAndType:
		name, desc, ok := nameAndType(cp, idx)
		if !ok {
			return "?"
		}
		return name + ":" + desc
	case classfile.TagMethodType:
		descIdx, _ := cp.MethodTypeAt(idx)
		s, ok := cp.Utf8At(descIdx)
		if !ok {
			return "?"
		}
		return s
	default:
		return "?"
	}
}

// ClassName resolves idx, which must name a TagClass entry, to its
// dotted binary name.
func ClassName(cp *classfile.ConstantPool, idx uint16) (string, bool) {
	return classfile.ClassNameAt(cp, idx)
}

// Ref walks a Fieldref/Methodref/InterfaceMethodref's full dereference
// chain down to the declaring class name, member name, and descriptor --
// all three ref kinds share the same CP shape.
func Ref(cp *classfile.ConstantPool, idx uint16) (class, name, desc string, ok bool) {
	classIdx, natIdx, ok := cp.RefAt(idx)
	if !ok {
		return "", "", "", false
	}
	class, ok = classfile.ClassNameAt(cp, classIdx)
	if !ok {
		return "", "", "", false
	}
	name, desc, ok = nameAndType(cp, natIdx)
	return class, name, desc, ok
}

// nameAndType resolves a NameAndType entry to its (name, descriptor)
// strings.
func nameAndType(cp *classfile.ConstantPool, idx uint16) (name, desc string, ok bool) {
	nameIdx, descIdx, ok := cp.NameAndTypeAt(idx)
	if !ok {
		return "", "", false
	}
	name, ok = cp.Utf8At(nameIdx)
	if !ok {
		return "", "", false
	}
	desc, ok = cp.Utf8At(descIdx)
	if !ok {
		return "", "", false
	}
	return name, desc, true
}

func joinU64(hi, lo uint32) uint64 {
	return uint64(hi)<<32 | uint64(lo)
}
