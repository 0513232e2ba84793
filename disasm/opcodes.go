/*
 * cfvm - a class-file inspector and bytecode interpreter
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package disasm

// ArgKind identifies the shape of an instruction's operand bytes, which
// in turn determines how Decode advances past it.
type ArgKind int

const (
	ArgNone       ArgKind = iota // no operand bytes
	ArgU1                        // one unsigned byte (e.g. ILOAD's local index)
	ArgU2                        // one unsigned 16-bit value (e.g. a CP index)
	ArgOffsetU2                  // signed 16-bit branch offset, relative to the opcode's own pc
	ArgOffsetU4                  // signed 32-bit branch offset (GOTO_W family; the interpreter has no handler for these)
	ArgWide                      // the following byte selects a WIDE-modified instruction
	ArgIinc                      // IINC's {index:u1 or u2, const:i1 or i2} pair
	ArgTableSwitch
	ArgLookupSwitch
)

// opcodeInfo describes one of the 256 possible opcode byte values.
// Mnemonic "" marks a byte value with no table entry -- Decode reports
// those as an unknown-opcode instruction rather than erroring, since a
// disassembler's job is to show the listing, not validate it. The table
// below fills all 256 entries, so byte values the JVM spec never assigns
// render as "reserved" instead.
type opcodeInfo struct {
	mnemonic string
	arg      ArgKind
}

// opcodeTable is indexed directly by opcode byte. Byte values 0xca-0xff
// are filled in with the "reserved" mnemonic rather than left blank, so
// that range renders distinctly from a byte value this table simply has
// no entry for.
var opcodeTable = [256]opcodeInfo{
	0x00: {"nop", ArgNone},
	0x01: {"aconst_null", ArgNone},
	0x02: {"iconst_m1", ArgNone},
	0x03: {"iconst_0", ArgNone},
	0x04: {"iconst_1", ArgNone},
	0x05: {"iconst_2", ArgNone},
	0x06: {"iconst_3", ArgNone},
	0x07: {"iconst_4", ArgNone},
	0x08: {"iconst_5", ArgNone},
	0x09: {"lconst_0", ArgNone},
	0x0a: {"lconst_1", ArgNone},
	0x0b: {"fconst_0", ArgNone},
	0x0c: {"fconst_1", ArgNone},
	0x0d: {"fconst_2", ArgNone},
	0x0e: {"dconst_0", ArgNone},
	0x0f: {"dconst_1", ArgNone},
	0x10: {"bipush", ArgU1},
	0x11: {"sipush", ArgU2},
	0x12: {"ldc", ArgU1},
	0x13: {"ldc_w", ArgU2},
	0x14: {"ldc2_w", ArgU2},
	0x15: {"iload", ArgU1},
	0x16: {"lload", ArgU1},
	0x17: {"fload", ArgU1},
	0x18: {"dload", ArgU1},
	0x19: {"aload", ArgU1},
	0x1a: {"iload_0", ArgNone},
	0x1b: {"iload_1", ArgNone},
	0x1c: {"iload_2", ArgNone},
	0x1d: {"iload_3", ArgNone},
	0x1e: {"lload_0", ArgNone},
	0x1f: {"lload_1", ArgNone},
	0x20: {"lload_2", ArgNone},
	0x21: {"lload_3", ArgNone},
	0x22: {"fload_0", ArgNone},
	0x23: {"fload_1", ArgNone},
	0x24: {"fload_2", ArgNone},
	0x25: {"fload_3", ArgNone},
	0x26: {"dload_0", ArgNone},
	0x27: {"dload_1", ArgNone},
	0x28: {"dload_2", ArgNone},
	0x29: {"dload_3", ArgNone},
	0x2a: {"aload_0", ArgNone},
	0x2b: {"aload_1", ArgNone},
	0x2c: {"aload_2", ArgNone},
	0x2d: {"aload_3", ArgNone},
	0x2e: {"iaload", ArgNone},
	0x2f: {"laload", ArgNone},
	0x30: {"faload", ArgNone},
	0x31: {"daload", ArgNone},
	0x32: {"aaload", ArgNone},
	0x33: {"baload", ArgNone},
	0x34: {"caload", ArgNone},
	0x35: {"saload", ArgNone},
	0x36: {"istore", ArgU1},
	0x37: {"lstore", ArgU1},
	0x38: {"fstore", ArgU1},
	0x39: {"dstore", ArgU1},
	0x3a: {"astore", ArgU1},
	0x3b: {"istore_0", ArgNone},
	0x3c: {"istore_1", ArgNone},
	0x3d: {"istore_2", ArgNone},
	0x3e: {"istore_3", ArgNone},
	0x3f: {"lstore_0", ArgNone},
	0x40: {"lstore_1", ArgNone},
	0x41: {"lstore_2", ArgNone},
	0x42: {"lstore_3", ArgNone},
	0x43: {"fstore_0", ArgNone},
	0x44: {"fstore_1", ArgNone},
	0x45: {"fstore_2", ArgNone},
	0x46: {"fstore_3", ArgNone},
	0x47: {"dstore_0", ArgNone},
	0x48: {"dstore_1", ArgNone},
	0x49: {"dstore_2", ArgNone},
	0x4a: {"dstore_3", ArgNone},
	0x4b: {"astore_0", ArgNone},
	0x4c: {"astore_1", ArgNone},
	0x4d: {"astore_2", ArgNone},
	0x4e: {"astore_3", ArgNone},
	0x4f: {"iastore", ArgNone},
	0x50: {"lastore", ArgNone},
	0x51: {"fastore", ArgNone},
	0x52: {"dastore", ArgNone},
	0x53: {"aastore", ArgNone},
	0x54: {"bastore", ArgNone},
	0x55: {"castore", ArgNone},
	0x56: {"sastore", ArgNone},
	0x57: {"pop", ArgNone},
	0x58: {"pop2", ArgNone},
	0x59: {"dup", ArgNone},
	0x5a: {"dup_x1", ArgNone},
	0x5b: {"dup_x2", ArgNone},
	0x5c: {"dup2", ArgNone},
	0x5d: {"dup2_x1", ArgNone},
	0x5e: {"dup2_x2", ArgNone},
	0x5f: {"swap", ArgNone},
	0x60: {"iadd", ArgNone},
	0x61: {"ladd", ArgNone},
	0x62: {"fadd", ArgNone},
	0x63: {"dadd", ArgNone},
	0x64: {"isub", ArgNone},
	0x65: {"lsub", ArgNone},
	0x66: {"fsub", ArgNone},
	0x67: {"dsub", ArgNone},
	0x68: {"imul", ArgNone},
	0x69: {"lmul", ArgNone},
	0x6a: {"fmul", ArgNone},
	0x6b: {"dmul", ArgNone},
	0x6c: {"idiv", ArgNone},
	0x6d: {"ldiv", ArgNone},
	0x6e: {"fdiv", ArgNone},
	0x6f: {"ddiv", ArgNone},
	0x70: {"irem", ArgNone},
	0x71: {"lrem", ArgNone},
	0x72: {"frem", ArgNone},
	0x73: {"drem", ArgNone},
	0x74: {"ineg", ArgNone},
	0x75: {"lneg", ArgNone},
	0x76: {"fneg", ArgNone},
	0x77: {"dneg", ArgNone},
	0x78: {"ishl", ArgNone},
	0x79: {"lshl", ArgNone},
	0x7a: {"ishr", ArgNone},
	0x7b: {"lshr", ArgNone},
	0x7c: {"iushr", ArgNone},
	0x7d: {"lushr", ArgNone},
	0x7e: {"iand", ArgNone},
	0x7f: {"land", ArgNone},
	0x80: {"ior", ArgNone},
	0x81: {"lor", ArgNone},
	0x82: {"ixor", ArgNone},
	0x83: {"lxor", ArgNone},
	0x84: {"iinc", ArgIinc},
	0x85: {"i2l", ArgNone},
	0x86: {"i2f", ArgNone},
	0x87: {"i2d", ArgNone},
	0x88: {"l2i", ArgNone},
	0x89: {"l2f", ArgNone},
	0x8a: {"l2d", ArgNone},
	0x8b: {"f2i", ArgNone},
	0x8c: {"f2l", ArgNone},
	0x8d: {"f2d", ArgNone},
	0x8e: {"d2i", ArgNone},
	0x8f: {"d2l", ArgNone},
	0x90: {"d2f", ArgNone},
	0x91: {"i2b", ArgNone},
	0x92: {"i2c", ArgNone},
	0x93: {"i2s", ArgNone},
	0x94: {"lcmp", ArgNone},
	0x95: {"fcmpl", ArgNone},
	0x96: {"fcmpg", ArgNone},
	0x97: {"dcmpl", ArgNone},
	0x98: {"dcmpg", ArgNone},
	0x99: {"ifeq", ArgOffsetU2},
	0x9a: {"ifne", ArgOffsetU2},
	0x9b: {"iflt", ArgOffsetU2},
	0x9c: {"ifge", ArgOffsetU2},
	0x9d: {"ifgt", ArgOffsetU2},
	0x9e: {"ifle", ArgOffsetU2},
	0x9f: {"if_icmpeq", ArgOffsetU2},
	0xa0: {"if_icmpne", ArgOffsetU2},
	0xa1: {"if_icmplt", ArgOffsetU2},
	0xa2: {"if_icmpge", ArgOffsetU2},
	0xa3: {"if_icmpgt", ArgOffsetU2},
	0xa4: {"if_icmple", ArgOffsetU2},
	0xa5: {"if_acmpeq", ArgOffsetU2},
	0xa6: {"if_acmpne", ArgOffsetU2},
	0xa7: {"goto", ArgOffsetU2},
	0xa8: {"jsr", ArgOffsetU2},
	0xa9: {"ret", ArgU1},
	0xaa: {"tableswitch", ArgTableSwitch},
	0xab: {"lookupswitch", ArgLookupSwitch},
	0xac: {"ireturn", ArgNone},
	0xad: {"lreturn", ArgNone},
	0xae: {"freturn", ArgNone},
	0xaf: {"dreturn", ArgNone},
	0xb0: {"areturn", ArgNone},
	0xb1: {"return", ArgNone},
	0xb2: {"getstatic", ArgU2},
	0xb3: {"putstatic", ArgU2},
	0xb4: {"getfield", ArgU2},
	0xb5: {"putfield", ArgU2},
	0xb6: {"invokevirtual", ArgU2},
	0xb7: {"invokespecial", ArgU2},
	0xb8: {"invokestatic", ArgU2},
	0xb9: {"invokeinterface", ArgU2}, // +2 extra bytes (count, 0) not separately modeled
	0xba: {"invokedynamic", ArgU2},   // +2 extra zero bytes not separately modeled
	0xbb: {"new", ArgU2},
	0xbc: {"newarray", ArgU1},
	0xbd: {"anewarray", ArgU2},
	0xbe: {"arraylength", ArgNone},
	0xbf: {"athrow", ArgNone},
	0xc0: {"checkcast", ArgU2},
	0xc1: {"instanceof", ArgU2},
	0xc2: {"monitorenter", ArgNone},
	0xc3: {"monitorexit", ArgNone},
	0xc4: {"wide", ArgWide},
	0xc5: {"multianewarray", ArgU2}, // +1 dimension byte not separately modeled
	0xc6: {"ifnull", ArgOffsetU2},
	0xc7: {"ifnonnull", ArgOffsetU2},
	0xc8: {"goto_w", ArgOffsetU4},
	0xc9: {"jsr_w", ArgOffsetU4},

	// 0xca-0xff are reserved by the class-file format for internal
	// interpreter and debugger use (breakpoint, impdep1, impdep2, and
	// unassigned bytes above them) and never appear in verified code.
	0xca: {"reserved", ArgNone},
	0xcb: {"reserved", ArgNone},
	0xcc: {"reserved", ArgNone},
	0xcd: {"reserved", ArgNone},
	0xce: {"reserved", ArgNone},
	0xcf: {"reserved", ArgNone},
	0xd0: {"reserved", ArgNone},
	0xd1: {"reserved", ArgNone},
	0xd2: {"reserved", ArgNone},
	0xd3: {"reserved", ArgNone},
	0xd4: {"reserved", ArgNone},
	0xd5: {"reserved", ArgNone},
	0xd6: {"reserved", ArgNone},
	0xd7: {"reserved", ArgNone},
	0xd8: {"reserved", ArgNone},
	0xd9: {"reserved", ArgNone},
	0xda: {"reserved", ArgNone},
	0xdb: {"reserved", ArgNone},
	0xdc: {"reserved", ArgNone},
	0xdd: {"reserved", ArgNone},
	0xde: {"reserved", ArgNone},
	0xdf: {"reserved", ArgNone},
	0xe0: {"reserved", ArgNone},
	0xe1: {"reserved", ArgNone},
	0xe2: {"reserved", ArgNone},
	0xe3: {"reserved", ArgNone},
	0xe4: {"reserved", ArgNone},
	0xe5: {"reserved", ArgNone},
	0xe6: {"reserved", ArgNone},
	0xe7: {"reserved", ArgNone},
	0xe8: {"reserved", ArgNone},
	0xe9: {"reserved", ArgNone},
	0xea: {"reserved", ArgNone},
	0xeb: {"reserved", ArgNone},
	0xec: {"reserved", ArgNone},
	0xed: {"reserved", ArgNone},
	0xee: {"reserved", ArgNone},
	0xef: {"reserved", ArgNone},
	0xf0: {"reserved", ArgNone},
	0xf1: {"reserved", ArgNone},
	0xf2: {"reserved", ArgNone},
	0xf3: {"reserved", ArgNone},
	0xf4: {"reserved", ArgNone},
	0xf5: {"reserved", ArgNone},
	0xf6: {"reserved", ArgNone},
	0xf7: {"reserved", ArgNone},
	0xf8: {"reserved", ArgNone},
	0xf9: {"reserved", ArgNone},
	0xfa: {"reserved", ArgNone},
	0xfb: {"reserved", ArgNone},
	0xfc: {"reserved", ArgNone},
	0xfd: {"reserved", ArgNone},
	0xfe: {"reserved", ArgNone},
	0xff: {"reserved", ArgNone},
}
