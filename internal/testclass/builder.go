/*
 * cfvm - a class-file inspector and bytecode interpreter
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

// Package testclass assembles minimal, well-formed class files byte by
// byte for use in classfile/disasm/interp tests, instead of checking in
// binary .class fixtures.
package testclass

import "encoding/binary"

// builder accumulates a class file's bytes.
type builder struct {
	buf []byte
}

func (b *builder) u1(v byte) {
	b.buf = append(b.buf, v)
}

func (b *builder) u2(v uint16) {
	var tmp [2]byte
	binary.BigEndian.PutUint16(tmp[:], v)
	b.buf = append(b.buf, tmp[:]...)
}

func (b *builder) u4(v uint32) {
	var tmp [4]byte
	binary.BigEndian.PutUint32(tmp[:], v)
	b.buf = append(b.buf, tmp[:]...)
}

func (b *builder) bytes(v []byte) {
	b.buf = append(b.buf, v...)
}

func (b *builder) utf8(s string) {
	b.u1(1) // TagUtf8
	b.u2(uint16(len(s)))
	b.bytes([]byte(s))
}

// HeaderOnly returns the literal ten-byte class-file prefix: magic,
// minor=0, major=0x34, cp_count=1.
func HeaderOnly() []byte {
	return []byte{0xCA, 0xFE, 0xBA, 0xBE, 0x00, 0x00, 0x00, 0x34, 0x00, 0x01}
}

// BadMagic returns HeaderOnly with its first byte corrupted.
func BadMagic() []byte {
	h := HeaderOnly()
	h[0] = 0x00
	return h
}

// MethodClass builds a minimal class file named "Test" with a single
// method "main" whose Code attribute carries code, maxStack, and
// maxLocals exactly as given.
func MethodClass(code []byte, maxStack, maxLocals uint16) []byte {
	var b builder

	b.u4(0xCAFEBABE)
	b.u2(0)    // minor
	b.u2(0x34) // major = 52 (Java 8)

	// constant pool: 1=Utf8("Code") 2=Utf8("main") 3=Utf8("()V")
	// 4=Utf8("Test") 5=Class(4)
	b.u2(6) // cp_count = count+1
	b.utf8("Code")
	b.utf8("main")
	b.utf8("()V")
	b.utf8("Test")
	b.u1(7) // TagClass
	b.u2(4) // name_index -> "Test"

	b.u2(0x0021) // access_flags: ACC_PUBLIC | ACC_SUPER
	b.u2(5)      // this_class -> CP#5 (Test)
	b.u2(0)      // super_class = 0 (no explicit superclass)

	b.u2(0) // interfaces_count
	b.u2(0) // fields_count

	b.u2(1)      // methods_count
	b.u2(0x0009) // access_flags: ACC_PUBLIC | ACC_STATIC
	b.u2(2)      // name_index -> "main"
	b.u2(3)      // descriptor_index -> "()V"
	b.u2(1)      // attributes_count

	// Code attribute
	b.u2(1) // attribute_name_index -> "Code"
	codeAttrBody := buildCodeAttributeBody(code, maxStack, maxLocals)
	b.u4(uint32(len(codeAttrBody)))
	b.bytes(codeAttrBody)

	b.u2(0) // class attributes_count

	return b.buf
}

func buildCodeAttributeBody(code []byte, maxStack, maxLocals uint16) []byte {
	var b builder
	b.u2(maxStack)
	b.u2(maxLocals)
	b.u4(uint32(len(code)))
	b.bytes(code)
	b.u2(0) // exception_table_length
	b.u2(0) // attributes_count
	return b.buf
}

// ArithmeticProgram computes (2 + 5) via: ICONST_2; ISTORE_1; ICONST_5;
// ILOAD_1; IADD; ISTORE_0; ILOAD_0; IRETURN.
func ArithmeticProgram() []byte {
	return []byte{0x05, 0x3c, 0x08, 0x1b, 0x60, 0x3b, 0x1a, 0xac}
}

// BranchTaken takes its forward branch: ICONST_1; IFNE +6; ICONST_2;
// IRETURN; ICONST_3; IRETURN.
func BranchTaken() []byte {
	return []byte{0x04, 0x9a, 0x00, 0x06, 0x05, 0xac, 0x06, 0xac}
}

// TableSwitchProgram pushes key 1, then a tableswitch with low=0 high=2
// default=12 offsets=[3,6,9], aligned to the 4-byte boundary measured
// from the start of the method code.
func TableSwitchProgram() []byte {
	var b builder
	b.u1(0x04) // iconst_1 (pc=0)
	b.u1(0xaa) // tableswitch (pc=1)
	for (len(b.buf))%4 != 0 {
		b.u1(0) // padding
	}
	b.u4(uint32(12)) // default offset, relative to instr_pc=1
	b.u4(uint32(0))  // low
	b.u4(uint32(2))  // high
	b.u4(uint32(3))  // offset for key 0
	b.u4(uint32(6))  // offset for key 1
	b.u4(uint32(9))  // offset for key 2
	return b.buf
}

// NullGuard pushes a null reference, then GETFIELD with an arbitrary CP
// index.
func NullGuard() []byte {
	return []byte{0x01, 0xb4, 0x00, 0x01}
}

// LongRoundTrip pushes a placeholder long via LDC2_W, stores it across
// locals 2 and 3 with LSTORE, then loads it back with LLOAD. The
// interpreter's LDC2_W always pushes zero, so this exercises the
// two-slot locals round trip rather than constant loading.
func LongRoundTrip() []byte {
	return []byte{
		0x14, 0x00, 0x00, // ldc2_w #0 (placeholder long)
		0x37, 0x02, // lstore 2
		0x16, 0x02, // lload 2
	}
}
