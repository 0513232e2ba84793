/*
 * cfvm - a class-file inspector and bytecode interpreter
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

// Package disasm turns a Code attribute's raw bytecode into a sequence
// of Instructions with constant-pool operands already resolved to
// display strings. It does not execute anything -- that's interp's job
// -- and it never errors on a malformed operand, since a listing should
// still print as much as it can.
package disasm

import (
	"fmt"

	"cfvm/classfile"
	"cfvm/resolve"
)

// Instruction is one decoded bytecode instruction: its offset within
// the method, its mnemonic, and a human-readable rendering of its
// operand (already CP-resolved where applicable).
type Instruction struct {
	PC       int
	Opcode   byte
	Mnemonic string
	Operand  string
	Length   int // total bytes including the opcode itself

	// RawBytes carries the undecoded opcode byte for an "unknown_opcode"
	// instruction. Left nil for every recognized instruction, including
	// ones rendered as "reserved".
	RawBytes []byte
}

// Decode disassembles every instruction in code, resolving constant
// pool operands against cp. A byte value the opcode table has no entry
// for is rendered as "unknown_opcode" and treated as a single-byte
// instruction so decoding of the remainder of the method can continue.
func Decode(cp *classfile.ConstantPool, code []byte) []Instruction {
	var out []Instruction
	pc := 0
	for pc < len(code) {
		insn := decodeOne(cp, code, pc)
		out = append(out, insn)
		pc += insn.Length
	}
	return out
}

func decodeOne(cp *classfile.ConstantPool, code []byte, pc int) Instruction {
	op := code[pc]
	info := opcodeTable[op]
	if info.mnemonic == "" {
		return Instruction{PC: pc, Opcode: op, Mnemonic: "unknown_opcode",
			Length: 1, RawBytes: []byte{op}}
	}

	switch op {
	case 0xba: // invokedynamic: index:u2, 0, 0
		idx := readU2(code, pc+1)
		return Instruction{PC: pc, Opcode: op, Mnemonic: info.mnemonic,
			Operand: resolve.Literal(cp, idx), Length: 5}
	case 0xb9: // invokeinterface: index:u2, count:u1, 0
		idx := readU2(code, pc+1)
		return Instruction{PC: pc, Opcode: op, Mnemonic: info.mnemonic,
			Operand: resolve.Literal(cp, idx), Length: 5}
	case 0xc5: // multianewarray: index:u2, dimensions:u1
		idx := readU2(code, pc+1)
		dims := byte(0)
		if pc+3 < len(code) {
			dims = code[pc+3]
		}
		return Instruction{PC: pc, Opcode: op, Mnemonic: info.mnemonic,
			Operand: fmt.Sprintf("%s dims=%d", resolve.Literal(cp, idx), dims), Length: 4}
	}

	switch info.arg {
	case ArgNone:
		return Instruction{PC: pc, Opcode: op, Mnemonic: info.mnemonic, Length: 1}

	case ArgU1:
		v := byteAt(code, pc+1)
		operand := fmt.Sprintf("%d", v)
		if op == 0x12 { // ldc indexes the CP directly by this byte
			operand = resolve.Literal(cp, uint16(v))
		}
		return Instruction{PC: pc, Opcode: op, Mnemonic: info.mnemonic, Operand: operand, Length: 2}

	case ArgU2:
		idx := readU2(code, pc+1)
		var operand string
		switch op {
		case 0x11: // sipush: a literal signed short, not a CP index
			operand = fmt.Sprintf("%d", int16(idx))
		case 0x13, 0x14, 0xb2, 0xb3, 0xb4, 0xb5, 0xb6, 0xb7, 0xb8, 0xbb, 0xbd, 0xc0, 0xc1:
			operand = resolve.Literal(cp, idx)
		default:
			operand = fmt.Sprintf("%d", idx)
		}
		return Instruction{PC: pc, Opcode: op, Mnemonic: info.mnemonic, Operand: operand, Length: 3}

	case ArgOffsetU2:
		off := int16(readU2(code, pc+1))
		return Instruction{PC: pc, Opcode: op, Mnemonic: info.mnemonic,
			Operand: fmt.Sprintf("%d", pc+int(off)), Length: 3}

	case ArgOffsetU4:
		off := int32(readU4(code, pc+1))
		return Instruction{PC: pc, Opcode: op, Mnemonic: info.mnemonic,
			Operand: fmt.Sprintf("%d", pc+int(off)), Length: 5}

	case ArgIinc:
		idx := byteAt(code, pc+1)
		delta := int8(byteAt(code, pc+2))
		return Instruction{PC: pc, Opcode: op, Mnemonic: info.mnemonic,
			Operand: fmt.Sprintf("%d %d", idx, delta), Length: 3}

	case ArgWide:
		return decodeWide(code, pc)

	case ArgTableSwitch:
		return decodeTableSwitch(code, pc)

	case ArgLookupSwitch:
		return decodeLookupSwitch(code, pc)

	default:
		return Instruction{PC: pc, Opcode: op, Mnemonic: info.mnemonic, Length: 1}
	}
}

// decodeWide handles the WIDE prefix, which widens the index operand of
// the following ILOAD/ISTORE/... family (and IINC's pair) from one byte
// to two.
func decodeWide(code []byte, pc int) Instruction {
	if pc+1 >= len(code) {
		return Instruction{PC: pc, Opcode: 0xc4, Mnemonic: "wide", Length: len(code) - pc}
	}
	modified := code[pc+1]
	if modified == 0x84 { // iinc
		idx := readU2(code, pc+2)
		delta := int16(readU2(code, pc+4))
		return Instruction{PC: pc, Opcode: 0xc4, Mnemonic: "wide iinc",
			Operand: fmt.Sprintf("%d %d", idx, delta), Length: 6}
	}
	idx := readU2(code, pc+2)
	mnem := opcodeTable[modified].mnemonic
	if mnem == "" {
		mnem = fmt.Sprintf("0x%02x", modified)
	}
	return Instruction{PC: pc, Opcode: 0xc4, Mnemonic: "wide " + mnem,
		Operand: fmt.Sprintf("%d", idx), Length: 4}
}

// decodeTableSwitch decodes a tableswitch instruction. Padding after the
// opcode brings the following fields to a 4-byte alignment measured from
// the start of the method's code array.
func decodeTableSwitch(code []byte, pc int) Instruction {
	cursor := pc + 1
	for cursor%4 != 0 {
		cursor++
	}
	def := int32(readU4(code, cursor))
	low := int32(readU4(code, cursor+4))
	high := int32(readU4(code, cursor+8))
	cursor += 12

	n := int(high-low) + 1
	if n < 0 {
		n = 0
	}
	operand := fmt.Sprintf("low=%d high=%d default=%d", low, high, pc+int(def))
	for i := 0; i < n && cursor+4 <= len(code); i++ {
		off := int32(readU4(code, cursor))
		operand += fmt.Sprintf(" [%d]=%d", low+int32(i), pc+int(off))
		cursor += 4
	}
	return Instruction{PC: pc, Opcode: 0xaa, Mnemonic: "tableswitch", Operand: operand, Length: cursor - pc}
}

// decodeLookupSwitch decodes a lookupswitch instruction, 4-byte aligned
// the same way as tableswitch.
func decodeLookupSwitch(code []byte, pc int) Instruction {
	cursor := pc + 1
	for cursor%4 != 0 {
		cursor++
	}
	def := int32(readU4(code, cursor))
	npairs := int32(readU4(code, cursor+4))
	cursor += 8

	operand := fmt.Sprintf("default=%d", pc+int(def))
	for i := int32(0); i < npairs && cursor+8 <= len(code); i++ {
		match := int32(readU4(code, cursor))
		offset := int32(readU4(code, cursor+4))
		operand += fmt.Sprintf(" [%d]=%d", match, pc+int(offset))
		cursor += 8
	}
	return Instruction{PC: pc, Opcode: 0xab, Mnemonic: "lookupswitch", Operand: operand, Length: cursor - pc}
}

func byteAt(code []byte, i int) byte {
	if i < 0 || i >= len(code) {
		return 0
	}
	return code[i]
}

func readU2(code []byte, i int) uint16 {
	if i < 0 || i+1 >= len(code) {
		return 0
	}
	return uint16(code[i])<<8 | uint16(code[i+1])
}

func readU4(code []byte, i int) uint32 {
	if i < 0 || i+3 >= len(code) {
		return 0
	}
	return uint32(code[i])<<24 | uint32(code[i+1])<<16 | uint32(code[i+2])<<8 | uint32(code[i+3])
}
