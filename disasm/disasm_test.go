/*
 * cfvm - a class-file inspector and bytecode interpreter
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package disasm

import (
	"testing"

	"cfvm/classfile"
	"cfvm/internal/testclass"
)

func parsedCode(t *testing.T, code []byte) (*classfile.ConstantPool, []byte) {
	t.Helper()
	cf, err := classfile.Parse(testclass.MethodClass(code, 4, 4))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	attr, ok := classfile.FindCodeAttribute(cf.ConstantPool, cf.Methods[0])
	if !ok {
		t.Fatal("no Code attribute found")
	}
	ca, err := classfile.ParseCodeAttribute(cf.ConstantPool, attr)
	if err != nil {
		t.Fatalf("ParseCodeAttribute failed: %v", err)
	}
	return cf.ConstantPool, ca.Code
}

// TestDecodeCoversEveryByte checks the disassembler invariant that the
// sum of instruction lengths equals code_length, and each instruction's
// pc is the previous instruction's pc plus its length, starting at
// zero.
func TestDecodeCoversEveryByte(t *testing.T) {
	cp, code := parsedCode(t, testclass.ArithmeticProgram())
	insns := Decode(cp, code)

	wantPC := 0
	for _, insn := range insns {
		if insn.PC != wantPC {
			t.Errorf("instruction pc = %d, want %d", insn.PC, wantPC)
		}
		wantPC += insn.Length
	}
	if wantPC != len(code) {
		t.Errorf("sum of instruction lengths = %d, want code length %d", wantPC, len(code))
	}
}

func TestDecodeMnemonics(t *testing.T) {
	cp, code := parsedCode(t, testclass.ArithmeticProgram())
	insns := Decode(cp, code)

	want := []string{"iconst_2", "istore_1", "iconst_5", "iload_1", "iadd", "istore_0", "iload_0", "ireturn"}
	if len(insns) != len(want) {
		t.Fatalf("got %d instructions, want %d: %+v", len(insns), len(want), insns)
	}
	for i, insn := range insns {
		if insn.Mnemonic != want[i] {
			t.Errorf("instruction[%d].Mnemonic = %q, want %q", i, insn.Mnemonic, want[i])
		}
	}
}

// TestDecodeTableSwitchJumpTargetsInRange checks that decoded jump
// targets lie within [0, code_length]: the switch at pc 1 has
// default=12 and offsets [3,6,9], so its absolute targets are 13, 4, 7
// and 10 in a 28-byte code array.
func TestDecodeTableSwitchJumpTargetsInRange(t *testing.T) {
	cp, code := parsedCode(t, testclass.TableSwitchProgram())
	insns := Decode(cp, code)

	var sw *Instruction
	for i := range insns {
		if insns[i].Mnemonic == "tableswitch" {
			sw = &insns[i]
		}
	}
	if sw == nil {
		t.Fatal("no tableswitch instruction decoded")
	}
	if want := "low=0 high=2 default=13 [0]=4 [1]=7 [2]=10"; sw.Operand != want {
		t.Errorf("tableswitch operand = %q, want %q (targets within [0, %d])", sw.Operand, want, len(code))
	}
}

func TestDecodeReservedOpcodeIsSingleByte(t *testing.T) {
	cp, _ := parsedCode(t, testclass.ArithmeticProgram())
	insns := Decode(cp, []byte{0xff})
	if len(insns) != 1 || insns[0].Length != 1 {
		t.Fatalf("Decode(0xff) = %+v, want one single-byte instruction", insns)
	}
	if insns[0].Mnemonic != "reserved" {
		t.Errorf("Mnemonic = %q, want \"reserved\"", insns[0].Mnemonic)
	}
}

func TestDecodeUnknownOpcodeIsSingleByte(t *testing.T) {
	cp, _ := parsedCode(t, testclass.ArithmeticProgram())
	orig := opcodeTable[0xff]
	opcodeTable[0xff] = opcodeInfo{}
	defer func() { opcodeTable[0xff] = orig }()

	insns := Decode(cp, []byte{0xff})
	if len(insns) != 1 || insns[0].Length != 1 {
		t.Fatalf("Decode(0xff) = %+v, want one single-byte instruction", insns)
	}
	if insns[0].Mnemonic != "unknown_opcode" {
		t.Errorf("Mnemonic = %q, want \"unknown_opcode\"", insns[0].Mnemonic)
	}
}
