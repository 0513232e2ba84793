/*
 * cfvm - a class-file inspector and bytecode interpreter
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package classfile

import (
	"testing"

	"cfvm/internal/testclass"
)

func TestFindAndParseCodeAttribute(t *testing.T) {
	raw := testclass.MethodClass(testclass.ArithmeticProgram(), 2, 2)
	cf, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	attr, ok := FindCodeAttribute(cf.ConstantPool, cf.Methods[0])
	if !ok {
		t.Fatal("FindCodeAttribute did not find a Code attribute")
	}

	code, err := ParseCodeAttribute(cf.ConstantPool, attr)
	if err != nil {
		t.Fatalf("ParseCodeAttribute failed: %v", err)
	}
	if code.MaxStack != 2 || code.MaxLocals != 2 {
		t.Errorf("max_stack/max_locals = %d/%d, want 2/2", code.MaxStack, code.MaxLocals)
	}
	if len(code.Code) != len(testclass.ArithmeticProgram()) {
		t.Errorf("code length = %d, want %d", len(code.Code), len(testclass.ArithmeticProgram()))
	}
	if len(code.ExceptionTable) != 0 {
		t.Errorf("exception table = %v, want empty", code.ExceptionTable)
	}
}

func TestParseCodeAttributeRejectsBadExceptionTable(t *testing.T) {
	var b []byte
	b = append(b, 0x00, 0x02)             // max_stack
	b = append(b, 0x00, 0x01)             // max_locals
	b = append(b, 0x00, 0x00, 0x00, 0x01) // code_length = 1
	b = append(b, 0xb1)                   // return
	b = append(b, 0x00, 0x01)             // exception_table_length = 1
	b = append(b, 0x00, 0x05)             // start_pc = 5 (beyond code_length!)
	b = append(b, 0x00, 0x01)             // end_pc
	b = append(b, 0x00, 0x00)             // handler_pc
	b = append(b, 0x00, 0x00)             // catch_type
	b = append(b, 0x00, 0x00)             // attributes_count

	cp := newConstantPool(1)
	_, err := ParseCodeAttribute(cp, RawAttribute{Info: b})
	if err == nil {
		t.Fatal("expected an error for start_pc >= end_pc")
	}
}

func TestParseCodeAttributeRejectsZeroLengthCode(t *testing.T) {
	var b []byte
	b = append(b, 0x00, 0x01)
	b = append(b, 0x00, 0x01)
	b = append(b, 0x00, 0x00, 0x00, 0x00) // code_length = 0
	b = append(b, 0x00, 0x00)
	b = append(b, 0x00, 0x00)

	cp := newConstantPool(1)
	_, err := ParseCodeAttribute(cp, RawAttribute{Info: b})
	if err == nil {
		t.Fatal("expected an error for zero-length code")
	}
}
