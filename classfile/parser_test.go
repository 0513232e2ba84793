/*
 * cfvm - a class-file inspector and bytecode interpreter
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package classfile

import (
	"errors"
	"testing"

	"cfvm/internal/testclass"
)

func TestParseRejectsBadMagic(t *testing.T) {
	_, err := Parse(testclass.BadMagic())
	if err == nil {
		t.Fatal("expected an error for a corrupted magic number")
	}
	if !errors.Is(err, ErrBadMagic) {
		t.Errorf("expected ErrBadMagic, got %v", err)
	}
}

func TestParseTruncatedHeader(t *testing.T) {
	_, err := Parse(testclass.HeaderOnly()[:4])
	if !errors.Is(err, ErrEndOfInput) {
		t.Errorf("expected ErrEndOfInput, got %v", err)
	}
}

func TestParseMethodClass(t *testing.T) {
	raw := testclass.MethodClass(testclass.ArithmeticProgram(), 2, 2)
	cf, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if cf.Magic != MagicNumber {
		t.Errorf("magic = %#x, want %#x", cf.Magic, MagicNumber)
	}
	if cf.MajorVersion != 0x34 {
		t.Errorf("major version = %d, want 52", cf.MajorVersion)
	}
	if len(cf.Methods) != 1 {
		t.Fatalf("methods = %d, want 1", len(cf.Methods))
	}

	name, ok := cf.ConstantPool.Utf8At(cf.Methods[0].NameIndex)
	if !ok || name != "main" {
		t.Errorf("method name = %q, ok=%v, want main", name, ok)
	}

	className, ok := ClassNameAt(cf.ConstantPool, cf.ThisClass)
	if !ok || className != "Test" {
		t.Errorf("this_class name = %q, ok=%v, want Test", className, ok)
	}
}

func TestParseRejectsUnsupportedVersion(t *testing.T) {
	raw := testclass.MethodClass(testclass.ArithmeticProgram(), 2, 2)
	// major version sits at offset 6-7 in the stream.
	raw[6] = 0xff
	raw[7] = 0xff
	_, err := Parse(raw)
	if !errors.Is(err, ErrUnsupportedVersion) {
		t.Errorf("expected ErrUnsupportedVersion, got %v", err)
	}
}
