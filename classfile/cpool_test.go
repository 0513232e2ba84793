/*
 * cfvm - a class-file inspector and bytecode interpreter
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package classfile

import "testing"

// TestLongEntryLeavesPaddingSlot checks that for a Long entry at index
// i, entry i+1 keeps tag None.
func TestLongEntryLeavesPaddingSlot(t *testing.T) {
	var raw []byte
	raw = append(raw, 0xCA, 0xFE, 0xBA, 0xBE) // magic
	raw = append(raw, 0x00, 0x00, 0x00, 0x34) // minor, major
	raw = append(raw, 0x00, 0x03)             // cp_count = 3 (entries at 1, 2(padding))
	raw = append(raw, 0x05)                   // tag Long
	raw = append(raw, 0x00, 0x00, 0x00, 0x01) // hi
	raw = append(raw, 0x00, 0x00, 0x00, 0x02) // lo
	// rest of the header, all zero
	raw = append(raw, 0x00, 0x00) // access_flags
	raw = append(raw, 0x00, 0x00) // this_class
	raw = append(raw, 0x00, 0x00) // super_class
	raw = append(raw, 0x00, 0x00) // interfaces_count
	raw = append(raw, 0x00, 0x00) // fields_count
	raw = append(raw, 0x00, 0x00) // methods_count
	raw = append(raw, 0x00, 0x00) // attributes_count

	cf, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if cf.ConstantPool.TagAt(1) != TagLong {
		t.Errorf("entry 1 tag = %v, want TagLong", cf.ConstantPool.TagAt(1))
	}
	if cf.ConstantPool.TagAt(2) != TagNone {
		t.Errorf("entry 2 (padding) tag = %v, want TagNone", cf.ConstantPool.TagAt(2))
	}

	hi, lo, ok := cf.ConstantPool.LongAt(1)
	if !ok || hi != 1 || lo != 2 {
		t.Errorf("LongAt(1) = (%d, %d, %v), want (1, 2, true)", hi, lo, ok)
	}
}

func TestUnknownTagFails(t *testing.T) {
	var raw []byte
	raw = append(raw, 0xCA, 0xFE, 0xBA, 0xBE)
	raw = append(raw, 0x00, 0x00, 0x00, 0x34)
	raw = append(raw, 0x00, 0x02) // cp_count = 2
	raw = append(raw, 0x63)       // an unassigned tag byte
	_, err := Parse(raw)
	if err == nil {
		t.Fatal("expected an error for an unknown CP tag")
	}
}

func TestUtf8BytesAtHasTrailingNul(t *testing.T) {
	cp := newConstantPool(2)
	cp.slots[1] = cpSlot{tag: TagUtf8, slot: 0}
	cp.utf8s = append(cp.utf8s, utf8Entry{content: "hi", bytes: []byte{'h', 'i', 0}})

	b, ok := cp.Utf8BytesAt(1)
	if !ok {
		t.Fatal("Utf8BytesAt(1) returned ok=false")
	}
	if len(b) != 3 || b[2] != 0 {
		t.Errorf("Utf8BytesAt(1) = %v, want trailing NUL", b)
	}
	if trimmed := TrimNul(b); string(trimmed) != "hi" {
		t.Errorf("TrimNul(%v) = %q, want \"hi\"", b, trimmed)
	}
}
