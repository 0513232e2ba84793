/*
 * cfvm - a class-file inspector and bytecode interpreter
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package heap

import (
	"errors"
	"testing"
)

func TestNewObjectFieldsAndAccess(t *testing.T) {
	h := New()
	ref := h.NewObject("Test", 3)

	obj, err := h.GetObject(ref)
	if err != nil {
		t.Fatalf("GetObject failed: %v", err)
	}
	obj.PutField(1, Slot{Int: 99})
	if got := obj.GetField(1); got.Int != 99 {
		t.Errorf("GetField(1) = %+v, want Int:99", got)
	}
}

func TestObjectFieldOutOfRangeIsDefensive(t *testing.T) {
	h := New()
	ref := h.NewObject("Test", 1)
	obj, _ := h.GetObject(ref)

	obj.PutField(10, Slot{Int: 1}) // should not panic
	if got := obj.GetField(10); got != (Slot{}) {
		t.Errorf("GetField(10) = %+v, want zero Slot", got)
	}
}

func TestNewArrayNegativeSize(t *testing.T) {
	h := New()
	_, err := h.NewArray('I', -1)
	if !errors.Is(err, ErrNegativeArraySize) {
		t.Errorf("expected ErrNegativeArraySize, got %v", err)
	}
}

func TestArrayElementAccessAndBounds(t *testing.T) {
	h := New()
	ref, err := h.NewArray('I', 2)
	if err != nil {
		t.Fatalf("NewArray failed: %v", err)
	}
	arr, err := h.GetArray(ref)
	if err != nil {
		t.Fatalf("GetArray failed: %v", err)
	}
	if arr.Length() != 2 {
		t.Errorf("Length() = %d, want 2", arr.Length())
	}
	if err := arr.PutElement(0, Slot{Int: 5}); err != nil {
		t.Fatalf("PutElement failed: %v", err)
	}
	v, err := arr.GetElement(0)
	if err != nil || v.Int != 5 {
		t.Errorf("GetElement(0) = (%+v, %v), want (Int:5, nil)", v, err)
	}
	if _, err := arr.GetElement(5); !errors.Is(err, ErrArrayBounds) {
		t.Errorf("expected ErrArrayBounds, got %v", err)
	}
}

func TestGetObjectNullReference(t *testing.T) {
	h := New()
	if _, err := h.GetObject(0); !errors.Is(err, ErrNullReference) {
		t.Errorf("expected ErrNullReference for ref 0, got %v", err)
	}
}

func TestFreeObjectThenAccessIsNullReference(t *testing.T) {
	h := New()
	ref := h.NewObject("Test", 1)
	h.FreeObject(ref)
	if _, err := h.GetObject(ref); !errors.Is(err, ErrNullReference) {
		t.Errorf("expected ErrNullReference after FreeObject, got %v", err)
	}
}
