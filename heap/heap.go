/*
 * cfvm - a class-file inspector and bytecode interpreter
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

// Package heap holds the interpreter's objects and arrays. There is no
// garbage collector: a Ref is an index into a single growable table,
// and entries are freed only by explicit FreeObject calls.
package heap

import (
	"errors"
	"fmt"
)

var (
	ErrNullReference    = errors.New("NULL_POINTER")
	ErrNegativeArraySize = errors.New("NEGATIVE_ARRAY_SIZE")
	ErrArrayBounds       = errors.New("ARRAY_INDEX_OUT_OF_BOUNDS")
)

// Ref is a handle into the heap's object table. The zero Ref is null.
type Ref int64

// Slot is one field or array element. It mirrors frame.Value's payload
// shape but heap doesn't import frame, to keep the two packages free of
// a cyclic dependency -- the interpreter converts between the two at
// the GETFIELD/PUTFIELD boundary.
type Slot struct {
	Int     int64
	Float64 float64
}

// Object is a class instance: a fixed-size field_slots array whose
// length is the fieldCount passed to NewObject (the interpreter's NEW
// always passes its fixed default). This VM does not model a class's
// field layout, so every object's fields are simply indexed 0..N-1.
type Object struct {
	ClassName string
	Fields    []Slot
}

// Array is a single-dimension array of a primitive or reference
// component type. Multi-dimensional arrays are represented as arrays of
// reference Slots pointing at nested Arrays.
type Array struct {
	ComponentType byte // as given to NewArray; the interpreter's NEWARRAY passes its atype operand
	Data          []Slot
}

// Heap is the object/array table. It is not safe for concurrent use.
type Heap struct {
	objects []interface{} // either *Object or *Array; nil means freed
}

// New returns an empty heap. Index 0 is reserved so Ref(0) can always
// mean null.
func New() *Heap {
	return &Heap{objects: make([]interface{}, 1)}
}

// NewObject allocates an object with fieldCount fields, all
// zero-valued, and returns its Ref.
func (h *Heap) NewObject(className string, fieldCount int) Ref {
	obj := &Object{ClassName: className, Fields: make([]Slot, fieldCount)}
	h.objects = append(h.objects, obj)
	return Ref(len(h.objects) - 1)
}

// NewArray allocates an array of length elements of the given component
// type and returns its Ref. A negative length is a VM-level error, not
// a panic -- the returned error wraps ErrNegativeArraySize, and the
// interpreter's NEWARRAY handler passes it on unchanged.
func (h *Heap) NewArray(componentType byte, length int) (Ref, error) {
	if length < 0 {
		return 0, fmt.Errorf("%w: length %d", ErrNegativeArraySize, length)
	}
	arr := &Array{ComponentType: componentType, Data: make([]Slot, length)}
	h.objects = append(h.objects, arr)
	return Ref(len(h.objects) - 1), nil
}

// GetObject resolves ref to an *Object. It returns ErrNullReference for
// a null or freed ref, and a different error (not wrapping
// ErrNullReference) if ref names an Array instead -- the two failure
// modes are distinguished so a caller can tell a dangling reference
// from a type confusion.
func (h *Heap) GetObject(ref Ref) (*Object, error) {
	v, err := h.get(ref)
	if err != nil {
		return nil, err
	}
	obj, ok := v.(*Object)
	if !ok {
		return nil, fmt.Errorf("ref %d is not an object", ref)
	}
	return obj, nil
}

// GetArray resolves ref to an *Array.
func (h *Heap) GetArray(ref Ref) (*Array, error) {
	v, err := h.get(ref)
	if err != nil {
		return nil, err
	}
	arr, ok := v.(*Array)
	if !ok {
		return nil, fmt.Errorf("ref %d is not an array", ref)
	}
	return arr, nil
}

func (h *Heap) get(ref Ref) (interface{}, error) {
	if ref == 0 {
		return nil, ErrNullReference
	}
	if int(ref) < 0 || int(ref) >= len(h.objects) || h.objects[ref] == nil {
		return nil, fmt.Errorf("%w: ref %d", ErrNullReference, ref)
	}
	return h.objects[ref], nil
}

// GetField reads object field idx. An out-of-range idx returns the
// zero Slot rather than erroring -- field layout mismatches are a
// format/verification concern this VM deliberately doesn't enforce.
func (o *Object) GetField(idx int) Slot {
	if idx < 0 || idx >= len(o.Fields) {
		return Slot{}
	}
	return o.Fields[idx]
}

// PutField writes object field idx, silently ignoring an out-of-range
// idx for the same reason GetField defaults it.
func (o *Object) PutField(idx int, v Slot) {
	if idx < 0 || idx >= len(o.Fields) {
		return
	}
	o.Fields[idx] = v
}

// GetElement reads array element idx.
func (a *Array) GetElement(idx int) (Slot, error) {
	if idx < 0 || idx >= len(a.Data) {
		return Slot{}, fmt.Errorf("%w: index %d, length %d", ErrArrayBounds, idx, len(a.Data))
	}
	return a.Data[idx], nil
}

// PutElement writes array element idx.
func (a *Array) PutElement(idx int, v Slot) error {
	if idx < 0 || idx >= len(a.Data) {
		return fmt.Errorf("%w: index %d, length %d", ErrArrayBounds, idx, len(a.Data))
	}
	a.Data[idx] = v
	return nil
}

// Length returns the array's element count.
func (a *Array) Length() int {
	return len(a.Data)
}

// FreeObject releases ref, making any further access to it a null
// reference. There is no generational tracking or reference counting --
// this is the whole of the heap's manual memory management story.
func (h *Heap) FreeObject(ref Ref) {
	if ref > 0 && int(ref) < len(h.objects) {
		h.objects[ref] = nil
	}
}
