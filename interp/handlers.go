/*
 * cfvm - a class-file inspector and bytecode interpreter
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package interp

import (
	"fmt"

	"cfvm/frame"
	"cfvm/heap"
	"cfvm/resolve"
	"cfvm/trace"
)

// init populates the dispatch table once per process. Only a subset of
// the full opcode set is wired up; every other byte value dispatches to
// nil and VM.Run reports UNSUPPORTED_OPCODE.
func init() {
	dispatch[0x00] = opNop

	dispatch[0x01] = opAconstNull
	for op := byte(0x02); op <= 0x08; op++ {
		dispatch[op] = opIconst
	}

	dispatch[0x10] = opBipush
	dispatch[0x11] = opSipush

	dispatch[0x12] = opLdc
	dispatch[0x13] = opLdc
	dispatch[0x14] = opLdc2w

	dispatch[0x15] = opIload
	dispatch[0x16] = opLload
	for op := byte(0x1a); op <= 0x1d; op++ {
		dispatch[op] = opIloadN
	}

	dispatch[0x36] = opIstore
	dispatch[0x37] = opLstore
	for op := byte(0x3b); op <= 0x3e; op++ {
		dispatch[op] = opIstoreN
	}

	dispatch[0x60] = opIadd
	dispatch[0x64] = opIsub
	dispatch[0x68] = opImul
	dispatch[0x6c] = opIdiv
	dispatch[0x70] = opIrem
	dispatch[0x74] = opIneg

	dispatch[0x84] = opIinc

	for op := byte(0x99); op <= 0x9e; op++ {
		dispatch[op] = opIfCond
	}
	for op := byte(0x9f); op <= 0xa4; op++ {
		dispatch[op] = opIfIcmpCond
	}
	dispatch[0xa7] = opGoto

	dispatch[0xaa] = opTableSwitch

	dispatch[0xac] = opReturnValue // ireturn
	dispatch[0xad] = opReturnValue // lreturn (stubbed as single-slot return)
	dispatch[0xae] = opReturnValue // freturn
	dispatch[0xaf] = opReturnValue // dreturn
	dispatch[0xb0] = opReturnValue // areturn
	dispatch[0xb1] = opReturnVoid  // return

	dispatch[0xb2] = opGetstatic
	dispatch[0xb3] = opPutstatic

	dispatch[0xb4] = opGetfield
	dispatch[0xb5] = opPutfield

	dispatch[0xb6] = opInvoke // invokevirtual
	dispatch[0xb7] = opInvoke // invokespecial
	dispatch[0xb8] = opInvokeStatic

	dispatch[0xbb] = opNew
	dispatch[0xbc] = opNewarray
}

func opNop(vm *VM, f *frame.Frame) (Outcome, error) {
	f.PC++
	return Continue, nil
}

func opAconstNull(vm *VM, f *frame.Frame) (Outcome, error) {
	if err := f.Push(frame.NullVal()); err != nil {
		return Errored, err
	}
	f.PC++
	return Continue, nil
}

func opIconst(vm *VM, f *frame.Frame) (Outcome, error) {
	v := int32(f.Code[f.PC]) - 0x03 // 0x02=iconst_m1 .. 0x08=iconst_5
	if err := f.Push(frame.IntVal(v)); err != nil {
		return Errored, err
	}
	f.PC++
	return Continue, nil
}

func opBipush(vm *VM, f *frame.Frame) (Outcome, error) {
	v := int32(int8(f.Code[f.PC+1]))
	if err := f.Push(frame.IntVal(v)); err != nil {
		return Errored, err
	}
	f.PC += 2
	return Continue, nil
}

func opSipush(vm *VM, f *frame.Frame) (Outcome, error) {
	v := int32(int16(literalU2(f)))
	if err := f.Push(frame.IntVal(v)); err != nil {
		return Errored, err
	}
	f.PC += 3
	return Continue, nil
}

// opLdc and opLdc2w push a zero placeholder -- the disassembler resolves
// LDC's real constant for display, but the interpreter does not link it
// in.
func opLdc(vm *VM, f *frame.Frame) (Outcome, error) {
	if err := f.Push(frame.IntVal(0)); err != nil {
		return Errored, err
	}
	if f.Code[f.PC] == 0x12 {
		f.PC += 2
	} else {
		f.PC += 3
	}
	return Continue, nil
}

func opLdc2w(vm *VM, f *frame.Frame) (Outcome, error) {
	if err := f.PushLong(0, 0); err != nil {
		return Errored, err
	}
	f.PC += 3
	return Continue, nil
}

func opIload(vm *VM, f *frame.Frame) (Outcome, error) {
	idx := int(f.Code[f.PC+1])
	v, err := f.GetLocal(idx)
	if err != nil {
		return Errored, err
	}
	if err := f.Push(v); err != nil {
		return Errored, err
	}
	f.PC += 2
	return Continue, nil
}

func opIloadN(vm *VM, f *frame.Frame) (Outcome, error) {
	idx := int(f.Code[f.PC] - 0x1a)
	v, err := f.GetLocal(idx)
	if err != nil {
		return Errored, err
	}
	if err := f.Push(v); err != nil {
		return Errored, err
	}
	f.PC++
	return Continue, nil
}

func opIstore(vm *VM, f *frame.Frame) (Outcome, error) {
	idx := int(f.Code[f.PC+1])
	v, err := f.Pop()
	if err != nil {
		return Errored, err
	}
	if err := f.SetLocal(idx, v); err != nil {
		return Errored, err
	}
	f.PC += 2
	return Continue, nil
}

func opIstoreN(vm *VM, f *frame.Frame) (Outcome, error) {
	idx := int(f.Code[f.PC] - 0x3b)
	v, err := f.Pop()
	if err != nil {
		return Errored, err
	}
	if err := f.SetLocal(idx, v); err != nil {
		return Errored, err
	}
	f.PC++
	return Continue, nil
}

// opLload loads the two-slot long at local index f.Code[f.PC+1] onto
// the operand stack, hi first.
func opLload(vm *VM, f *frame.Frame) (Outcome, error) {
	idx := int(f.Code[f.PC+1])
	hi, lo, err := f.GetLocalLong(idx)
	if err != nil {
		return Errored, err
	}
	if err := f.PushLong(hi, lo); err != nil {
		return Errored, err
	}
	f.PC += 2
	return Continue, nil
}

// opLstore pops a two-slot long off the operand stack and stores it
// across local slots f.Code[f.PC+1] and f.Code[f.PC+1]+1.
func opLstore(vm *VM, f *frame.Frame) (Outcome, error) {
	idx := int(f.Code[f.PC+1])
	hi, lo, err := f.PopLong()
	if err != nil {
		return Errored, err
	}
	if err := f.SetLocalLong(idx, hi, lo); err != nil {
		return Errored, err
	}
	f.PC += 2
	return Continue, nil
}

func binaryIntOp(f *frame.Frame, op func(a, b int32) (int32, error)) (Outcome, error) {
	b, err := f.Pop()
	if err != nil {
		return Errored, err
	}
	a, err := f.Pop()
	if err != nil {
		return Errored, err
	}
	result, err := op(int32(a.Int), int32(b.Int))
	if err != nil {
		return Errored, err
	}
	if err := f.Push(frame.IntVal(result)); err != nil {
		return Errored, err
	}
	f.PC++
	return Continue, nil
}

func opIadd(vm *VM, f *frame.Frame) (Outcome, error) {
	return binaryIntOp(f, func(a, b int32) (int32, error) { return a + b, nil })
}

func opIsub(vm *VM, f *frame.Frame) (Outcome, error) {
	return binaryIntOp(f, func(a, b int32) (int32, error) { return a - b, nil })
}

func opImul(vm *VM, f *frame.Frame) (Outcome, error) {
	return binaryIntOp(f, func(a, b int32) (int32, error) { return a * b, nil })
}

func opIdiv(vm *VM, f *frame.Frame) (Outcome, error) {
	return binaryIntOp(f, func(a, b int32) (int32, error) {
		if b == 0 {
			return 0, fmt.Errorf("%w: %s.%s", ErrDivisionByZero, f.ClassName, f.MethodName)
		}
		return a / b, nil
	})
}

func opIrem(vm *VM, f *frame.Frame) (Outcome, error) {
	return binaryIntOp(f, func(a, b int32) (int32, error) {
		if b == 0 {
			return 0, fmt.Errorf("%w: %s.%s", ErrDivisionByZero, f.ClassName, f.MethodName)
		}
		return a % b, nil
	})
}

func opIneg(vm *VM, f *frame.Frame) (Outcome, error) {
	v, err := f.Pop()
	if err != nil {
		return Errored, err
	}
	if err := f.Push(frame.IntVal(-int32(v.Int))); err != nil {
		return Errored, err
	}
	f.PC++
	return Continue, nil
}

func opIinc(vm *VM, f *frame.Frame) (Outcome, error) {
	idx := int(f.Code[f.PC+1])
	delta := int32(int8(f.Code[f.PC+2]))
	v, err := f.GetLocal(idx)
	if err != nil {
		return Errored, err
	}
	if err := f.SetLocal(idx, frame.IntVal(int32(v.Int)+delta)); err != nil {
		return Errored, err
	}
	f.PC += 3
	return Continue, nil
}

// ifCondTable maps an IF<cond> opcode byte to its comparison against
// zero.
var ifCondTable = map[byte]func(int32) bool{
	0x99: func(v int32) bool { return v == 0 }, // ifeq
	0x9a: func(v int32) bool { return v != 0 }, // ifne
	0x9b: func(v int32) bool { return v < 0 },  // iflt
	0x9c: func(v int32) bool { return v >= 0 }, // ifge
	0x9d: func(v int32) bool { return v > 0 },  // ifgt
	0x9e: func(v int32) bool { return v <= 0 }, // ifle
}

func opIfCond(vm *VM, f *frame.Frame) (Outcome, error) {
	v, err := f.Pop()
	if err != nil {
		return Errored, err
	}
	branchPC := f.PC
	cond := ifCondTable[f.Code[f.PC]]
	if cond(int32(v.Int)) {
		off := int16(literalU2(f))
		f.PC = branchPC + int(off)
	} else {
		f.PC += 3
	}
	return Continue, nil
}

// ifIcmpCondTable maps an IF_ICMP<cond> opcode byte to its comparison
// of (a, b) where a was pushed before b.
var ifIcmpCondTable = map[byte]func(a, b int32) bool{
	0x9f: func(a, b int32) bool { return a == b },
	0xa0: func(a, b int32) bool { return a != b },
	0xa1: func(a, b int32) bool { return a < b },
	0xa2: func(a, b int32) bool { return a >= b },
	0xa3: func(a, b int32) bool { return a > b },
	0xa4: func(a, b int32) bool { return a <= b },
}

func opIfIcmpCond(vm *VM, f *frame.Frame) (Outcome, error) {
	b, err := f.Pop()
	if err != nil {
		return Errored, err
	}
	a, err := f.Pop()
	if err != nil {
		return Errored, err
	}
	branchPC := f.PC
	cond := ifIcmpCondTable[f.Code[f.PC]]
	if cond(int32(a.Int), int32(b.Int)) {
		off := int16(literalU2(f))
		f.PC = branchPC + int(off)
	} else {
		f.PC += 3
	}
	return Continue, nil
}

func opGoto(vm *VM, f *frame.Frame) (Outcome, error) {
	branchPC := f.PC
	off := int16(literalU2(f))
	f.PC = branchPC + int(off)
	return Continue, nil
}

// opTableSwitch implements TABLESWITCH's aligned payload: pad to 4-byte
// alignment from the start of the method code, then default:u4 low:u4
// high:u4 offset[high-low+1]:u4.
func opTableSwitch(vm *VM, f *frame.Frame) (Outcome, error) {
	instrPC := f.PC
	key, err := f.Pop()
	if err != nil {
		return Errored, err
	}

	cursor := instrPC + 1
	for cursor%4 != 0 {
		cursor++
	}
	def := int32(readU4(f.Code, cursor))
	low := int32(readU4(f.Code, cursor+4))
	high := int32(readU4(f.Code, cursor+8))
	cursor += 12

	k := int32(key.Int)
	if k < low || k > high {
		f.PC = instrPC + int(def)
		return Continue, nil
	}
	offsetIdx := cursor + int(k-low)*4
	off := int32(readU4(f.Code, offsetIdx))
	f.PC = instrPC + int(off)
	return Continue, nil
}

func readU4(code []byte, i int) uint32 {
	if i < 0 || i+3 >= len(code) {
		return 0
	}
	return uint32(code[i])<<24 | uint32(code[i+1])<<16 | uint32(code[i+2])<<8 | uint32(code[i+3])
}

// opReturnValue implements IRETURN/LRETURN/FRETURN/DRETURN/ARETURN. In
// this single-frame core there is no caller to push the value to, so
// the value is simply left as the top of the returning frame's operand
// stack for the caller of Run to inspect.
func opReturnValue(vm *VM, f *frame.Frame) (Outcome, error) {
	return Returned, nil
}

func opReturnVoid(vm *VM, f *frame.Frame) (Outcome, error) {
	return Returned, nil
}

func opGetstatic(vm *VM, f *frame.Frame) (Outcome, error) {
	if err := f.Push(frame.IntVal(0)); err != nil {
		return Errored, err
	}
	f.PC += 3
	return Continue, nil
}

func opPutstatic(vm *VM, f *frame.Frame) (Outcome, error) {
	if _, err := f.Pop(); err != nil {
		return Errored, err
	}
	f.PC += 3
	return Continue, nil
}

// fieldSlots is the default object capacity the NEW handler allocates,
// and the modulus GETFIELD/PUTFIELD index into pending a real
// field-layout table.
const fieldSlots = 10

func opGetfield(vm *VM, f *frame.Frame) (Outcome, error) {
	idx := literalU2(f)
	receiver, err := f.Pop()
	if err != nil {
		return Errored, err
	}
	obj, err := vm.Heap.GetObject(heap.Ref(receiver.Int))
	if err != nil {
		return Errored, err
	}
	slot := obj.GetField(int(idx) % fieldSlots)
	if err := f.Push(frame.Value{Kind: frame.KindInt, Int: slot.Int, Float64: slot.Float64}); err != nil {
		return Errored, err
	}
	f.PC += 3
	return Continue, nil
}

func opPutfield(vm *VM, f *frame.Frame) (Outcome, error) {
	idx := literalU2(f)
	value, err := f.Pop()
	if err != nil {
		return Errored, err
	}
	receiver, err := f.Pop()
	if err != nil {
		return Errored, err
	}
	obj, err := vm.Heap.GetObject(heap.Ref(receiver.Int))
	if err != nil {
		return Errored, err
	}
	obj.PutField(int(idx)%fieldSlots, heap.Slot{Int: value.Int, Float64: value.Float64})
	f.PC += 3
	return Continue, nil
}

// opInvoke implements INVOKEVIRTUAL/INVOKESPECIAL's stub behavior: pop
// the implicit receiver and move on. A complete implementation would
// resolve the target method and push a new frame here.
func opInvoke(vm *VM, f *frame.Frame) (Outcome, error) {
	idx := literalU2(f)
	if vm.Debug {
		trace.Trace(fmt.Sprintf("invoke stub, target=%s", classAndMember(vm.CP, idx)))
	}
	if _, err := f.Pop(); err != nil {
		return Errored, err
	}
	f.PC += 3
	return Continue, nil
}

func opInvokeStatic(vm *VM, f *frame.Frame) (Outcome, error) {
	idx := literalU2(f)
	if vm.Debug {
		trace.Trace(fmt.Sprintf("invokestatic stub, target=%s", classAndMember(vm.CP, idx)))
	}
	f.PC += 3
	return Continue, nil
}

func opNew(vm *VM, f *frame.Frame) (Outcome, error) {
	idx := literalU2(f)
	className, ok := resolve.ClassName(vm.CP, idx)
	if !ok {
		className = "?"
	}
	ref := vm.Heap.NewObject(className, fieldSlots)
	if err := f.Push(frame.RefVal(int64(ref))); err != nil {
		return Errored, err
	}
	f.PC += 3
	return Continue, nil
}

func opNewarray(vm *VM, f *frame.Frame) (Outcome, error) {
	atype := f.Code[f.PC+1]
	count, err := f.Pop()
	if err != nil {
		return Errored, err
	}
	ref, err := vm.Heap.NewArray(atype, int(count.Int))
	if err != nil {
		return Errored, err
	}
	if err := f.Push(frame.RefVal(int64(ref))); err != nil {
		return Errored, err
	}
	f.PC += 2
	return Continue, nil
}
