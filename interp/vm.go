/*
 * cfvm - a class-file inspector and bytecode interpreter
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

// Package interp is the stack-based bytecode interpreter: a 256-entry
// opcode dispatch table driving a fetch/decode/execute loop over a
// single Frame at a time. Dispatch is a handler table rather than a
// switch statement so individual opcodes can be tested in isolation.
package interp

import (
	"fmt"

	"cfvm/classfile"
	"cfvm/frame"
	"cfvm/heap"
	"cfvm/resolve"
	"cfvm/trace"
)

// InstructionLimit is the debug-mode runaway-execution cap.
const InstructionLimit = 100000

// handler executes one instruction at f.PC and reports what happened.
// It is responsible for advancing f.PC past the whole instruction (or
// setting it absolutely, for jumps) before returning Continue.
type handler func(vm *VM, f *frame.Frame) (Outcome, error)

var dispatch [256]handler

// VM holds the state a running method needs beyond its own Frame: the
// constant pool for CP-indexed opcodes (LDC, GETSTATIC, NEW, ...), the
// heap for object/array opcodes, and an always-on instruction counter
// that Debug mode turns into an enforced cap.
type VM struct {
	CP    *classfile.ConstantPool
	Heap  *heap.Heap
	Stack *frame.Stack

	Debug        bool
	InstrCount   int64
}

// New returns a VM ready to run a method against cp, with a fresh heap
// and call stack.
func New(cp *classfile.ConstantPool, debug bool) *VM {
	return &VM{
		CP:    cp,
		Heap:  heap.New(),
		Stack: frame.NewStack(),
		Debug: debug,
	}
}

// Run drives the fetch/decode/execute loop over f until it returns,
// errors, or (in debug mode) exceeds InstructionLimit.
func (vm *VM) Run(f *frame.Frame) (Outcome, error) {
	vm.Stack.Push(f)
	defer vm.Stack.Pop()

	for {
		if f.PC >= len(f.Code) {
			return Returned, nil
		}
		if vm.Debug && vm.InstrCount >= InstructionLimit {
			return Errored, fmt.Errorf("%w: %s.%s exceeded %d instructions",
				ErrInstructionLimit, f.ClassName, f.MethodName, InstructionLimit)
		}

		op := f.Code[f.PC]
		h := dispatch[op]
		if h == nil {
			return Errored, fmt.Errorf("%w: opcode 0x%02x at pc %d in %s.%s",
				ErrUnsupportedOpcode, op, f.PC, f.ClassName, f.MethodName)
		}

		vm.InstrCount++
		if vm.Debug {
			trace.Trace(fmt.Sprintf("%s.%s pc=%d op=0x%02x", f.ClassName, f.MethodName, f.PC, op))
		}

		outcome, err := h(vm, f)
		if err != nil {
			return Errored, err
		}
		if outcome != Continue {
			return outcome, nil
		}
	}
}

// literalU2 reads a big-endian CP index at f.Code[f.PC+1:f.PC+3].
func literalU2(f *frame.Frame) uint16 {
	return uint16(f.Code[f.PC+1])<<8 | uint16(f.Code[f.PC+2])
}

// classAndMember renders a Methodref/Fieldref as its declaring class,
// member name, and descriptor, purely for trace lines -- handlers that stub out linking still want to say
// what they would have linked to.
func classAndMember(cp *classfile.ConstantPool, idx uint16) string {
	class, name, desc, ok := resolve.Ref(cp, idx)
	if !ok {
		return "?"
	}
	return class + "." + name + desc
}
