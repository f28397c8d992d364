package main

import (
	"context"
	"errors"
	"fmt"
)

func (vm *VM) pushValue(val Value) {
	vm.stack = append(vm.stack, val)
}

func (vm *VM) pop(op Op) (val Value) {
	i := len(vm.stack) - 1
	if i < 0 {
		vm.halt(UnderflowError{op})
	}
	val, vm.stack = vm.stack[i], vm.stack[:i]
	return val
}

func (vm *VM) binary(op Op, f func(b, a Int) Int) {
	a, b := vm.pop(op), vm.pop(op)
	x, ok := a.(Int)
	if !ok {
		vm.mismatch(op, a)
		return
	}
	y, ok := b.(Int)
	if !ok {
		vm.mismatch(op, b)
		return
	}
	vm.pushValue(f(y, x))
}

// truth pops a condition, which holds if it is a positive Int.
func (vm *VM) truth(op Op) bool {
	switch a := vm.pop(op).(type) {
	case Int:
		return a > 0
	default:
		vm.mismatch(op, a)
		return false
	}
}

// mismatch is the one path taken by any operation given a non-Int operand:
// the operands are already consumed, and no result is pushed. Strict VMs
// halt instead.
func (vm *VM) mismatch(op Op, val Value) {
	vm.mismatches++
	vm.logf("!", "type mismatch in %v: %#v", op, val)
	if vm.strict {
		vm.halt(TypeMismatchError{op, val})
	}
}

func (vm *VM) target() int {
	t, ok := vm.prog.Target(vm.at)
	if !ok {
		vm.halt(unresolvedError(vm.at))
	}
	return t
}

func (vm *VM) jump(ip int) {
	vm.logf("^", "jump @%v -> @%v", vm.at, ip)
	vm.ip = ip
}

func (vm *VM) step() {
	vm.at = vm.ip
	in := vm.prog.Code[vm.at]
	vm.ip++
	if vm.logfn != nil {
		vm.logf(">", "exec @%v %v -- s:%v", vm.at, in, vm.stack)
	}
	opTable[in.Op](vm)
}

func (vm *VM) exec(ctx context.Context) {
	if vm.logfn != nil {
		defer vm.withLogPrefix("	")()
	}

	for vm.ip < vm.prog.Len() {
		vm.step()
		vm.haltif(ctx.Err())
	}
}

func (vm *VM) run(ctx context.Context) error {
	if vm.listing != nil {
		vm.haltif(writeListing(vm.out, vm.prog, vm.listing.color))
	}
	vm.logf("#", "run %v instructions", vm.prog.Len())
	vm.exec(ctx)
	vm.logf("#", "done, stack:%v", vm.stack)
	return vm.out.Flush()
}

var errDivideByZero = errors.New("division by zero")

// UnderflowError reports an operation that popped an empty operand stack.
type UnderflowError struct{ Op Op }

func (err UnderflowError) Error() string {
	return fmt.Sprintf("stack underflow in %v", err.Op)
}

// TypeMismatchError reports an operation given a non-integer operand by a
// VM built WithStrictTypes.
type TypeMismatchError struct {
	Op    Op
	Value Value
}

func (err TypeMismatchError) Error() string {
	return fmt.Sprintf("type mismatch in %v: non-integer operand %q", err.Op, err.Value.String())
}

type unresolvedError int

func (at unresolvedError) Error() string {
	return fmt.Sprintf("unresolved jump @%v: block never closed", int(at))
}
