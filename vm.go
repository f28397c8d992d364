package main

//// Environment

// VM executes a resolved Program. Its state is an instruction pointer into
// the program, and an operand stack.
type VM struct {
	core

	prog Program
	ip   int // next instruction
	at   int // instruction being executed

	// The stack is a LIFO of Values, used implicitly by every operation
	// except the pure control flow markers. It starts out empty whenever a
	// program is loaded.
	stack []Value

	strict     bool
	mismatches int

	listing *listingOption
}

//// Literals

// Symbol      Name   Function
// <integer>   push   push the literal
func (vm *VM) push() { vm.pushValue(Int(vm.prog.Code[vm.at].Int)) }

//// Integer Operations
//
// Every binary operation pops a, then pops b, and pushes its result
// computed as "b op a"; so "5 3 -" computes 5-3.

// Symbol   Name   Function
//   - add    pop a, pop b, push a+b
func (vm *VM) add() { vm.binary(OpAdd, func(b, a Int) Int { return a + b }) }

// Symbol   Name   Function
//   - sub    pop a, pop b, push b-a
func (vm *VM) sub() { vm.binary(OpSub, func(b, a Int) Int { return b - a }) }

// Symbol   Name   Function
//   - mul    pop a, pop b, push b*a
func (vm *VM) mul() { vm.binary(OpMul, func(b, a Int) Int { return b * a }) }

// Symbol   Name   Function
//
//	/     div    pop a, pop b, push b/a truncated toward zero
func (vm *VM) div() {
	vm.binary(OpDiv, func(b, a Int) Int {
		if a == 0 {
			vm.halt(errDivideByZero)
		}
		return b / a
	})
}

// Symbol   Name   Function
//
//	%     mod    pop a, pop b, push the remainder of b/a, with the sign of b
func (vm *VM) mod() {
	vm.binary(OpMod, func(b, a Int) Int {
		if a == 0 {
			vm.halt(errDivideByZero)
		}
		return b % a
	})
}

//// Comparisons

// Symbol   Name   Function
//
//	=     eq     pop a, pop b, push 1 if b = a else 0
func (vm *VM) eq() { vm.binary(OpEq, func(b, a Int) Int { return boolInt(b == a) }) }

// Symbol   Name   Function
//
//	>     lt     pop a, pop b, push 1 if b > a else 0
func (vm *VM) lt() { vm.binary(OpLt, func(b, a Int) Int { return boolInt(b > a) }) }

// Symbol   Name   Function
//
//	<     mt     pop a, pop b, push 1 if b < a else 0
func (vm *VM) mt() { vm.binary(OpMt, func(b, a Int) Int { return boolInt(b < a) }) }

// NOTE lt is bound to > and mt to <, the opposite of what their names say.

//// Stack and Output Operations

// Name    Function
// dup     pop a, push a twice
func (vm *VM) dup() {
	a := vm.pop(OpDup)
	vm.pushValue(a)
	vm.pushValue(a)
}

// Name    Function
// print   pop a, write it to output followed by a line feed
func (vm *VM) print() { vm.writeLine(vm.pop(OpPrint).String()) }

//// Control Flow
//
// Blocks come in two shapes:
//
//	<cond> if <body> end
//	while <cond> do <body> wend
//
// The resolver gives if, do, and wend a jump target; while and end only
// mark where those jumps land.

// Name    Function
// if      pop a; unless a > 0, jump to the matching end
func (vm *VM) branch() {
	if !vm.truth(OpIf) {
		vm.jump(vm.target())
	}
}

// Name    Function
// while   no effect, marks where wend returns to
func (vm *VM) while() {}

// Name    Function
// do      pop a; unless a > 0, jump just past the matching wend
func (vm *VM) loop() {
	if !vm.truth(OpDo) {
		vm.jump(vm.target() + 1)
	}
}

// Name    Function
// end     no effect, marks where a failed if lands
func (vm *VM) end() {}

// Name    Function
// wend    jump back to the matching while
func (vm *VM) wend() { vm.jump(vm.target()) }

//// Unrecognized Words

// Any other word is kept as an inert instruction, holding its text for a
// future word definition facility.
func (vm *VM) word() {}

var opTable [opMax]func(vm *VM)

func init() {
	opTable = [...]func(vm *VM){
		(*VM).push,

		(*VM).add,
		(*VM).sub,
		(*VM).mul,
		(*VM).div,
		(*VM).mod,

		(*VM).eq,
		(*VM).lt,
		(*VM).mt,

		(*VM).branch,
		(*VM).while,
		(*VM).loop,
		(*VM).end,
		(*VM).wend,

		(*VM).dup,
		(*VM).print,

		(*VM).word,
	}
}
