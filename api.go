package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/jcorbin/gowend/internal/panicerr"
)

// New creates a VM with the given options applied over defaults that
// discard output.
func New(opts ...VMOption) *VM {
	var vm VM
	defaultOptions.apply(&vm)
	VMOptions(opts...).apply(&vm)
	return &vm
}

// Compile lexes and resolves source from r.
func Compile(r io.Reader) (Program, error) {
	code, err := Lex(r)
	if err != nil {
		return Program{}, fmt.Errorf("lex failed: %w", err)
	}
	return Resolve(code)
}

// Load replaces the VM's program, resetting the instruction pointer and
// operand stack.
func (vm *VM) Load(prog Program) {
	vm.prog = prog
	vm.ip = 0
	vm.at = 0
	vm.stack = nil
	vm.mismatches = 0
}

// Run executes the loaded program until the instruction pointer runs off its
// end, returning any error that halted it early.
func (vm *VM) Run(ctx context.Context) error {
	err := panicerr.Recover("VM", func() error {
		return vm.run(ctx)
	})
	var halted haltError
	if errors.As(err, &halted) {
		err = halted.error
	}
	return err
}

// Stack returns a copy of the operand stack, bottom first.
func (vm *VM) Stack() []Value { return append([]Value(nil), vm.stack...) }

// Mismatches returns how many operations received a non-integer operand
// since the program was loaded.
func (vm *VM) Mismatches() int { return vm.mismatches }

// WithProgram loads prog into the VM.
func WithProgram(prog Program) VMOption { return programOption(prog) }

// WithOutput sets the writer that print writes to.
func WithOutput(w io.Writer) VMOption { return withOutput(w) }

// WithTee copies all output to w, in addition to the current output. If w is
// an io.Closer, VM.Close closes it.
func WithTee(w io.Writer) VMOption { return withTee(w) }

// WithLogf enables trace logging of every executed step.
func WithLogf(logfn func(mess string, args ...interface{})) VMOption { return withLogfn(logfn) }

// WithStrictTypes makes an operation that receives a non-integer operand halt
// the VM with a TypeMismatchError, rather than drop its result.
func WithStrictTypes() VMOption { return strictOption(true) }

// WithProgramListing writes a table of the loaded program to the output
// before running it; color enables terminal styling.
func WithProgramListing(color bool) VMOption { return listingOption{color} }
