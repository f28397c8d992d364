package main

import (
	"fmt"
	"strconv"
)

// Op names the operation performed by an Instruction.
type Op uint8

const (
	OpPush Op = iota // <integer>   push an integer literal

	// binary integer operations on the stack
	OpAdd // +
	OpSub // -
	OpMul // *
	OpDiv // /
	OpMod // %

	// comparisons, pushing 1 or 0
	OpEq // =
	OpLt // >   pushes 1 when the second popped is greater
	OpMt // <   pushes 1 when the second popped is lesser

	// control flow
	OpIf    // if     jump to matching end unless positive
	OpWhile // while  loop condition marker
	OpDo    // do     jump past matching wend unless positive
	OpEnd   // end    if landing site
	OpWend  // wend   jump back to matching while

	OpDup   // dup
	OpPrint // print

	OpWord // <word>  unrecognized identifier, reserved and inert

	opMax
)

var opNames = [opMax]string{
	"push",
	"add",
	"sub",
	"mul",
	"div",
	"mod",
	"eq",
	"lt",
	"mt",
	"if",
	"while",
	"do",
	"end",
	"wend",
	"dup",
	"print",
	"word",
}

func (op Op) String() string {
	if op < opMax {
		return opNames[op]
	}
	return fmt.Sprintf("Op(%d)", uint8(op))
}

// Instruction is one element of a program. Int is the literal of OpPush, and
// Word carries the raw text of an OpWord.
type Instruction struct {
	Op   Op
	Int  int32
	Word string
}

// Push returns an integer literal instruction.
func Push(n int32) Instruction { return Instruction{Op: OpPush, Int: n} }

// Word returns an unrecognized identifier instruction.
func Word(s string) Instruction { return Instruction{Op: OpWord, Word: s} }

func (in Instruction) String() string {
	switch in.Op {
	case OpPush:
		return "push(" + strconv.Itoa(int(in.Int)) + ")"
	case OpWord:
		return "word(" + strconv.Quote(in.Word) + ")"
	}
	return in.Op.String()
}
