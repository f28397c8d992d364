package main

// Program is a resolved instruction sequence. Jump targets live in a side
// table parallel to Code, so that instructions themselves never change
// after lexing.
type Program struct {
	Code    []Instruction
	Targets []int
}

// noTarget marks a Targets entry with no resolved jump.
const noTarget = -1

// Len returns the number of instructions; execution ends when the
// instruction pointer reaches it.
func (prog Program) Len() int { return len(prog.Code) }

// Target returns the resolved jump target of the instruction at ip.
func (prog Program) Target(ip int) (int, bool) {
	if ip < 0 || ip >= len(prog.Targets) {
		return 0, false
	}
	t := prog.Targets[ip]
	return t, t != noTarget
}
