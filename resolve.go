package main

import "fmt"

// ResolutionError reports a block closing word with no open block left to
// close.
type ResolutionError struct {
	Op Op  // OpEnd or OpWend
	At int // instruction index of the closer
}

func (err ResolutionError) Error() string {
	return fmt.Sprintf("unmatched %v @%v: no open block", err.Op, err.At)
}

// Resolve pairs block openers (if, while, do) with their closers (end, wend)
// and returns a Program carrying the jump targets:
//   - an if targets its end
//   - a do targets its wend
//   - a wend targets the while that opened its loop
//
// Resolve must be given Lexer output; the kinds of paired openers are not
// checked, and openers that are never closed are left without a target.
// An unmatched closer fails the whole resolution.
func Resolve(code []Instruction) (Program, error) {
	prog := Program{
		Code:    append([]Instruction(nil), code...),
		Targets: make([]int, len(code)),
	}
	for i := range prog.Targets {
		prog.Targets[i] = noTarget
	}

	var open []int
	pop := func() (int, bool) {
		i := len(open) - 1
		if i < 0 {
			return 0, false
		}
		at := open[i]
		open = open[:i]
		return at, true
	}

	for ip, in := range prog.Code {
		switch in.Op {
		case OpIf, OpWhile, OpDo:
			open = append(open, ip)

		case OpEnd:
			ifAt, ok := pop()
			if !ok {
				return Program{}, ResolutionError{OpEnd, ip}
			}
			prog.Targets[ifAt] = ip

		case OpWend:
			doAt, ok := pop()
			if !ok {
				return Program{}, ResolutionError{OpWend, ip}
			}
			prog.Targets[doAt] = ip
			whileAt, ok := pop()
			if !ok {
				return Program{}, ResolutionError{OpWend, ip}
			}
			prog.Targets[ip] = whileAt
		}
	}
	return prog, nil
}
