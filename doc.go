// Package main implements gowend, a tiny stack language.
//
// A gowend program is a sequence of words separated by whitespace. Every word
// is one instruction; there is no other syntax, and no comments.
//
// Words that parse as signed 32-bit decimal integers push themselves onto the
// operand stack. The remaining reserved words are:
//
//	arithmetic      + - * / %
//	comparisons     = > <        pushing 1 or 0
//	dup             duplicate the top of the stack
//	print           pop and print the top of the stack on its own line
//	if end          conditional block
//	while do wend   loop
//
// Any other word is accepted and ignored; such words are reserved for a future
// facility to define new words.
//
// Binary operations pop their right operand first: "7 2 -" prints 5 when
// followed by print. Note that ">" pushes 1 when its left operand is greater,
// while "<" pushes 1 when its left operand is lesser.
//
// Conditions are true when positive. A conditional block runs its body once:
//
//	5 dup 0 > if print end
//
// A loop re-tests its condition, which sits between while and do, every time
// around:
//
//	3 while dup 0 > do dup print 1 - wend
//
// prints 3, 2, and 1.
//
// Programs are run in three stages: Lex splits source into instructions,
// Resolve pairs every block opener with its closer into a Program of jump
// targets, and a VM executes the Program. Unbalanced blocks fail resolution;
// popping an empty stack, and dividing by zero, halt the VM with an error.
//
// Usage:
//
//	gowend [-dump] [-trace] [-strict] [-timeout DURATION] FILE
//
// With -trace, a run that halts with an error also logs a dump of the VM
// state.
package main
