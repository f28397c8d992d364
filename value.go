package main

import (
	"fmt"
	"strconv"
)

// Value is an operand stack entry: an Int or a Text. Programs can only
// produce Ints.
type Value interface {
	fmt.Stringer
	value()
}

// Int is a 32-bit signed integer value.
type Int int32

// Text is a string value.
type Text string

func (n Int) String() string  { return strconv.Itoa(int(n)) }
func (s Text) String() string { return string(s) }

func (Int) value()  {}
func (Text) value() {}

func boolInt(b bool) Int {
	if b {
		return 1
	}
	return 0
}
