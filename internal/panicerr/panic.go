package panicerr

import (
	"errors"
	"fmt"
)

// PanicError is a recovered panic value, along with the stack of the
// goroutine that paniced.
type PanicError struct {
	Name  string
	Value interface{}
	Stack []byte
}

func (pe PanicError) Error() string {
	return fmt.Sprint(pe)
}

// Format prints the panic value; the "%+v" form also prints the stack.
func (pe PanicError) Format(f fmt.State, c rune) {
	if pe.Name == "" {
		fmt.Fprintf(f, "paniced: %v", pe.Value)
	} else {
		fmt.Fprintf(f, "%v paniced: %v", pe.Name, pe.Value)
	}
	if c == 'v' && f.Flag('+') {
		fmt.Fprintf(f, "\nPanic stack: %s", pe.Stack)
	}
}

// Unwrap returns the panic value if it was an error.
func (pe PanicError) Unwrap() error {
	err, _ := pe.Value.(error)
	return err
}

// IsPanic returns true if err indicates a recovered goroutine panic.
func IsPanic(err error) bool {
	var pe PanicError
	return errors.As(err, &pe)
}

// Stack returns a non-empty stacktrace string if err is a recovered
// goroutine panic.
func Stack(err error) string {
	var pe PanicError
	if errors.As(err, &pe) {
		return string(pe.Stack)
	}
	return ""
}
