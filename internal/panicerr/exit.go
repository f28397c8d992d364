package panicerr

import (
	"errors"
	"fmt"
)

// ExitError reports that the goroutine run by Recover ended without
// returning or panicking, which only runtime.Goexit can do.
type ExitError struct{ Name string }

func (xe ExitError) Error() string {
	if xe.Name == "" {
		return "runtime.Goexit called"
	}
	return fmt.Sprintf("%v called runtime.Goexit", xe.Name)
}

// IsExit returns true if err indicates a recovered goroutine exit.
func IsExit(err error) bool {
	var xe ExitError
	return errors.As(err, &xe)
}
