// Package panicerr turns panics and runtime.Goexit calls into plain errors,
// so that code which halts by panicking can still return to its caller.
package panicerr

import "runtime/debug"

// Recover runs f in a new goroutine, waiting for it to finish. Any panic, or
// any call to runtime.Goexit, is returned as a non-nil error; otherwise f's
// own error is returned.
func Recover(name string, f func() error) error {
	errch := make(chan error, 1)
	go func() {
		returned := false
		defer func() {
			if e := recover(); e != nil {
				errch <- PanicError{Name: name, Value: e, Stack: debug.Stack()}
			} else if !returned {
				errch <- ExitError{Name: name}
			}
		}()
		err := f()
		returned = true
		errch <- err
	}()
	return <-errch
}
