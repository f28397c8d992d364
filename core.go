package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/jcorbin/gowend/internal/flushio"
)

type core struct {
	logging
	out     flushio.WriteFlusher
	closers []io.Closer
}

// Close closes any resources held by options, like files, in reverse order.
func (core *core) Close() (err error) {
	for i := len(core.closers) - 1; i >= 0; i-- {
		if cerr := core.closers[i].Close(); err == nil {
			err = cerr
		}
	}
	core.closers = nil
	return err
}

// halt flushes output and then unwinds to Run by panicking with a
// haltError; a nil err is a normal stop.
func (core *core) halt(err error) {
	// ignore any panics while trying to flush output
	func() {
		defer func() { recover() }()
		if core.out != nil {
			if ferr := core.out.Flush(); err == nil {
				err = ferr
			}
		}
	}()

	// ignore any panics while logging
	func() {
		defer func() { recover() }()
		if err != nil {
			core.logf("#", "halt error: %v", err)
		} else {
			core.logf("#", "halt")
		}
	}()

	panic(haltError{err})
}

func (core *core) haltif(err error) {
	if err != nil {
		core.halt(err)
	}
}

func (core *core) writeLine(s string) {
	if _, err := io.WriteString(core.out, s); err != nil {
		core.halt(err)
	}
	if _, err := io.WriteString(core.out, "\n"); err != nil {
		core.halt(err)
	}
}

type haltError struct{ error }

func (err haltError) Error() string {
	if err.error != nil {
		return fmt.Sprintf("halted: %v", err.error)
	}
	return "halted"
}
func (err haltError) Unwrap() error { return err.error }

type logging struct {
	logfn func(mess string, args ...interface{})

	markWidth int
}

func (log *logging) withLogPrefix(prefix string) func() {
	logfn := log.logfn
	log.logfn = func(mess string, args ...interface{}) {
		logfn(prefix+mess, args...)
	}
	return func() {
		log.logfn = logfn
	}
}

// logf logs a message behind a mark, like "#" for lifecycle events or ">"
// for executed steps; marks are padded to a common width.
func (log *logging) logf(mark, mess string, args ...interface{}) {
	if log.logfn == nil {
		return
	}
	if n := log.markWidth - len(mark); n > 0 {
		for _, r := range mark {
			mark = strings.Repeat(string(r), n) + mark
			break
		}
	} else if n < 0 {
		log.markWidth = len(mark)
	}
	if len(args) > 0 {
		mess = fmt.Sprintf(mess, args...)
	}
	log.logfn("%v %v", mark, mess)
}
