package flushio

import "io"

// WriteFlushers fans output out to every given WriteFlusher, as a VM does
// with teed output. Nil entries are skipped, nested fans are flattened, and a
// lone flusher is returned as-is.
func WriteFlushers(wfs ...WriteFlusher) WriteFlusher {
	var fan fanout
	for _, wf := range wfs {
		fan = fan.add(wf)
	}
	switch len(fan) {
	case 0:
		return nil
	case 1:
		return fan[0]
	}
	return fan
}

type fanout []WriteFlusher

func (fan fanout) add(wf WriteFlusher) fanout {
	switch impl := wf.(type) {
	case nil:
		return fan
	case fanout:
		return append(fan, impl...)
	default:
		return append(fan, wf)
	}
}

// Write stops at the first writer that fails or comes up short.
func (fan fanout) Write(p []byte) (int, error) {
	for _, wf := range fan {
		if n, err := wf.Write(p); err != nil {
			return n, err
		} else if n < len(p) {
			return n, io.ErrShortWrite
		}
	}
	return len(p), nil
}

// Flush flushes every writer, even past a failure, and returns the first
// error.
func (fan fanout) Flush() error {
	var first error
	for _, wf := range fan {
		if err := wf.Flush(); first == nil {
			first = err
		}
	}
	return first
}
