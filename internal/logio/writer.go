package logio

import (
	"bytes"
	"sync"
)

// Writer turns written output into logged lines, such as a VM dump going to
// a Logger, or program output going to a testing.T's Logf. A trailing
// partial line is held until a later write completes it, or until Close.
type Writer struct {
	Logf func(string, ...interface{})

	mu      sync.Mutex
	partial []byte
}

func (lw *Writer) Write(p []byte) (int, error) {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	for rest := p; ; {
		line, more, found := bytes.Cut(rest, []byte{'\n'})
		if !found {
			lw.partial = append(lw.partial, rest...)
			return len(p), nil
		}
		lw.logLine(line)
		rest = more
	}
}

// Close logs any held partial line.
func (lw *Writer) Close() error {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	if len(lw.partial) > 0 {
		lw.logLine(nil)
	}
	return nil
}

func (lw *Writer) logLine(tail []byte) {
	line := append(lw.partial, tail...)
	lw.Logf("%s", line)
	lw.partial = line[:0]
}
