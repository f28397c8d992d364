// Package runeio adapts byte streams for rune-at-a-time scanning.
package runeio

import (
	"bufio"
	"io"
)

// Reader is an io.Reader that also supports reading runes.
type Reader interface {
	io.Reader
	io.RuneReader
}

// NewReader returns a Reader from r; if r already implements, it is simply returned.
// Otherwise bufio.Reader is used to provide rune reading around the given reader.
// If the r implements Name() string, so will the returned Reader.
func NewReader(r io.Reader) Reader {
	if impl, ok := r.(Reader); ok {
		return impl
	}
	br := bufio.NewReader(r)
	if name := NameOf(r); name != "" {
		return namedRuneReader{br, name}
	}
	return br
}

// NameOf returns the name of a reader that has one, like an *os.File, or
// the empty string.
func NameOf(r io.Reader) string {
	if impl, ok := r.(interface{ Name() string }); ok {
		return impl.Name()
	}
	return ""
}

type namedRuneReader struct {
	Reader
	name string
}

func (nr namedRuneReader) Name() string { return nr.name }
