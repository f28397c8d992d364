package main

import (
	"errors"
	"io"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jcorbin/gowend/internal/runeio"
)

// keywords maps every reserved word to its operation. It is filled in
// during package initialization and only read afterwards.
var keywords = map[string]Op{
	"+": OpAdd,
	"-": OpSub,
	"*": OpMul,
	"/": OpDiv,
	"%": OpMod,
	"=": OpEq,
	">": OpLt,
	"<": OpMt,

	"if":    OpIf,
	"while": OpWhile,
	"do":    OpDo,
	"wend":  OpWend,
	"end":   OpEnd,
	"dup":   OpDup,
	"print": OpPrint,
}

var errInvalidUTF8 = errors.New("invalid UTF-8 in source")

// Lex reads whitespace separated words from r, returning one instruction per
// word. Source must be UTF-8. Any read error other than io.EOF is returned
// along with the instructions lexed so far.
func Lex(r io.Reader) ([]Instruction, error) {
	lex := lexer{
		keywords: keywords,
		in:       runeio.NewReader(r),
	}
	return lex.lex()
}

// LexString lexes an in-memory source.
func LexString(src string) []Instruction {
	code, err := Lex(strings.NewReader(src))
	if err != nil {
		panic(err) // only invalid UTF-8 fails an in-memory source
	}
	return code
}

type lexer struct {
	keywords map[string]Op
	in       io.RuneReader
	sb       strings.Builder
}

func (lex *lexer) lex() (code []Instruction, _ error) {
	for {
		word, err := lex.scan()
		if err == io.EOF {
			return code, nil
		} else if err != nil {
			return code, err
		}
		code = append(code, lex.classify(word))
	}
}

// scan returns the next word, or io.EOF once only whitespace remains. A word
// that runs into the end of input is complete.
func (lex *lexer) scan() (string, error) {
	lex.sb.Reset()
	for {
		r, err := lex.readRune()
		if err != nil {
			return "", err
		}
		if !unicode.IsSpace(r) {
			lex.sb.WriteRune(r)
			break
		}
	}
	for {
		r, err := lex.readRune()
		if err == io.EOF {
			break
		} else if err != nil {
			return "", err
		} else if unicode.IsSpace(r) {
			break
		}
		lex.sb.WriteRune(r)
	}
	return lex.sb.String(), nil
}

func (lex *lexer) readRune() (rune, error) {
	r, size, err := lex.in.ReadRune()
	if err == nil && r == utf8.RuneError && size == 1 {
		err = errInvalidUTF8
	}
	return r, err
}

func (lex *lexer) classify(word string) Instruction {
	if n, err := strconv.ParseInt(word, 10, 32); err == nil {
		return Push(int32(n))
	}
	if op, defined := lex.keywords[word]; defined {
		return Instruction{Op: op}
	}
	return Word(word)
}
