package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/kr/pretty"
)

// writeListing renders prog as a table of instructions and their resolved
// jump targets.
func writeListing(w io.Writer, prog Program, color bool) error {
	tw := table.NewWriter()
	tw.AppendHeader(table.Row{"@", "op", "arg", "target"})
	for ip, in := range prog.Code {
		tw.AppendRow(table.Row{ip, in.Op, listingArg(in), listingTarget(prog, ip)})
	}
	tw.AppendFooter(table.Row{"", "", "", fmt.Sprintf("%v instructions", prog.Len())})
	if color {
		tw.SetStyle(table.StyleColoredBright)
	} else {
		tw.SetStyle(table.StyleLight)
	}
	tw.Style().Format.Header = text.FormatDefault
	tw.Style().Format.Footer = text.FormatDefault
	_, err := io.WriteString(w, tw.Render()+"\n")
	return err
}

func listingArg(in Instruction) string {
	switch in.Op {
	case OpPush:
		return strconv.Itoa(int(in.Int))
	case OpWord:
		return strconv.Quote(in.Word)
	}
	return ""
}

func listingTarget(prog Program, ip int) string {
	if t, ok := prog.Target(ip); ok {
		return "@" + strconv.Itoa(t)
	}
	return ""
}

type vmDumper struct {
	vm  *VM
	out io.Writer
}

func (dump vmDumper) dump() {
	fmt.Fprintf(dump.out, "# VM Dump\n")
	fmt.Fprintf(dump.out, "  ip: %v\n", dump.vm.ip)
	fmt.Fprintf(dump.out, "  stack: %v\n", dump.vm.stack)
	fmt.Fprintf(dump.out, "  values: %# v\n", pretty.Formatter(dump.vm.stack))
	fmt.Fprintf(dump.out, "  kinds: %v\n", valueKinds(dump.vm.stack))
	fmt.Fprintf(dump.out, "  mismatches: %v\n", dump.vm.mismatches)
	dump.dumpCode()
}

func valueKinds(vals []Value) []string {
	kinds := make([]string, len(vals))
	for i, val := range vals {
		kinds[i] = fmt.Sprintf("%T", val)
	}
	return kinds
}

func (dump vmDumper) dumpCode() {
	width := len(strconv.Itoa(dump.vm.prog.Len()))
	fmt.Fprintf(dump.out, "# Program\n")
	for ip, in := range dump.vm.prog.Code {
		mark := ' '
		if ip == dump.vm.ip {
			mark = '*'
		}
		fmt.Fprintf(dump.out, "%c @%*v %v", mark, width, ip, in)
		if t, ok := dump.vm.prog.Target(ip); ok {
			fmt.Fprintf(dump.out, " -> @%v", t)
		}
		fmt.Fprintf(dump.out, "\n")
	}
}
