package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/tebeka/atexit"
	"golang.org/x/term"

	"github.com/jcorbin/gowend/internal/logio"
)

const usage = "usage: gowend [flags] <program file>"

func main() {
	var log logio.Logger
	log.SetOutput(os.Stderr)
	atexit.Register(log.Close)

	cmd := command{
		stdout: os.Stdout,
		stderr: os.Stderr,
		log:    &log,
		color:  term.IsTerminal(int(os.Stdout.Fd())),
	}
	atexit.Exit(cmd.run(context.Background(), os.Args[1:]))
}

type command struct {
	stdout io.Writer
	stderr io.Writer
	log    *logio.Logger
	color  bool

	// opts are applied after any derived from flags.
	opts []VMOption
}

func (cmd command) run(ctx context.Context, args []string) int {
	var (
		timeout time.Duration
		trace   bool
		strict  bool
		dump    bool
	)
	flags := flag.NewFlagSet("gowend", flag.ContinueOnError)
	flags.SetOutput(cmd.stderr)
	flags.DurationVar(&timeout, "timeout", 0, "specify a time limit")
	flags.BoolVar(&trace, "trace", false, "enable trace logging")
	flags.BoolVar(&strict, "strict", false, "halt on non-integer operands")
	flags.BoolVar(&dump, "dump", false, "print the resolved program before running it")
	if err := flags.Parse(args); err != nil {
		return 2
	}
	if flags.NArg() < 1 {
		fmt.Fprintln(cmd.stdout, usage)
		return 1
	}

	prog, err := compileFile(flags.Arg(0))
	if err != nil {
		cmd.log.Errorf("%v", err)
		return cmd.log.ExitCode()
	}

	var opts = []VMOption{
		WithProgram(prog),
		WithOutput(cmd.stdout),
	}
	if trace {
		opts = append(opts, WithLogf(cmd.log.Leveledf("TRACE")))
	}
	if strict {
		opts = append(opts, WithStrictTypes())
	}
	if dump {
		opts = append(opts, WithProgramListing(cmd.color))
	}
	opts = append(opts, cmd.opts...)
	vm := New(opts...)

	if timeout != 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	err = vm.Run(ctx)
	if err != nil && trace {
		cmd.dumpVM(vm)
	}
	cmd.log.ErrorIf(err)
	cmd.log.ErrorIf(vm.Close())
	return cmd.log.ExitCode()
}

// dumpVM logs the state of a halted VM, one DUMP line per line of the dump.
func (cmd command) dumpVM(vm *VM) {
	lw := logio.Writer{Logf: cmd.log.Leveledf("DUMP")}
	defer lw.Close()
	vmDumper{vm: vm, out: &lw}.dump()
}

func compileFile(name string) (Program, error) {
	f, err := os.Open(name)
	if err != nil {
		return Program{}, err
	}
	defer f.Close()
	prog, err := Compile(f)
	if err != nil {
		return Program{}, fmt.Errorf("%v: %w", name, err)
	}
	return prog, nil
}
