package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"regexp"
	"strings"
	"text/template"
	"time"

	"golang.org/x/net/context"
	"golang.org/x/sync/errgroup"
)

// gen_vm_expects reads the vmTestCase builder source, and writes an expectVM*
// function for each of its expect* methods, so that program test tables can
// list expectations as values. Output is piped through goimports.
//
//	go run scripts/gen_vm_expects.go -- vm_test.go vm_expects_test.go
func main() {
	flag.Parse()
	srcName, dstName := "vm_test.go", ""
	if args := flag.Args(); len(args) > 0 {
		srcName = args[0]
		if len(args) > 1 {
			dstName = args[1]
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := generate(ctx, srcName, dstName); err != nil {
		log.Fatalln(err)
	}
}

// expectation is one expect* builder method.
type expectation struct {
	Name   string // method name after "expect"
	Params string // parameters as declared
	Args   string // call arguments forwarding Params
}

var expectMethod = regexp.MustCompile(`^func \(vmt vmTestCase\) expect(\w+)\((.*?)\) vmTestCase`)

var (
	headerTemplate = template.Must(template.New("header").Parse(`package main

// @generated from {{.Source}}
{{if .Args}}
//go:generate go run scripts/gen_vm_expects.go --{{range .Args}} {{.}}{{end}}
{{end}}`))

	expectTemplate = template.Must(template.New("expect").Parse(`
func expectVM{{.Name}}({{.Params}}) func(vmTestCase) vmTestCase {
	return func(vmt vmTestCase) vmTestCase {
		return vmt.expect{{.Name}}({{.Args}})
	}
}
`))
)

func generate(ctx context.Context, srcName, dstName string) (rerr error) {
	src, err := os.Open(srcName)
	if err != nil {
		return err
	}
	defer src.Close()

	var dst io.Writer = os.Stdout
	if dstName != "" {
		f, err := os.Create(dstName)
		if err != nil {
			return err
		}
		defer func() {
			if cerr := f.Close(); rerr == nil {
				rerr = cerr
			}
		}()
		dst = f
	}

	eg, ctx := errgroup.WithContext(ctx)

	goimports := exec.CommandContext(ctx, "goimports")
	goimports.Stdout = dst
	goimports.Stderr = os.Stderr
	pipe, err := goimports.StdinPipe()
	if err != nil {
		return err
	}
	if err := goimports.Start(); err != nil {
		return fmt.Errorf("goimports start failed: %w", err)
	}

	exps := make(chan expectation)
	eg.Go(func() error {
		defer close(exps)
		return scanExpectations(ctx, src, exps)
	})
	eg.Go(func() error {
		defer pipe.Close()
		return render(pipe, srcName, exps)
	})

	err = eg.Wait()
	if werr := goimports.Wait(); err == nil && werr != nil {
		err = fmt.Errorf("goimports run failed: %w", werr)
	}
	return err
}

func scanExpectations(ctx context.Context, r io.Reader, exps chan<- expectation) error {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		match := expectMethod.FindStringSubmatch(sc.Text())
		if match == nil {
			continue
		}
		exp := expectation{
			Name:   match[1],
			Params: match[2],
			Args:   forwardArgs(match[2]),
		}
		select {
		case exps <- exp:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return sc.Err()
}

func render(w io.Writer, srcName string, exps <-chan expectation) error {
	var genArgs []string
	if args := flag.Args(); len(args) >= 2 {
		genArgs = args
	}
	if err := headerTemplate.Execute(w, struct {
		Source string
		Args   []string
	}{srcName, genArgs}); err != nil {
		return err
	}
	for exp := range exps {
		if err := expectTemplate.Execute(w, exp); err != nil {
			return err
		}
	}
	return nil
}

// forwardArgs turns a parameter list like "n int, vals ...Value" into the
// arguments "n, vals...".
func forwardArgs(params string) string {
	var args []string
	for _, param := range strings.Split(params, ",") {
		fields := strings.Fields(param)
		if len(fields) == 0 {
			continue
		}
		arg := fields[0]
		if len(fields) > 1 && strings.HasPrefix(fields[1], "...") {
			arg += "..."
		}
		args = append(args, arg)
	}
	return strings.Join(args, ", ")
}
