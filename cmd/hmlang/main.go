// Command hmlang is the CLI front end for the inference engine: it can
// infer a single expression, cross-check both strategies against each
// other, drive an interactive REPL, watch a file and re-infer it on
// save, or serve the worked browser demo.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/chuigda/hmlang/config"
	"github.com/chuigda/hmlang/infer"
	"github.com/chuigda/hmlang/parser"
	"github.com/chuigda/hmlang/tyenv"
)

var (
	red    = color.New(color.FgRed, color.Bold).SprintFunc()
	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
)

func main() {
	seedPath := flag.String("seed", "", "path to a YAML seed-environment file (defaults to the built-in seed)")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() < 1 {
		usage()
		os.Exit(2)
	}

	env, err := loadSeed(*seedPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, red("error:"), err)
		os.Exit(1)
	}

	cmd, args := flag.Arg(0), flag.Args()[1:]
	switch cmd {
	case "infer":
		runInfer(env, args)
	case "check":
		runCheck(env, args)
	case "repl":
		runREPL(env)
	case "watch":
		runWatch(env, args)
	case "serve":
		runServe(env, args)
	default:
		fmt.Fprintf(os.Stderr, "%s unknown subcommand %q\n", red("error:"), cmd)
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, bold("hmlang")+" — a Hindley-Milner inference engine")
	fmt.Fprintln(os.Stderr, "usage: hmlang [-seed file] <subcommand> [args]")
	fmt.Fprintln(os.Stderr, "subcommands:")
	fmt.Fprintln(os.Stderr, "  infer <file>    infer the type of a program, using strategy J")
	fmt.Fprintln(os.Stderr, "  check <file>    infer with both W and J and fail if they disagree")
	fmt.Fprintln(os.Stderr, "  repl            start an interactive read-eval-print loop")
	fmt.Fprintln(os.Stderr, "  watch <file>    re-infer a file's type every time it is saved")
	fmt.Fprintln(os.Stderr, "  serve [addr]    serve the browser demo (default :3001)")
}

func loadSeed(path string) (*tyenv.Env, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

func readSource(args []string) (string, error) {
	if len(args) == 0 {
		return "", fmt.Errorf("expected a source file argument")
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func runInfer(env *tyenv.Env, args []string) {
	src, err := readSource(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, red("error:"), err)
		os.Exit(1)
	}
	expr, err := parser.Parse(src)
	if err != nil {
		fmt.Fprintln(os.Stderr, red("parse error:"), err)
		os.Exit(1)
	}
	t, err := (infer.J{}).Infer(env, expr)
	if err != nil {
		fmt.Fprintln(os.Stderr, red("type error:"), err)
		os.Exit(1)
	}
	fmt.Println(green(infer.Generalize(env, t).String()))
}

func runCheck(env *tyenv.Env, args []string) {
	src, err := readSource(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, red("error:"), err)
		os.Exit(1)
	}

	exprForW, err := parser.Parse(src)
	if err != nil {
		fmt.Fprintln(os.Stderr, red("parse error:"), err)
		os.Exit(1)
	}
	exprForJ, err := parser.Parse(src)
	if err != nil {
		fmt.Fprintln(os.Stderr, red("parse error:"), err)
		os.Exit(1)
	}

	wType, wErr := (infer.W{}).Infer(env, exprForW)
	jType, jErr := (infer.J{}).Infer(env, exprForJ)

	if (wErr == nil) != (jErr == nil) {
		fmt.Fprintf(os.Stderr, "%s strategies disagree on acceptance: W err=%v, J err=%v\n", red("mismatch:"), wErr, jErr)
		os.Exit(1)
	}
	if wErr != nil {
		fmt.Fprintln(os.Stderr, yellow("rejected by both strategies:"), wErr)
		return
	}
	fmt.Printf("%s W: %s\n", green("ok"), infer.Generalize(env, wType))
	fmt.Printf("%s J: %s\n", green("ok"), infer.Generalize(env, jType))
}
