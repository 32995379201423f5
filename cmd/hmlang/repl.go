package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/chuigda/hmlang/infer"
	"github.com/chuigda/hmlang/parser"
	"github.com/chuigda/hmlang/tyenv"
)

const replHistoryFile = ".hmlang_history"

func runREPL(env *tyenv.Env) {
	line := liner.NewLiner()
	defer line.Close()
	line.SetMultiLineMode(true)

	historyPath := filepath.Join(os.TempDir(), replHistoryFile)
	if f, err := os.Open(historyPath); err == nil {
		_, _ = line.ReadHistory(f)
		f.Close()
	}

	line.SetCompleter(func(text string) (c []string) {
		if strings.HasPrefix(text, ":") {
			for _, cmd := range []string{":help", ":quit", ":check"} {
				if strings.HasPrefix(cmd, text) {
					c = append(c, cmd)
				}
			}
		}
		return c
	})

	fmt.Println(bold("hmlang") + " — type an expression, :check to cross-validate, :quit to exit")

	var lastInput string
	for {
		input, err := line.Prompt("λ> ")
		if err == io.EOF {
			fmt.Println(green("goodbye"))
			return
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, red("error:"), err)
			continue
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		line.AppendHistory(input)

		switch {
		case input == ":quit" || input == ":q":
			fmt.Println(green("goodbye"))
			if f, err := os.Create(historyPath); err == nil {
				_, _ = line.WriteHistory(f)
				f.Close()
			}
			return
		case input == ":help":
			fmt.Println("enter any expression to infer its type; :check runs both strategies on the previous line")
			continue
		case input == ":check":
			if lastInput == "" {
				fmt.Fprintln(os.Stderr, red("error:"), "no previous line to check")
				continue
			}
			checkLine(env, lastInput)
			continue
		}

		lastInput = input
		evalLine(env, input)
	}
}

func checkLine(env *tyenv.Env, input string) {
	exprForW, err := parser.Parse(input)
	if err != nil {
		fmt.Fprintln(os.Stderr, red("parse error:"), err)
		return
	}
	exprForJ, err := parser.Parse(input)
	if err != nil {
		fmt.Fprintln(os.Stderr, red("parse error:"), err)
		return
	}

	wType, wErr := (infer.W{}).Infer(env, exprForW)
	jType, jErr := (infer.J{}).Infer(env, exprForJ)
	if (wErr == nil) != (jErr == nil) {
		fmt.Fprintf(os.Stderr, "%s W err=%v, J err=%v\n", red("mismatch:"), wErr, jErr)
		return
	}
	if wErr != nil {
		fmt.Fprintln(os.Stderr, yellow("rejected by both strategies:"), wErr)
		return
	}
	fmt.Printf("%s W: %s, J: %s\n", green("ok"), infer.Generalize(env, wType), infer.Generalize(env, jType))
}

func evalLine(env *tyenv.Env, input string) {
	expr, err := parser.Parse(input)
	if err != nil {
		fmt.Fprintln(os.Stderr, red("parse error:"), err)
		return
	}
	t, err := (infer.J{}).Infer(env, expr)
	if err != nil {
		fmt.Fprintln(os.Stderr, red("type error:"), err)
		return
	}
	fmt.Println(yellow("::"), green(infer.Generalize(env, t).String()))
}
