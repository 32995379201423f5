package main

import (
	"fmt"
	"os"

	"github.com/chuigda/hmlang/infer"
	"github.com/chuigda/hmlang/parser"
	"github.com/chuigda/hmlang/tyenv"
	"github.com/chuigda/hmlang/watch"
)

func runWatch(env *tyenv.Env, args []string) {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, red("error:"), "expected a source file argument")
		os.Exit(1)
	}
	path := args[0]

	w, err := watch.New()
	if err != nil {
		fmt.Fprintln(os.Stderr, red("error:"), err)
		os.Exit(1)
	}
	defer w.Close()

	if err := w.Add(path); err != nil {
		fmt.Fprintln(os.Stderr, red("error:"), err)
		os.Exit(1)
	}

	inferOnce := func() {
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintln(os.Stderr, red("error:"), err)
			return
		}
		expr, err := parser.Parse(string(data))
		if err != nil {
			fmt.Fprintln(os.Stderr, red("parse error:"), err)
			return
		}
		t, err := (infer.J{}).Infer(env, expr)
		if err != nil {
			fmt.Fprintln(os.Stderr, red("type error:"), err)
			return
		}
		fmt.Println(green(infer.Generalize(env, t).String()))
	}

	fmt.Println(bold("watching"), path)
	inferOnce()
	for {
		select {
		case ev := <-w.Events():
			if ev.Op&(watch.OpWrite|watch.OpCreate) == 0 {
				continue
			}
			fmt.Println(yellow("changed:"), ev.Path)
			inferOnce()
		case err := <-w.Errors():
			fmt.Fprintln(os.Stderr, red("watch error:"), err)
		}
	}
}
