package main

import (
	"log"
	"net/http"

	"github.com/chuigda/hmlang/tyenv"
	"github.com/chuigda/hmlang/web"
)

func runServe(env *tyenv.Env, args []string) {
	addr := ":3001"
	if len(args) > 0 {
		addr = args[0]
	}

	handler := web.Handler(func() *tyenv.Env { return env })
	log.Println("starting server on", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
