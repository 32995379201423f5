// Package config loads a seed typing environment (the bindings available
// to every program before inference begins) from a YAML file, and ships
// a small built-in default.
package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/chuigda/hmlang/diag"
	"github.com/chuigda/hmlang/tyenv"
	"github.com/chuigda/hmlang/types"
)

// Seed is the on-disk shape of a seed-environment file: a map under the
// "bindings" key from identifier name to a type-expression string, e.g.
// "square: int -> int".
type Seed struct {
	Bindings map[string]string `yaml:"bindings"`
}

// Load reads path as YAML and builds a typing environment with one
// monomorphic binding per entry.
func Load(path string) (*tyenv.Env, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, diag.Wrap(err, "reading seed config %s", path)
	}

	var seed Seed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, diag.Wrap(err, "parsing seed config %s as YAML", path)
	}

	env := tyenv.New()
	for name, expr := range seed.Bindings {
		t, err := parseTypeExpr(expr)
		if err != nil {
			return nil, diag.Wrap(err, "parsing the declared type of %s", name)
		}
		env.DefineMono(name, t)
	}
	return env, nil
}

// Default builds the minimum seed environment the engine ships with:
// square, print, and condint, a small arithmetic/IO/predicate surface
// just rich enough to write the worked examples against.
func Default() *tyenv.Env {
	env := tyenv.New()
	env.DefineMono("square", types.Func(types.Int(), types.Int()))
	env.DefineMono("print", types.Func(types.Str(), types.Unit()))
	env.DefineMono("condint", types.Func(types.Int(), types.Bool()))
	return env
}
