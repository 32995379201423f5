package config

import (
	"fmt"
	"strings"

	"github.com/chuigda/hmlang/diag"
	"github.com/chuigda/hmlang/types"
)

// parseTypeExpr parses a small closed grammar of monotype expressions
// used only inside seed-config values: int, bool, str, unit, the
// product operator *, the function operator -> (right-associative), and
// parens for grouping. This is a tiny, self-contained sub-grammar for a
// single config value, not a second front for the language's own parser.
func parseTypeExpr(src string) (types.Type, error) {
	p := &typeExprParser{tokens: tokenizeTypeExpr(src)}
	t, err := p.parseFunc()
	if err != nil {
		return nil, err
	}
	if p.pos != len(p.tokens) {
		return nil, diag.New(diag.InvariantViolation, "unexpected trailing input %q in type expression %q", strings.Join(p.tokens[p.pos:], " "), src)
	}
	return t, nil
}

func tokenizeTypeExpr(src string) []string {
	var tokens []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			tokens = append(tokens, cur.String())
			cur.Reset()
		}
	}
	runes := []rune(src)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case r == ' ' || r == '\t' || r == '\n':
			flush()
		case r == '(' || r == ')' || r == '*':
			flush()
			tokens = append(tokens, string(r))
		case r == '-' && i+1 < len(runes) && runes[i+1] == '>':
			flush()
			tokens = append(tokens, "->")
			i++
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return tokens
}

type typeExprParser struct {
	tokens []string
	pos    int
}

func (p *typeExprParser) peek() (string, bool) {
	if p.pos >= len(p.tokens) {
		return "", false
	}
	return p.tokens[p.pos], true
}

// parseFunc := parseProduct ("->" parseFunc)?  (right-associative)
func (p *typeExprParser) parseFunc() (types.Type, error) {
	left, err := p.parseProduct()
	if err != nil {
		return nil, err
	}
	if tok, ok := p.peek(); ok && tok == "->" {
		p.pos++
		right, err := p.parseFunc()
		if err != nil {
			return nil, err
		}
		return types.Func(left, right), nil
	}
	return left, nil
}

// parseProduct := parseAtom ("*" parseAtom)*
func (p *typeExprParser) parseProduct() (types.Type, error) {
	first, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	items := []types.Type{first}
	for {
		tok, ok := p.peek()
		if !ok || tok != "*" {
			break
		}
		p.pos++
		next, err := p.parseAtom()
		if err != nil {
			return nil, err
		}
		items = append(items, next)
	}
	if len(items) == 1 {
		return items[0], nil
	}
	return types.Product(items...), nil
}

func (p *typeExprParser) parseAtom() (types.Type, error) {
	tok, ok := p.peek()
	if !ok {
		return nil, diag.New(diag.InvariantViolation, "unexpected end of type expression")
	}
	p.pos++
	switch tok {
	case "(":
		inner, err := p.parseFunc()
		if err != nil {
			return nil, err
		}
		closing, ok := p.peek()
		if !ok || closing != ")" {
			return nil, diag.New(diag.InvariantViolation, "expected ) in type expression")
		}
		p.pos++
		return inner, nil
	case "int":
		return types.Int(), nil
	case "bool":
		return types.Bool(), nil
	case "str":
		return types.Str(), nil
	case "unit":
		return types.Unit(), nil
	default:
		return nil, diag.New(diag.InvariantViolation, "unknown type name %s", fmt.Sprint(tok))
	}
}
