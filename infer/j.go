package infer

import (
	"github.com/chuigda/hmlang/ast"
	"github.com/chuigda/hmlang/diag"
	"github.com/chuigda/hmlang/tyenv"
	"github.com/chuigda/hmlang/types"
	"github.com/chuigda/hmlang/unify"
)

// J is Algorithm J: type variables carry mutable identity and
// unification resolves them in place via TypeVar.Resolve.
type J struct{}

func (J) Name() string { return "J" }

func (j J) Infer(env *tyenv.Env, expr ast.Expr) (types.Type, error) {
	return j.infer(env, expr)
}

func (j J) infer(env *tyenv.Env, expr ast.Expr) (types.Type, error) {
	switch e := expr.(type) {
	case *ast.LitInt:
		return types.Int(), nil
	case *ast.LitBool:
		return types.Bool(), nil
	case *ast.LitStr:
		return types.Str(), nil
	case *ast.Var:
		scheme, ok := env.Lookup(e.Name)
		if !ok {
			return nil, diag.New(diag.Undefined, "%s", e.Name)
		}
		return scheme.Instantiate(), nil
	case *ast.Abs:
		return j.inferAbs(env, e)
	case *ast.App:
		return j.inferApp(env, e)
	case *ast.Let:
		return j.inferLet(env, e)
	case *ast.LetRec:
		return j.inferLetRec(env, e)
	case *ast.If:
		return j.inferIf(env, e)
	case *ast.Stmt:
		return j.inferStmt(env, e)
	case *ast.Return:
		return j.inferReturn(env, e)
	default:
		return nil, diag.New(diag.InvariantViolation, "unhandled expression node %T", expr)
	}
}

func (j J) inferAbs(env *tyenv.Env, e *ast.Abs) (types.Type, error) {
	beta := types.NewTypeVar(types.Beta)
	child := env.Child()
	child.DefineMono(e.Param, beta)
	child.MarkNonGeneric(beta)

	eta := types.NewTypeVar(types.Eta)
	child.SetReturnType(eta)

	bodyType, err := j.infer(child, e.Body)
	if err != nil {
		return nil, diag.Wrap(err, "inferring the body of %s", e)
	}
	if err := unify.UnifyJ(eta, bodyType); err != nil {
		return nil, diag.Wrap(err, "unifying the return type of %s", e)
	}
	return types.Func(beta, bodyType), nil
}

func (j J) inferApp(env *tyenv.Env, e *ast.App) (types.Type, error) {
	fnType, err := j.infer(env, e.Fn)
	if err != nil {
		return nil, diag.Wrap(err, "inferring the function of %s", e)
	}
	argType, err := j.infer(env, e.Arg)
	if err != nil {
		return nil, diag.Wrap(err, "inferring the argument of %s", e)
	}

	pi := types.NewTypeVar(types.Pi)
	if err := unify.UnifyJ(types.Func(argType, pi), fnType); err != nil {
		return nil, diag.Wrap(err, "applying %s to %s", e.Fn, e.Arg)
	}

	if pi.Resolve == nil {
		// The result variable stayed unresolved, which only happens when
		// the function side was itself a bare variable (a divergent
		// value, such as the result of a return). Relabel pi in place to
		// an eta tag so it presents the way a returned bottom type does;
		// this does not touch Resolve, so any structure already holding
		// pi still observes the same (renamed) identity.
		fresh := types.NewTypeVar(types.Eta)
		pi.Greek = fresh.Greek
		pi.Timestamp = fresh.Timestamp
	}
	return pi, nil
}

func (j J) inferLet(env *tyenv.Env, e *ast.Let) (types.Type, error) {
	child := env.Child()
	bindType, err := j.infer(child, e.Bind)
	if err != nil {
		return nil, diag.Wrap(err, "inferring the binding of let %s", e.Name)
	}
	child.Define(e.Name, generalize(child, bindType))

	result, err := j.infer(child, e.Body)
	if err != nil {
		return nil, diag.Wrap(err, "inferring the body of let %s", e.Name)
	}
	return result, nil
}

func (j J) inferLetRec(env *tyenv.Env, e *ast.LetRec) (types.Type, error) {
	child := env.Child()
	gammas := make([]*types.TypeVar, len(e.Decls))
	for i, decl := range e.Decls {
		gamma := types.NewTypeVar(types.Gamma)
		child.DefineMono(decl.Name, gamma)
		child.MarkNonGeneric(gamma)
		gammas[i] = gamma
	}

	for i, decl := range e.Decls {
		t, err := j.infer(child, decl.Expr)
		if err != nil {
			return nil, diag.Wrap(err, "inferring the recursive binding of %s", decl.Name)
		}
		if err := unify.UnifyJ(gammas[i], t); err != nil {
			return nil, diag.Wrap(err, "unifying the recursive binding of %s", decl.Name)
		}
	}

	// The gammas stay marked non-generic while rebinding; once a gamma
	// has resolved to the fixpoint, generalizing its pruned form
	// quantifies the fixpoint's own variables, not the placeholder.
	for i, decl := range e.Decls {
		child.Define(decl.Name, generalize(child, gammas[i]))
	}

	result, err := j.infer(child, e.Body)
	if err != nil {
		return nil, diag.Wrap(err, "inferring the body of let rec")
	}
	return result, nil
}

func (j J) inferIf(env *tyenv.Env, e *ast.If) (types.Type, error) {
	condType, err := j.infer(env, e.Cond)
	if err != nil {
		return nil, diag.Wrap(err, "inferring the condition of %s", e)
	}
	thenType, err := j.infer(env, e.Then)
	if err != nil {
		return nil, diag.Wrap(err, "inferring the then branch of %s", e)
	}
	elseType, err := j.infer(env, e.Else)
	if err != nil {
		return nil, diag.Wrap(err, "inferring the else branch of %s", e)
	}

	if err := unify.UnifyJ(condType, types.Bool()); err != nil {
		return nil, diag.Wrap(err, "unifying the condition of %s", e)
	}
	if err := unify.UnifyJ(thenType, elseType); err != nil {
		return nil, diag.Wrap(err, "unifying the branches of %s", e)
	}
	return thenType, nil
}

func (j J) inferStmt(env *tyenv.Env, e *ast.Stmt) (types.Type, error) {
	if len(e.Exprs) == 0 {
		return nil, diag.New(diag.InvariantViolation, "empty statement list")
	}
	var last types.Type
	for i, sub := range e.Exprs {
		t, err := j.infer(env, sub)
		if err != nil {
			return nil, diag.Wrap(err, "inferring statement %d", i+1)
		}
		last = t
	}
	return last, nil
}

func (j J) inferReturn(env *tyenv.Env, e *ast.Return) (types.Type, error) {
	slot := env.ClosestReturnType()
	if slot == nil {
		return nil, diag.New(diag.ReturnOutsideFunction, "return has no enclosing function")
	}

	var valType types.Type = types.Unit()
	if e.Value != nil {
		t, err := j.infer(env, e.Value)
		if err != nil {
			return nil, diag.Wrap(err, "inferring the returned value")
		}
		valType = t
	}
	if err := unify.UnifyJ(slot, valType); err != nil {
		return nil, diag.Wrap(err, "unifying the returned value")
	}
	return types.NewTypeVar(types.Eta), nil
}
