package infer

import (
	"github.com/chuigda/hmlang/ast"
	"github.com/chuigda/hmlang/diag"
	"github.com/chuigda/hmlang/subst"
	"github.com/chuigda/hmlang/tyenv"
	"github.com/chuigda/hmlang/types"
	"github.com/chuigda/hmlang/unify"
)

// W is the substitution-passing strategy: no TypeVar is ever mutated;
// instead each step returns an extended subst.Substitution, applied at
// the points a type is about to be read (a Var lookup) or merged (a
// unify call, a scheme's final body).
type W struct{}

func (W) Name() string { return "W" }

func (w W) Infer(env *tyenv.Env, expr ast.Expr) (types.Type, error) {
	t, _, err := w.infer(env, subst.Empty(), expr)
	return t, err
}

func (w W) infer(env *tyenv.Env, s subst.Substitution, expr ast.Expr) (types.Type, subst.Substitution, error) {
	switch e := expr.(type) {
	case *ast.LitInt:
		return types.Int(), s, nil
	case *ast.LitBool:
		return types.Bool(), s, nil
	case *ast.LitStr:
		return types.Str(), s, nil
	case *ast.Var:
		scheme, ok := env.Lookup(e.Name)
		if !ok {
			return nil, nil, diag.New(diag.Undefined, "%s", e.Name)
		}
		return s.ApplyToScheme(scheme).Instantiate(), s, nil
	case *ast.Abs:
		return w.inferAbs(env, s, e)
	case *ast.App:
		return w.inferApp(env, s, e)
	case *ast.Let:
		return w.inferLet(env, s, e)
	case *ast.LetRec:
		return w.inferLetRec(env, s, e)
	case *ast.If:
		return w.inferIf(env, s, e)
	case *ast.Stmt:
		return w.inferStmt(env, s, e)
	case *ast.Return:
		return w.inferReturn(env, s, e)
	default:
		return nil, nil, diag.New(diag.InvariantViolation, "unhandled expression node %T", expr)
	}
}

func (w W) inferAbs(env *tyenv.Env, s subst.Substitution, e *ast.Abs) (types.Type, subst.Substitution, error) {
	beta := types.NewTypeVar(types.Beta)
	child := env.Child()
	child.DefineMono(e.Param, beta)
	child.MarkNonGeneric(beta)

	eta := types.NewTypeVar(types.Eta)
	child.SetReturnType(eta)

	bodyType, s1, err := w.infer(child, s, e.Body)
	if err != nil {
		return nil, nil, diag.Wrap(err, "inferring the body of %s", e)
	}
	s2, err := unify.UnifyW(s1, s1.Apply(eta), bodyType)
	if err != nil {
		return nil, nil, diag.Wrap(err, "unifying the return type of %s", e)
	}
	return types.Func(s2.Apply(beta), s2.Apply(bodyType)), s2, nil
}

func (w W) inferApp(env *tyenv.Env, s subst.Substitution, e *ast.App) (types.Type, subst.Substitution, error) {
	fnType, s1, err := w.infer(env, s, e.Fn)
	if err != nil {
		return nil, nil, diag.Wrap(err, "inferring the function of %s", e)
	}
	argType, s2, err := w.infer(env, s1, e.Arg)
	if err != nil {
		return nil, nil, diag.Wrap(err, "inferring the argument of %s", e)
	}

	pi := types.NewTypeVar(types.Pi)
	s3, err := unify.UnifyW(s2, s2.Apply(fnType), types.Func(s2.Apply(argType), pi))
	if err != nil {
		return nil, nil, diag.Wrap(err, "applying %s to %s", e.Fn, e.Arg)
	}

	result := s3.Apply(pi)
	if resultVar, ok := result.(*types.TypeVar); ok && resultVar.Equal(pi) {
		// pi stayed unbound, which only happens when the function side
		// was a bare divergent variable. W has no mutable identity to
		// relabel in place the way J does; it instead binds pi to a
		// fresh eta-tagged variable, which produces the same printed
		// output through a different mechanism.
		fresh := types.NewTypeVar(types.Eta)
		s3 = subst.Compose(subst.Singleton(pi, fresh), s3)
		result = fresh
	}
	return result, s3, nil
}

func (w W) inferLet(env *tyenv.Env, s subst.Substitution, e *ast.Let) (types.Type, subst.Substitution, error) {
	child := env.Child()
	bindType, s1, err := w.infer(child, s, e.Bind)
	if err != nil {
		return nil, nil, diag.Wrap(err, "inferring the binding of let %s", e.Name)
	}
	child.Define(e.Name, generalize(child, s1.Apply(bindType)))

	result, s2, err := w.infer(child, s1, e.Body)
	if err != nil {
		return nil, nil, diag.Wrap(err, "inferring the body of let %s", e.Name)
	}
	return result, s2, nil
}

func (w W) inferLetRec(env *tyenv.Env, s subst.Substitution, e *ast.LetRec) (types.Type, subst.Substitution, error) {
	child := env.Child()
	gammas := make([]*types.TypeVar, len(e.Decls))
	for i, decl := range e.Decls {
		gamma := types.NewTypeVar(types.Gamma)
		child.DefineMono(decl.Name, gamma)
		child.MarkNonGeneric(gamma)
		gammas[i] = gamma
	}

	cur := s
	for i, decl := range e.Decls {
		t, s1, err := w.infer(child, cur, decl.Expr)
		if err != nil {
			return nil, nil, diag.Wrap(err, "inferring the recursive binding of %s", decl.Name)
		}
		s2, err := unify.UnifyW(s1, s1.Apply(gammas[i]), t)
		if err != nil {
			return nil, nil, diag.Wrap(err, "unifying the recursive binding of %s", decl.Name)
		}
		cur = s2
	}

	for i, decl := range e.Decls {
		child.Define(decl.Name, generalize(child, cur.Apply(gammas[i])))
	}

	result, s3, err := w.infer(child, cur, e.Body)
	if err != nil {
		return nil, nil, diag.Wrap(err, "inferring the body of let rec")
	}
	return result, s3, nil
}

func (w W) inferIf(env *tyenv.Env, s subst.Substitution, e *ast.If) (types.Type, subst.Substitution, error) {
	condType, s1, err := w.infer(env, s, e.Cond)
	if err != nil {
		return nil, nil, diag.Wrap(err, "inferring the condition of %s", e)
	}
	thenType, s2, err := w.infer(env, s1, e.Then)
	if err != nil {
		return nil, nil, diag.Wrap(err, "inferring the then branch of %s", e)
	}
	elseType, s3, err := w.infer(env, s2, e.Else)
	if err != nil {
		return nil, nil, diag.Wrap(err, "inferring the else branch of %s", e)
	}

	s4, err := unify.UnifyW(s3, s3.Apply(condType), types.Bool())
	if err != nil {
		return nil, nil, diag.Wrap(err, "unifying the condition of %s", e)
	}
	s5, err := unify.UnifyW(s4, s4.Apply(thenType), elseType)
	if err != nil {
		return nil, nil, diag.Wrap(err, "unifying the branches of %s", e)
	}
	return s5.Apply(thenType), s5, nil
}

func (w W) inferStmt(env *tyenv.Env, s subst.Substitution, e *ast.Stmt) (types.Type, subst.Substitution, error) {
	if len(e.Exprs) == 0 {
		return nil, nil, diag.New(diag.InvariantViolation, "empty statement list")
	}
	cur := s
	var last types.Type
	for i, sub := range e.Exprs {
		t, s1, err := w.infer(env, cur, sub)
		if err != nil {
			return nil, nil, diag.Wrap(err, "inferring statement %d", i+1)
		}
		last, cur = t, s1
	}
	return last, cur, nil
}

func (w W) inferReturn(env *tyenv.Env, s subst.Substitution, e *ast.Return) (types.Type, subst.Substitution, error) {
	slot := env.ClosestReturnType()
	if slot == nil {
		return nil, nil, diag.New(diag.ReturnOutsideFunction, "return has no enclosing function")
	}

	var valType types.Type = types.Unit()
	cur := s
	if e.Value != nil {
		t, s1, err := w.infer(env, s, e.Value)
		if err != nil {
			return nil, nil, diag.Wrap(err, "inferring the returned value")
		}
		valType, cur = t, s1
	}
	s2, err := unify.UnifyW(cur, cur.Apply(slot), valType)
	if err != nil {
		return nil, nil, diag.Wrap(err, "unifying the returned value")
	}
	return types.NewTypeVar(types.Eta), s2, nil
}
