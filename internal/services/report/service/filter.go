package service

import (
	"fmt"

	perr "confmatrix/internal/platform/errors"
	"confmatrix/internal/services/report/domain"

	"github.com/google/cel-go/cel"
	"github.com/ohler55/ojg/jp"
)

// predicate reports whether an experiment passes one filter
// an error means the expression could not be evaluated for that experiment
type predicate func(domain.Experiment) (bool, error)

func newEnv() (*cel.Env, error) {
	return cel.NewEnv(
		cel.Variable("exp", cel.MapType(cel.StringType, cel.DynType)),
	)
}

// compile turns every filter into a predicate, failing on the first bad expression
func compile(env *cel.Env, filters []domain.Filter) ([]predicate, error) {
	out := make([]predicate, 0, len(filters))
	for i, f := range filters {
		field := fmt.Sprintf("filters[%d]", i)
		if f.Expr == "" {
			x, err := parsePath(field+".key", f.Key)
			if err != nil {
				return nil, err
			}
			out = append(out, keyPredicate(x, f.Value))
			continue
		}
		p, err := exprPredicate(env, f.Expr)
		if err != nil {
			return nil, perr.WithField(err, field+".expr")
		}
		out = append(out, p)
	}
	return out, nil
}

// keyPredicate passes when any value x selects equals want
func keyPredicate(x jp.Expr, want any) predicate {
	return func(e domain.Experiment) (bool, error) {
		for _, got := range x.Get(e) {
			if equal(got, want) {
				return true, nil
			}
		}
		return false, nil
	}
}

func exprPredicate(env *cel.Env, expr string) (predicate, error) {
	ast, iss := env.Compile(expr)
	if iss != nil && iss.Err() != nil {
		return nil, perr.Wrap(iss.Err(), perr.ErrorCodeInvalidArgument, "compile filter expression")
	}
	if out := ast.OutputType(); !out.IsExactType(cel.BoolType) && !out.IsExactType(cel.DynType) {
		return nil, perr.InvalidArgf("filter expression must be a bool, got %s", out)
	}
	prg, err := env.Program(ast)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeInvalidArgument, "build filter program")
	}
	return func(e domain.Experiment) (bool, error) {
		val, _, err := prg.Eval(map[string]any{"exp": e})
		if err != nil {
			return false, err
		}
		b, ok := val.Value().(bool)
		if !ok {
			return false, fmt.Errorf("filter expression returned %T", val.Value())
		}
		return b, nil
	}, nil
}
