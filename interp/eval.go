package interp

import (
	"context"
	"fmt"
	"math"

	"github.com/isdmx/snipbox/dataset"
	"github.com/isdmx/snipbox/lang"
)

// Evaluator walks a parsed program and produces values. Every node it
// visits counts against a step quota, and the context is checked at the
// same points, so a runaway snippet faults instead of wedging the host.
type Evaluator struct {
	env      *Environment
	modules  map[string]Value
	maxSteps int
	steps    int
}

// NewEvaluator creates an evaluator over env. The modules table backs
// `use` statements; maxSteps caps the number of nodes evaluated in one
// Run (0 disables the quota).
func NewEvaluator(env *Environment, modules map[string]Value, maxSteps int) *Evaluator {
	return &Evaluator{env: env, modules: modules, maxSteps: maxSteps}
}

// Run evaluates the program. The returned value is the value of the
// final top-level statement when, and only when, that statement is a
// bare expression; the bool reports whether such a value exists.
func (ev *Evaluator) Run(ctx context.Context, prog *lang.Program) (Value, bool, error) {
	var (
		last      Value
		hasResult bool
	)
	for _, stmt := range prog.Statements {
		v, isExpr, err := ev.evalStatement(ctx, stmt)
		if err != nil {
			return nil, false, err
		}
		last, hasResult = v, isExpr
	}
	if !hasResult {
		return nil, false, nil
	}
	return last, true, nil
}

// step charges one unit against the quota and observes cancellation.
func (ev *Evaluator) step(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	ev.steps++
	if ev.maxSteps > 0 && ev.steps > ev.maxSteps {
		return fmt.Errorf("step limit exceeded (%d)", ev.maxSteps)
	}
	return nil
}

func (ev *Evaluator) evalStatement(ctx context.Context, stmt lang.Statement) (Value, bool, error) {
	if err := ev.step(ctx); err != nil {
		return nil, false, err
	}
	switch s := stmt.(type) {
	case *lang.UseStatement:
		mod, ok := ev.modules[s.Module]
		if !ok {
			return nil, false, fmt.Errorf("unknown module %q", s.Module)
		}
		ev.env.Set(s.Module, mod)
		return nil, false, nil
	case *lang.AssignStatement:
		v, err := ev.evalExpr(ctx, s.Value)
		if err != nil {
			return nil, false, err
		}
		ev.env.Set(s.Name, v)
		return nil, false, nil
	case *lang.ExprStatement:
		v, err := ev.evalExpr(ctx, s.Expr)
		if err != nil {
			return nil, false, err
		}
		return v, true, nil
	default:
		return nil, false, fmt.Errorf("unsupported statement %T", stmt)
	}
}

func (ev *Evaluator) evalExpr(ctx context.Context, expr lang.Expr) (Value, error) {
	if err := ev.step(ctx); err != nil {
		return nil, err
	}
	switch e := expr.(type) {
	case *lang.IntLit:
		return Int(e.Value), nil
	case *lang.FloatLit:
		return Float(e.Value), nil
	case *lang.StringLit:
		return Str(e.Value), nil
	case *lang.BoolLit:
		return Bool(e.Value), nil
	case *lang.NilLit:
		return Null, nil
	case *lang.ListLit:
		elems := make([]Value, len(e.Elems))
		for i, el := range e.Elems {
			v, err := ev.evalExpr(ctx, el)
			if err != nil {
				return nil, err
			}
			elems[i] = v
		}
		return &List{Elems: elems}, nil
	case *lang.Ident:
		v, ok := ev.env.Get(e.Name)
		if !ok {
			return nil, fmt.Errorf("unknown name %q", e.Name)
		}
		return v, nil
	case *lang.AttrExpr:
		target, err := ev.evalExpr(ctx, e.Target)
		if err != nil {
			return nil, err
		}
		return attrValue(target, e.Name)
	case *lang.IndexExpr:
		return ev.evalIndex(ctx, e)
	case *lang.CallExpr:
		return ev.evalCall(ctx, e)
	case *lang.UnaryExpr:
		return ev.evalUnary(ctx, e)
	case *lang.BinaryExpr:
		if e.Op == "and" || e.Op == "or" {
			return ev.evalLogical(ctx, e)
		}
		left, err := ev.evalExpr(ctx, e.Left)
		if err != nil {
			return nil, err
		}
		right, err := ev.evalExpr(ctx, e.Right)
		if err != nil {
			return nil, err
		}
		return binaryOp(e.Op, left, right)
	default:
		return nil, fmt.Errorf("unsupported expression %T", expr)
	}
}

func (ev *Evaluator) evalIndex(ctx context.Context, e *lang.IndexExpr) (Value, error) {
	target, err := ev.evalExpr(ctx, e.Target)
	if err != nil {
		return nil, err
	}
	index, err := ev.evalExpr(ctx, e.Index)
	if err != nil {
		return nil, err
	}
	switch t := target.(type) {
	case *List:
		i, ok := index.(Int)
		if !ok {
			return nil, fmt.Errorf("list index is a %s, want int", index.Type())
		}
		if i < 0 || int(i) >= len(t.Elems) {
			return nil, fmt.Errorf("list index %d out of range (len %d)", i, len(t.Elems))
		}
		return t.Elems[i], nil
	case *Map:
		k, ok := index.(Str)
		if !ok {
			return nil, fmt.Errorf("map key is a %s, want string", index.Type())
		}
		v, ok := t.Entries[string(k)]
		if !ok {
			return nil, fmt.Errorf("map has no key %q", string(k))
		}
		return v, nil
	case *SeriesValue:
		i, ok := index.(Int)
		if !ok {
			return nil, fmt.Errorf("series index is a %s, want int", index.Type())
		}
		x, err := t.Series.At(int(i))
		if err != nil {
			return nil, err
		}
		return Float(x), nil
	default:
		return nil, fmt.Errorf("cannot index a %s", target.Type())
	}
}

func (ev *Evaluator) evalCall(ctx context.Context, e *lang.CallExpr) (Value, error) {
	callee, err := ev.evalExpr(ctx, e.Callee)
	if err != nil {
		return nil, err
	}
	fn, ok := callee.(*Builtin)
	if !ok {
		return nil, fmt.Errorf("%s is not callable", callee.Type())
	}
	args := make([]Value, len(e.Args))
	for i, a := range e.Args {
		v, err := ev.evalExpr(ctx, a)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	return fn.Fn(args)
}

func (ev *Evaluator) evalUnary(ctx context.Context, e *lang.UnaryExpr) (Value, error) {
	operand, err := ev.evalExpr(ctx, e.Operand)
	if err != nil {
		return nil, err
	}
	switch e.Op {
	case "-":
		switch v := operand.(type) {
		case Int:
			return -v, nil
		case Float:
			return -v, nil
		case *SeriesValue:
			return &SeriesValue{Series: v.Series.MulScalar(-1)}, nil
		default:
			return nil, fmt.Errorf("cannot negate a %s", operand.Type())
		}
	case "not":
		t, err := truthy(operand)
		if err != nil {
			return nil, err
		}
		return Bool(!t), nil
	default:
		return nil, fmt.Errorf("unsupported unary operator %q", e.Op)
	}
}

// evalLogical short-circuits: the right operand is only evaluated when
// the left side does not decide the outcome.
func (ev *Evaluator) evalLogical(ctx context.Context, e *lang.BinaryExpr) (Value, error) {
	left, err := ev.evalExpr(ctx, e.Left)
	if err != nil {
		return nil, err
	}
	lt, err := truthy(left)
	if err != nil {
		return nil, err
	}
	if e.Op == "and" && !lt {
		return Bool(false), nil
	}
	if e.Op == "or" && lt {
		return Bool(true), nil
	}
	right, err := ev.evalExpr(ctx, e.Right)
	if err != nil {
		return nil, err
	}
	rt, err := truthy(right)
	if err != nil {
		return nil, err
	}
	return Bool(rt), nil
}

func binaryOp(op string, left, right Value) (Value, error) {
	switch op {
	case "==":
		return Bool(valuesEqual(left, right)), nil
	case "!=":
		return Bool(!valuesEqual(left, right)), nil
	case "<", "<=", ">", ">=":
		return compareValues(op, left, right)
	case "+", "-", "*", "/", "%":
		return arithmetic(op, left, right)
	default:
		return nil, fmt.Errorf("unsupported operator %q", op)
	}
}

func compareValues(op string, left, right Value) (Value, error) {
	if lf, ok := numericValue(left); ok {
		rf, ok := numericValue(right)
		if !ok {
			return nil, operandError(op, left, right)
		}
		return orderResult(op, compareFloats(lf, rf)), nil
	}
	if ls, ok := left.(Str); ok {
		rs, ok := right.(Str)
		if !ok {
			return nil, operandError(op, left, right)
		}
		switch {
		case ls < rs:
			return orderResult(op, -1), nil
		case ls > rs:
			return orderResult(op, 1), nil
		default:
			return orderResult(op, 0), nil
		}
	}
	return nil, operandError(op, left, right)
}

func compareFloats(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func orderResult(op string, cmp int) Value {
	switch op {
	case "<":
		return Bool(cmp < 0)
	case "<=":
		return Bool(cmp <= 0)
	case ">":
		return Bool(cmp > 0)
	default:
		return Bool(cmp >= 0)
	}
}

func arithmetic(op string, left, right Value) (Value, error) {
	if ls, ok := left.(*SeriesValue); ok {
		if rs, ok := right.(*SeriesValue); ok {
			return seriesSeriesOp(op, ls, rs)
		}
		if rf, ok := numericValue(right); ok {
			return seriesScalarOp(op, ls, rf)
		}
		return nil, operandError(op, left, right)
	}
	if lf, lok := numericValue(left); lok {
		if rs, ok := right.(*SeriesValue); ok {
			return scalarSeriesOp(op, lf, rs)
		}
		if rf, rok := numericValue(right); rok {
			return numericOp(op, left, right, lf, rf)
		}
		return nil, operandError(op, left, right)
	}
	if ls, ok := left.(Str); ok && op == "+" {
		if rs, ok := right.(Str); ok {
			return ls + rs, nil
		}
		return nil, operandError(op, left, right)
	}
	if ll, ok := left.(*List); ok && op == "+" {
		if rl, ok := right.(*List); ok {
			elems := make([]Value, 0, len(ll.Elems)+len(rl.Elems))
			elems = append(elems, ll.Elems...)
			elems = append(elems, rl.Elems...)
			return &List{Elems: elems}, nil
		}
		return nil, operandError(op, left, right)
	}
	return nil, operandError(op, left, right)
}

// numericOp keeps int results for int operands and promotes to float
// when either side is a float. Integer division truncates toward zero.
func numericOp(op string, left, right Value, lf, rf float64) (Value, error) {
	li, lInt := left.(Int)
	ri, rInt := right.(Int)
	if lInt && rInt {
		switch op {
		case "+":
			return li + ri, nil
		case "-":
			return li - ri, nil
		case "*":
			return li * ri, nil
		case "/":
			if ri == 0 {
				return nil, fmt.Errorf("division by zero")
			}
			return li / ri, nil
		default: // %
			if ri == 0 {
				return nil, fmt.Errorf("modulo by zero")
			}
			return li % ri, nil
		}
	}
	switch op {
	case "+":
		return Float(lf + rf), nil
	case "-":
		return Float(lf - rf), nil
	case "*":
		return Float(lf * rf), nil
	case "/":
		if rf == 0 {
			return nil, fmt.Errorf("division by zero")
		}
		return Float(lf / rf), nil
	default: // %
		if rf == 0 {
			return nil, fmt.Errorf("modulo by zero")
		}
		return Float(math.Mod(lf, rf)), nil
	}
}

func seriesSeriesOp(op string, left, right *SeriesValue) (Value, error) {
	var (
		s   *dataset.Series
		err error
	)
	switch op {
	case "+":
		s, err = left.Series.Add(right.Series)
	case "-":
		s, err = left.Series.Sub(right.Series)
	case "*":
		s, err = left.Series.Mul(right.Series)
	case "/":
		s, err = left.Series.Div(right.Series)
	default:
		return nil, fmt.Errorf("operator %q is not defined for series", op)
	}
	if err != nil {
		return nil, err
	}
	return &SeriesValue{Series: s}, nil
}

func seriesScalarOp(op string, left *SeriesValue, x float64) (Value, error) {
	switch op {
	case "+":
		return &SeriesValue{Series: left.Series.AddScalar(x)}, nil
	case "-":
		return &SeriesValue{Series: left.Series.SubScalar(x)}, nil
	case "*":
		return &SeriesValue{Series: left.Series.MulScalar(x)}, nil
	case "/":
		s, err := left.Series.DivScalar(x)
		if err != nil {
			return nil, err
		}
		return &SeriesValue{Series: s}, nil
	default:
		return nil, fmt.Errorf("operator %q is not defined for series", op)
	}
}

func scalarSeriesOp(op string, x float64, right *SeriesValue) (Value, error) {
	switch op {
	case "+":
		return &SeriesValue{Series: right.Series.AddScalar(x)}, nil
	case "*":
		return &SeriesValue{Series: right.Series.MulScalar(x)}, nil
	case "-":
		return &SeriesValue{Series: right.Series.MulScalar(-1).AddScalar(x)}, nil
	case "/":
		values := right.Series.Values()
		for i, v := range values {
			if v == 0 {
				return nil, fmt.Errorf("division by zero at index %d", i)
			}
			values[i] = x / v
		}
		return newSeriesValue(right.Series.Name(), values), nil
	default:
		return nil, fmt.Errorf("operator %q is not defined for series", op)
	}
}

func attrValue(target Value, name string) (Value, error) {
	switch t := target.(type) {
	case *Module:
		v, ok := t.Attrs[name]
		if !ok {
			return nil, fmt.Errorf("module %s has no attribute %q", t.Name, name)
		}
		return v, nil
	case *Map:
		v, ok := t.Entries[name]
		if !ok {
			return nil, fmt.Errorf("map has no key %q", name)
		}
		return v, nil
	case *FrameValue:
		m, ok := frameMethod(t, name)
		if !ok {
			return nil, fmt.Errorf("frame has no method %q", name)
		}
		return m, nil
	case *SeriesValue:
		m, ok := seriesMethod(t, name)
		if !ok {
			return nil, fmt.Errorf("series has no method %q", name)
		}
		return m, nil
	default:
		return nil, fmt.Errorf("%s has no attributes", target.Type())
	}
}

func operandError(op string, left, right Value) error {
	return fmt.Errorf("cannot apply %q to %s and %s", op, left.Type(), right.Type())
}
