package evaluator

import (
	"math"

	"github.com/titivuk/simple-lang/object"
	"github.com/titivuk/simple-lang/token"
)

func evalUnary(op token.Token, right object.Object) object.Object {
	switch right := right.(type) {
	case *object.Integer:
		if op.Type != token.MINUS {
			return right
		}
		if right.Value == math.MinInt64 {
			return &object.Float{Value: -float64(right.Value)}
		}
		return &object.Integer{Value: -right.Value}
	case *object.Float:
		if op.Type == token.MINUS {
			return &object.Float{Value: -right.Value}
		}
		return right
	default:
		return newError(op, object.TypeMismatch, "unknown operator: %s%s", op.Type, right.Type())
	}
}

func evalLogicalUnary(op token.Token, right object.Object) object.Object {
	b, ok := right.(*object.Boolean)
	if !ok {
		return newError(op, object.TypeMismatch, "unknown operator: not %s", right.Type())
	}

	return nativeBoolToBooleanObject(!b.Value)
}

func evalBinary(op token.Token, left, right object.Object) object.Object {
	l, lok := left.(*object.Integer)
	r, rok := right.(*object.Integer)
	if lok && rok {
		return evalIntegerBinary(op, l.Value, r.Value)
	}

	lf, lok := toFloat(left)
	rf, rok := toFloat(right)
	if !lok || !rok {
		return newError(op, object.TypeMismatch, "%s %s %s", left.Type(), op.Type, right.Type())
	}

	return evalFloatBinary(op, lf, rf)
}

// integers stay integers except for division, negative powers and
// results that do not fit in an int64, which widen to float
func evalIntegerBinary(op token.Token, left, right int64) object.Object {
	var (
		result int64
		ok     bool
	)

	switch op.Type {
	case token.PLUS:
		result, ok = addInts(left, right)
	case token.MINUS:
		result, ok = subInts(left, right)
	case token.MUL:
		result, ok = mulInts(left, right)
	case token.POW:
		if right >= 0 {
			result, ok = powInts(left, right)
		}
	}
	if ok {
		return &object.Integer{Value: result}
	}

	return evalFloatBinary(op, float64(left), float64(right))
}

func evalFloatBinary(op token.Token, left, right float64) object.Object {
	switch op.Type {
	case token.PLUS:
		return &object.Float{Value: left + right}
	case token.MINUS:
		return &object.Float{Value: left - right}
	case token.MUL:
		return &object.Float{Value: left * right}
	case token.DIV:
		if right == 0 {
			return newError(op, object.DivisionByZero, "%v / 0", left)
		}
		return &object.Float{Value: left / right}
	case token.POW:
		if left == 0 && right < 0 {
			return newError(op, object.DivisionByZero, "0 ^ %v", right)
		}
		return &object.Float{Value: math.Pow(left, right)}
	default:
		return newError(op, object.TypeMismatch, "unknown operator: %s", op.Type)
	}
}

func addInts(a, b int64) (int64, bool) {
	c := a + b
	return c, (c > a) == (b > 0)
}

func subInts(a, b int64) (int64, bool) {
	c := a - b
	return c, (c < a) == (b > 0)
}

func mulInts(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	if (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
		return 0, false
	}

	c := a * b
	return c, c/b == a
}

// exponentiation by squaring, exp >= 0
func powInts(base, exp int64) (int64, bool) {
	result := int64(1)
	for {
		var ok bool
		if exp&1 == 1 {
			if result, ok = mulInts(result, base); !ok {
				return 0, false
			}
		}

		exp >>= 1
		if exp == 0 {
			return result, true
		}

		// the result still has base as a factor
		if base, ok = mulInts(base, base); !ok {
			return 0, false
		}
	}
}

func evalLogicalBinary(op token.Token, left, right object.Object) object.Object {
	l, lok := left.(*object.Boolean)
	r, rok := right.(*object.Boolean)
	if !lok || !rok {
		return newError(op, object.TypeMismatch, "%s %s %s", left.Type(), op.Text, right.Type())
	}

	if op.Type == token.AND {
		return nativeBoolToBooleanObject(l.Value && r.Value)
	}
	return nativeBoolToBooleanObject(l.Value || r.Value)
}

// evalComparison orders numbers and strings. `=` accepts any two values
// and is false when their kinds differ.
func evalComparison(op token.Token, left, right object.Object) object.Object {
	if op.Type == token.EQUAL {
		return nativeBoolToBooleanObject(object.Equal(left, right))
	}

	if l, ok := left.(*object.String); ok {
		if r, ok := right.(*object.String); ok {
			return compare(op, cmpStrings(l.Value, r.Value))
		}
	}

	if l, ok := left.(*object.Integer); ok {
		if r, ok := right.(*object.Integer); ok {
			return compare(op, cmpInts(l.Value, r.Value))
		}
	}

	lf, lok := toFloat(left)
	rf, rok := toFloat(right)
	if !lok || !rok {
		return newError(op, object.TypeMismatch, "%s %s %s", left.Type(), op.Type, right.Type())
	}

	if math.IsNaN(lf) || math.IsNaN(rf) {
		return FALSE
	}
	return compare(op, cmpFloats(lf, rf))
}

// compare maps a three-way result c (-1, 0, 1) onto op
func compare(op token.Token, c int) object.Object {
	switch op.Type {
	case token.LT:
		return nativeBoolToBooleanObject(c < 0)
	case token.LE:
		return nativeBoolToBooleanObject(c <= 0)
	case token.GT:
		return nativeBoolToBooleanObject(c > 0)
	case token.GE:
		return nativeBoolToBooleanObject(c >= 0)
	default:
		return newError(op, object.TypeMismatch, "unknown operator: %s", op.Type)
	}
}

func cmpInts(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func cmpFloats(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func cmpStrings(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func toFloat(obj object.Object) (float64, bool) {
	switch obj := obj.(type) {
	case *object.Integer:
		return float64(obj.Value), true
	case *object.Float:
		return obj.Value, true
	}
	return 0, false
}
