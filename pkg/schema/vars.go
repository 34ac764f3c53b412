package schema

import (
	"fmt"
	"math"

	"github.com/go-drift/strata/pkg/core"
)

// VarType is the declared type of a schema variable.
type VarType string

const (
	TypeInt    VarType = "int"
	TypeFloat  VarType = "float"
	TypeString VarType = "string"
	TypeBool   VarType = "bool"
)

// Valid reports whether t is a known type.
func (t VarType) Valid() bool {
	switch t {
	case TypeInt, TypeFloat, TypeString, TypeBool:
		return true
	}
	return false
}

// Value is the set of Go types a variable can hold.
type Value interface {
	int | float64 | string | bool
}

// coerce converts v to the Go type of t. A nil v yields the zero value.
// Integral floats are accepted for int, and ints for float, since YAML does
// not distinguish them reliably.
func coerce(t VarType, v any) (any, error) {
	switch t {
	case TypeInt:
		switch n := v.(type) {
		case nil:
			return 0, nil
		case int:
			return n, nil
		case int64:
			return int(n), nil
		case float64:
			if n == math.Trunc(n) && !math.IsInf(n, 0) {
				return int(n), nil
			}
		}
	case TypeFloat:
		switch n := v.(type) {
		case nil:
			return 0.0, nil
		case float64:
			return n, nil
		case int:
			return float64(n), nil
		case int64:
			return float64(n), nil
		}
	case TypeString:
		switch s := v.(type) {
		case nil:
			return "", nil
		case string:
			return s, nil
		}
	case TypeBool:
		switch b := v.(type) {
		case nil:
			return false, nil
		case bool:
			return b, nil
		}
	default:
		return nil, fmt.Errorf("unknown type %q", t)
	}
	return nil, fmt.Errorf("%v (%T) is not a valid %s", v, v, t)
}

// variable is a typed cell seen through its declared type.
type variable interface {
	typ() VarType
	// consume reports and clears the dirty flag.
	consume() bool
	get() any
	set(v any) error
}

type cell[T Value] struct {
	*core.Updateable[T]
	t VarType
}

func newVariable(v Var) variable {
	init, err := coerce(v.Type, v.Init)
	if err != nil {
		panic(fmt.Sprintf("schema: unvalidated variable: %v", err))
	}
	switch v.Type {
	case TypeInt:
		return cell[int]{core.NewUpdateable(init.(int)), v.Type}
	case TypeFloat:
		return cell[float64]{core.NewUpdateable(init.(float64)), v.Type}
	case TypeBool:
		return cell[bool]{core.NewUpdateable(init.(bool)), v.Type}
	default:
		return cell[string]{core.NewUpdateable(init.(string)), v.Type}
	}
}

func (c cell[T]) typ() VarType { return c.t }
func (c cell[T]) consume() bool { return c.IsUpdated() }
func (c cell[T]) get() any { return c.Value() }

func (c cell[T]) set(v any) error {
	x, err := coerce(c.t, v)
	if err != nil {
		return err
	}
	c.SetValue(x.(T))
	return nil
}

// VarOf returns the typed cell of an instance variable. It fails when the
// variable is not declared or T does not match its type.
func VarOf[T Value](inst *Instance, name string) (*core.Updateable[T], error) {
	v, ok := inst.vars[name]
	if !ok {
		return nil, fmt.Errorf("schema %s: unknown variable %q", inst.schema.Name(), name)
	}
	c, ok := v.(cell[T])
	if !ok {
		var zero T
		return nil, fmt.Errorf("schema %s: variable %q is %s, not %T", inst.schema.Name(), name, v.typ(), zero)
	}
	return c.Updateable, nil
}

func formatValue(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return fmt.Sprintf("%g", x)
	default:
		return fmt.Sprint(x)
	}
}
