// Package value implements the runtime substrate: the dynamically-typed
// Value union and the Container/Scope/Stack environment chain, using a
// one-struct-per-variant Value interface.
package value

import (
	"fmt"
	"strconv"
	"strings"
)

// Value is implemented by every runtime value variant.
type Value interface {
	// TypeName is the string returned by the reference type() built-in
	//: one of null, number, string, boolean,
	// list, tuple, object, function.
	TypeName() string
	String() string
}

// Null is the single null value.
type Null struct{}

func (Null) TypeName() string { return "null" }
func (Null) String() string   { return "null" }

// Number is the language's single numeric type (double precision).
type Number float64

func (Number) TypeName() string { return "number" }
func (n Number) String() string {
	return strconv.FormatFloat(float64(n), 'g', -1, 64)
}

// String is a text value.
type String string

func (String) TypeName() string { return "string" }
func (s String) String() string { return string(s) }

// Boolean is kept distinct from Number.
type Boolean bool

func (Boolean) TypeName() string { return "boolean" }
func (b Boolean) String() string {
	if b {
		return "true"
	}
	return "false"
}

// List is an ordered, mutable sequence of Containers.
type List struct {
	Elements []*Container
}

func (*List) TypeName() string { return "list" }
func (l *List) String() string {
	parts := make([]string, len(l.Elements))
	for i, c := range l.Elements {
		parts[i] = c.Value.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Tuple is an ordered, fixed-size sequence of Containers.
type Tuple struct {
	Elements []*Container
}

func (*Tuple) TypeName() string { return "tuple" }
func (t *Tuple) String() string {
	parts := make([]string, len(t.Elements))
	for i, c := range t.Elements {
		parts[i] = c.Value.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// ObjectKey is a string-or-number key into an Object, encoded
// as a discriminated pair so that the number 2 and the string "2" never
// collide.
type ObjectKey struct {
	IsNumber bool
	Str      string
	Num      float64
}

func StringKey(s string) ObjectKey  { return ObjectKey{Str: s} }
func NumberKey(n float64) ObjectKey { return ObjectKey{IsNumber: true, Num: n} }

func (k ObjectKey) String() string {
	if k.IsNumber {
		return Number(k.Num).String()
	}
	return k.Str
}

// Object is a map from string-or-number key to Container, preserving
// insertion order for deterministic iteration/printing.
type Object struct {
	order []ObjectKey
	byKey map[ObjectKey]*Container
}

func NewObject() *Object {
	return &Object{byKey: make(map[ObjectKey]*Container)}
}

func (o *Object) TypeName() string { return "object" }

// Set installs or overwrites the Container at key, preserving the original
// insertion position on overwrite.
func (o *Object) Set(key ObjectKey, c *Container) {
	if _, exists := o.byKey[key]; !exists {
		o.order = append(o.order, key)
	}
	o.byKey[key] = c
}

// Get returns the Container at key, and whether it was present.
func (o *Object) Get(key ObjectKey) (*Container, bool) {
	c, ok := o.byKey[key]
	return c, ok
}

func (o *Object) String() string {
	parts := make([]string, len(o.order))
	for i, k := range o.order {
		parts[i] = fmt.Sprintf("%s: %s", k, o.byKey[k].Value.String())
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// Callable is the uniform shape every Function value invokes: host built-ins
// and user-defined functions alike satisfy it.
type Callable func(args []*Container) (*Container, error)

// Function is a first-class callable plus, for user-defined functions, its
// captured closure Stack").
type Function struct {
	Name    string
	Arity   int  // declared parameter count, or a host built-in's exact argument count
	Call    Callable
	Closure *Stack // nil for host built-ins that close over nothing
}

func (*Function) TypeName() string { return "function" }
func (f *Function) String() string {
	if f.Name == "" {
		return "<function>"
	}
	return fmt.Sprintf("<function %s>", f.Name)
}

// Truthy implements the truthiness test used by if/while/and/or: null and false are falsy, zero and the empty string are falsy,
// empty list/tuple/object are falsy, everything else is truthy.
func Truthy(v Value) bool {
	switch x := v.(type) {
	case Null:
		return false
	case Boolean:
		return bool(x)
	case Number:
		return x != 0
	case String:
		return x != ""
	case *List:
		return len(x.Elements) > 0
	case *Tuple:
		return len(x.Elements) > 0
	case *Object:
		return len(x.order) > 0
	default:
		return true
	}
}

// Equal implements structural equality: same tag required, recursive
// structural comparison for lists/tuples, reference identity for objects
// and functions (two distinct objects are never equal by contents alone).
func Equal(a, b Value) bool {
	switch x := a.(type) {
	case Null:
		_, ok := b.(Null)
		return ok
	case Boolean:
		y, ok := b.(Boolean)
		return ok && x == y
	case Number:
		y, ok := b.(Number)
		return ok && x == y
	case String:
		y, ok := b.(String)
		return ok && x == y
	case *List:
		y, ok := b.(*List)
		if !ok || len(x.Elements) != len(y.Elements) {
			return false
		}
		for i := range x.Elements {
			if !Equal(x.Elements[i].Value, y.Elements[i].Value) {
				return false
			}
		}
		return true
	case *Tuple:
		y, ok := b.(*Tuple)
		if !ok || len(x.Elements) != len(y.Elements) {
			return false
		}
		for i := range x.Elements {
			if !Equal(x.Elements[i].Value, y.Elements[i].Value) {
				return false
			}
		}
		return true
	case *Object:
		y, ok := b.(*Object)
		return ok && x == y
	case *Function:
		y, ok := b.(*Function)
		return ok && x == y
	default:
		return false
	}
}
