package value

import "testing"

func TestContainerCapabilities(t *testing.T) {
	readable := NewContainer("x", Number(1), Readable)
	if _, err := readable.Read(); err != nil {
		t.Fatalf("readable container should be readable: %v", err)
	}
	if err := readable.Write(Number(2)); err == nil {
		t.Fatalf("readable container should not be writeable")
	}

	writeable := NewContainer("y", Null{}, Writeable)
	if err := writeable.Write(Number(3)); err != nil {
		t.Fatalf("writeable container should be writeable: %v", err)
	}
	if _, err := writeable.Read(); err == nil {
		t.Fatalf("writeable container should not be readable")
	}

	transform := NewContainer("z", Number(1), Transform)
	if _, err := transform.Read(); err != nil {
		t.Fatalf("transform container should be readable: %v", err)
	}
	if err := transform.Write(Number(2)); err != nil {
		t.Fatalf("transform container should be writeable: %v", err)
	}
	if err := transform.RequireTransform(); err != nil {
		t.Fatalf("transform container should satisfy RequireTransform: %v", err)
	}
	if err := readable.RequireTransform(); err == nil {
		t.Fatalf("readable container should not satisfy RequireTransform")
	}
}

func TestScopeRejectsDuplicateNames(t *testing.T) {
	s := NewScope()
	if err := s.Add(NewContainer("x", Number(1), Transform)); err != nil {
		t.Fatalf("first add: %v", err)
	}
	if err := s.Add(NewContainer("x", Number(2), Transform)); err == nil {
		t.Fatalf("expected duplicate-name error")
	}
}

func TestStackLookupInnermostFirst(t *testing.T) {
	s := NewStack()
	s.Push()
	_ = s.AddContainer(NewContainer("x", Number(1), Transform))
	s.Push()
	_ = s.AddContainer(NewContainer("x", Number(2), Transform))

	c, ok := s.Lookup("x")
	if !ok {
		t.Fatalf("expected to find x")
	}
	v, _ := c.Read()
	if v != Number(2) {
		t.Fatalf("Lookup found %v, want innermost binding (2)", v)
	}

	s.Pop()
	c, ok = s.Lookup("x")
	if !ok {
		t.Fatalf("expected to find x after pop")
	}
	v, _ = c.Read()
	if v != Number(1) {
		t.Fatalf("Lookup after pop found %v, want outer binding (1)", v)
	}
}

func TestStackPushScopeSharesByReference(t *testing.T) {
	builtins := NewScope()
	_ = builtins.Add(NewContainer("_builtin_print", &Function{Name: "_builtin_print"}, Readable))

	a := NewStack()
	a.Push()
	a.PushScope(builtins)
	b := NewStack()
	b.Push()
	b.PushScope(builtins)

	if _, ok := a.Lookup("_builtin_print"); !ok {
		t.Fatalf("stack a should see the shared built-ins scope")
	}
	if _, ok := b.Lookup("_builtin_print"); !ok {
		t.Fatalf("stack b should see the shared built-ins scope")
	}
	if a.Scopes[1] != b.Scopes[1] {
		t.Fatalf("stacks a and b should hold the same built-ins Scope pointer")
	}
}

func TestTruthy(t *testing.T) {
	tests := []struct {
		v    Value
		want bool
	}{
		{Null{}, false},
		{Boolean(false), false},
		{Boolean(true), true},
		{Number(0), false},
		{Number(1), true},
		{String(""), false},
		{String("a"), true},
		{&List{}, false},
		{&List{Elements: []*Container{Anon(Number(1))}}, true},
	}
	for _, tt := range tests {
		if got := Truthy(tt.v); got != tt.want {
			t.Errorf("Truthy(%v) = %v, want %v", tt.v, got, tt.want)
		}
	}
}

func TestEqualStructuralOnLists(t *testing.T) {
	a := &List{Elements: []*Container{Anon(Number(1)), Anon(String("x"))}}
	b := &List{Elements: []*Container{Anon(Number(1)), Anon(String("x"))}}
	if !Equal(a, b) {
		t.Fatalf("expected structurally-equal lists to be Equal")
	}
	c := &List{Elements: []*Container{Anon(Number(2))}}
	if Equal(a, c) {
		t.Fatalf("expected differing lists to not be Equal")
	}
}

func TestEqualRejectsDifferentTags(t *testing.T) {
	if Equal(Number(1), Boolean(true)) {
		t.Fatalf("number and boolean must never be Equal even when both truthy")
	}
	if Equal(Number(0), String("")) {
		t.Fatalf("number and string must never be Equal")
	}
}

func TestObjectPreservesInsertionOrder(t *testing.T) {
	o := NewObject()
	o.Set(StringKey("name"), Anon(String("ok")))
	o.Set(NumberKey(2), Anon(String("two")))
	got, ok := o.Get(StringKey("name"))
	if !ok || got.Value != String("ok") {
		t.Fatalf("Get(name) = %v, %v", got, ok)
	}
	got, ok = o.Get(NumberKey(2))
	if !ok || got.Value != String("two") {
		t.Fatalf("Get(2) = %v, %v", got, ok)
	}
	if s := o.String(); s != "{name: ok, 2: two}" {
		t.Fatalf("String() = %q, want entries in insertion order", s)
	}
}
