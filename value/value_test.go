package value

import (
	"math"
	"testing"
)

func TestIsFalsey(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want bool
	}{
		{"nil", NilValue, true},
		{"false", BoolValue(false), true},
		{"true", BoolValue(true), false},
		{"zero", NumberValue(0), false},
		{"nonzero", NumberValue(1), false},
	}
	for _, tt := range tests {
		if got := IsFalsey(tt.v); got != tt.want {
			t.Errorf("%s: IsFalsey() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestDoubleNotLaw(t *testing.T) {
	// !!v == Bool(!is_falsey(v)) for representative values.
	values := []Value{NilValue, BoolValue(true), BoolValue(false), NumberValue(0)}
	for _, v := range values {
		once := BoolValue(IsFalsey(v))
		twice := BoolValue(IsFalsey(once))
		want := BoolValue(!IsFalsey(v))
		if twice != want {
			t.Errorf("double-not law broken for %v", v)
		}
	}
}

func TestEqualNumbers(t *testing.T) {
	if !Equal(NumberValue(1), NumberValue(1)) {
		t.Error("1 should equal 1")
	}
	if Equal(NumberValue(1), NumberValue(2)) {
		t.Error("1 should not equal 2")
	}
}

func TestEqualNaN(t *testing.T) {
	nan := NumberValue(math.NaN())
	if Equal(nan, nan) {
		t.Error("NaN must not equal itself")
	}
}

func TestEqualCrossTypeIsFalse(t *testing.T) {
	if Equal(NumberValue(0), BoolValue(false)) {
		t.Error("cross-type comparison must be false")
	}
	if Equal(NilValue, BoolValue(false)) {
		t.Error("nil must not equal false")
	}
}

func TestEqualStringsByContent(t *testing.T) {
	h := NewHeap()
	defer h.Free()
	a := h.AllocateString([]byte("hi"))
	b := h.AllocateString([]byte("hi"))
	if a == b {
		t.Fatal("test setup invalid: expected distinct allocations")
	}
	if !Equal(StringValue(a), StringValue(b)) {
		t.Error("distinct allocations with equal content must compare equal")
	}
}

func TestEqualStringsDifferentContent(t *testing.T) {
	h := NewHeap()
	defer h.Free()
	a := h.AllocateString([]byte("hi"))
	b := h.AllocateString([]byte("bye"))
	if Equal(StringValue(a), StringValue(b)) {
		t.Error("different content must not compare equal")
	}
}

func TestValueStringRendering(t *testing.T) {
	tests := []struct {
		v    Value
		want string
	}{
		{NilValue, "nil"},
		{BoolValue(true), "true"},
		{BoolValue(false), "false"},
		{NumberValue(3), "3"},
		{NumberValue(3.5), "3.5"},
	}
	for _, tt := range tests {
		if got := tt.v.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestAccessors(t *testing.T) {
	n := NumberValue(5)
	if !n.IsNumber() || n.AsNumber() != 5 {
		t.Error("NumberValue accessors broken")
	}
	b := BoolValue(true)
	if !b.IsBool() || !b.AsBool() {
		t.Error("BoolValue accessors broken")
	}
	if !NilValue.IsNil() {
		t.Error("NilValue.IsNil() false")
	}
}
