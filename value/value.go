// Package value implements the tagged dynamic value the virtual machine
// operates on, together with the heap that owns every object a Value's Obj
// case may reference.
package value

import "strconv"

// Type discriminates the four cases a Value can hold.
type Type int

const (
	Nil Type = iota
	Bool
	Number
	ObjRef
)

// Value is a tagged union of {nil, bool, number, object-ref}. The ObjRef
// case carries a non-owning reference into a Heap's object list; the
// reference's validity is coextensive with that heap's lifetime.
type Value struct {
	typ    Type
	b      bool
	n      float64
	object Object
}

// NilValue is the single nil value.
var NilValue = Value{typ: Nil}

// BoolValue wraps a bool.
func BoolValue(b bool) Value { return Value{typ: Bool, b: b} }

// NumberValue wraps a float64.
func NumberValue(n float64) Value { return Value{typ: Number, n: n} }

// ObjValue wraps a non-owning reference to a heap object.
func ObjValue(o Object) Value { return Value{typ: ObjRef, object: o} }

// StringValue wraps a *StringObject as a Value.
func StringValue(s *StringObject) Value { return ObjValue(s) }

func (v Value) Type() Type    { return v.typ }
func (v Value) IsNil() bool   { return v.typ == Nil }
func (v Value) IsBool() bool  { return v.typ == Bool }
func (v Value) IsNumber() bool { return v.typ == Number }
func (v Value) IsObj() bool   { return v.typ == ObjRef }

func (v Value) IsString() bool {
	return v.typ == ObjRef && v.object.Type() == ObjTypeString
}

// AsBool returns the bool payload without checking the tag (it yields false
// for a non-Bool); callers must check IsBool first, same discipline as the
// VM's opcode handlers which only ever call As* after a type check has
// already happened.
func (v Value) AsBool() bool { return v.b }

func (v Value) AsNumber() float64 { return v.n }

func (v Value) AsObj() Object { return v.object }

// AsString returns the underlying *StringObject. Callers must check
// IsString first.
func (v Value) AsString() *StringObject {
	return v.object.(*StringObject)
}

// IsFalsey reports clox's truthiness rule: nil and false are falsey,
// everything else -- including 0, "", and every object -- is truthy.
func IsFalsey(v Value) bool {
	return v.IsNil() || (v.IsBool() && !v.AsBool())
}

// Equal implements clox's value equality: tags must match; numeric
// equality is IEEE-754 equality (so NaN != NaN); string equality compares
// length then bytes; cross-type comparison is always false. The switch has
// a default case so the function is total even if a Type value outside the
// enumerated set is ever constructed.
func Equal(a, b Value) bool {
	if a.typ != b.typ {
		return false
	}
	switch a.typ {
	case Nil:
		return true
	case Bool:
		return a.b == b.b
	case Number:
		return a.n == b.n
	case ObjRef:
		if a.IsString() && b.IsString() {
			as, bs := a.AsString(), b.AsString()
			if len(as.Chars) != len(bs.Chars) {
				return false
			}
			for i := range as.Chars {
				if as.Chars[i] != bs.Chars[i] {
					return false
				}
			}
			return true
		}
		return a.object == b.object
	default:
		return false
	}
}

// String renders v the way OP_RETURN prints a result: numbers without a
// trailing ".0" for integral values, booleans as "true"/"false", nil as
// "nil", strings as their raw content.
func (v Value) String() string {
	switch v.typ {
	case Nil:
		return "nil"
	case Bool:
		if v.b {
			return "true"
		}
		return "false"
	case Number:
		return strconv.FormatFloat(v.n, 'g', -1, 64)
	case ObjRef:
		if v.IsString() {
			return v.AsString().String()
		}
		return "<obj>"
	default:
		return "<invalid>"
	}
}
