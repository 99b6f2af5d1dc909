package value

// ObjType discriminates the kinds of heap object. String is the only kind
// this core allocates; the type exists so the heap's bulk-free walk (and any
// future object kind) can dispatch on payload type.
type ObjType int

const (
	ObjTypeString ObjType = iota
)

// Object is implemented by every heap-allocated payload. next/setNext thread
// the intrusive singly-linked list rooted at the owning Heap -- the only
// thing that ever points from one heap object to another, so no cycle is
// possible.
type Object interface {
	Type() ObjType
	next() Object
	setNext(Object)
}

// objHeader is embedded by every Object implementation to provide the
// intrusive list link and type discriminant, the Go analogue of clox's
// shared `Obj` struct prefix.
type objHeader struct {
	typ     ObjType
	nextObj Object
}

func (h *objHeader) Type() ObjType    { return h.typ }
func (h *objHeader) next() Object     { return h.nextObj }
func (h *objHeader) setNext(o Object) { h.nextObj = o }

// StringObject is an immutable byte string with a length and a
// content-derived hash computed once at construction. Two distinct
// StringObjects may hold equal content -- strings are not interned by this
// core.
type StringObject struct {
	objHeader
	Chars []byte
	Hash  uint32
}

func (s *StringObject) String() string {
	return string(s.Chars)
}

// Heap owns every object ever allocated through it and is the sole authority
// for their lifetime: a Value's Obj reference is a non-owning handle valid
// only as long as the Heap that produced it is alive.
type Heap struct {
	objects Object
}

// NewHeap returns an empty heap.
func NewHeap() *Heap {
	return &Heap{}
}

func (h *Heap) register(o Object) {
	o.setNext(h.objects)
	h.objects = o
}

// AllocateString copies chars into a new StringObject, hashes it, registers
// it with the heap and returns it.
func (h *Heap) AllocateString(chars []byte) *StringObject {
	owned := make([]byte, len(chars))
	copy(owned, chars)
	s := &StringObject{
		objHeader: objHeader{typ: ObjTypeString},
		Chars:     owned,
		Hash:      HashBytes(owned),
	}
	h.register(s)
	return s
}

// ConcatStrings allocates a new string whose content is a.Chars followed by
// b.Chars, registered on this heap.
func (h *Heap) ConcatStrings(a, b *StringObject) *StringObject {
	joined := make([]byte, 0, len(a.Chars)+len(b.Chars))
	joined = append(joined, a.Chars...)
	joined = append(joined, b.Chars...)
	return h.AllocateString(joined)
}

// Free walks the intrusive object list and drops every reference so the
// garbage collector can reclaim the payloads. Traversal happens only here,
// at VM teardown -- never mid-run.
func (h *Heap) Free() {
	for o := h.objects; o != nil; {
		next := o.next()
		o.setNext(nil)
		o = next
	}
	h.objects = nil
}
