package value

import "testing"

func TestHashBytesPureFunctionOfContent(t *testing.T) {
	a := HashBytes([]byte("monkey"))
	b := HashBytes([]byte("monkey"))
	if a != b {
		t.Errorf("HashBytes not deterministic: %d != %d", a, b)
	}
}

func TestHashBytesDiffersOnDifferentContent(t *testing.T) {
	a := HashBytes([]byte("monkey"))
	b := HashBytes([]byte("banana"))
	if a == b {
		t.Errorf("unrelated strings hashed equal: %d", a)
	}
}

func TestHashBytesEmpty(t *testing.T) {
	// Must not panic on empty input.
	_ = HashBytes(nil)
	_ = HashBytes([]byte{})
}

func TestHashBytesLongInput(t *testing.T) {
	// Exercises the four-lane accumulator path (inputs over 32 bytes).
	long := make([]byte, 200)
	for i := range long {
		long[i] = byte(i)
	}
	a := HashBytes(long)
	b := HashBytes(append([]byte{}, long...))
	if a != b {
		t.Errorf("long-input hash not deterministic: %d != %d", a, b)
	}
}
