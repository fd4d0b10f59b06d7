package patch

import (
	"bytes"
	"encoding/json"
)

// Field is a partial-update value that remembers whether it appeared in the
// request body and whether it was an explicit null.
type Field[T any] struct {
	Set   bool
	Null  bool
	Value T
}

// Of returns a present, non-null field.
func Of[T any](v T) Field[T] {
	return Field[T]{Set: true, Value: v}
}

// Null returns a present field holding an explicit null.
func Null[T any]() Field[T] {
	return Field[T]{Set: true, Null: true}
}

// UnmarshalJSON is only invoked for keys present in the document, which is
// what makes Set meaningful.
func (f *Field[T]) UnmarshalJSON(data []byte) error {
	f.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		f.Null = true
		var zero T
		f.Value = zero
		return nil
	}
	f.Null = false
	return json.Unmarshal(data, &f.Value)
}

// MarshalJSON renders absent and null fields as null.
func (f Field[T]) MarshalJSON() ([]byte, error) {
	if !f.Set || f.Null {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}

// Ptr returns nil for a null field and a pointer to the value otherwise.
// Callers check Set first.
func (f Field[T]) Ptr() *T {
	if f.Null {
		return nil
	}
	v := f.Value
	return &v
}

// ApplyTo overwrites *dst when the field is present: null clears it.
func (f Field[T]) ApplyTo(dst **T) {
	if !f.Set {
		return
	}
	*dst = f.Ptr()
}
