package controllers

import (
	"bytes"
	"encoding/json"
)

// Nullable is a PATCH field that tells an absent key apart from an explicit
// null. Set is false when the key was not sent; Value is nil for null.
type Nullable[T any] struct {
	Set   bool
	Value *T
}

func (n *Nullable[T]) UnmarshalJSON(data []byte) error {
	n.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		n.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	n.Value = &v
	return nil
}

// column is the value to write: nil clears the column.
func (n Nullable[T]) column() any {
	if n.Value == nil {
		return nil
	}
	return *n.Value
}

// or is the value after the patch: the sent one, or current when absent.
func (n Nullable[T]) or(current *T) *T {
	if n.Set {
		return n.Value
	}
	return current
}

// setNullable writes column when the key was sent, clearing it on null.
func setNullable[T any](fields map[string]any, column string, n Nullable[T]) {
	if n.Set {
		fields[column] = n.column()
	}
}
