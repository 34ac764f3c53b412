package core

import "sync/atomic"

// Updateable is a reactive cell: a value plus a dirty flag.
//
// SetValue always marks the cell dirty, even when the new value equals the
// old one. IsUpdated consumes the flag, so for each mutation at most one
// reader observes the change. Both the value and the flag are atomic, so a
// writer and the single consumer may live on different goroutines.
type Updateable[T any] struct {
	value atomic.Pointer[T]
	dirty atomic.Bool
}

// NewUpdateable returns a clean cell holding v.
func NewUpdateable[T any](v T) *Updateable[T] {
	u := &Updateable[T]{}
	u.value.Store(&v)
	return u
}

// Value returns the current value.
func (u *Updateable[T]) Value() T {
	if p := u.value.Load(); p != nil {
		return *p
	}
	var zero T
	return zero
}

// SetValue replaces the value and marks the cell dirty.
func (u *Updateable[T]) SetValue(v T) {
	u.value.Store(&v)
	u.dirty.Store(true)
}

// Update replaces the value with fn applied to the current one.
func (u *Updateable[T]) Update(fn func(T) T) {
	u.SetValue(fn(u.Value()))
}

// IsUpdated reports whether the cell changed since the previous call and
// resets the flag.
func (u *Updateable[T]) IsUpdated() bool {
	return u.dirty.Swap(false)
}
