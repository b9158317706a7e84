package ordinals

import "reflect"

// Area is a bag-like dynamic-field container keyed by fully-qualified
// type name, holding at most one value per type. It backs both the
// permanent and temporary areas on Object[T] (§4.7). Add/Contains/Borrow/Remove
// are free functions rather than methods because Go methods cannot carry
// their own type parameter independent of the receiver's.
//
// Only the package that defines a concrete value type T should construct or
// destroy values of that type in an Area — the spec's private-generics
// restriction has no compiler-enforced equivalent in Go, so this is
// documented caller discipline rather than an enforced boundary.
type Area map[string]any

func areaKey[T any]() string {
	var zero T
	return reflect.TypeOf(zero).String()
}

// Add inserts value into the area under its type key, overwriting any
// existing value of the same type.
func Add[T any](a Area, value T) {
	a[areaKey[T]()] = value
}

// Contains reports whether the area holds a value of type T.
func Contains[T any](a Area) bool {
	_, ok := a[areaKey[T]()]
	return ok
}

// Borrow returns the area's value of type T, if any.
func Borrow[T any](a Area) (T, bool) {
	v, ok := a[areaKey[T]()]
	if !ok {
		var zero T
		return zero, false
	}
	return v.(T), true
}

// Remove deletes and returns the area's value of type T, if any.
func Remove[T any](a Area) (T, bool) {
	v, ok := Borrow[T](a)
	if ok {
		delete(a, areaKey[T]())
	}
	return v, ok
}

// Drop empties the area in place, discarding every value it held. Used on
// transfer: the temporary area is dropped wholesale while the permanent area
// survives untouched (§8 invariant 6).
func (a Area) Drop() {
	for k := range a {
		delete(a, k)
	}
}
