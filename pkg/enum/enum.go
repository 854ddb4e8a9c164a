package enum

import (
	"fmt"
	"reflect"
)

var enumManager = map[string]any{}

type enum[T comparable] struct {
	toEnum map[string]T
}

// New registers value under name, or under its own string form when no name
// is given.
func New[T comparable](value T, name ...string) T {
	v := reflect.ValueOf(value)
	t := v.Type()
	if _, ok := enumManager[t.String()]; !ok {
		enumManager[t.String()] = enum[T]{toEnum: make(map[string]T)}
	}

	s := fmt.Sprint(value)
	if len(name) > 0 {
		s = name[0]
	}

	e := enumManager[t.String()].(enum[T])
	e.toEnum[s] = value
	return value
}

func ToEnum[T comparable](s string) (T, error) {
	var defaultT T
	e, ok := enumManager[reflect.TypeOf(defaultT).String()]
	if !ok {
		return defaultT, fmt.Errorf("not found enum type %T", defaultT)
	}

	t, ok := e.(enum[T]).toEnum[s]
	if !ok {
		return defaultT, fmt.Errorf("not found value %s in enum %T", s, defaultT)
	}

	return t, nil
}
