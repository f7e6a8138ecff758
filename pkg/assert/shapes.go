package assert

import (
	"container/list"
	"reflect"
)

// PairLike is implemented by two-component values. Equal compares both
// components and reports each one that differs.
type PairLike interface {
	PairFirst() any
	PairSecond() any
}

// Pair is the stock PairLike.
type Pair[A, B any] struct {
	First  A
	Second B
}

// MakePair builds a Pair.
func MakePair[A, B any](first A, second B) Pair[A, B] {
	return Pair[A, B]{First: first, Second: second}
}

func (p Pair[A, B]) PairFirst() any  { return p.First }
func (p Pair[A, B]) PairSecond() any { return p.Second }

// Tuple is a fixed-arity heterogeneous value. Go arrays are tuples as well.
type Tuple []any

// MakeTuple builds a Tuple from its components.
func MakeTuple(components ...any) Tuple {
	return Tuple(components)
}

// List returns a literal list of values, compared as an ordered sequence.
func List(values ...any) []any {
	return values
}

// Sequence is implemented by ordered containers that are neither slices nor arrays.
type Sequence interface {
	Len() int
	At(i int) any
}

// tupleOf returns the components of a tuple-like value.
func tupleOf(v any) ([]any, bool) {
	if t, ok := v.(Tuple); ok {
		return t, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Array {
		return nil, false
	}
	return indexed(rv), true
}

// sequenceOf returns the elements of anything that can be walked in order with
// a known end. Strings are deliberately not sequences; they compare as scalars.
func sequenceOf(v any) ([]any, bool) {
	switch s := v.(type) {
	case Tuple:
		return s, true
	case Sequence:
		out := make([]any, 0, s.Len())
		for i := 0; i < s.Len(); i++ {
			out = append(out, s.At(i))
		}
		return out, true
	case *list.List:
		if s == nil {
			return nil, true
		}
		out := make([]any, 0, s.Len())
		for e := s.Front(); e != nil; e = e.Next() {
			out = append(out, e.Value)
		}
		return out, true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return indexed(rv), true
	case reflect.Func:
		if isSeqFunc(rv.Type()) && !rv.IsNil() {
			return drain(rv), true
		}
	}
	return nil, false
}

func indexed(rv reflect.Value) []any {
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out
}

// isSeqFunc matches the shape of iter.Seq: func(yield func(T) bool).
func isSeqFunc(t reflect.Type) bool {
	if t.NumIn() != 1 || t.NumOut() != 0 {
		return false
	}
	yield := t.In(0)
	return yield.Kind() == reflect.Func &&
		yield.NumIn() == 1 &&
		yield.NumOut() == 1 &&
		yield.Out(0).Kind() == reflect.Bool
}

func drain(seq reflect.Value) []any {
	var out []any
	yieldType := seq.Type().In(0)
	yield := reflect.MakeFunc(yieldType, func(args []reflect.Value) []reflect.Value {
		out = append(out, args[0].Interface())
		return []reflect.Value{reflect.ValueOf(true)}
	})
	seq.Call([]reflect.Value{yield})
	return out
}
