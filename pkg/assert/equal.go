package assert

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/google/go-cmp/cmp"
)

// PastEnd stands in for the missing element when one side of an indexed
// comparison is shorter than the other.
const PastEnd = "*past end*"

// Compare reports whether expected and actual are equal and, if not, a
// diagnostic describing the first difference. Shapes are tried in order:
// pair, tuple, sequence, scalar. Both sides must share a shape for the
// more specific comparisons to apply.
func Compare(expected, actual any) (string, bool) {
	if ep, ok := expected.(PairLike); ok {
		if ap, ok := actual.(PairLike); ok {
			return comparePairs(ep, ap)
		}
	}
	if et, ok := tupleOf(expected); ok {
		if at, ok := tupleOf(actual); ok {
			return compareIndexed("Tuple mismatch", et, at)
		}
	}
	if es, ok := sequenceOf(expected); ok {
		if as, ok := sequenceOf(actual); ok {
			return compareIndexed("Mismatch", es, as)
		}
	}
	if scalarsEqual(expected, actual) {
		return "", true
	}
	return fmt.Sprintf("Expected: %v, Actual: %v", expected, actual), false
}

func equal(expected, actual any) bool {
	_, ok := Compare(expected, actual)
	return ok
}

func comparePairs(expected, actual PairLike) (string, bool) {
	var diffs []string
	if e, a := expected.PairFirst(), actual.PairFirst(); !equal(e, a) {
		diffs = append(diffs, fmt.Sprintf("Expected first: %v, Actual first: %v.", e, a))
	}
	if e, a := expected.PairSecond(), actual.PairSecond(); !equal(e, a) {
		diffs = append(diffs, fmt.Sprintf("Expected second: %v, Actual second: %v.", e, a))
	}
	if len(diffs) == 0 {
		return "", true
	}
	return strings.Join(diffs, " "), false
}

// compareIndexed walks both sides together and stops at the first index where
// the elements differ or one side runs out.
func compareIndexed(kind string, expected, actual []any) (string, bool) {
	for i := 0; i < len(expected) || i < len(actual); i++ {
		if i < len(expected) && i < len(actual) && equal(expected[i], actual[i]) {
			continue
		}
		return fmt.Sprintf("%s at index %d. Expected: %s, Actual: %s. Expected size: %d, Actual size: %d.",
			kind, i, at(expected, i), at(actual, i), len(expected), len(actual)), false
	}
	return "", true
}

func at(values []any, i int) string {
	if i >= len(values) {
		return PastEnd
	}
	return fmt.Sprint(values[i])
}

var exportAll = cmp.Exporter(func(reflect.Type) bool { return true })

func scalarsEqual(expected, actual any) bool {
	if expected == nil || actual == nil {
		return isNil(expected) && isNil(actual)
	}
	ev, av := reflect.ValueOf(expected), reflect.ValueOf(actual)
	if ev.Type() == av.Type() {
		if ev.Comparable() {
			return ev.Equal(av)
		}
		return cmp.Equal(expected, actual, exportAll)
	}

	switch {
	case ev.Kind() == reflect.String && av.Kind() == reflect.String:
		return ev.String() == av.String()
	case ev.Kind() == reflect.Bool && av.Kind() == reflect.Bool:
		return ev.Bool() == av.Bool()
	case isNumber(ev) && isNumber(av):
		return numbersEqual(ev, av)
	}
	return false
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

func isNumber(v reflect.Value) bool {
	return isInt(v) || isUint(v) || isFloat(v)
}

func isInt(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	}
	return false
}

func isUint(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	}
	return false
}

func isFloat(v reflect.Value) bool {
	return v.Kind() == reflect.Float32 || v.Kind() == reflect.Float64
}

// numbersEqual compares numbers of different kinds by value.
func numbersEqual(e, a reflect.Value) bool {
	switch {
	case isFloat(e) || isFloat(a):
		return toFloat(e) == toFloat(a)
	case isInt(e) && isInt(a):
		return e.Int() == a.Int()
	case isUint(e) && isUint(a):
		return e.Uint() == a.Uint()
	case isInt(e):
		return e.Int() >= 0 && uint64(e.Int()) == a.Uint()
	default:
		return a.Int() >= 0 && uint64(a.Int()) == e.Uint()
	}
}

func toFloat(v reflect.Value) float64 {
	switch {
	case isInt(v):
		return float64(v.Int())
	case isUint(v):
		return float64(v.Uint())
	}
	return v.Float()
}
