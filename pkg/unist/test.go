package unist

import (
	"errors"
	"fmt"
	"reflect"
)

// ErrInvalidTest is returned when a traversal filter has an unsupported type.
var ErrInvalidTest = errors.New("invalid test")

// Test reports whether node, found at index within parent, should be
// offered to a visitor. index is -1 and parent is the zero value for the root.
type Test[N any] func(node N, index int, parent N) bool

// PropertyGetter is implemented by nodes that can be matched against a
// property map test.
type PropertyGetter interface {
	Property(name string) (any, bool)
}

// Convert turns a loosely typed test into a Test.
//
// Supported forms:
//   - nil: matches every node
//   - string: matches nodes whose NodeType equals the string
//   - []string: matches any of the listed types
//   - Test[N], func(N, int, N) bool, func(N) bool: used as-is
//   - map[string]any: every key must be present on the node with an equal
//     value; the node must implement PropertyGetter ("type" is always known)
//   - []any: matches when any element, converted recursively, matches
//
// Any other value yields an error wrapping ErrInvalidTest.
func Convert[N Node[N]](test any) (Test[N], error) {
	switch typed := test.(type) {
	case nil:
		return matchAll[N], nil
	case string:
		return typeTest[N](typed), nil
	case []string:
		tests := make([]Test[N], 0, len(typed))
		for _, name := range typed {
			tests = append(tests, typeTest[N](name))
		}
		return anyOf(tests), nil
	case Test[N]:
		if typed == nil {
			return matchAll[N], nil
		}
		return typed, nil
	case func(N, int, N) bool:
		if typed == nil {
			return matchAll[N], nil
		}
		return Test[N](typed), nil
	case func(N) bool:
		if typed == nil {
			return matchAll[N], nil
		}
		return func(node N, _ int, _ N) bool { return typed(node) }, nil
	case map[string]any:
		return propsTest[N](typed), nil
	case []any:
		tests := make([]Test[N], 0, len(typed))
		for idx, item := range typed {
			converted, err := Convert[N](item)
			if err != nil {
				return nil, fmt.Errorf("test[%d]: %w", idx, err)
			}
			tests = append(tests, converted)
		}
		return anyOf(tests), nil
	default:
		return nil, fmt.Errorf("%w: unsupported type %T", ErrInvalidTest, test)
	}
}

// Is reports whether node matches test. It panics on an invalid test, which
// is a programming error; use Convert to handle that case explicitly.
func Is[N Node[N]](node N, test any, index int, parent N) bool {
	check, err := Convert[N](test)
	if err != nil {
		panic(err)
	}
	return check(node, index, parent)
}

func matchAll[N any](N, int, N) bool {
	return true
}

func typeTest[N Node[N]](name string) Test[N] {
	return func(node N, _ int, _ N) bool {
		return node.NodeType() == name
	}
}

func anyOf[N any](tests []Test[N]) Test[N] {
	return func(node N, index int, parent N) bool {
		for _, test := range tests {
			if test(node, index, parent) {
				return true
			}
		}
		return false
	}
}

func propsTest[N Node[N]](props map[string]any) Test[N] {
	return func(node N, _ int, _ N) bool {
		getter, _ := any(node).(PropertyGetter)
		for key, want := range props {
			var got any
			var found bool
			switch {
			case key == "type":
				got, found = node.NodeType(), true
			case getter != nil:
				got, found = getter.Property(key)
			}
			if !found || !reflect.DeepEqual(got, want) {
				return false
			}
		}
		return true
	}
}
