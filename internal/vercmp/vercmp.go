// Package vercmp compares dotted numeric versions component-wise.
//
// "12.10" sorts after "12.9" here; comparing the strings would not.
package vercmp

import (
	"fmt"
	"strconv"
	"strings"
)

// Tuple is a parsed dotted version such as 12.9 or 2.8.0.
type Tuple []int

// Parse splits v on dots and converts every component to an integer.
func Parse(v string) (Tuple, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil, fmt.Errorf("empty version")
	}
	parts := strings.Split(v, ".")
	t := make(Tuple, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid version %q: component %q is not a non-negative integer", v, p)
		}
		t[i] = n
	}
	return t, nil
}

// MustParse is Parse for literals known to be valid.
func MustParse(v string) Tuple {
	t, err := Parse(v)
	if err != nil {
		panic(err)
	}
	return t
}

// Compare returns -1, 0 or 1. Tuples compare like Python tuples: element by
// element, and a strict prefix is smaller (12.9 < 12.9.0).
func (t Tuple) Compare(other Tuple) int {
	for i := 0; i < len(t) && i < len(other); i++ {
		switch {
		case t[i] < other[i]:
			return -1
		case t[i] > other[i]:
			return 1
		}
	}
	switch {
	case len(t) < len(other):
		return -1
	case len(t) > len(other):
		return 1
	}
	return 0
}

// String joins the components with dots.
func (t Tuple) String() string {
	parts := make([]string, len(t))
	for i, n := range t {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ".")
}

// Compare parses both versions and compares them.
func Compare(a, b string) (int, error) {
	ta, err := Parse(a)
	if err != nil {
		return 0, err
	}
	tb, err := Parse(b)
	if err != nil {
		return 0, err
	}
	return ta.Compare(tb), nil
}

// Greater reports whether a > b.
func Greater(a, b string) (bool, error) {
	c, err := Compare(a, b)
	return c > 0, err
}

// MajorMinor drops the last component: "2.8.0" -> "2.8". A version without a
// dot is returned unchanged.
func MajorMinor(v string) string {
	v = strings.TrimSpace(v)
	if i := strings.LastIndex(v, "."); i >= 0 {
		return v[:i]
	}
	return v
}
