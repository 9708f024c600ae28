package utils

import (
	"golang.org/x/exp/constraints"
)

// Number is a custom type set of constraints extending the Float and Integer
// type set from the experimental constraints package.
type Number interface {
	constraints.Float | constraints.Integer
}

// Min returns the lowest value between x and y.
func Min[T Number](x, y T) T {
	if x < y {
		return x
	}
	return y
}

// Max returns the biggest value between x and y.
func Max[T Number](x, y T) T {
	if x > y {
		return x
	}
	return y
}

// Abs returns the absolute value of x.
func Abs[T Number](x T) T {
	if x < 0 {
		return -x
	}
	return x
}
