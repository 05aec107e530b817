// Copyright (c) 2026 The RAMbrandt Authors. All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package floatx provides low-level float64 slice utilities shared by the
// inference packages: allocation, shape checks, elementwise transforms, and
// numerically safe normalization in log and linear space.
package floatx

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

type Error string

func (err Error) Error() string { return string(err) }

const (
	ErrZeroLength = Error("floatx: zero length in slice definition")
	ErrLength     = Error("floatx: length mismatch")
)

// Exp transforms elements for Apply.
var Exp = func(r int, v float64) float64 { return math.Exp(v) }

func SetValueFunc(f float64) ApplyFunc {
	return func(r int, v float64) float64 { return f }
}

func MakeFloat2D(n1, n2 int) [][]float64 {

	s := make([][]float64, n1)
	for i := 0; i < n1; i++ {
		s[i] = make([]float64, n2)
	}

	return s
}

func Check2D(s [][]float64) (n1, n2 int) {

	n1 = len(s)
	if n1 == 0 {
		panic(ErrZeroLength)
	}

	n2 = len(s[0])
	if n2 == 0 {
		panic(ErrZeroLength)
	}

	return n1, n2
}

type ApplyFunc func(n int, v float64) float64

// Apply function to 1D slice. If out slice is empty, the function is applied in place.
func Apply(fn ApplyFunc, in, out []float64) []float64 {

	n := len(in)
	if n == 0 {
		panic(ErrZeroLength)
	}
	if len(out) == 0 {
		out = in
	}
	for i := 0; i < n; i++ {
		out[i] = fn(i, in[i])
	}

	return out
}

// LogNormalize shifts a vector of log-weights so its exponentials sum to one.
// The shift is the log-sum-exp of the input, computed with the max subtracted
// so extreme log-weights neither overflow nor underflow. If out slice is
// empty, the result is written in place.
func LogNormalize(in, out []float64) []float64 {

	n := len(in)
	if n == 0 {
		panic(ErrZeroLength)
	}
	if len(out) == 0 {
		out = in
	} else if len(out) != n {
		panic(ErrLength)
	}
	a := floats.LogSumExp(in)
	for i := 0; i < n; i++ {
		out[i] = in[i] - a
	}

	return out
}

// Normalize scales a non-negative vector by its sum. A zero sum yields NaNs;
// callers must guarantee non-degenerate input. If out slice is empty, the
// result is written in place.
func Normalize(in, out []float64) []float64 {

	n := len(in)
	if n == 0 {
		panic(ErrZeroLength)
	}
	if len(out) == 0 {
		out = in
	} else if len(out) != n {
		panic(ErrLength)
	}
	sum := floats.Sum(in)
	for i := 0; i < n; i++ {
		out[i] = in[i] / sum
	}

	return out
}

// Transpose returns a new matrix with rows and columns exchanged.
func Transpose(in [][]float64) [][]float64 {

	n1, n2 := Check2D(in)
	out := MakeFloat2D(n2, n1)
	for i := 0; i < n1; i++ {
		for j := 0; j < n2; j++ {
			out[j][i] = in[i][j]
		}
	}
	return out
}
