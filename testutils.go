// Copyright (c) 2026 The RAMbrandt Authors. All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rambrandt

import (
	"math"
	"testing"
)

// Comparef64 returns true if |f2/f1-1| < tol.
func Comparef64(f1, f2, tol float64) bool {
	avg := math.Abs(f1+f2) / 2.0
	sErr := math.Abs(f2-f1) / (avg + 1)
	return sErr < tol
}

// CompareFloats compares floats using Comparef64.
func CompareFloats(t *testing.T, expected float64, actual float64, message string, tol float64) {
	if !Comparef64(expected, actual, tol) {
		t.Errorf("[%s]. Expected: [%f], Got: [%f]",
			message, expected, actual)
	}
}

// CheckError calls Fatal if error is not nil.
func CheckError(t *testing.T, e error) {

	if e != nil {
		t.Fatal(e)
	}
}
