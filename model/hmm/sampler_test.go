// Copyright (c) 2026 The RAMbrandt Authors. All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hmm

import (
	"errors"
	"math"
	"math/rand"
	"testing"
)

// fixedSource replays a predetermined sequence of uniform values.
type fixedSource struct {
	values []float64
	next   int
}

func (s *fixedSource) Float64() float64 {
	v := s.values[s.next]
	s.next++
	return v
}

func TestSampleLogBatch(t *testing.T) {

	// Rows normalize to [0.2 0.3 0.5] regardless of the shared offset.
	row := []float64{math.Log(0.2) - 3, math.Log(0.3) - 3, math.Log(0.5) - 3}
	batch := [][]float64{row, row, row, row}
	src := &fixedSource{values: []float64{0.1, 0.3, 0.6, 0.99}}

	idx, e := SampleLogBatch(batch, src)
	if e != nil {
		t.Fatal(e)
	}
	expected := []int{0, 1, 2, 2}
	for i := range expected {
		if idx[i] != expected[i] {
			t.Errorf("row %d. Expected: [%d], Got: [%d]", i, expected[i], idx[i])
		}
	}
}

// A draw exactly on a cumulative boundary must resolve to the lower index.
func TestSampleLogBatchTieBreak(t *testing.T) {

	row := []float64{math.Log(0.5), math.Log(0.5)}
	src := &fixedSource{values: []float64{0.5}}

	idx, e := SampleLogBatch([][]float64{row}, src)
	if e != nil {
		t.Fatal(e)
	}
	if idx[0] != 0 {
		t.Errorf("tie break. Expected: [0], Got: [%d]", idx[0])
	}
}

func TestSampleLogBatchInvariantError(t *testing.T) {

	// A draw above one can never be reached by the cumulative walk. The
	// sampler must fail loudly instead of returning an invalid index.
	row := []float64{math.Log(0.5), math.Log(0.5)}
	src := &fixedSource{values: []float64{1.5}}

	_, e := SampleLogBatch([][]float64{row}, src)
	var sie *SamplingInvariantError
	if !errors.As(e, &sie) {
		t.Fatalf("expected SamplingInvariantError, got %v", e)
	}
	if sie.Index != 0 {
		t.Errorf("error index. Expected: [0], Got: [%d]", sie.Index)
	}
}

func TestSampleLogBatchDegenerate(t *testing.T) {

	row := []float64{math.Inf(-1), math.Inf(-1)}
	src := &fixedSource{values: []float64{0.5}}

	_, e := SampleLogBatch([][]float64{row}, src)
	var dde *DegenerateDistributionError
	if !errors.As(e, &dde) {
		t.Fatalf("expected DegenerateDistributionError, got %v", e)
	}
}

func TestSampleLogBatchShapeError(t *testing.T) {

	batch := [][]float64{{0, 0}, {0, 0, 0}}
	src := &fixedSource{values: []float64{0.5, 0.5}}

	_, e := SampleLogBatch(batch, src)
	var se *ShapeError
	if !errors.As(e, &se) {
		t.Fatalf("expected ShapeError, got %v", e)
	}
}

func TestSampleLogBatchEmpty(t *testing.T) {

	_, e := SampleLogBatch(nil, &fixedSource{})
	var ese *EmptySequenceError
	if !errors.As(e, &ese) {
		t.Fatalf("expected EmptySequenceError, got %v", e)
	}
}

// The empirical distribution of many draws should approach the weights.
func TestSampleLogBatchFrequencies(t *testing.T) {

	row := []float64{math.Log(0.1), math.Log(0.6), math.Log(0.3)}
	r := rand.New(rand.NewSource(33))
	counts := make([]float64, 3)
	n := 100000
	for i := 0; i < n; i++ {
		idx, e := SampleLogBatch([][]float64{row}, r)
		if e != nil {
			t.Fatal(e)
		}
		counts[idx[0]]++
	}
	expected := []float64{0.1, 0.6, 0.3}
	for i := range expected {
		got := counts[i] / float64(n)
		if math.Abs(got-expected[i]) > 0.01 {
			t.Errorf("state %d frequency. Expected: [%f], Got: [%f]", i, expected[i], got)
		}
	}
}
