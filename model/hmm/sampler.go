// Copyright (c) 2026 The RAMbrandt Authors. All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hmm

import (
	"fmt"
	"math"

	"github.com/golang/glog"
	"gonum.org/v1/gonum/floats"
)

// UniformSource yields uniform draws in [0,1). *rand.Rand satisfies it.
// The source is injected so repeated runs under a fixed seed sequence are
// reproducible.
type UniformSource interface {
	Float64() float64
}

// SampleLogBatch draws one state index per row of a batch of categorical
// distributions given as unnormalized log-weights. Each row is normalized
// with a max-shifted softmax, then the index is selected by walking the
// cumulative sums in order and returning the first index whose running sum
// reaches the draw. A draw exactly on a cumulative boundary resolves to the
// lower index. One uniform value is consumed per row.
func SampleLogBatch(logw [][]float64, src UniformSource) ([]int, error) {

	if len(logw) == 0 {
		return nil, &EmptySequenceError{What: "batch of log-weights"}
	}
	n := len(logw[0])
	if n == 0 {
		return nil, &EmptySequenceError{What: "log-weight row 0"}
	}
	out := make([]int, len(logw))
	p := make([]float64, n)
	for r, row := range logw {
		if len(row) != n {
			return nil, &ShapeError{What: fmt.Sprintf("log-weight row %d", r), Got: len(row), Want: n}
		}
		idx, e := sampleLogRow(row, p, src, r)
		if e != nil {
			return nil, e
		}
		out[r] = idx
	}
	return out, nil
}

// sampleLogRow draws one index from a single row of unnormalized log-weights.
// p is scratch space of the same length as row; at tags errors with the batch
// row or timestep the caller is processing.
func sampleLogRow(row, p []float64, src UniformSource, at int) (int, error) {

	max := floats.Max(row)
	if math.IsInf(max, -1) || math.IsNaN(max) {
		// All weights vanish; the softmax is undefined.
		return -1, &DegenerateDistributionError{Index: at}
	}
	for i, v := range row {
		p[i] = math.Exp(v - max)
	}
	sum := floats.Sum(p)
	if sum == 0 {
		return -1, &DegenerateDistributionError{Index: at}
	}
	floats.Scale(1.0/sum, p)

	draw := src.Float64()
	rolling := 0.0
	for i, v := range p {
		rolling += v
		if draw <= rolling {
			if glog.V(4) {
				glog.Infof("at: %4d | draw: %5e | state: %d", at, draw, i)
			}
			return i, nil
		}
	}
	// Floating-point rounding left the cumulative sum short of the draw.
	return -1, &SamplingInvariantError{Index: at, Draw: draw, Sum: rolling}
}
