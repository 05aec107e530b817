// Copyright (c) 2026 The RAMbrandt Authors. All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hmm

import "fmt"

// Inference aborts on the first invariant violation. Every error names the
// check that failed and, where it applies, the timestep or batch row.

// ShapeError reports a dimension mismatch among the likelihoods, prior,
// transition matrix, or realized-state sequence.
type ShapeError struct {
	What string
	Got  int
	Want int
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("hmm: %s has [%d] elements, expected [%d]", e.What, e.Got, e.Want)
}

// EmptySequenceError reports a zero-length time axis.
type EmptySequenceError struct {
	What string
}

func (e *EmptySequenceError) Error() string {
	return fmt.Sprintf("hmm: %s is empty", e.What)
}

// SamplingInvariantError reports a cumulative-sum walk that failed to select
// any index: the rolling sum stayed below the draw even at the last state.
type SamplingInvariantError struct {
	Index int // batch row or timestep
	Draw  float64
	Sum   float64
}

func (e *SamplingInvariantError) Error() string {
	return fmt.Sprintf("hmm: no state selected at index [%d], draw [%e] exceeds cumulative sum [%e]",
		e.Index, e.Draw, e.Sum)
}

// InvalidStateError reports a state index outside [0, NStates).
type InvalidStateError struct {
	Index   int // timestep
	State   int
	NStates int
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("hmm: state [%d] at t=%d is outside [0, %d)", e.State, e.Index, e.NStates)
}

// DegenerateDistributionError reports a row whose weights sum to zero after
// exponentiation, making normalization undefined.
type DegenerateDistributionError struct {
	Index int // batch row or timestep
}

func (e *DegenerateDistributionError) Error() string {
	return fmt.Sprintf("hmm: distribution at index [%d] sums to zero after exponentiation", e.Index)
}
