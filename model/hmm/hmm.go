// Copyright (c) 2026 The RAMbrandt Authors. All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package hmm implements exact Bayesian filtering and stochastic smoothing for
discrete-state hidden Markov models.

The forward pass computes the filtering distribution p(x_t | y_1..y_t) for
every timestep; the backward pass draws a full state trajectory from the
joint posterior by sampling each state conditioned on the next one
(forward-filtering backward-sampling). All distributions are kept in log
space and re-normalized at every step so long sequences do not underflow.
*/
package hmm

import (
	"math"
	"strconv"

	"github.com/golang/glog"
	"github.com/mhw32/RAMbrandt/floatx"
	"gonum.org/v1/gonum/floats"
)

// Model holds the fixed parameters of a discrete-state hidden Markov model:
// the state count and the transition matrix. The matrix is column-stochastic
// by convention, trans[i][j] = P(q(t+1) = i | q(t) = j); columns are trusted
// to sum to one and are not re-normalized here. A Model is read-only after
// construction and safe to share among concurrent inference calls.
type Model struct {
	nstates int
	trans   [][]float64
}

// Tempering holds the exponents applied at the first forward step only:
// Alpha flattens or sharpens the prior, Beta the transition matrix.
type Tempering struct {
	Alpha float64
	Beta  float64
}

// NoTempering leaves the prior and transition matrix unchanged.
var NoTempering = Tempering{Alpha: 1, Beta: 1}

// NewModel creates a model from a square transition matrix. Entries must be
// finite and non-negative; these are the invariants the recursions rely on.
// The matrix is copied so the model cannot be mutated through the argument.
func NewModel(trans [][]float64) (*Model, error) {

	n := len(trans)
	if n == 0 {
		return nil, &EmptySequenceError{What: "transition matrix"}
	}
	m := &Model{nstates: n, trans: floatx.MakeFloat2D(n, n)}
	for i, row := range trans {
		if len(row) != n {
			return nil, &ShapeError{What: "transition matrix row " + strconv.Itoa(i), Got: len(row), Want: n}
		}
		for j, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
				return nil, &DegenerateDistributionError{Index: i}
			}
			m.trans[i][j] = v
		}
	}

	glog.V(1).Infof("new model, num states = %d", n)
	return m, nil
}

// NStates returns the number of hidden states.
func (m *Model) NStates() int { return m.nstates }

// logNormalizeRow normalizes one log-weight row in place, failing when the
// row's total mass has vanished: shifting by a -Inf or NaN log-sum-exp would
// turn the row into NaNs that flow silently through every later timestep.
func logNormalizeRow(row []float64, t int) error {

	if a := floats.LogSumExp(row); math.IsInf(a, -1) || math.IsNaN(a) {
		return &DegenerateDistributionError{Index: t}
	}
	floatx.LogNormalize(row, nil)
	return nil
}

// Forward computes the filtering distributions for a sequence of emission
// log-likelihoods. lls has one row per timestep, each of length NStates;
// prior is the log distribution over the initial state. The recursion is
//
//	forward[0] = lognormalize(lls[0] + log(T^β · exp(prior)^α))
//	forward[t] = lognormalize(lls[t] + log(T · exp(forward[t-1])))
//
// with the transition product taken in linear space because the transition
// update is linear in probabilities, not log-probabilities. Every output row
// is log-normalized, which bounds the underflow risk of the single
// exponentiation each row undergoes at the next step.
func (m *Model) Forward(lls [][]float64, prior []float64, temp Tempering) ([][]float64, error) {

	n := m.nstates
	T := len(lls)
	if T == 0 {
		return nil, &EmptySequenceError{What: "likelihood sequence"}
	}
	for t, row := range lls {
		if len(row) != n {
			return nil, &ShapeError{What: "likelihoods at t=" + strconv.Itoa(t), Got: len(row), Want: n}
		}
	}
	if len(prior) != n {
		return nil, &ShapeError{What: "prior", Got: len(prior), Want: n}
	}

	forward := floatx.MakeFloat2D(T, n)
	last := make([]float64, n)

	// First step runs separately so the prior and transition matrix can be
	// tempered. exp(prior)^α == exp(α·prior).
	for j := 0; j < n; j++ {
		last[j] = math.Exp(temp.Alpha * prior[j])
	}
	for i := 0; i < n; i++ {
		var sum float64
		for j := 0; j < n; j++ {
			sum += math.Pow(m.trans[i][j], temp.Beta) * last[j]
		}
		forward[0][i] = lls[0][i] + math.Log(sum)
	}
	if e := logNormalizeRow(forward[0], 0); e != nil {
		return nil, e
	}

	// Induction. No tempering past t = 0.
	for t := 1; t < T; t++ {
		floatx.Apply(floatx.Exp, forward[t-1], last)
		for i := 0; i < n; i++ {
			var sum float64
			for j := 0; j < n; j++ {
				sum += m.trans[i][j] * last[j]
			}
			forward[t][i] = lls[t][i] + math.Log(sum)
		}
		if e := logNormalizeRow(forward[t], t); e != nil {
			return nil, e
		}
		if glog.V(3) {
			glog.Infof("t: %4d | forward: %v", t, forward[t])
		}
	}

	return forward, nil
}

// Backward draws a state trajectory from the exact joint posterior implied
// by the filtering distributions, iterating from the last timestep to the
// first. At each step the smoothing distribution combines the transition row
// selected by the freshly sampled next state with the filtering distribution
// at the current time. Returns the trajectory and the smoothing
// distributions, both in chronological order. One uniform draw is consumed
// per timestep.
func (m *Model) Backward(forward [][]float64, src UniformSource) ([]int, [][]float64, error) {
	return m.backward(forward, nil, src)
}

// BackwardRealized is the externally conditioned variant of Backward: the
// transition row at each step is selected by the caller-supplied realized
// state sequence instead of the freshly sampled one. realized must have one
// valid state index per timestep.
func (m *Model) BackwardRealized(forward [][]float64, realized []int, src UniformSource) ([]int, [][]float64, error) {

	if len(realized) != len(forward) {
		return nil, nil, &ShapeError{What: "realized states", Got: len(realized), Want: len(forward)}
	}
	for t, s := range realized {
		if s < 0 || s >= m.nstates {
			return nil, nil, &InvalidStateError{Index: t, State: s, NStates: m.nstates}
		}
	}
	return m.backward(forward, realized, src)
}

func (m *Model) backward(forward [][]float64, realized []int, src UniformSource) ([]int, [][]float64, error) {

	n := m.nstates
	T := len(forward)
	if T == 0 {
		return nil, nil, &EmptySequenceError{What: "forward distributions"}
	}
	for t, row := range forward {
		if len(row) != n {
			return nil, nil, &ShapeError{What: "forward distribution at t=" + strconv.Itoa(t), Got: len(row), Want: n}
		}
	}

	states := make([]int, T)
	backward := floatx.MakeFloat2D(T, n)
	scratch := make([]float64, n)

	// Last timestep first: nothing in the future to condition on, so the
	// smoothing distribution is the filtering distribution itself.
	copy(backward[T-1], forward[T-1])
	s, e := sampleLogRow(backward[T-1], scratch, src, T-1)
	if e != nil {
		return nil, nil, e
	}
	states[T-1] = s

	for t := T - 2; t >= 0; t-- {
		next := states[t+1]
		if realized != nil {
			next = realized[t+1]
		}
		// p(x_t | y_1..y_t, x_t+1) ∝ p(x_t+1 | x_t) p(x_t | y_1..y_t)
		for j := 0; j < n; j++ {
			backward[t][j] = math.Log(m.trans[next][j]) + forward[t][j]
		}
		if e := logNormalizeRow(backward[t], t); e != nil {
			return nil, nil, e
		}
		s, e = sampleLogRow(backward[t], scratch, src, t)
		if e != nil {
			return nil, nil, e
		}
		states[t] = s
		if glog.V(3) {
			glog.Infof("t: %4d | next: %2d | state: %2d", t, next, s)
		}
	}

	return states, backward, nil
}
