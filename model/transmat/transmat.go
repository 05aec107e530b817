// Copyright (c) 2026 The RAMbrandt Authors. All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package transmat generates column-stochastic transition matrices for
// discrete-state models. Each generator builds per-state kernel rows,
// normalizes them, and transposes the result so every column sums to one,
// matching the convention trans[i][j] = P(next = i | current = j).
package transmat

import (
	"fmt"

	"github.com/golang/glog"
	"github.com/mhw32/RAMbrandt/floatx"
	"gonum.org/v1/gonum/stat/distuv"
)

// Kind selects a generator.
type Kind int

const (
	// FixedBias puts a fixed probability on staying in the current state
	// and spreads the remainder evenly over the others.
	FixedBias Kind = iota
	// Gaussian1D centers a one-dimensional Gaussian kernel on each state.
	Gaussian1D
	// Gaussian2D sums two-dimensional Gaussian filters centered on the
	// diagonal before normalizing.
	Gaussian2D
)

func (k Kind) String() string {
	switch k {
	case FixedBias:
		return "fixed-bias"
	case Gaussian1D:
		return "gaussian-1d"
	case Gaussian2D:
		return "gaussian-2d"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind maps a config string to a Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "fixed-bias":
		return FixedBias, nil
	case "gaussian-1d":
		return Gaussian1D, nil
	case "gaussian-2d":
		return Gaussian2D, nil
	}
	return 0, fmt.Errorf("transmat: unknown kind [%s]", s)
}

// KindFromDim maps a dimension mode to a Kind: 0 is fixed bias, 1 and 2 are
// the Gaussian kernels. Modes above 2 clamp to 2.
func KindFromDim(dim int) Kind {
	switch {
	case dim <= 0:
		return FixedBias
	case dim == 1:
		return Gaussian1D
	default:
		return Gaussian2D
	}
}

// Params holds generator settings. Zero values select the defaults
// (bias 0.8, sigma 1).
type Params struct {
	Bias  float64
	Sigma float64
}

func (p Params) withDefaults() Params {
	if p.Bias == 0 {
		p.Bias = 0.8
	}
	if p.Sigma == 0 {
		p.Sigma = 1.0
	}
	return p
}

// Generate builds an n x n column-stochastic transition matrix of the given
// kind.
func Generate(kind Kind, n int, p Params) ([][]float64, error) {

	p = p.withDefaults()
	glog.V(2).Infof("generating %s transition matrix, n = %d", kind, n)
	switch kind {
	case FixedBias:
		return FixedBiasMatrix(n, p.Bias)
	case Gaussian1D:
		return Gaussian1DMatrix(n, p.Sigma)
	case Gaussian2D:
		return Gaussian2DMatrix(n, p.Sigma)
	}
	return nil, fmt.Errorf("transmat: unknown kind [%d]", int(kind))
}

// FixedBiasMatrix keeps probability bias on the diagonal and spreads the
// remainder evenly over the other n-1 states. Useful for straight cutoffs.
func FixedBiasMatrix(n int, bias float64) ([][]float64, error) {

	if n < 2 {
		return nil, fmt.Errorf("transmat: need at least 2 states, got [%d]", n)
	}
	if bias <= 0 || bias >= 1 {
		return nil, fmt.Errorf("transmat: bias must be in (0,1), got [%f]", bias)
	}
	fill := (1 - bias) / float64(n-1)
	trans := floatx.MakeFloat2D(n, n)
	for i := 0; i < n; i++ {
		floatx.Apply(floatx.SetValueFunc(fill), trans[i], nil)
		trans[i][i] = bias
	}
	// Rows and columns are symmetric here; the transpose keeps the column
	// convention explicit.
	return floatx.Transpose(trans), nil
}

// Gaussian1DMatrix builds each row from a Gaussian density centered on the
// row's state index, normalized over the state range.
func Gaussian1DMatrix(n int, sigma float64) ([][]float64, error) {

	if n < 1 {
		return nil, fmt.Errorf("transmat: need at least 1 state, got [%d]", n)
	}
	if sigma <= 0 {
		return nil, fmt.Errorf("transmat: sigma must be positive, got [%f]", sigma)
	}
	trans := floatx.MakeFloat2D(n, n)
	for i := 0; i < n; i++ {
		kernel := distuv.Normal{Mu: float64(i), Sigma: sigma}
		for j := 0; j < n; j++ {
			trans[i][j] = kernel.Prob(float64(j))
		}
		floatx.Normalize(trans[i], nil)
	}
	return floatx.Transpose(trans), nil
}

// Gaussian2DMatrix sums an isotropic two-dimensional Gaussian filter centered
// on each diagonal entry, then normalizes each row. The 2-D density at (x,y)
// is the product of two 1-D densities sharing sigma.
func Gaussian2DMatrix(n int, sigma float64) ([][]float64, error) {

	if n < 1 {
		return nil, fmt.Errorf("transmat: need at least 1 state, got [%d]", n)
	}
	if sigma <= 0 {
		return nil, fmt.Errorf("transmat: sigma must be positive, got [%f]", sigma)
	}
	trans := floatx.MakeFloat2D(n, n)
	for c := 0; c < n; c++ {
		kernel := distuv.Normal{Mu: float64(c), Sigma: sigma}
		for i := 0; i < n; i++ {
			px := kernel.Prob(float64(i))
			for j := 0; j < n; j++ {
				trans[i][j] += px * kernel.Prob(float64(j))
			}
		}
	}
	for i := 0; i < n; i++ {
		floatx.Normalize(trans[i], nil)
	}
	return floatx.Transpose(trans), nil
}
