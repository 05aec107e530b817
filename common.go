// Copyright (c) 2026 The RAMbrandt Authors. All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package rambrandt provides shared helpers and experiment configuration for
// the FFBS inference packages.
package rambrandt

import "github.com/golang/glog"

const (
	// DefaultSeed for random number generators.
	DefaultSeed = 33
)

// Fatal logs the error and exits when err is not nil.
func Fatal(err error) {
	if err != nil {
		glog.Fatal(err)
	}
}
