// Copyright (c) 2026 The RAMbrandt Authors. All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command rambrandt runs forward-filtering backward-sampling experiments
// from a TOML config: it builds a transition matrix, filters a likelihood
// sequence, and prints sampled state trajectories.
package main

import (
	"flag"
	"fmt"
	"math"
	"math/rand"
	"os"

	"github.com/golang/glog"
	"gopkg.in/alecthomas/kingpin.v2"

	rambrandt "github.com/mhw32/RAMbrandt"
	"github.com/mhw32/RAMbrandt/model/hmm"
	"github.com/mhw32/RAMbrandt/model/transmat"
)

const (
	appName    = "rambrandt"
	appVersion = "0.1"
)

var (
	app        = kingpin.New(appName, "Forward-filtering backward-sampling tool.")
	configPath = app.Flag("config", "Experiment config file (TOML).").Short('c').String()
	vLevel     = app.Flag("log-level", "Enable V-leveled logging at the specified level.").Default("0").Short('v').String()
	kindFlag   = app.Flag("kind", "Transition generator kind, overrides config.").String()

	sample     = app.Command("sample", "Draw state trajectories from the model posterior.")
	sampleNum  = sample.Flag("num", "Number of trajectories to draw.").Default("1").Int()
	sampleSeed = sample.Flag("seed", "Seed for the uniform draw source, overrides config.").Int64()

	trans = app.Command("trans", "Print the generated transition matrix.")
)

func main() {
	app.Version(appVersion)
	cmd := kingpin.MustParse(app.Parse(os.Args[1:]))
	initGlog()
	defer glog.Flush()

	config := readConfig()
	if config.NumStates < 2 {
		config.NumStates = 2
	}
	if config.SeqLength < 1 {
		config.SeqLength = 10
	}

	switch cmd {

	case sample.FullCommand():
		glog.V(1).Info("start sample command")
		doSample(config)

	case trans.FullCommand():
		glog.V(1).Info("start trans command")
		doTrans(config)
	}
}

func initGlog() {
	flag.Set("logtostderr", "true")
	flag.Set("v", *vLevel)
}

func readConfig() *rambrandt.Config {

	if len(*configPath) == 0 {
		return rambrandt.DefaultConfig()
	}
	f, e := os.Open(*configPath)
	rambrandt.Fatal(e)
	defer f.Close()
	config, e := rambrandt.ReadConfig(f)
	rambrandt.Fatal(e)
	return config
}

func buildTrans(config *rambrandt.Config) [][]float64 {

	kindName := config.Transition.Kind
	if len(*kindFlag) > 0 {
		kindName = *kindFlag
	}
	kind, e := transmat.ParseKind(kindName)
	rambrandt.Fatal(e)
	t, e := transmat.Generate(kind, config.NumStates, transmat.Params{
		Bias:  config.Transition.Bias,
		Sigma: config.Transition.Sigma,
	})
	rambrandt.Fatal(e)
	return t
}

func doSample(config *rambrandt.Config) {

	m, e := hmm.NewModel(buildTrans(config))
	rambrandt.Fatal(e)

	n := config.NumStates
	prior := make([]float64, n)
	for i := range prior {
		prior[i] = -math.Log(float64(n))
	}
	// Uninformative emissions: the trajectory reflects the transition
	// structure and the prior alone.
	lls := make([][]float64, config.SeqLength)
	for t := range lls {
		lls[t] = make([]float64, n)
	}
	temp := hmm.Tempering{Alpha: config.Tempering.Alpha, Beta: config.Tempering.Beta}

	forward, e := m.Forward(lls, prior, temp)
	rambrandt.Fatal(e)

	seed := config.Seed
	if *sampleSeed != 0 {
		seed = *sampleSeed
	}
	r := rand.New(rand.NewSource(seed))
	for i := 0; i < *sampleNum; i++ {
		states, _, e := m.Backward(forward, r)
		rambrandt.Fatal(e)
		fmt.Println(states)
	}
}

func doTrans(config *rambrandt.Config) {

	for _, row := range buildTrans(config) {
		for _, v := range row {
			fmt.Printf("%8.5f ", v)
		}
		fmt.Println()
	}
}
