package main

import (
	"flag"

	"github.com/cltScale/SamplingDist/onet/log"
	simul "github.com/cltScale/SamplingDist/simulation"
)

// DefaultRunFile is simulated when no run-file is given on the command line.
const DefaultRunFile = "clt.toml"

func main() {
	flag.Parse()
	rcs := flag.Args()
	if len(rcs) == 0 {
		rcs = []string{DefaultRunFile}
	}
	log.Lvl2("running run-files", rcs)
	simul.Start(rcs...)
}
