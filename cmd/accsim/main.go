// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/tebeka/atexit"

	"github.com/ezrec/accsim/cpu"
	"github.com/ezrec/accsim/emulator"
	"github.com/ezrec/accsim/harness"
	"github.com/ezrec/accsim/manifest"
)

// demo loads the subtract-until-zero program into an emulator.
func demo(emu *emulator.Emulator) {
	emu.Memory.Load(10, 10).Load(80, 5000)

	emu.Image.
		Set(0, cpu.MakeLoad(80)).
		Set(1, cpu.MakeSubtract(10)).
		Set(2, cpu.MakeStore(80)).
		Set(3, cpu.MakeBranchZero(5)).
		Set(4, cpu.MakeBranch(0)).
		Set(5, cpu.MakeHalt()).
		Set(10, cpu.MakeData()).
		Set(80, cpu.MakeData())
}

func main() {
	var verbose bool
	var limit int
	var trace string
	var listing bool

	flag.BoolVar(&verbose, "v", false, "Verbose mode, trace each instruction")
	flag.IntVar(&limit, "n", 0, "Maximum instructions per run (0 is unlimited)")
	flag.StringVar(&trace, "trace", "", "Trace log file (default stderr)")
	flag.BoolVar(&listing, "l", false, "List program and memory before running")

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %v [flags] [manifest.star ...]\n", os.Args[0])
		flag.PrintDefaults()
	}

	flag.Parse()

	if len(trace) != 0 {
		ouf, err := os.Create(trace)
		if err != nil {
			log.Fatalf("%v: %v", trace, err)
		}
		atexit.Register(func() {
			log.SetOutput(os.Stderr)
			err := ouf.Close()
			if err != nil {
				log.Printf("%v: %v", trace, err)
			}
		})
		log.SetOutput(ouf)
	}

	// No manifests, run the built-in demo.
	if flag.NArg() == 0 {
		emu := emulator.NewEmulator()
		emu.Verbose = verbose
		emu.Limit = limit
		demo(emu)

		if listing {
			fmt.Print(emu.Image)
			fmt.Print(emu.Memory)
		}

		_, err := emu.Run()
		fmt.Print(emu.Cpu)
		if err != nil {
			atexit.Fatal(err)
		}
		atexit.Exit(0)
	}

	var cases []harness.Testcase
	for _, path := range flag.Args() {
		loaded, err := manifest.LoadFile(path)
		if err != nil {
			atexit.Fatalf("%v: %v", path, err)
		}
		cases = append(cases, loaded...)
	}

	for n := range cases {
		cases[n].Verbose = verbose
		if limit > 0 && cases[n].Limit == 0 {
			cases[n].Limit = limit
		}
		if listing {
			fmt.Printf("%v:\n%v%v", cases[n].Name, cases[n].Image, cases[n].Memory)
		}
	}

	results, failed := harness.RunAll(cases)
	err := harness.Report(os.Stdout, results)
	if err != nil {
		atexit.Fatal(err)
	}

	if failed > 0 {
		atexit.Exit(1)
	}
	atexit.Exit(0)
}
