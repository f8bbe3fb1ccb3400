// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// spendplan plans a payment against a snapshot of unspent outputs and prints
// the resulting input selection, fee and change. It is an inspection tool:
// the plan it prints is what a wallet would hand to its transaction builder,
// not a transaction itself.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btclog"
	"github.com/conformal-tools/spendplan/pkg/btcunit"
	"github.com/conformal-tools/spendplan/planner"
	"github.com/davecgh/go-spew/spew"
	flags "github.com/jessevdk/go-flags"
)

type config struct {
	UTXOFile string `short:"u" long:"utxos" description:"Path to a JSON file holding the unspent output snapshot" required:"true"`

	Amount int64 `short:"a" long:"amount" description:"Payment amount in satoshis" required:"true"`

	FeeRate int64 `short:"f" long:"feerate" description:"Fee rate in sat/vb" required:"true"`

	DustThreshold int64 `long:"dust" description:"Dust threshold in satoshis" default:"546"`

	Strict bool `long:"strict" description:"Exit with an error when the plan is infeasible"`

	Verbose bool `short:"v" long:"verbose" description:"Dump the full plan"`

	DebugLevel string `short:"d" long:"debuglevel" description:"Logging level {trace, debug, info, warn, error, critical}" default:"info"`
}

func run() error {
	cfg := config{}

	_, err := flags.Parse(&cfg)
	if err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) &&
			flagsErr.Type == flags.ErrHelp {

			os.Exit(0)
		}

		return err
	}

	setupLogging(cfg.DebugLevel)

	utxos, err := loadUTXOs(cfg.UTXOFile)
	if err != nil {
		return fmt.Errorf("unable to load utxos: %w", err)
	}

	p, err := planner.NewPlanner(planner.Policy{
		DustThreshold: btcutil.Amount(cfg.DustThreshold),
	})
	if err != nil {
		return err
	}

	amount := btcutil.Amount(cfg.Amount)
	feeRate := btcunit.NewSatPerVByte(btcutil.Amount(cfg.FeeRate))

	var plan *planner.SpendPlan
	if cfg.Strict {
		plan, err = p.PlanStrict(utxos, amount, feeRate)
	} else {
		plan, err = p.Plan(utxos, amount, feeRate)
	}
	if err != nil {
		return err
	}

	printPlan(plan, cfg.Verbose)

	return nil
}

// setupLogging wires the planner package logger to a console backend at the
// requested level. Unknown levels leave logging disabled, matching the
// library default.
func setupLogging(debugLevel string) {
	level, ok := btclog.LevelFromString(debugLevel)
	if !ok {
		return
	}

	backend := btclog.NewBackend(os.Stderr)
	logger := backend.Logger("PLNR")
	logger.SetLevel(level)

	planner.UseLogger(logger)
}

// printPlan writes a human-readable summary of the plan to stdout.
func printPlan(plan *planner.SpendPlan, verbose bool) {
	fmt.Printf("inputs (%d):\n", len(plan.Inputs))
	for _, input := range plan.Inputs {
		fmt.Printf("  %v  %d sat\n", input.OutPoint, input.Value)
	}

	fmt.Printf("total in: %d sat\n", plan.TotalIn)
	fmt.Printf("outputs:  %d\n", plan.OutputCount)
	fmt.Printf("fee:      %d sat\n", plan.Fee)
	fmt.Printf("change:   %d sat\n", plan.Change)
	fmt.Printf("feasible: %v\n", plan.Feasible)

	if verbose {
		spew.Dump(plan)
	}
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
