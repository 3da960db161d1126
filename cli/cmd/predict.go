// MIT License
//
// Copyright 2018 Canonical Ledgers, LLC
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to
// deal in the Software without restriction, including without limitation the
// rights to use, copy, modify, merge, publish, distribute, sublicense, and/or
// sell copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING
// FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS
// IN THE SOFTWARE.

package cmd

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/Factom-Asset-Tokens/factom-wrapper/factom"
	"github.com/posener/complete"
)

// parseAPIFlags parses the API flags from the line being completed so that
// predictions query the same endpoints the command would.
func parseAPIFlags() error {
	args := strings.Fields(os.Getenv("COMP_LINE"))
	if len(args) > 0 {
		args = args[1:]
	}
	if err := apiFlags.Parse(args); err != nil {
		return err
	}
	FactomClient.SetTimeout(time.Second / 3)
	return nil
}

// predictBalances returns a Predictor listing the addresses held by
// factom-walletd, Factoid or Entry Credit, excluding those already completed.
func predictBalances(ec bool) complete.PredictFunc {
	return func(args complete.Args) []string {
		if err := parseAPIFlags(); err != nil {
			return nil
		}
		balances, err := FactomClient.Balances(context.Background())
		if err != nil {
			return nil
		}
		adrs := balances.Factoids
		if ec {
			adrs = balances.EntryCredits
		}
		completed := make(map[string]struct{}, len(args.Completed))
		for _, arg := range args.Completed {
			completed[arg] = struct{}{}
		}
		adrStrs := make([]string, 0, len(adrs))
		for adr := range adrs {
			if _, ok := completed[adr]; ok {
				continue
			}
			adrStrs = append(adrStrs, adr)
		}
		return adrStrs
	}
}

var (
	PredictFAAddresses = predictBalances(false)
	PredictECAddresses = predictBalances(true)
	PredictAddresses   = complete.PredictOr(PredictFAAddresses,
		PredictECAddresses)
)

// adrValid returns nil if adr is a valid public Factoid or Entry Credit
// address.
func adrValid(adr string) error {
	if strings.HasPrefix(adr, "EC") {
		return factom.ValidECAddress(adr)
	}
	return factom.ValidFAAddress(adr)
}
