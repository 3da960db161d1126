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
	"fmt"
	"sort"
	"strings"

	"github.com/Factom-Asset-Tokens/factom-wrapper/factom"
	"github.com/posener/complete"
	"github.com/spf13/cobra"
)

var fromDaemon bool

// balanceCmd represents the balance command
var balanceCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		DisableFlagsInUseLine: true,
		Use: `
balance [ADDRESS...]`[1:],
		Aliases: []string{"balances"},
		Short:   "Get balances for addresses",
		Long: `
Get the balance of each Factoid (FA) or Entry Credit (EC) ADDRESS.

If no ADDRESS is given, list every address held by factom-walletd with its
name and balance.

Entry Credit balances are queried from factom-walletd unless --daemon is given,
in which case factomd is queried directly.
`[1:],
		Args: balanceArgs,
		RunE: balance,
	}
	rootCmd.AddCommand(cmd)
	rootCmplCmd.Sub["balance"] = balanceCmplCmd
	rootCmplCmd.Sub["help"].Sub["balance"] = complete.Command{}
	cmd.Flags().BoolVar(&fromDaemon, "daemon", false,
		"Query factomd for Entry Credit balances")
	generateCmplFlags(cmd, balanceCmplCmd.Flags)
	return cmd
}()

var balanceCmplCmd = complete.Command{
	Flags: mergeFlags(apiCmplFlags),
	Args:  PredictAddresses,
}

func balanceArgs(cmd *cobra.Command, args []string) error {
	dupl := make(map[string]struct{}, len(args))
	for _, adr := range args {
		if err := adrValid(adr); err != nil {
			return fmt.Errorf("%v: %w", adr, err)
		}
		if _, ok := dupl[adr]; ok {
			return fmt.Errorf("duplicate: %v", adr)
		}
		dupl[adr] = struct{}{}
	}
	return nil
}

func balance(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if len(args) == 0 {
		balances, err := FactomClient.Balances(ctx)
		if err != nil {
			return err
		}
		printBalances(balances.Factoids, "FCT")
		printBalances(balances.EntryCredits, "EC")
		return nil
	}
	for _, adr := range args {
		if strings.HasPrefix(adr, "FA") {
			bal, err := FactomClient.FactoidBalance(ctx, adr)
			if err != nil {
				return err
			}
			fmt.Println(adr, bal, "FCT")
			continue
		}
		var bal uint64
		var err error
		if fromDaemon {
			bal, err = FactomClient.ECBalanceFromDaemon(ctx, adr)
		} else {
			bal, err = FactomClient.ECBalance(ctx, adr)
		}
		if err != nil {
			return err
		}
		fmt.Println(adr, bal, "EC")
	}
	return nil
}

func printBalances(balances map[string]factom.Balance, unit string) {
	adrs := make([]string, 0, len(balances))
	for adr := range balances {
		adrs = append(adrs, adr)
	}
	sort.Strings(adrs)
	for _, adr := range adrs {
		b := balances[adr]
		fmt.Println(b.Name, adr, b.Amount, unit)
	}
}
