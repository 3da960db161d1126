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
	"fmt"
	"strings"

	"github.com/Factom-Asset-Tokens/factom-wrapper/factom"
	"github.com/posener/complete"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// txCmd represents the tx command
var txCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tx",
		Aliases: []string{"transaction"},
		Short:   "Build a Factoid transaction step by step",
		Long: `
Build, sign and submit a Factoid transaction held by factom-walletd under a
NAME, one step per invocation.

The steps must be issued in order:
        tx new NAME
        tx add-input NAME ADDRESS AMOUNT       (one or more)
        tx add-output NAME ADDRESS AMOUNT      (or add-ec-output, any number)
        tx add-fee NAME ADDRESS                (or sub-fee)
        tx sign NAME
        tx submit NAME

AMOUNT is in Factoids, i.e. 1.5. Use 'tx delete NAME' to abandon a
transaction at any step before submit. Use 'transfer' or 'buy-ec' to run all
steps at once.
`[1:],
	}
	rootCmd.AddCommand(cmd)
	rootCmplCmd.Sub["tx"] = txCmplCmd
	rootCmplCmd.Sub["help"].Sub["tx"] = complete.Command{
		Sub: complete.Commands{},
	}
	generateCmplFlags(cmd, txCmplCmd.Flags)
	return cmd
}()

var txCmplCmd = complete.Command{
	Flags: mergeFlags(apiCmplFlags),
	Sub:   complete.Commands{},
}

func addTxCmd(use, short string, args cobra.PositionalArgs,
	predict complete.Predictor,
	call func(ctx context.Context, args []string) (factom.Response, error)) {
	name := strings.Fields(use)[0]
	cmd := &cobra.Command{
		DisableFlagsInUseLine: true,
		Use:                   use,
		Short:                 short,
		Args:                  args,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := call(cmd.Context(), args)
			if err != nil {
				return err
			}
			return printResponse(name, res)
		},
	}
	txCmd.AddCommand(cmd)
	cmplCmd := complete.Command{Flags: mergeFlags(apiCmplFlags),
		Args: predict}
	txCmplCmd.Sub[name] = cmplCmd
	rootCmplCmd.Sub["help"].Sub["tx"].Sub[name] = complete.Command{}
	generateCmplFlags(cmd, cmplCmd.Flags)
}

// printResponse prints res and returns an error if it reports failure.
func printResponse(op string, res factom.Response) error {
	if !res.Success {
		return fmt.Errorf("%v: %v", op, res.Response)
	}
	fmt.Println(res.Response)
	return nil
}

// amountArgs validates NAME ADDRESS AMOUNT.
func amountArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.ExactArgs(3)(cmd, args); err != nil {
		return err
	}
	if err := adrValid(args[1]); err != nil {
		return fmt.Errorf("%v: %w", args[1], err)
	}
	_, err := parseAmount(args[2])
	return err
}

// parseAmount parses a positive Factoid amount.
func parseAmount(s string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid AMOUNT: %w", err)
	}
	if !amount.IsPositive() {
		return decimal.Decimal{}, fmt.Errorf("AMOUNT must be positive")
	}
	return amount, nil
}

func init() {
	nameArg := cobra.ExactArgs(1)
	addTxCmd("new NAME", "Create a transaction", nameArg, nil,
		func(ctx context.Context, args []string) (factom.Response, error) {
			return FactomClient.NewTransaction(ctx, args[0])
		})
	addTxCmd("add-input NAME ADDRESS AMOUNT", "Add an input",
		amountArgs, PredictFAAddresses,
		func(ctx context.Context, args []string) (factom.Response, error) {
			amount, _ := parseAmount(args[2])
			return FactomClient.AddInput(ctx, args[0], args[1], amount)
		})
	addTxCmd("add-output NAME ADDRESS AMOUNT", "Add an output",
		amountArgs, PredictFAAddresses,
		func(ctx context.Context, args []string) (factom.Response, error) {
			amount, _ := parseAmount(args[2])
			return FactomClient.AddOutput(ctx, args[0], args[1], amount)
		})
	addTxCmd("add-ec-output NAME EC-ADDRESS AMOUNT",
		"Add an output buying Entry Credits",
		amountArgs, PredictECAddresses,
		func(ctx context.Context, args []string) (factom.Response, error) {
			amount, _ := parseAmount(args[2])
			return FactomClient.AddECOutput(ctx, args[0], args[1], amount)
		})
	addTxCmd("add-fee NAME ADDRESS", "Pay the fee from an input",
		cobra.ExactArgs(2), PredictFAAddresses,
		func(ctx context.Context, args []string) (factom.Response, error) {
			return FactomClient.AddFee(ctx, args[0], args[1])
		})
	addTxCmd("sub-fee NAME ADDRESS", "Pay the fee from an output",
		cobra.ExactArgs(2), PredictFAAddresses,
		func(ctx context.Context, args []string) (factom.Response, error) {
			return FactomClient.SubFee(ctx, args[0], args[1])
		})
	addTxCmd("sign NAME", "Sign a transaction", nameArg, nil,
		func(ctx context.Context, args []string) (factom.Response, error) {
			return FactomClient.SignTransaction(ctx, args[0])
		})
	addTxCmd("submit NAME", "Submit a signed transaction", nameArg, nil,
		func(ctx context.Context, args []string) (factom.Response, error) {
			return FactomClient.SubmitTransaction(ctx, args[0])
		})
	addTxCmd("delete NAME", "Abandon a transaction", nameArg, nil,
		func(ctx context.Context, args []string) (factom.Response, error) {
			return FactomClient.DeleteTransaction(ctx, args[0])
		})

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List the transactions held by factom-walletd",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			txs, err := FactomClient.Transactions(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Println(txs)
			return nil
		},
	}
	txCmd.AddCommand(listCmd)
	txCmplCmd.Sub["list"] = complete.Command{Flags: mergeFlags(apiCmplFlags)}
}
