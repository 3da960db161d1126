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
	"strings"

	"github.com/Factom-Asset-Tokens/factom-wrapper/engine"
	"github.com/Factom-Asset-Tokens/factom-wrapper/factom"
	"github.com/posener/complete"
	"github.com/spf13/cobra"
)

var txName string

// transferCmd represents the transfer command
var transferCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		DisableFlagsInUseLine: true,
		Use: `
transfer [--name NAME] FROM TO AMOUNT`[1:],
		Aliases: []string{"send"},
		Short:   "Send Factoids",
		Long: `
Send AMOUNT Factoids from the Factoid address FROM to the Factoid address TO.
The fee is paid by FROM on top of AMOUNT. FROM and TO may also be names known
to factom-walletd, which are passed through unchecked.

The transaction is created, funded, signed and submitted in factom-walletd
under NAME, or under a unique time based name if --name is not given. If any
step fails the transaction is left in factom-walletd under that name and may be
removed with 'tx delete NAME'.
`[1:],
		Args: transferArgs(factom.ValidFAAddress),
		RunE: transfer,
	}
	rootCmd.AddCommand(cmd)
	rootCmplCmd.Sub["transfer"] = transferCmplCmd
	rootCmplCmd.Sub["help"].Sub["transfer"] = complete.Command{}
	cmd.Flags().StringVar(&txName, "name", "", "Transaction name")
	generateCmplFlags(cmd, transferCmplCmd.Flags)
	return cmd
}()

var transferCmplCmd = complete.Command{
	Flags: mergeFlags(apiCmplFlags),
	Args:  PredictFAAddresses,
}

// buyECCmd represents the buy-ec command
var buyECCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		DisableFlagsInUseLine: true,
		Use: `
buy-ec [--name NAME] FROM EC-ADDRESS AMOUNT`[1:],
		Aliases: []string{"buy"},
		Short:   "Convert Factoids to Entry Credits",
		Long: `
Convert AMOUNT Factoids from the Factoid address FROM into Entry Credits for
EC-ADDRESS. The fee is paid by FROM on top of AMOUNT. FROM and EC-ADDRESS may
also be names known to factom-walletd.

The expected number of Entry Credits at the current rate is logged before the
transaction is submitted. See 'transfer --help' for transaction naming.
`[1:],
		Args: transferArgs(factom.ValidECAddress),
		RunE: buyEC,
	}
	rootCmd.AddCommand(cmd)
	rootCmplCmd.Sub["buy-ec"] = buyECCmplCmd
	rootCmplCmd.Sub["help"].Sub["buy-ec"] = complete.Command{}
	cmd.Flags().StringVar(&txName, "name", "", "Transaction name")
	generateCmplFlags(cmd, buyECCmplCmd.Flags)
	return cmd
}()

var buyECCmplCmd = complete.Command{
	Flags: mergeFlags(apiCmplFlags),
	Args:  complete.PredictOr(PredictFAAddresses, PredictECAddresses),
}

func transferArgs(validTo func(string) error) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(3)(cmd, args); err != nil {
			return err
		}
		if err := adrOrName(args[0], factom.ValidFAAddress); err != nil {
			return fmt.Errorf("FROM: %w", err)
		}
		if err := adrOrName(args[1], validTo); err != nil {
			return fmt.Errorf("%v: %w", args[1], err)
		}
		_, err := parseAmount(args[2])
		return err
	}
}

// adrOrName accepts a wallet name or a public address passing valid. Anything
// with a public address prefix must be a valid address.
func adrOrName(s string, valid func(string) error) error {
	if len(s) == 0 {
		return fmt.Errorf("empty address")
	}
	if strings.HasPrefix(s, "FA") || strings.HasPrefix(s, "EC") {
		return valid(s)
	}
	return nil
}

func transfer(cmd *cobra.Command, args []string) error {
	amount, _ := parseAmount(args[2])
	rcpt, err := newEngine().Transfer(cmd.Context(),
		args[0], args[1], amount, txName)
	return printReceipt(rcpt, err)
}

func buyEC(cmd *cobra.Command, args []string) error {
	amount, _ := parseAmount(args[2])
	rcpt, err := newEngine().PurchaseCredits(cmd.Context(),
		args[0], args[1], amount, txName)
	return printReceipt(rcpt, err)
}

func printReceipt(rcpt engine.Receipt, err error) error {
	if err != nil {
		return fmt.Errorf("transaction %q: %w", rcpt.TxName, err)
	}
	fmt.Println("Transaction:", rcpt.TxName)
	fmt.Println(rcpt.Response)
	return nil
}
