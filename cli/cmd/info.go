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
	"encoding/json"
	"fmt"

	"github.com/Factom-Asset-Tokens/factom-wrapper/factom"
	"github.com/posener/complete"
	"github.com/spf13/cobra"
)

// dblockCmd represents the dblock command
var dblockCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		DisableFlagsInUseLine: true,
		Use: `
dblock [KEYMR]`[1:],
		Aliases: []string{"dblocks", "block"},
		Short:   "Get a Directory Block",
		Long: `
Print the Directory Block with the given KEYMR, or the most recent one if no
KEYMR is given.
`[1:],
		Args: cobra.MaximumNArgs(1),
		RunE: dblock,
	}
	rootCmd.AddCommand(cmd)
	rootCmplCmd.Sub["dblock"] = dblockCmplCmd
	rootCmplCmd.Sub["help"].Sub["dblock"] = complete.Command{}
	generateCmplFlags(cmd, dblockCmplCmd.Flags)
	return cmd
}()

var dblockCmplCmd = complete.Command{
	Flags: mergeFlags(apiCmplFlags),
}

func dblock(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	var keyMR string
	if len(args) == 1 {
		keyMR = args[0]
	} else {
		var err error
		if keyMR, err = FactomClient.DBlockHead(ctx); err != nil {
			return err
		}
	}
	db, err := FactomClient.DBlockByKeyMR(ctx, keyMR)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(db, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println("KeyMR:", db.KeyMR)
	fmt.Println(string(data))
	return nil
}

// heightsCmd represents the heights command
var heightsCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "heights",
		Aliases: []string{"height"},
		Short:   "Get factomd's block heights",
		Long: `
Print the current Directory Block height. With --all, print every height
reported by factomd's v2 API.
`[1:],
		Args: cobra.ExactArgs(0),
		RunE: heights,
	}
	rootCmd.AddCommand(cmd)
	rootCmplCmd.Sub["heights"] = heightsCmplCmd
	rootCmplCmd.Sub["help"].Sub["heights"] = complete.Command{}
	cmd.Flags().BoolVar(&allHeights, "all", false, "Print all heights")
	generateCmplFlags(cmd, heightsCmplCmd.Flags)
	return cmd
}()

var allHeights bool

var heightsCmplCmd = complete.Command{
	Flags: mergeFlags(apiCmplFlags),
}

func heights(cmd *cobra.Command, _ []string) error {
	if !allHeights {
		height, err := FactomClient.DBlockHeight(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println(height)
		return nil
	}
	var h factom.Heights
	if err := h.Get(FactomClient); err != nil {
		return err
	}
	fmt.Println("Directory Block:", h.DirectoryBlock)
	fmt.Println("Leader:", h.Leader)
	fmt.Println("Entry Block:", h.EntryBlock)
	fmt.Println("Entry:", h.Entry)
	return nil
}

// propertiesCmd represents the properties command
var propertiesCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "properties",
		Short: "Get factom-walletd's version information",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			props, err := FactomClient.Properties(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Println(props)
			return nil
		},
	}
	rootCmd.AddCommand(cmd)
	cmplCmd := complete.Command{Flags: mergeFlags(apiCmplFlags)}
	rootCmplCmd.Sub["properties"] = cmplCmd
	rootCmplCmd.Sub["help"].Sub["properties"] = complete.Command{}
	generateCmplFlags(cmd, cmplCmd.Flags)
	return cmd
}()

// feeCmd represents the fee command
var feeCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		DisableFlagsInUseLine: true,
		Use: `
fee [AMOUNT]`[1:],
		Aliases: []string{"rate"},
		Short:   "Get the Entry Credit rate",
		Long: `
Print the current price of one Entry Credit in Factoids. If AMOUNT Factoids is
given, also print the number of Entry Credits it buys.
`[1:],
		Args: cobra.MaximumNArgs(1),
		RunE: fee,
	}
	rootCmd.AddCommand(cmd)
	cmplCmd := complete.Command{Flags: mergeFlags(apiCmplFlags)}
	rootCmplCmd.Sub["fee"] = cmplCmd
	rootCmplCmd.Sub["help"].Sub["fee"] = complete.Command{}
	generateCmplFlags(cmd, cmplCmd.Flags)
	return cmd
}()

func fee(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if len(args) == 0 {
		fee, err := FactomClient.Fee(ctx)
		if err != nil {
			return err
		}
		fmt.Println(fee, "FCT")
		return nil
	}
	amount, err := parseAmount(args[0])
	if err != nil {
		return err
	}
	credits, err := newEngine().ExpectedCredits(ctx, amount)
	if err != nil {
		return err
	}
	fmt.Println(credits, "EC")
	return nil
}
