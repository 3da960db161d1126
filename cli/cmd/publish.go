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
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Factom-Asset-Tokens/factom-wrapper/engine"
	"github.com/Factom-Asset-Tokens/factom-wrapper/factom"
	"github.com/posener/complete"
	"github.com/spf13/cobra"
)

var (
	ecAdr   string
	chainID string
	extIDs  []string
	content string
)

func publishFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVarP(&ecAdr, "ecadr", "e", "",
		"Entry Credit address paying for the entry")
	flags.StringArrayVarP(&extIDs, "extid", "x", nil,
		"External ID, may be used multiple times")
	flags.StringVar(&content, "content", "",
		`Entry content, or "-" to read it from stdin`)
	cobra.MarkFlagRequired(flags, "ecadr")
}

// chainCmd represents the chain command
var chainCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		DisableFlagsInUseLine: true,
		Use: `
chain --ecadr <EC> [--extid <ExtID>]... [--content <content>]`[1:],
		Short: "Create a new chain",
		Long: `
Create a new chain whose first entry has the given --extid and --content,
paying with --ecadr.

The chain is committed to factomd and revealed after --settle-delay. If the
reveal fails after the commit was accepted, the Entry Credits are spent and the
reveal payload is printed so that it may be revealed again.
`[1:],
		Args: cobra.ExactArgs(0),
		RunE: createChain,
	}
	rootCmd.AddCommand(cmd)
	rootCmplCmd.Sub["chain"] = chainCmplCmd
	rootCmplCmd.Sub["help"].Sub["chain"] = complete.Command{}
	publishFlags(cmd)
	generateCmplFlags(cmd, chainCmplCmd.Flags)
	return cmd
}()

var chainCmplCmd = complete.Command{
	Flags: mergeFlags(apiCmplFlags, ecCmplFlags),
}

// entryCmd represents the entry command
var entryCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		DisableFlagsInUseLine: true,
		Use: `
entry --chainid <chain-id> --ecadr <EC> [--extid <ExtID>]... [--content <content>]`[1:],
		Short: "Add an entry to a chain",
		Long: `
Add an entry with the given --extid and --content to --chainid, paying with
--ecadr. See 'chain --help' for how the entry is published.
`[1:],
		Args: cobra.ExactArgs(0),
		RunE: createEntry,
	}
	rootCmd.AddCommand(cmd)
	rootCmplCmd.Sub["entry"] = entryCmplCmd
	rootCmplCmd.Sub["help"].Sub["entry"] = complete.Command{}
	publishFlags(cmd)
	cmd.Flags().StringVarP(&chainID, "chainid", "c", "", "Chain ID")
	cobra.MarkFlagRequired(cmd.Flags(), "chainid")
	generateCmplFlags(cmd, entryCmplCmd.Flags)
	return cmd
}()

var entryCmplCmd = complete.Command{
	Flags: mergeFlags(apiCmplFlags, ecCmplFlags),
}

var ecCmplFlags = complete.Flags{
	"--ecadr": PredictECAddresses,
	"-e":      PredictECAddresses,
}

func readContent() (string, error) {
	if content != "-" {
		return content, nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func createChain(cmd *cobra.Command, _ []string) error {
	if err := factom.ValidECAddress(ecAdr); err != nil {
		return fmt.Errorf("--ecadr: %w", err)
	}
	content, err := readContent()
	if err != nil {
		return err
	}
	pub, err := newEngine().CreateChain(cmd.Context(), ecAdr, extIDs, content)
	return printPublication(pub, err)
}

func createEntry(cmd *cobra.Command, _ []string) error {
	if err := factom.ValidECAddress(ecAdr); err != nil {
		return fmt.Errorf("--ecadr: %w", err)
	}
	content, err := readContent()
	if err != nil {
		return err
	}
	pub, err := newEngine().CreateEntry(cmd.Context(),
		ecAdr, chainID, extIDs, content)
	return printPublication(pub, err)
}

func printPublication(pub engine.Publication, err error) error {
	var revealErr *engine.RevealFailedAfterCommitError
	if errors.As(err, &revealErr) {
		fmt.Println("Committed:", pub.Commit.Response)
		fmt.Println("Reveal payload:", string(revealErr.Reveal))
	}
	if err != nil {
		return err
	}
	if len(pub.ChainID) > 0 {
		fmt.Println("Chain ID:", pub.ChainID)
	}
	fmt.Println("Committed:", pub.Commit.Response)
	fmt.Println("Revealed:", pub.Reveal.Response)
	return nil
}
