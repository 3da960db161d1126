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

	"github.com/posener/complete"
	"github.com/spf13/cobra"
)

// addressCmd represents the address command
var addressCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "address",
		Aliases: []string{"addresses", "adr"},
		Short:   "Generate or import addresses in factom-walletd",
	}
	rootCmd.AddCommand(cmd)
	rootCmplCmd.Sub["address"] = addressCmplCmd
	rootCmplCmd.Sub["help"].Sub["address"] = complete.Command{
		Sub: complete.Commands{},
	}
	generateCmplFlags(cmd, addressCmplCmd.Flags)
	return cmd
}()

var addressCmplCmd = complete.Command{
	Flags: mergeFlags(apiCmplFlags),
	Sub:   complete.Commands{},
}

func addAddressCmd(use, short, long string, nArgs int,
	run func(*cobra.Command, []string) error) {
	name := strings.Fields(use)[0]
	cmd := &cobra.Command{
		DisableFlagsInUseLine: true,
		Use:                   use,
		Short:                 short,
		Long:                  long,
		Args:                  cobra.ExactArgs(nArgs),
		RunE:                  run,
	}
	addressCmd.AddCommand(cmd)
	cmplCmd := complete.Command{Flags: mergeFlags(apiCmplFlags)}
	addressCmplCmd.Sub[name] = cmplCmd
	rootCmplCmd.Sub["help"].Sub["address"].Sub[name] = complete.Command{}
	generateCmplFlags(cmd, cmplCmd.Flags)
}

func init() {
	addAddressCmd("new-fa NAME", "Generate a Factoid address", `
Generate a new Factoid address stored in factom-walletd under NAME.
`[1:], 1, func(cmd *cobra.Command, args []string) error {
		adr, err := FactomClient.GenerateFactoidAddress(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Println(adr)
		return nil
	})
	addAddressCmd("new-ec NAME", "Generate an Entry Credit address", `
Generate a new Entry Credit address stored in factom-walletd under NAME.
`[1:], 1, func(cmd *cobra.Command, args []string) error {
		adr, err := FactomClient.GenerateECAddress(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Println(adr)
		return nil
	})
	addAddressCmd("import PRIVATE-KEY NAME", "Import an address", `
Import the address for the human readable PRIVATE-KEY into factom-walletd under
NAME. Factoid private keys start with Fs and Entry Credit private keys start
with Es.
`[1:], 2, func(cmd *cobra.Command, args []string) error {
		key, name := args[0], args[1]
		var adr string
		var err error
		switch {
		case strings.HasPrefix(key, "Fs"):
			adr, err = FactomClient.ImportFactoidAddress(cmd.Context(),
				key, name)
		case strings.HasPrefix(key, "Es"):
			adr, err = FactomClient.ImportECAddress(cmd.Context(),
				key, name)
		default:
			return fmt.Errorf("PRIVATE-KEY must start with Fs or Es")
		}
		if err != nil {
			return err
		}
		fmt.Println(adr)
		return nil
	})
}
