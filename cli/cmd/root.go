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
	"time"

	"github.com/Factom-Asset-Tokens/factom-wrapper/engine"
	"github.com/Factom-Asset-Tokens/factom-wrapper/factom"
	"github.com/Factom-Asset-Tokens/factom-wrapper/lifecycle"
	_log "github.com/Factom-Asset-Tokens/factom-wrapper/log"
	"github.com/hashicorp/go-multierror"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/posener/complete"
	"github.com/spf13/cobra"
	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main(). It only needs to happen once
// to the rootCmd.
//
// Any services started by --start-factomd or --start-walletd are stopped
// before returning, even if the command failed.
func Execute(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	if stopErr := stopServices(rootCmd, nil); stopErr != nil {
		err = multierror.Append(err, stopErr).ErrorOrNil()
	}
	return err
}

var log = _log.New("cli")

var (
	cfgFile      string
	FactomClient = factom.NewClient()
	Debug        bool
	Timeout      time.Duration
	SettleDelay  time.Duration

	StartFactomd bool
	StartWalletd bool
	BinPath      string

	services *lifecycle.Manager
)

func init() {
	cobra.OnInitialize(initConfig, initClients)
}

// initClients sets the same timeout and debug settings for all Clients.
func initClients() {
	_log.SetDebug(Debug)
	FactomClient.SetDebug(Debug)
	FactomClient.SetTimeout(Timeout)
	FactomClient.Factomd.BasicAuth = len(FactomClient.Factomd.User) > 0
	FactomClient.Walletd.BasicAuth = len(FactomClient.Walletd.User) > 0
}

// newEngine returns an Engine using FactomClient.
func newEngine() *engine.Engine {
	return engine.New(FactomClient, engine.WithSettleDelay(SettleDelay))
}

var apiFlags = func() *flag.FlagSet {
	flags := flag.NewFlagSet("", flag.ContinueOnError)
	flags.ParseErrorsWhitelist.UnknownFlags = true
	flags.StringVarP(&FactomClient.FactomdServer, "factomd", "s",
		factom.FactomdDefault,
		"scheme://host:port for factomd")
	flags.StringVarP(&FactomClient.WalletdServer, "walletd", "w",
		factom.WalletdDefault,
		"scheme://host:port for factom-walletd")
	flags.StringVar(&FactomClient.Factomd.User, "factomduser", "",
		"factomd API user")
	flags.StringVar(&FactomClient.Factomd.Password, "factomdpassword", "",
		"factomd API password")
	flags.StringVar(&FactomClient.Walletd.User, "walletuser", "",
		"factom-walletd API user")
	flags.StringVar(&FactomClient.Walletd.Password, "walletpassword", "",
		"factom-walletd API password")
	flags.DurationVar(&Timeout, "timeout", 10*time.Second,
		"Timeout for all API requests (i.e. 10s, 1m)")
	flags.BoolVar(&Debug, "debug", false, "Print all API requests")
	return flags
}()

var serviceFlags = func() *flag.FlagSet {
	flags := flag.NewFlagSet("", flag.ContinueOnError)
	flags.BoolVar(&StartFactomd, "start-factomd", false,
		"Start factomd for the duration of the command")
	flags.BoolVar(&StartWalletd, "start-walletd", false,
		"Start factom-walletd for the duration of the command")
	flags.StringVar(&BinPath, "binpath", "",
		"Directory holding the factomd and factom-walletd binaries, if not in PATH")
	return flags
}()

// rootCmd represents the base command when called without any subcommands
var rootCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "factom-wrapper",
		Short: "Factom wallet and daemon client",
		Long: `factom-wrapper drives factomd and factom-walletd over their HTTP APIs.

It can query balances and blocks, build and submit Factoid transactions step by
step, transfer Factoids, buy Entry Credits, and publish chains and entries.

API Settings

factom-wrapper needs to query factom-walletd for addresses, balances and
transactions. Use --walletd to set the factom-walletd endpoint, if not on
http://localhost:8089.

factom-wrapper needs to query factomd for blocks and to commit and reveal chains
and entries. Use --factomd to specify the factomd endpoint, if not on
http://localhost:8088.

Settings may also be given as FACTOM_WRAPPER_<FLAG> environment variables or in
$HOME/.factom-wrapper.yaml.

Local Services

Use --start-factomd and --start-walletd to run the binaries for the duration of
a single command.`,
		Args:               cobra.ExactArgs(0),
		PreRunE:            validateRunCompletionFlags,
		Run:                runCompletion,
		PersistentPreRunE:  startServices,
		PersistentPostRunE: stopServices,
		SilenceUsage:       true,
		SilenceErrors:      true,
	}

	cmd.Flags().AddFlagSet(installCompletionFlags)
	flags := cmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "",
		"config file (default is $HOME/.factom-wrapper.yaml)")
	flags.AddFlagSet(apiFlags)
	flags.DurationVar(&SettleDelay, "settle-delay", engine.DefaultSettleDelay,
		"Wait between commit and reveal")
	flags.AddFlagSet(serviceFlags)

	generateCmplFlags(cmd, rootCmplCmd.Flags)
	return cmd
}()

var rootCmplCmd = complete.Command{
	Flags: mergeFlags(apiCmplFlags),
	Sub:   complete.Commands{"help": complete.Command{Sub: complete.Commands{}}},
}
var apiCmplFlags = complete.Flags{
	"--help":    complete.PredictNothing,
	"--config":  complete.PredictFiles("*.yaml"),
	"--binpath": complete.PredictDirs("*"),
}

func validateRunCompletionFlags(cmd *cobra.Command, _ []string) error {
	// Ensure that the install completion flags are not ever used with any
	// other flags.
	flags := cmd.Flags()
	installCompletionMode := false
	otherFlags := false
	flags.Visit(func(flg *flag.Flag) {
		switch flg.Name {
		case "install", "uninstall":
			installCompletionMode = true
		default:
			otherFlags = true
		}
	})
	if installCompletionMode && otherFlags {
		return fmt.Errorf(
			"--install and --uninstall may not be used with any other flags")
	}
	return nil
}

func runCompletion(cmd *cobra.Command, _ []string) {
	// Complete() returns true if it attempts to install completion,
	// otherwise just output the help page.
	if !Complete() {
		cmd.Help()
	}
}

func startServices(cmd *cobra.Command, _ []string) error {
	if !StartFactomd && !StartWalletd {
		return nil
	}
	services = lifecycle.NewManager(FactomClient, BinPath,
		StartFactomd, StartWalletd)
	// The timeout bounds the wait for the services to come up, not their
	// lifetime.
	ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
	defer cancel()
	return services.Start(ctx, 500*time.Millisecond)
}

// stopServices stops anything started by startServices. It is safe to call
// more than once.
func stopServices(*cobra.Command, []string) error {
	if services == nil {
		return nil
	}
	m := services
	services = nil
	return m.Stop()
}

// initConfig reads in config file and ENV variables if set, and applies them
// to every flag not set on the command line.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			log.Warn(err)
		} else {
			viper.AddConfigPath(home)
			viper.SetConfigName(".factom-wrapper")
		}
	}

	viper.SetEnvPrefix("FACTOM_WRAPPER")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		log.Debugf("Using config file: %v", viper.ConfigFileUsed())
	}

	flags := rootCmd.PersistentFlags()
	flags.VisitAll(func(flg *flag.Flag) {
		if flg.Changed || flg.Name == "config" || !viper.IsSet(flg.Name) {
			return
		}
		if err := flags.Set(flg.Name, viper.GetString(flg.Name)); err != nil {
			log.Warnf("--%v: %v", flg.Name, err)
		}
	})
}
