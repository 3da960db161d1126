package cmd

import (
	"testing"

	"github.com/Factom-Asset-Tokens/factom-wrapper/factom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testFA = "FA1y5ZGuHSLmf2TqNf6hVMkPiNGyQpQDTFJvDLRkKQaoPo4bmbgu"
	testEC = "EC1m9mouvUQeEidmqpUYpYtXg8fvTYi6GNHaKg8KMLbdMBrFfmUa"
)

func TestParseAmount(t *testing.T) {
	amount, err := parseAmount("1.5")
	require.NoError(t, err)
	assert.Equal(t, "1.5", amount.String())

	for _, s := range []string{"", "abc", "0", "-1"} {
		_, err := parseAmount(s)
		assert.Error(t, err, s)
	}
}

func TestTransferArgs(t *testing.T) {
	fa := transferArgs(factom.ValidFAAddress)
	assert.NoError(t, fa(transferCmd, []string{testFA, testFA, "1"}))
	assert.Error(t, fa(transferCmd, []string{testFA, testFA}))
	assert.Error(t, fa(transferCmd, []string{testFA, testEC, "1"}))
	assert.Error(t, fa(transferCmd, []string{testEC, testFA, "1"}))
	assert.Error(t, fa(transferCmd, []string{testFA, testFA, "0"}))

	ec := transferArgs(factom.ValidECAddress)
	assert.NoError(t, ec(buyECCmd, []string{testFA, testEC, "0.5"}))
	assert.Error(t, ec(buyECCmd, []string{testFA, testFA, "0.5"}))

	// Wallet names pass through, malformed addresses do not.
	assert.NoError(t, fa(transferCmd, []string{"savings", testFA, "1"}))
	assert.NoError(t, fa(transferCmd, []string{testFA, "alice", "1"}))
	assert.NoError(t, ec(buyECCmd, []string{"savings", "credits", "1"}))
	assert.Error(t, fa(transferCmd, []string{"FA1nope", testFA, "1"}))
	assert.Error(t, ec(buyECCmd, []string{"savings", "EC1nope", "1"}))
	assert.Error(t, fa(transferCmd, []string{"", testFA, "1"}))
}

func TestBalanceArgs(t *testing.T) {
	assert.NoError(t, balanceArgs(balanceCmd, nil))
	assert.NoError(t, balanceArgs(balanceCmd, []string{testFA, testEC}))
	assert.Error(t, balanceArgs(balanceCmd, []string{testFA, testFA}))
	assert.Error(t, balanceArgs(balanceCmd, []string{"FA1nope"}))
}

func TestAmountArgs(t *testing.T) {
	assert.NoError(t, amountArgs(txCmd, []string{"tx", testFA, "2"}))
	assert.NoError(t, amountArgs(txCmd, []string{"tx", testEC, "2"}))
	assert.Error(t, amountArgs(txCmd, []string{"tx", testFA}))
	assert.Error(t, amountArgs(txCmd, []string{"tx", testFA, "x"}))
}

func TestSubCommands(t *testing.T) {
	for _, name := range []string{"balance", "address", "tx", "transfer",
		"buy-ec", "chain", "entry", "dblock", "heights", "properties",
		"fee"} {
		cmd, _, err := rootCmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, cmd.Name())
		assert.Contains(t, rootCmplCmd.Sub, name)
	}
	for _, name := range []string{"new", "add-input", "add-output",
		"add-ec-output", "add-fee", "sub-fee", "sign", "submit", "delete",
		"list"} {
		cmd, _, err := rootCmd.Find([]string{"tx", name})
		require.NoError(t, err, name)
		assert.Equal(t, name, cmd.Name())
	}
}
