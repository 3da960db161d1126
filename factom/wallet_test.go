package factom_test

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/Factom-Asset-Tokens/factom-wrapper/factom"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAddresses(t *testing.T) {
	c, _, walletd := newTestClient(t)
	ctx := context.Background()

	walletd.set("factoid-generate-address/alice",
		`{"Response":"`+faAdr+`","Success":true}`)
	adr, err := c.GenerateFactoidAddress(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, faAdr, adr)
	assert.Equal(t, "GET", walletd.last().Method)

	walletd.set("factoid-generate-ec-address/alice",
		`{"Response":"`+ecAdr+`","Success":true}`)
	adr, err = c.GenerateECAddress(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, ecAdr, adr)

	walletd.set("factoid-generate-address-from-human-readable-private-key/",
		`{"Response":"`+faAdr+`","Success":true}`)
	adr, err = c.ImportFactoidAddress(ctx, "Fs1secret", "bob")
	require.NoError(t, err)
	assert.Equal(t, faAdr, adr)
	query, err := url.ParseQuery(walletd.last().Query)
	require.NoError(t, err)
	assert.Equal(t, url.Values{"name": {"bob"}, "privateKey": {"Fs1secret"}}, query)

	walletd.set("factoid-generate-ec-address-from-human-readable-private-key/",
		`{"Response":"`+ecAdr+`","Success":true}`)
	adr, err = c.ImportECAddress(ctx, "Es1secret", "carol")
	require.NoError(t, err)
	assert.Equal(t, ecAdr, adr)
	query, err = url.ParseQuery(walletd.last().Query)
	require.NoError(t, err)
	assert.Equal(t, "carol", query.Get("name"))
	assert.Equal(t, "Es1secret", query.Get("privateKey"))
}

func TestWalletBalances(t *testing.T) {
	c, factomd, walletd := newTestClient(t)
	ctx := context.Background()

	walletd.set("factoid-balance/alice", `{"Response":"250000000","Success":true}`)
	fct, err := c.FactoidBalance(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("2.5").Equal(fct), fct.String())

	walletd.set("factoid-balance/alice", `{"Response":"Not found","Success":false}`)
	_, err = c.FactoidBalance(ctx, "alice")
	var unexpected *factom.UnexpectedResponseError
	assert.True(t, errors.As(err, &unexpected))

	walletd.set("entry-credit-balance/ec", `{"Response":"42","Success":true}`)
	ec, err := c.ECBalance(ctx, "ec")
	require.NoError(t, err)
	assert.Equal(t, uint64(42), ec)

	factomd.set("entry-credit-balance/"+hexEC, `{"Response":77,"Success":true}`)
	ec, err = c.ECBalanceFromDaemon(ctx, ecAdr)
	require.NoError(t, err)
	assert.Equal(t, uint64(77), ec)
	assert.Equal(t, "entry-credit-balance/"+hexEC, factomd.last().Path)

	_, err = c.ECBalanceFromDaemon(ctx, "my-ec-name")
	assert.True(t, errors.Is(err, factom.ErrInvalidAddress))
}

func TestFee(t *testing.T) {
	c, _, walletd := newTestClient(t)
	ctx := context.Background()

	walletd.set("factoid-get-fee/", `{"Response":"0.001","Success":true}`)
	fee, err := c.Fee(ctx)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("0.001").Equal(fee))

	for _, res := range []string{
		`{"Response":"unknown","Success":false}`,
		`{"Response":"0","Success":true}`,
		`{"Success":true}`,
	} {
		walletd.set("factoid-get-fee/", res)
		_, err := c.Fee(ctx)
		assert.True(t, errors.Is(err, factom.ErrFeeUnavailable), res)
	}

	c.WalletdServer = closedServer()
	_, err = c.Fee(ctx)
	assert.True(t, errors.Is(err, factom.ErrFeeUnavailable))
	var unavailable *factom.ServiceUnavailableError
	assert.True(t, errors.As(err, &unavailable))
}

func TestProperties(t *testing.T) {
	c, _, walletd := newTestClient(t)
	walletd.set("properties/", `{"Response":"Protocol Version: 0.1.5","Success":true}`)
	props, err := c.Properties(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Protocol Version: 0.1.5", props)
}

func TestValidAddress(t *testing.T) {
	assert := assert.New(t)
	assert.NoError(factom.ValidECAddress(ecAdr))
	assert.NoError(factom.ValidFAAddress(faAdr))
	assert.NoError(factom.ValidFAAddress(
		"FA2MwhbJFxPckPahsmntwF1ogKjXGz8FSqo2cLWtshdU47GQVZDC"))

	for _, adr := range []string{
		"",
		"EC1",
		faAdr,
		// Bad checksum.
		"EC1m9mouvUQeEidmqpUYpYtXg8fvTYi6GNHaKg8KMLbdMBrFfmUb",
	} {
		assert.True(errors.Is(factom.ValidECAddress(adr),
			factom.ErrInvalidAddress), adr)
	}
	assert.True(errors.Is(factom.ValidFAAddress(ecAdr), factom.ErrInvalidAddress))
}
