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

func TestTransactionLifecycleRequests(t *testing.T) {
	c, _, walletd := newTestClient(t)
	ctx := context.Background()
	ok := `{"Response":"Success","Success":true}`

	walletd.set("factoid-new-transaction/my tx", ok)
	res, err := c.NewTransaction(ctx, "my tx")
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, "Success", res.Response)
	req := walletd.last()
	assert.Equal(t, "POST", req.Method)
	assert.Equal(t, "/v1/factoid-new-transaction/my%20tx", req.RawPath)
	assert.Empty(t, req.Body)

	amount := decimal.RequireFromString("1.5")
	for path, add := range map[string]func() error{
		"factoid-add-input/": func() error {
			_, err := c.AddInput(ctx, "my tx", faAdr, amount)
			return err
		},
		"factoid-add-output/": func() error {
			_, err := c.AddOutput(ctx, "my tx", faAdr, amount)
			return err
		},
		"factoid-add-ecoutput/": func() error {
			_, err := c.AddECOutput(ctx, "my tx", faAdr, amount)
			return err
		},
	} {
		walletd.set(path, ok)
		require.NoError(t, add(), path)
		req := walletd.last()
		assert.Equal(t, "POST", req.Method, path)
		assert.Equal(t, path, req.Path)
		assert.Equal(t, "application/x-www-form-urlencoded",
			req.ContentType, path)
		form, err := url.ParseQuery(req.Body)
		require.NoError(t, err, path)
		assert.Equal(t, url.Values{
			"key":    {"my tx"},
			"name":   {faAdr},
			"amount": {"150000000"},
		}, form, path)
	}

	for path, fee := range map[string]func() error{
		"factoid-add-fee/": func() error {
			_, err := c.AddFee(ctx, "my tx", faAdr)
			return err
		},
		"factoid-sub-fee/": func() error {
			_, err := c.SubFee(ctx, "my tx", faAdr)
			return err
		},
	} {
		walletd.set(path, ok)
		require.NoError(t, fee(), path)
		form, err := url.ParseQuery(walletd.last().Body)
		require.NoError(t, err, path)
		assert.Equal(t, url.Values{"key": {"my tx"}, "name": {faAdr}},
			form, path)
	}

	walletd.set("factoid-sign-transaction/my tx", ok)
	_, err = c.SignTransaction(ctx, "my tx")
	require.NoError(t, err)
	assert.Equal(t, "POST", walletd.last().Method)

	walletd.set(`factoid-submit/{"Transaction":"my tx"}`,
		`{"Response":"Success Submitting transaction","Success":true}`)
	res, err = c.SubmitTransaction(ctx, "my tx")
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, `factoid-submit/{"Transaction":"my tx"}`, walletd.last().Path)

	walletd.set("factoid-delete-transaction/my tx", ok)
	_, err = c.DeleteTransaction(ctx, "my tx")
	require.NoError(t, err)
	assert.Equal(t, "POST", walletd.last().Method)
}

func TestTransactionRejected(t *testing.T) {
	c, _, walletd := newTestClient(t)
	walletd.set("factoid-add-input/",
		`{"Response":"Insufficient funds","Success":false}`)
	res, err := c.AddInput(context.Background(), "tx", faAdr, decimal.NewFromInt(100))
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, "Insufficient funds", res.Response)
}

func TestTransactionAmountOutOfRange(t *testing.T) {
	c, _, walletd := newTestClient(t)
	ctx := context.Background()
	huge := decimal.RequireFromString("100000000000")
	for name, add := range map[string]func() error{
		"AddInput": func() error {
			_, err := c.AddInput(ctx, "tx", faAdr, huge)
			return err
		},
		"AddOutput": func() error {
			_, err := c.AddOutput(ctx, "tx", faAdr, huge)
			return err
		},
		"AddECOutput": func() error {
			_, err := c.AddECOutput(ctx, "tx", ecAdr, huge)
			return err
		},
	} {
		err := add()
		assert.True(t, errors.Is(err, factom.ErrAmountOutOfRange), name)
		assert.Contains(t, err.Error(), name)
	}
	assert.Empty(t, walletd.last().Path, "no request is sent")
}

func TestTransactions(t *testing.T) {
	c, _, walletd := newTestClient(t)
	walletd.set("factoid-get-transactions/",
		`{"Response":"tx1 inputs: 1","Success":true}`)
	txs, err := c.Transactions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tx1 inputs: 1", txs)
	assert.Equal(t, "GET", walletd.last().Method)
}
