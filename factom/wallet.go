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

package factom

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// walletString makes a GET request to factom-walletd and returns the
// Response field.
func (c *Client) walletString(ctx context.Context,
	op, command string, query url.Values) (string, error) {
	var res Response
	if err := c.do(ctx, request{
		Op:      op,
		Service: Walletd,
		Method:  "GET",
		Command: command,
		Query:   query,
	}, &res, "Response"); err != nil {
		return "", err
	}
	return res.Response, nil
}

// BalanceReport returns the raw text report of all addresses held by
// factom-walletd and their balances.
func (c *Client) BalanceReport(ctx context.Context) (string, error) {
	return c.walletString(ctx, "BalanceReport", "factoid-get-addresses/", nil)
}

// Balances returns a parsed snapshot of all addresses held by factom-walletd
// and their balances.
func (c *Client) Balances(ctx context.Context) (Balances, error) {
	report, err := c.BalanceReport(ctx)
	if err != nil {
		return Balances{}, err
	}
	return ParseBalanceReport(report)
}

// FactoidBalance returns the balance in Factoids of adr, which may be a
// public Factoid address or a wallet name.
func (c *Client) FactoidBalance(ctx context.Context,
	adr string) (decimal.Decimal, error) {
	const op = "FactoidBalance"
	balance, err := c.walletString(ctx, op,
		"factoid-balance/"+url.PathEscape(adr), nil)
	if err != nil {
		return decimal.Zero, err
	}
	f, err := ParseFactoshis(strings.TrimSpace(balance))
	if err != nil {
		return decimal.Zero, &UnexpectedResponseError{Op: op,
			Body: []byte(balance), Err: err}
	}
	return FactoshisToFCT(f), nil
}

// ECBalance returns the Entry Credit balance of adr, which may be a public
// Entry Credit address or a wallet name.
func (c *Client) ECBalance(ctx context.Context, adr string) (uint64, error) {
	var res Response
	if err := c.do(ctx, request{
		Op:      "ECBalance",
		Service: Walletd,
		Method:  "GET",
		Command: "entry-credit-balance/" + url.PathEscape(adr),
	}, &res, "Response"); err != nil {
		return 0, err
	}
	return parseECBalance("ECBalance", res)
}

func parseECBalance(op string, res Response) (uint64, error) {
	balance, err := strconv.ParseUint(strings.TrimSpace(res.Response), 10, 64)
	if err != nil {
		return 0, &UnexpectedResponseError{Op: op,
			Body: []byte(res.Response), Err: err}
	}
	return balance, nil
}

// Fee returns the current price of one Entry Credit in Factoids. All errors
// wrap ErrFeeUnavailable.
func (c *Client) Fee(ctx context.Context) (decimal.Decimal, error) {
	fee, err := c.walletString(ctx, "Fee", "factoid-get-fee/", nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %w", ErrFeeUnavailable, err)
	}
	d, err := decimal.NewFromString(strings.TrimSpace(fee))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q: %v",
			ErrFeeUnavailable, fee, err)
	}
	if !d.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: non-positive fee %v",
			ErrFeeUnavailable, d)
	}
	return d, nil
}

// Properties returns the version details reported by factom-walletd.
func (c *Client) Properties(ctx context.Context) (string, error) {
	return c.walletString(ctx, "Properties", "properties/", nil)
}

// Transactions returns factom-walletd's listing of all named transactions
// currently being composed.
func (c *Client) Transactions(ctx context.Context) (string, error) {
	return c.walletString(ctx, "Transactions", "factoid-get-transactions/", nil)
}
