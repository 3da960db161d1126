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

package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/Factom-Asset-Tokens/factom-wrapper/factom"
	"github.com/shopspring/decimal"
)

// Receipt is the outcome of a submitted transaction workflow.
type Receipt struct {
	TxName   string
	Success  bool
	Response string
}

// Transfer sends amount Factoids from the address from to the address to in
// a transaction called name, or a TxName if name is empty. The fee is paid
// by from on top of amount.
//
// The steps are issued in order and the first failure is returned without
// issuing any further step. A failed transaction is left in the wallet
// under its name; use Transaction(name).Delete to remove it.
func (e *Engine) Transfer(ctx context.Context,
	from, to string, amount decimal.Decimal, name string) (Receipt, error) {
	tx := e.Transaction(txName(name))
	return e.run(ctx, tx, from, func() error {
		return tx.AddOutput(ctx, to, amount)
	}, amount, nil)
}

// PurchaseCredits converts amount Factoids from the address from into Entry
// Credits for ecAdr. It is Transfer with an Entry Credit output.
//
// The expected number of Entry Credits is logged before submission. The fee
// query it relies on never blocks the purchase.
func (e *Engine) PurchaseCredits(ctx context.Context,
	from, ecAdr string, amount decimal.Decimal, name string) (Receipt, error) {
	tx := e.Transaction(txName(name))
	return e.run(ctx, tx, from, func() error {
		return tx.AddECOutput(ctx, ecAdr, amount)
	}, amount, func() {
		credits, err := e.ExpectedCredits(ctx, amount)
		if err != nil {
			e.log.Warnf("%q: %v", tx.Name, err)
			return
		}
		e.log.Infof("%q: expecting %v Entry Credits", tx.Name, credits)
	})
}

func txName(name string) string {
	if len(name) == 0 {
		return TxName()
	}
	return name
}

// run issues new, add-input, output, add-fee, sign and submit on tx.
// beforeSubmit, if not nil, is called between sign and submit.
func (e *Engine) run(ctx context.Context, tx *Transaction, from string,
	output func() error, amount decimal.Decimal,
	beforeSubmit func()) (Receipt, error) {
	rcpt := Receipt{TxName: tx.Name}
	steps := []func() error{
		func() error { return tx.New(ctx) },
		func() error { return tx.AddInput(ctx, from, amount) },
		output,
		func() error { return tx.AddFee(ctx, from) },
		func() error { return tx.Sign(ctx) },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			e.log.Errorf("%q: %v", tx.Name, err)
			return rcpt, err
		}
	}
	if beforeSubmit != nil {
		beforeSubmit()
	}
	res, err := tx.Submit(ctx)
	rcpt.Response = res.Response
	if err != nil {
		var failed *FailedError
		if errors.As(err, &failed) {
			rcpt.Response = failed.Response
		}
		e.log.Errorf("%q: %v", tx.Name, err)
		return rcpt, err
	}
	rcpt.Success = true
	e.log.Infof("%q: submitted: %v", tx.Name, res.Response)
	return rcpt, nil
}

// ExpectedCredits returns the whole number of Entry Credits that amount
// Factoids buys at the current fee. An error wraps factom.ErrFeeUnavailable.
func (e *Engine) ExpectedCredits(ctx context.Context,
	amount decimal.Decimal) (decimal.Decimal, error) {
	fee, err := e.api.Fee(ctx)
	if err != nil {
		if !errors.Is(err, factom.ErrFeeUnavailable) {
			err = fmt.Errorf("%w: %w", factom.ErrFeeUnavailable, err)
		}
		return decimal.Decimal{}, err
	}
	if !fee.IsPositive() {
		return decimal.Decimal{}, factom.ErrFeeUnavailable
	}
	return amount.Div(fee).Floor(), nil
}
