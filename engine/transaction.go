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
	"fmt"

	"github.com/Factom-Asset-Tokens/factom-wrapper/factom"
	"github.com/shopspring/decimal"
)

// State is the position of a named transaction in its lifecycle:
//
//	Absent -> Created -> Funded -> FeeAdjusted -> Signed -> Submitted
//
// Deleted may be reached from any state before Submitted. Submitted and
// Deleted are terminal, although a Deleted name may be created again.
type State int

const (
	Absent State = iota
	Created
	Funded
	FeeAdjusted
	Signed
	Submitted
	Deleted
)

func (s State) String() string {
	switch s {
	case Absent:
		return "absent"
	case Created:
		return "created"
	case Funded:
		return "funded"
	case FeeAdjusted:
		return "fee-adjusted"
	case Signed:
		return "signed"
	case Submitted:
		return "submitted"
	case Deleted:
		return "deleted"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Transaction is a handle on a transaction held by factom-walletd under Name.
// It tracks the last state confirmed by the wallet and refuses steps the
// wallet would reject for being out of order. The wallet remains the
// authority: Transaction only knows about steps issued through it.
//
// A Transaction must not be used concurrently.
type Transaction struct {
	Name  string
	state State
	e     *Engine
}

// Transaction returns a handle in the Absent state for the wallet transaction
// called name.
func (e *Engine) Transaction(name string) *Transaction {
	return &Transaction{Name: name, e: e}
}

// State returns the last confirmed state.
func (tx *Transaction) State() State {
	return tx.state
}

// New creates the transaction in factom-walletd.
func (tx *Transaction) New(ctx context.Context) error {
	return tx.step(ctx, "NewTransaction", Created,
		func() (factom.Response, error) {
			return tx.e.api.NewTransaction(ctx, tx.Name)
		}, Absent, Deleted)
}

// AddInput adds an input of amount Factoids from adr.
func (tx *Transaction) AddInput(ctx context.Context,
	adr string, amount decimal.Decimal) error {
	return tx.step(ctx, "AddInput", Funded,
		func() (factom.Response, error) {
			return tx.e.api.AddInput(ctx, tx.Name, adr, amount)
		}, Created, Funded)
}

// AddOutput adds an output of amount Factoids to adr.
func (tx *Transaction) AddOutput(ctx context.Context,
	adr string, amount decimal.Decimal) error {
	return tx.step(ctx, "AddOutput", Funded,
		func() (factom.Response, error) {
			return tx.e.api.AddOutput(ctx, tx.Name, adr, amount)
		}, Created, Funded)
}

// AddECOutput adds an output buying Entry Credits for ecAdr with amount
// Factoids.
func (tx *Transaction) AddECOutput(ctx context.Context,
	ecAdr string, amount decimal.Decimal) error {
	return tx.step(ctx, "AddECOutput", Funded,
		func() (factom.Response, error) {
			return tx.e.api.AddECOutput(ctx, tx.Name, ecAdr, amount)
		}, Created, Funded)
}

// AddFee pays the fee by increasing the input from adr.
func (tx *Transaction) AddFee(ctx context.Context, adr string) error {
	return tx.step(ctx, "AddFee", FeeAdjusted,
		func() (factom.Response, error) {
			return tx.e.api.AddFee(ctx, tx.Name, adr)
		}, Funded, FeeAdjusted)
}

// SubFee pays the fee by decreasing the output to adr.
func (tx *Transaction) SubFee(ctx context.Context, adr string) error {
	return tx.step(ctx, "SubFee", FeeAdjusted,
		func() (factom.Response, error) {
			return tx.e.api.SubFee(ctx, tx.Name, adr)
		}, Funded, FeeAdjusted)
}

// Sign signs the funded, fee adjusted transaction.
func (tx *Transaction) Sign(ctx context.Context) error {
	return tx.step(ctx, "SignTransaction", Signed,
		func() (factom.Response, error) {
			return tx.e.api.SignTransaction(ctx, tx.Name)
		}, FeeAdjusted)
}

// Submit submits the signed transaction and returns factom-walletd's
// response. No further step is allowed afterwards.
func (tx *Transaction) Submit(ctx context.Context) (factom.Response, error) {
	var res factom.Response
	err := tx.step(ctx, "SubmitTransaction", Submitted,
		func() (factom.Response, error) {
			var err error
			res, err = tx.e.api.SubmitTransaction(ctx, tx.Name)
			return res, err
		}, Signed)
	return res, err
}

// Delete abandons the transaction.
func (tx *Transaction) Delete(ctx context.Context) error {
	return tx.step(ctx, "DeleteTransaction", Deleted,
		func() (factom.Response, error) {
			return tx.e.api.DeleteTransaction(ctx, tx.Name)
		}, Created, Funded, FeeAdjusted, Signed)
}

// step calls the API if the transaction is in one of the from states and
// moves it to the state to if the wallet reports success.
func (tx *Transaction) step(ctx context.Context, op string, to State,
	call func() (factom.Response, error), from ...State) error {
	if !tx.in(from...) {
		return fmt.Errorf("%v %q: %w: transaction is %v",
			op, tx.Name, ErrSequence, tx.state)
	}
	res, err := call()
	if err != nil {
		return fmt.Errorf("%v %q: %w", op, tx.Name, err)
	}
	if !res.Success {
		return &FailedError{Op: op, TxName: tx.Name, Response: res.Response}
	}
	tx.e.log.Debugf("%v %q: %v", op, tx.Name, res.Response)
	tx.state = to
	return nil
}

func (tx *Transaction) in(states ...State) bool {
	for _, s := range states {
		if tx.state == s {
			return true
		}
	}
	return false
}
