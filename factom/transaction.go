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
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/shopspring/decimal"
)

// The methods below drive a transaction held by factom-walletd under a caller
// chosen name. The wallet owns the transaction: every call must reference a
// name previously passed to NewTransaction and not yet submitted or deleted.
// The wallet enforces this and reports violations with Success false.
//
// Each method returns the wallet's Response. A nil error only means the wallet
// answered; check Response.Success for whether it accepted the request.

// NewTransaction creates an empty transaction called name.
func (c *Client) NewTransaction(ctx context.Context,
	name string) (Response, error) {
	return c.txPath(ctx, "NewTransaction",
		"factoid-new-transaction/"+url.PathEscape(name))
}

// AddInput adds an input of amount Factoids from adr to the transaction.
func (c *Client) AddInput(ctx context.Context,
	name, adr string, amount decimal.Decimal) (Response, error) {
	form, err := txForm(name, adr, &amount)
	if err != nil {
		return Response{}, fmt.Errorf("AddInput: %w", err)
	}
	return c.txForm(ctx, "AddInput", "factoid-add-input/", form)
}

// AddOutput adds an output of amount Factoids to adr to the transaction.
func (c *Client) AddOutput(ctx context.Context,
	name, adr string, amount decimal.Decimal) (Response, error) {
	form, err := txForm(name, adr, &amount)
	if err != nil {
		return Response{}, fmt.Errorf("AddOutput: %w", err)
	}
	return c.txForm(ctx, "AddOutput", "factoid-add-output/", form)
}

// AddECOutput adds an output converting amount Factoids into Entry Credits
// for the Entry Credit address ecAdr.
func (c *Client) AddECOutput(ctx context.Context,
	name, ecAdr string, amount decimal.Decimal) (Response, error) {
	form, err := txForm(name, ecAdr, &amount)
	if err != nil {
		return Response{}, fmt.Errorf("AddECOutput: %w", err)
	}
	return c.txForm(ctx, "AddECOutput", "factoid-add-ecoutput/", form)
}

// AddFee increases the input from adr to cover the transaction fee.
func (c *Client) AddFee(ctx context.Context,
	name, adr string) (Response, error) {
	form, _ := txForm(name, adr, nil)
	return c.txForm(ctx, "AddFee", "factoid-add-fee/", form)
}

// SubFee decreases the output to adr to cover the transaction fee.
func (c *Client) SubFee(ctx context.Context,
	name, adr string) (Response, error) {
	form, _ := txForm(name, adr, nil)
	return c.txForm(ctx, "SubFee", "factoid-sub-fee/", form)
}

// SignTransaction signs all inputs of the transaction with the keys held by
// factom-walletd.
func (c *Client) SignTransaction(ctx context.Context,
	name string) (Response, error) {
	return c.txPath(ctx, "SignTransaction",
		"factoid-sign-transaction/"+url.PathEscape(name))
}

// SubmitTransaction submits the signed transaction to the network. After a
// successful submit the name may not be used again.
func (c *Client) SubmitTransaction(ctx context.Context,
	name string) (Response, error) {
	// factom-walletd reads a JSON object from the final path segment.
	tx, err := json.Marshal(struct{ Transaction string }{name})
	if err != nil {
		return Response{}, err
	}
	return c.txPath(ctx, "SubmitTransaction",
		"factoid-submit/"+url.PathEscape(string(tx)))
}

// DeleteTransaction abandons the transaction.
func (c *Client) DeleteTransaction(ctx context.Context,
	name string) (Response, error) {
	return c.txPath(ctx, "DeleteTransaction",
		"factoid-delete-transaction/"+url.PathEscape(name))
}

// txForm returns the form pairs accepted by the factoid-add-* and
// factoid-sub-fee endpoints. The amount is omitted if nil.
func txForm(name, adr string, amount *decimal.Decimal) (url.Values, error) {
	form := url.Values{"key": {name}, "name": {adr}}
	if amount != nil {
		f, err := FCTToFactoshis(*amount)
		if err != nil {
			return nil, err
		}
		form.Set("amount", f.String())
	}
	return form, nil
}

func (c *Client) txPath(ctx context.Context,
	op, command string) (Response, error) {
	var res Response
	err := c.do(ctx, request{
		Op:      op,
		Service: Walletd,
		Method:  "POST",
		Command: command,
	}, &res, "Response", "Success")
	return res, err
}

func (c *Client) txForm(ctx context.Context,
	op, command string, form url.Values) (Response, error) {
	var res Response
	err := c.do(ctx, request{
		Op:      op,
		Service: Walletd,
		Method:  "POST",
		Command: command,
		Form:    form,
	}, &res, "Response", "Success")
	return res, err
}
