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
)

// Compose holds the two payloads returned by factom-walletd for a chain or
// entry. Commit must be passed unmodified to the matching Commit call and
// Reveal to the matching Reveal call. A Compose must not be reused.
type Compose struct {
	// ChainID is only set for a new chain.
	ChainID string
	Commit  json.RawMessage
	Reveal  json.RawMessage
}

// ComposeChain asks factom-walletd to compose and pay for, using ecAdr, a new
// chain whose first entry has the given extIDs and content. Nothing is
// written to the blockchain.
func (c *Client) ComposeChain(ctx context.Context, ecAdr string,
	extIDs []string, content string) (Compose, error) {
	const op = "ComposeChain"
	if extIDs == nil {
		extIDs = []string{}
	}
	var res struct {
		ChainID     string
		ChainCommit json.RawMessage
		ChainReveal json.RawMessage
		EntryReveal json.RawMessage
	}
	if err := c.do(ctx, request{
		Op:      op,
		Service: Walletd,
		Method:  "POST",
		Command: "compose-chain-submit/" + url.PathEscape(ecAdr),
		Body: struct {
			ExtIDs  []string
			Content string
		}{extIDs, content},
	}, &res, "ChainCommit"); err != nil {
		return Compose{}, err
	}
	reveal := res.ChainReveal
	if !isPayload(reveal) {
		reveal = res.EntryReveal
	}
	cmp := Compose{ChainID: res.ChainID, Commit: res.ChainCommit,
		Reveal: reveal}
	if err := cmp.valid(op); err != nil {
		return Compose{}, err
	}
	return cmp, nil
}

// ComposeEntry asks factom-walletd to compose and pay for, using ecAdr, a new
// entry on chainID. Nothing is written to the blockchain.
func (c *Client) ComposeEntry(ctx context.Context, ecAdr, chainID string,
	extIDs []string, content string) (Compose, error) {
	const op = "ComposeEntry"
	if extIDs == nil {
		extIDs = []string{}
	}
	var res struct {
		EntryCommit json.RawMessage
		EntryReveal json.RawMessage
	}
	if err := c.do(ctx, request{
		Op:      op,
		Service: Walletd,
		Method:  "POST",
		Command: "compose-entry-submit/" + url.PathEscape(ecAdr),
		Body: struct {
			ChainID string
			ExtIDs  []string
			Content string
		}{chainID, extIDs, content},
	}, &res, "EntryCommit", "EntryReveal"); err != nil {
		return Compose{}, err
	}
	cmp := Compose{ChainID: chainID, Commit: res.EntryCommit,
		Reveal: res.EntryReveal}
	if err := cmp.valid(op); err != nil {
		return Compose{}, err
	}
	return cmp, nil
}

func (cmp Compose) valid(op string) error {
	if !isPayload(cmp.Commit) || !isPayload(cmp.Reveal) {
		body, _ := json.Marshal(cmp)
		return &UnexpectedResponseError{Op: op, Body: body,
			Err: fmt.Errorf("missing commit or reveal payload")}
	}
	return nil
}

func isPayload(p json.RawMessage) bool {
	return len(p) > 0 && string(p) != "null"
}

// CommitChain sends the commit payload of a ComposeChain result to factomd.
func (c *Client) CommitChain(ctx context.Context,
	commit json.RawMessage) (Response, error) {
	return c.submitPayload(ctx, "CommitChain", "commit-chain/", commit)
}

// RevealChain sends the reveal payload of a ComposeChain result to factomd.
func (c *Client) RevealChain(ctx context.Context,
	reveal json.RawMessage) (Response, error) {
	return c.submitPayload(ctx, "RevealChain", "reveal-chain/", reveal)
}

// CommitEntry sends the commit payload of a ComposeEntry result to factomd.
func (c *Client) CommitEntry(ctx context.Context,
	commit json.RawMessage) (Response, error) {
	return c.submitPayload(ctx, "CommitEntry", "commit-entry/", commit)
}

// RevealEntry sends the reveal payload of a ComposeEntry result to factomd.
func (c *Client) RevealEntry(ctx context.Context,
	reveal json.RawMessage) (Response, error) {
	return c.submitPayload(ctx, "RevealEntry", "reveal-entry/", reveal)
}

func (c *Client) submitPayload(ctx context.Context,
	op, command string, payload json.RawMessage) (Response, error) {
	if !isPayload(payload) {
		return Response{}, fmt.Errorf("%v: empty payload", op)
	}
	var res Response
	err := c.do(ctx, request{
		Op:      op,
		Service: Factomd,
		Method:  "POST",
		Command: command,
		Body:    payload,
	}, &res, "Success")
	return res, err
}
