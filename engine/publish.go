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
	"encoding/json"
	"fmt"
	"time"

	"github.com/Factom-Asset-Tokens/factom-wrapper/factom"
)

// Publication is the outcome of a chain or entry publication.
type Publication struct {
	ChainID string
	Commit  factom.Response
	Reveal  factom.Response
}

// CreateChain composes a new chain paid for by ecAdr, commits it, waits the
// settle delay and reveals it.
//
// A failed compose or commit is returned as is and nothing else is sent. Any
// failure to reveal once the commit succeeded, including ctx being done
// during the settle delay, is a *RevealFailedAfterCommitError.
func (e *Engine) CreateChain(ctx context.Context, ecAdr string,
	extIDs []string, content string) (Publication, error) {
	cmp, err := e.api.ComposeChain(ctx, ecAdr, extIDs, content)
	if err != nil {
		return Publication{}, err
	}
	return e.publish(ctx, "CreateChain", cmp,
		e.api.CommitChain, e.api.RevealChain)
}

// CreateEntry composes an entry on chainID paid for by ecAdr, commits it,
// waits the settle delay and reveals it. Failures are reported as for
// CreateChain.
func (e *Engine) CreateEntry(ctx context.Context, ecAdr, chainID string,
	extIDs []string, content string) (Publication, error) {
	cmp, err := e.api.ComposeEntry(ctx, ecAdr, chainID, extIDs, content)
	if err != nil {
		return Publication{}, err
	}
	return e.publish(ctx, "CreateEntry", cmp,
		e.api.CommitEntry, e.api.RevealEntry)
}

type submitFunc func(context.Context, json.RawMessage) (factom.Response, error)

// publish commits and reveals the payloads of cmp, and only those.
func (e *Engine) publish(ctx context.Context, op string, cmp factom.Compose,
	commit, reveal submitFunc) (Publication, error) {
	pub := Publication{ChainID: cmp.ChainID}

	res, err := commit(ctx, cmp.Commit)
	if err != nil {
		return pub, fmt.Errorf("%v: commit: %w", op, err)
	}
	pub.Commit = res
	if !res.Success {
		return pub, &FailedError{Op: op + ": commit", Response: res.Response}
	}
	e.log.Debugf("%v: committed: %v", op, res.Response)

	revealErr := func(err error) error {
		return &RevealFailedAfterCommitError{Op: op, ChainID: cmp.ChainID,
			Reveal: cmp.Reveal, Err: err}
	}

	t := time.NewTimer(e.settleDelay)
	select {
	case <-ctx.Done():
		t.Stop()
		return pub, revealErr(ctx.Err())
	case <-t.C:
	}

	res, err = reveal(ctx, cmp.Reveal)
	pub.Reveal = res
	if err != nil {
		return pub, revealErr(err)
	}
	if !res.Success {
		return pub, revealErr(&FailedError{Op: op + ": reveal",
			Response: res.Response})
	}
	e.log.Infof("%v: revealed: %v", op, res.Response)
	return pub, nil
}
