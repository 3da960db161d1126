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
	"time"

	"github.com/Factom-Asset-Tokens/factom-wrapper/factom"
	_log "github.com/Factom-Asset-Tokens/factom-wrapper/log"
	"github.com/shopspring/decimal"
)

// API is the subset of the factomd and factom-walletd APIs that the Engine
// sequences. It is implemented by *factom.Client.
type API interface {
	NewTransaction(ctx context.Context, name string) (factom.Response, error)
	AddInput(ctx context.Context, name, adr string,
		amount decimal.Decimal) (factom.Response, error)
	AddOutput(ctx context.Context, name, adr string,
		amount decimal.Decimal) (factom.Response, error)
	AddECOutput(ctx context.Context, name, ecAdr string,
		amount decimal.Decimal) (factom.Response, error)
	AddFee(ctx context.Context, name, adr string) (factom.Response, error)
	SubFee(ctx context.Context, name, adr string) (factom.Response, error)
	SignTransaction(ctx context.Context, name string) (factom.Response, error)
	SubmitTransaction(ctx context.Context, name string) (factom.Response, error)
	DeleteTransaction(ctx context.Context, name string) (factom.Response, error)

	Fee(ctx context.Context) (decimal.Decimal, error)

	ComposeChain(ctx context.Context, ecAdr string,
		extIDs []string, content string) (factom.Compose, error)
	ComposeEntry(ctx context.Context, ecAdr, chainID string,
		extIDs []string, content string) (factom.Compose, error)
	CommitChain(ctx context.Context, commit json.RawMessage) (factom.Response, error)
	RevealChain(ctx context.Context, reveal json.RawMessage) (factom.Response, error)
	CommitEntry(ctx context.Context, commit json.RawMessage) (factom.Response, error)
	RevealEntry(ctx context.Context, reveal json.RawMessage) (factom.Response, error)
}

var _ API = (*factom.Client)(nil)

// DefaultSettleDelay is the time factomd needs to accept a reveal after the
// matching commit.
const DefaultSettleDelay = 2 * time.Second

// Engine runs multi-step workflows against an API. Every step of a workflow
// is issued only after the previous step succeeded, and the first failure
// ends the workflow. Nothing is retried.
//
// An Engine is safe for concurrent use by workflows on different transaction
// names. Running two workflows on the same transaction name at once is
// undefined; use TxName, or leave the name empty, to get a unique name per
// workflow.
type Engine struct {
	api         API
	settleDelay time.Duration
	log         _log.Log
}

// Option configures an Engine.
type Option func(*Engine)

// WithSettleDelay sets the wait between commit and reveal. Values below or
// equal to zero select DefaultSettleDelay.
func WithSettleDelay(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.settleDelay = d
		}
	}
}

// WithLog sets the Log used for workflow progress.
func WithLog(log _log.Log) Option {
	return func(e *Engine) {
		e.log = log
	}
}

// New returns an Engine issuing its calls to api.
func New(api API, opts ...Option) *Engine {
	e := &Engine{
		api:         api,
		settleDelay: DefaultSettleDelay,
		log:         _log.New("engine"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// SettleDelay returns the wait between commit and reveal.
func (e *Engine) SettleDelay() time.Duration {
	return e.settleDelay
}
