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
	"net/url"
)

// DBlock represents a Factom Directory Block as returned by
// directory-block-by-keymr.
type DBlock struct {
	KeyMR string `json:"-"`

	Header struct {
		PrevBlockKeyMR string
		Timestamp      uint64 `json:"TimeStamp"`
		SequenceNumber uint64
	}

	// EBlocks lists the Entry Blocks in this Directory Block with their
	// ChainID and KeyMR.
	EBlocks []EBlock `json:"EntryBlockList"`
}

// EBlock is an Entry Block reference within a DBlock.
type EBlock struct {
	ChainID string
	KeyMR   string
}

// IsFirst returns true if db is the genesis Directory Block.
func (db DBlock) IsFirst() bool {
	return len(db.Header.PrevBlockKeyMR) == 0 ||
		db.Header.PrevBlockKeyMR == zeroKeyMR
}

const zeroKeyMR = "0000000000000000000000000000000000000000000000000000000000000000"

// DBlockHead returns the KeyMR of the most recent Directory Block.
func (c *Client) DBlockHead(ctx context.Context) (string, error) {
	var res struct{ KeyMR string }
	if err := c.do(ctx, request{
		Op:      "DBlockHead",
		Service: Factomd,
		Method:  "GET",
		Command: "directory-block-head/",
	}, &res, "KeyMR"); err != nil {
		return "", err
	}
	return res.KeyMR, nil
}

// DBlockHeight returns the current Directory Block height.
func (c *Client) DBlockHeight(ctx context.Context) (uint64, error) {
	var res struct{ Height uint64 }
	if err := c.do(ctx, request{
		Op:      "DBlockHeight",
		Service: Factomd,
		Method:  "GET",
		Command: "directory-block-height/",
	}, &res, "Height"); err != nil {
		return 0, err
	}
	return res.Height, nil
}

// DBlockByKeyMR returns the Directory Block with the given KeyMR.
func (c *Client) DBlockByKeyMR(ctx context.Context,
	keyMR string) (DBlock, error) {
	db := DBlock{KeyMR: keyMR}
	err := c.do(ctx, request{
		Op:      "DBlockByKeyMR",
		Service: Factomd,
		Method:  "GET",
		Command: "directory-block-by-keymr/" + url.PathEscape(keyMR),
	}, &db, "Header")
	return db, err
}

// Heights are the block heights reported by factomd's v2 heights method.
type Heights struct {
	// The current directory block height of the local factomd node.
	DirectoryBlock uint64 `json:"directoryblockheight"`

	// The current block being worked on by the leaders in the network.
	// This block is not yet complete, but all transactions submitted will
	// go into this block (depending on network conditions, the transaction
	// may be delayed into the next block)
	Leader uint64 `json:"leaderheight"`

	// The height at which the factomd node has all the entry blocks.
	// Directory blocks are obtained first, entry blocks could be lagging
	// behind the directory block when syncing.
	EntryBlock uint64 `json:"entryblockheight"`

	// The height at which the local factomd node has all the entries. If
	// you added entries at a block height above this, they will not be
	// able to be retrieved by the local factomd until it syncs further.
	Entry uint64 `json:"entryheight"`
}

// Get queries factomd's v2 API for the current heights.
func (h *Heights) Get(c *Client) error {
	if err := c.FactomdRequest("heights", nil, h); err != nil {
		return err
	}
	return nil
}
