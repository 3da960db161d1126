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
	"bytes"
	"context"
	"encoding/hex"
	"fmt"
	"net/url"

	"github.com/Factom-Asset-Tokens/base58"
)

// There are two kinds of public Factom address: Factoid addresses holding
// currency and Entry Credit addresses holding credits. Both are a 32 byte
// payload encoded using base58check with a two byte prefix. Addresses are
// opaque to this package: they are only ever produced by factom-walletd and
// handed back to it, so they are kept as strings. factom-walletd also accepts
// the name an address was stored under wherever it accepts an address.

var (
	faPrefixBytes = []byte{0x5f, 0xb1}
	ecPrefixBytes = []byte{0x59, 0x2a}
)

const (
	faPrefixStr = "FA"
	ecPrefixStr = "EC"
	adrStrLen   = 52
)

// ValidFAAddress returns nil if adr is a well formed public Factoid address.
func ValidFAAddress(adr string) error {
	return validAddress(adr, faPrefixStr, faPrefixBytes)
}

// ValidECAddress returns nil if adr is a well formed public Entry Credit
// address.
func ValidECAddress(adr string) error {
	return validAddress(adr, ecPrefixStr, ecPrefixBytes)
}

func validAddress(adr, prefixStr string, prefix []byte) error {
	if len(adr) != adrStrLen {
		return fmt.Errorf("%w: %q: invalid length", ErrInvalidAddress, adr)
	}
	if adr[:len(prefixStr)] != prefixStr {
		return fmt.Errorf("%w: %q: invalid prefix", ErrInvalidAddress, adr)
	}
	_, version, err := base58.CheckDecode(adr, len(prefix))
	if err != nil {
		return fmt.Errorf("%w: %q: %v", ErrInvalidAddress, adr, err)
	}
	if !bytes.Equal(version, prefix) {
		return fmt.Errorf("%w: %q: invalid prefix", ErrInvalidAddress, adr)
	}
	return nil
}

// GenerateFactoidAddress asks factom-walletd for a new Factoid address stored
// under name and returns it.
func (c *Client) GenerateFactoidAddress(ctx context.Context,
	name string) (string, error) {
	return c.walletString(ctx, "GenerateFactoidAddress",
		"factoid-generate-address/"+url.PathEscape(name), nil)
}

// GenerateECAddress asks factom-walletd for a new Entry Credit address stored
// under name and returns it.
func (c *Client) GenerateECAddress(ctx context.Context,
	name string) (string, error) {
	return c.walletString(ctx, "GenerateECAddress",
		"factoid-generate-ec-address/"+url.PathEscape(name), nil)
}

// ImportFactoidAddress adds the Factoid address for the human readable
// private key privKey to factom-walletd under name.
func (c *Client) ImportFactoidAddress(ctx context.Context,
	privKey, name string) (string, error) {
	return c.walletString(ctx, "ImportFactoidAddress",
		"factoid-generate-address-from-human-readable-private-key/",
		url.Values{"name": {name}, "privateKey": {privKey}})
}

// ImportECAddress adds the Entry Credit address for the human readable
// private key privKey to factom-walletd under name.
func (c *Client) ImportECAddress(ctx context.Context,
	privKey, name string) (string, error) {
	return c.walletString(ctx, "ImportECAddress",
		"factoid-generate-ec-address-from-human-readable-private-key/",
		url.Values{"name": {name}, "privateKey": {privKey}})
}

// ECBalanceFromDaemon queries factomd directly for the Entry Credit balance of
// the public address ecAdr. Unlike ECBalance, wallet names are not accepted.
// factomd expects the address in hex.
func (c *Client) ECBalanceFromDaemon(ctx context.Context,
	ecAdr string) (uint64, error) {
	if err := ValidECAddress(ecAdr); err != nil {
		return 0, err
	}
	hexAdr := hex.EncodeToString([]byte(ecAdr))
	var res Response
	if err := c.do(ctx, request{
		Op:      "ECBalanceFromDaemon",
		Service: Factomd,
		Method:  "GET",
		Command: "entry-credit-balance/" + hexAdr,
	}, &res, "Response"); err != nil {
		return 0, err
	}
	return parseECBalance("ECBalanceFromDaemon", res)
}
