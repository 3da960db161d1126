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
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Balance is a single line of factom-walletd's address report.
type Balance struct {
	Name   string
	Amount decimal.Decimal
}

// Balances is a snapshot of every address held by factom-walletd, keyed by
// address. It is not kept in sync with the wallet after it is parsed.
type Balances struct {
	Factoids     map[string]Balance
	EntryCredits map[string]Balance
}

const (
	balancePreambleLen = 2
	ecMarker           = "EntryCredit"
)

// ParseBalanceReport parses the whitespace delimited report returned by
// factoid-get-addresses:
//
//	<2 token preamble> (name address amount)* Entry Credit (name address amount)*
//
// All returned errors wrap ErrMalformedBalanceReport.
func ParseBalanceReport(report string) (Balances, error) {
	tokens := strings.Fields(report)
	b := Balances{
		Factoids:     make(map[string]Balance),
		EntryCredits: make(map[string]Balance),
	}
	if len(tokens) < balancePreambleLen {
		return b, fmt.Errorf("%w: missing preamble", ErrMalformedBalanceReport)
	}

	i := balancePreambleLen
	for {
		if i+1 >= len(tokens) {
			return b, fmt.Errorf("%w: %q marker not found",
				ErrMalformedBalanceReport, "Entry Credit")
		}
		if tokens[i]+tokens[i+1] == ecMarker {
			i += 2
			break
		}
		if err := parseBalance(tokens, i, b.Factoids); err != nil {
			return b, err
		}
		i += 3
	}

	for ; i < len(tokens); i += 3 {
		if err := parseBalance(tokens, i, b.EntryCredits); err != nil {
			return b, err
		}
	}
	return b, nil
}

// parseBalance parses the (name address amount) triple at tokens[i] into m.
func parseBalance(tokens []string, i int, m map[string]Balance) error {
	if i+3 > len(tokens) {
		return fmt.Errorf("%w: incomplete entry at token %v: %q",
			ErrMalformedBalanceReport, i, tokens[i:])
	}
	name, adr, amount := tokens[i], tokens[i+1], tokens[i+2]
	amt, err := decimal.NewFromString(amount)
	if err != nil {
		return fmt.Errorf("%w: %v: invalid amount %q: %v",
			ErrMalformedBalanceReport, adr, amount, err)
	}
	m[adr] = Balance{Name: name, Amount: amt}
	return nil
}
