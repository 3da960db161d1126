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
	"math"
	"strconv"

	"github.com/shopspring/decimal"
)

// FactoshiExp is the number of decimal places in one Factoid.
const FactoshiExp = 8

// Factoshis is an amount of Factoids in its indivisible integer base unit.
// 1 FCT is 100000000 Factoshis. This is the representation sent on the wire.
type Factoshis int64

// String returns the base 10 integer representation expected by
// factom-walletd.
func (f Factoshis) String() string {
	return strconv.FormatInt(int64(f), 10)
}

var (
	maxFactoshis = decimal.NewFromInt(math.MaxInt64)
	minFactoshis = decimal.NewFromInt(math.MinInt64)
)

// FCTToFactoshis returns floor(fct * 10^8). The multiplication is exact and
// the sign is preserved. An amount that does not fit in an int64 returns an
// error wrapping ErrAmountOutOfRange.
func FCTToFactoshis(fct decimal.Decimal) (Factoshis, error) {
	f := fct.Shift(FactoshiExp).Floor()
	if f.GreaterThan(maxFactoshis) || f.LessThan(minFactoshis) {
		return 0, fmt.Errorf("%w: %v FCT", ErrAmountOutOfRange, fct)
	}
	return Factoshis(f.IntPart()), nil
}

// FactoshisToFCT returns f as an exact decimal amount of Factoids.
func FactoshisToFCT(f Factoshis) decimal.Decimal {
	return decimal.New(int64(f), -FactoshiExp)
}

// FactoshisToWholeFCT returns the whole number of Factoids in f, truncated
// toward zero. Any fractional remainder is discarded.
func FactoshisToWholeFCT(f Factoshis) int64 {
	return int64(f) / 1e8
}

// ParseFactoshis parses a base 10 integer amount of Factoshis.
func ParseFactoshis(s string) (Factoshis, error) {
	f, err := strconv.ParseInt(s, 10, 64)
	return Factoshis(f), err
}
