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
	"encoding/json"
	"errors"
	"fmt"
)

// ErrSequence is wrapped by errors returned when a transaction step is
// attempted from a state that does not allow it. No request is made.
var ErrSequence = errors.New("transaction step out of sequence")

// FailedError is returned when factomd or factom-walletd answered a step with
// Success false. Response is the service's explanation.
type FailedError struct {
	Op       string
	TxName   string // Empty for chain and entry publication.
	Response string
}

func (err *FailedError) Error() string {
	if len(err.TxName) > 0 {
		return fmt.Sprintf("%v %q: rejected: %v",
			err.Op, err.TxName, err.Response)
	}
	return fmt.Sprintf("%v: rejected: %v", err.Op, err.Response)
}

// RevealFailedAfterCommitError is returned when a commit was accepted but the
// reveal was not made or not accepted. The commit is not rolled back: Reveal
// holds the payload so the caller may reveal it again.
type RevealFailedAfterCommitError struct {
	Op      string
	ChainID string
	Reveal  json.RawMessage
	Err     error
}

func (err *RevealFailedAfterCommitError) Error() string {
	return fmt.Sprintf("%v: reveal failed after successful commit: %v",
		err.Op, err.Err)
}

func (err *RevealFailedAfterCommitError) Unwrap() error {
	return err.Err
}
