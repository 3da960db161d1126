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
	"errors"
	"fmt"
)

var (
	// ErrMalformedBalanceReport is wrapped by all errors returned by
	// ParseBalanceReport.
	ErrMalformedBalanceReport = errors.New("malformed balance report")

	// ErrFeeUnavailable is wrapped by all errors returned by Client.Fee.
	ErrFeeUnavailable = errors.New("fee unavailable")

	// ErrInvalidAddress is returned when a public address is required but
	// the given string is not one.
	ErrInvalidAddress = errors.New("invalid address")

	// ErrAmountOutOfRange is returned when an amount of Factoids cannot be
	// represented as an int64 number of Factoshis.
	ErrAmountOutOfRange = errors.New("amount out of range")
)

// ServiceUnavailableError is returned when factomd or factom-walletd could not
// be reached. Verify that the service is running on Port before retrying.
type ServiceUnavailableError struct {
	Service string // Factomd or Walletd
	Server  string
	Port    string
	Err     error
}

func (err *ServiceUnavailableError) Error() string {
	return fmt.Sprintf("%v unavailable on port %v: %v - check %v is running",
		err.Service, err.Port, err.Err, err.Service)
}

func (err *ServiceUnavailableError) Unwrap() error {
	return err.Err
}

// UnexpectedResponseError is returned when a response body is not the JSON
// object the operation Op expects. Body holds the raw response.
type UnexpectedResponseError struct {
	Op         string
	StatusCode int
	Body       []byte
	Err        error
}

func (err *UnexpectedResponseError) Error() string {
	return fmt.Sprintf("%v: unexpected response (http %v): %v: %q",
		err.Op, err.StatusCode, err.Err, err.Body)
}

func (err *UnexpectedResponseError) Unwrap() error {
	return err.Err
}
