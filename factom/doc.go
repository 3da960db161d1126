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

// Package factom is a client for the v1 HTTP APIs of factomd and
// factom-walletd.
//
// Every remote operation is a method on Client taking a context.Context. The
// wallet and the daemon are the source of truth for all state: Client holds
// no copies of transactions, balances or addresses, only the two endpoints.
//
// Amounts cross the API boundary as decimal.Decimal Factoids and travel on the
// wire as integer Factoshis, see FCTToFactoshis and FactoshisToFCT.
//
// Errors
//
// A service that cannot be reached returns a *ServiceUnavailableError. A
// response that is not JSON or is missing a field the operation depends on
// returns a *UnexpectedResponseError holding the raw body. Neither is ever
// retried. Logical failures reported by the services themselves, such as
// insufficient funds, are not errors at this layer: they are returned in
// Response.Success for the caller to inspect.
package factom
