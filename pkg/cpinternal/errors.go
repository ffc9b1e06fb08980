/*
Copyright 2024-2025 the Unikorn Authors.
Copyright 2026 Nscale.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package cpinternal

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyToken is raised when a login succeeds but no session token is issued.
	ErrEmptyToken = errors.New("session token is empty")

	// ErrNoSession is raised when an authenticated call is made before login.
	ErrNoSession = errors.New("no session established, login must happen first")

	// ErrOpaqueToken is raised when asking for JWT claims of a token that isn't one.
	ErrOpaqueToken = errors.New("session token is opaque")

	// ErrMalformedResponse is raised when a response body cannot be decoded.
	ErrMalformedResponse = errors.New("malformed response")
)

// UnexpectedStatusError is returned when the service responds with a status
// code other than the one the operation requires.
type UnexpectedStatusError struct {
	Method   string
	Path     string
	Expected int
	Actual   int
	Body     string
	TraceID  string
}

func (e *UnexpectedStatusError) Error() string {
	return fmt.Sprintf("unexpected status code: expected %d, got %d, body: %s (trace ID: %s)", e.Expected, e.Actual, e.Body, e.TraceID)
}

// StatusCode returns the observed status code of an UnexpectedStatusError
// anywhere in the chain, or 0.
func StatusCode(err error) int {
	var statusErr *UnexpectedStatusError
	if errors.As(err, &statusErr) {
		return statusErr.Actual
	}

	return 0
}
