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
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Session holds a bearer token issued by a successful login.  It is immutable
// and is handed explicitly to every call that needs authentication.
type Session struct {
	token string
}

// NewSession wraps a token, which must not be empty.
func NewSession(token string) (*Session, error) {
	if token == "" {
		return nil, ErrEmptyToken
	}

	return &Session{
		token: token,
	}, nil
}

// Token returns the raw bearer token.
func (s *Session) Token() string {
	return s.token
}

// AuthorizationHeader returns the Authorization header value for the session.
func (s *Session) AuthorizationHeader() string {
	return "Bearer " + s.token
}

// ExpiresAt reads the exp claim if the token is a JWT.  The signature is NOT
// verified, we don't hold the key and only use this for diagnostics.
func (s *Session) ExpiresAt() (time.Time, error) {
	claims := jwt.MapClaims{}

	if _, _, err := jwt.NewParser().ParseUnverified(s.token, claims); err != nil {
		return time.Time{}, fmt.Errorf("%w: %w", ErrOpaqueToken, err)
	}

	expiry, err := claims.GetExpirationTime()
	if err != nil {
		return time.Time{}, fmt.Errorf("reading expiry claim: %w", err)
	}

	if expiry == nil {
		return time.Time{}, fmt.Errorf("%w: no expiry claim", ErrOpaqueToken)
	}

	return expiry.Time, nil
}
