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

package api

import (
	"github.com/nscaledev/cp-internal-tests/pkg/cpinternal"

	"k8s.io/utils/ptr"
)

// LoginPayloadBuilder builds login payloads for testing.
type LoginPayloadBuilder struct {
	payload cpinternal.LoginRequest
}

// NewLoginPayload creates a new login payload builder with the known good
// merchant credentials from config.
func NewLoginPayload(config *TestConfig) *LoginPayloadBuilder {
	return &LoginPayloadBuilder{
		payload: config.MerchantCredentials().LoginRequest(),
	}
}

// NewInvalidLoginPayload creates a login payload builder with credentials that
// must be rejected.  No shared secret is sent either, so a 401 may be down to
// the missing secret rather than the credentials themselves.
func NewInvalidLoginPayload(config *TestConfig) *LoginPayloadBuilder {
	return NewLoginPayload(config).
		WithEmail(config.InvalidEmail).
		WithPassword(config.InvalidPassword).
		WithoutSharedSecret()
}

// WithEmail sets the email.
func (b *LoginPayloadBuilder) WithEmail(email string) *LoginPayloadBuilder {
	b.payload.Email = email

	return b
}

// WithPassword sets the password.
func (b *LoginPayloadBuilder) WithPassword(password string) *LoginPayloadBuilder {
	b.payload.Password = password

	return b
}

// WithSharedSecret sets the shared secret.
func (b *LoginPayloadBuilder) WithSharedSecret(secret string) *LoginPayloadBuilder {
	b.payload.Token = ptr.To(secret)

	return b
}

// WithoutSharedSecret omits the token field entirely.
func (b *LoginPayloadBuilder) WithoutSharedSecret() *LoginPayloadBuilder {
	b.payload.Token = nil

	return b
}

// Build returns the completed login payload.
func (b *LoginPayloadBuilder) Build() cpinternal.LoginRequest {
	return b.payload
}
