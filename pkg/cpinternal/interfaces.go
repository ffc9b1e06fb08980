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

//go:generate mockgen -source=interfaces.go -destination=mock/interfaces.go -package=mock

package cpinternal

import (
	"context"
)

// Authenticator is the authentication surface of the cp_internal service.
type Authenticator interface {
	// Login exchanges credentials for a session token.
	Login(ctx context.Context, request LoginRequest) (*LoginResponse, error)

	// AttemptLogin posts credentials without requiring success.
	AttemptLogin(ctx context.Context, request LoginRequest) (*LoginAttempt, error)

	// Whoami returns the identity a session belongs to.
	Whoami(ctx context.Context, session *Session) (*Identity, error)
}
