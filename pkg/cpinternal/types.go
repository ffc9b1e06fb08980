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
	"k8s.io/utils/ptr"
)

// Credentials are what a caller presents to the login endpoint.
type Credentials struct {
	Email    string
	Password string

	// SharedSecret is the static client secret sent as the "token" field of
	// the login body.  It is unrelated to the session token returned on success.
	// When empty the field is omitted from the request.
	SharedSecret string
}

// LoginRequest returns the wire representation of the credentials.
func (c Credentials) LoginRequest() LoginRequest {
	request := LoginRequest{
		Email:    c.Email,
		Password: c.Password,
	}

	if c.SharedSecret != "" {
		request.Token = ptr.To(c.SharedSecret)
	}

	return request
}

// LoginRequest is the body of POST /login.
type LoginRequest struct {
	Email    string  `json:"email"`
	Password string  `json:"password"`
	Token    *string `json:"token,omitempty"`
}

// LoginResponse is the body of a successful POST /login.
type LoginResponse struct {
	Token string `json:"token"`
}

// LoginAttempt is the raw outcome of a login that isn't required to succeed.
type LoginAttempt struct {
	StatusCode int
	Body       []byte
}

// Identity is the body of GET /whoami.
type Identity struct {
	Email string `json:"email"`

	// Raw is the complete decoded object, the service returns more than
	// we model.
	Raw map[string]interface{} `json:"-"`
}
