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

//nolint:revive,staticcheck // dot imports are standard for Ginkgo/Gomega test code
package api

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nscaledev/cp-internal-tests/pkg/cpinternal"
	"github.com/nscaledev/cp-internal-tests/pkg/openapi"
)

// NewAPIClient returns a client that logs to the Ginkgo writer and, if
// configured, checks every response against the API document.
func NewAPIClient(ctx context.Context, config *TestConfig) *cpinternal.APIClient {
	opts := []cpinternal.ClientOption{
		cpinternal.WithLogger(GinkgoLogr),
	}

	if config.ValidateResponses {
		validator, err := openapi.NewValidator(ctx)
		Expect(err).NotTo(HaveOccurred())

		opts = append(opts, cpinternal.WithResponseValidator(validator))
	}

	return cpinternal.NewAPIClient(config.ClientOptions(), opts...)
}

// LoginWithSession logs in and returns the resulting session.  Anything other
// than a 200 with a non-empty token fails the current node, there is no retry.
func LoginWithSession(client cpinternal.Authenticator, ctx context.Context, payload cpinternal.LoginRequest) *cpinternal.Session {
	response, err := client.Login(ctx, payload)
	Expect(err).NotTo(HaveOccurred(), "Login failed with status code: %d", cpinternal.StatusCode(err))

	session, err := cpinternal.NewSession(response.Token)
	Expect(err).NotTo(HaveOccurred(), "Token should not be empty after successful login.")

	if expiresAt, err := session.ExpiresAt(); err == nil {
		GinkgoWriter.Printf("Session established, expires at %s\n", expiresAt)
	} else {
		GinkgoWriter.Printf("Session established with an opaque token\n")
	}

	return session
}

// GetIdentity looks up who the session belongs to.  A body that cannot be
// parsed fails with the parse error rather than a generic one.
func GetIdentity(client cpinternal.Authenticator, ctx context.Context, session *cpinternal.Session) *cpinternal.Identity {
	identity, err := client.Whoami(ctx, session)
	Expect(errors.Is(err, cpinternal.ErrMalformedResponse)).To(BeFalse(), "Failed to parse JSON response: %v", err)
	Expect(err).NotTo(HaveOccurred(), "Whoami call failed with status code: %d", cpinternal.StatusCode(err))

	GinkgoWriter.Printf("Response Body: %v\n", identity.Raw)

	return identity
}

// VerifyIdentityEmail verifies the identity belongs to the expected account.
func VerifyIdentityEmail(identity *cpinternal.Identity, expectedEmail string) {
	Expect(identity.Email).To(ContainSubstring(expectedEmail), "User email does not match.")
}

// AttemptLogin posts the payload and returns the status code, whatever it is.
func AttemptLogin(client cpinternal.Authenticator, ctx context.Context, payload cpinternal.LoginRequest) int {
	attempt, err := client.AttemptLogin(ctx, payload)
	Expect(err).NotTo(HaveOccurred())

	GinkgoWriter.Printf("Response Body: %s\n", string(attempt.Body))

	return attempt.StatusCode
}
