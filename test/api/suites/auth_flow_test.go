package suites

import (
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nscaledev/cp-internal-tests/pkg/cpinternal"
	"github.com/nscaledev/cp-internal-tests/test/api"
)

var _ = Describe("Authentication Flow", Ordered, Label("integration"), func() {
	// Established once before any spec in this container, read only afterwards.
	var session *cpinternal.Session

	BeforeAll(func() {
		session = api.LoginWithSession(client, ctx, api.NewLoginPayload(config).Build())
	})

	Context("When logging in with valid credentials", func() {
		Describe("Given the merchant account and shared secret", func() {
			It("should issue a session token", func() {
				// Given: A login performed with valid credentials
				// Then: A non-empty token should have been issued
				Expect(session).NotTo(BeNil())
				Expect(session.Token()).NotTo(BeEmpty(), "Token should not be null after successful login.")
			})
		})
	})

	Context("When looking up the identity of a session", func() {
		Describe("Given the established session", func() {
			It("should return the merchant account", func() {
				// When: I request the identity with the bearer token
				identity := api.GetIdentity(client, ctx, session)
				// Then: The email should belong to the merchant
				api.VerifyIdentityEmail(identity, config.MerchantEmail)
			})
		})

		Describe("Given no session", func() {
			It("should refuse to make the request", func() {
				_, err := client.Whoami(ctx, nil)
				Expect(err).To(MatchError(cpinternal.ErrNoSession))
			})
		})
	})

	Context("When logging in with invalid credentials", func() {
		Describe("Given an unknown account and no shared secret", func() {
			It("should reject the login as unauthorized", func() {
				// When: I log in with invalid credentials
				status := api.AttemptLogin(client, ctx, api.NewInvalidLoginPayload(config).Build())
				// Then: The request should be rejected with 401 Unauthorized
				Expect(status).To(Equal(http.StatusUnauthorized), "Expected status code 401 for invalid login.")
			})
		})
	})

	Context("When repeating API operations", func() {
		Describe("Given idempotent operations", func() {
			It("should issue a valid token on every login", func() {
				for range 2 {
					repeated := api.LoginWithSession(client, ctx, api.NewLoginPayload(config).Build())
					Expect(repeated.Token()).NotTo(BeEmpty())
				}
			})
		})
	})
})
