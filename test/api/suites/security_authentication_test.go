package suites

import (
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nscaledev/cp-internal-tests/pkg/cpinternal"
	"github.com/nscaledev/cp-internal-tests/test/api"
)

var _ = Describe("Security and Authentication", Label("integration"), func() {
	Context("When accessing API with different authentication states", func() {
		Describe("Given invalid authentication", func() {
			It("should reject requests with invalid tokens", func() {
				// Given: A token the service never issued
				session, err := cpinternal.NewSession("invalid-session-token")
				Expect(err).NotTo(HaveOccurred())
				// When: I request the identity
				_, err = client.Whoami(ctx, session)
				// Then: The request should be rejected with 401 Unauthorized
				Expect(cpinternal.StatusCode(err)).To(Equal(http.StatusUnauthorized))
			})

			It("should reject valid credentials without the shared secret", func() {
				// Given: The merchant credentials but no shared secret
				payload := api.NewLoginPayload(config).WithoutSharedSecret().Build()
				// When: I log in
				status := api.AttemptLogin(client, ctx, payload)
				// Then: No session should be issued
				Expect(status).To(BeElementOf(http.StatusUnauthorized, http.StatusUnprocessableEntity))
			})
		})
	})

	Context("When submitting malicious input", func() {
		Describe("Given security testing", func() {
			It("should reject SQL injection attempts", func() {
				// Given: An email containing an SQL injection payload
				payload := api.NewLoginPayload(config).WithEmail("' OR '1'='1' --").Build()
				// When: I log in
				status := api.AttemptLogin(client, ctx, payload)
				// Then: The login should be rejected safely
				Expect(status).To(BeElementOf(http.StatusUnauthorized, http.StatusUnprocessableEntity))
			})
		})
	})
})
