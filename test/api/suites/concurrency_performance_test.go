/*
Copyright 2024-2025 the Unikorn Authors.

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

package suites

import (
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nscaledev/cp-internal-tests/pkg/cpinternal"
	"github.com/nscaledev/cp-internal-tests/test/api"
)

const concurrentLogins = 5

var _ = Describe("Concurrency and Performance", Label("integration"), func() {
	Context("When performing concurrent operations", func() {
		Describe("Given multiple simultaneous login requests", func() {
			It("should issue a usable session to every request", func() {
				// Given: Several clients logging in as the same merchant at once
				sessions := make([]*cpinternal.Session, concurrentLogins)

				var wg sync.WaitGroup

				for i := range concurrentLogins {
					wg.Add(1)

					go func() {
						defer GinkgoRecover()
						defer wg.Done()

						sessions[i] = api.LoginWithSession(client, ctx, api.NewLoginPayload(config).Build())
					}()
				}

				wg.Wait()

				// Then: Every session should resolve to the merchant
				for _, session := range sessions {
					api.VerifyIdentityEmail(api.GetIdentity(client, ctx, session), config.MerchantEmail)
				}
			})
		})
	})

	Context("When measuring response times", func() {
		Describe("Given normal operating conditions", func() {
			It("should log in within the request timeout", func() {
				// When: I log in with valid credentials
				start := time.Now()
				api.LoginWithSession(client, ctx, api.NewLoginPayload(config).Build())
				// Then: The response should arrive well within the configured timeout
				Expect(time.Since(start)).To(BeNumerically("<", config.RequestTimeout))
			})
		})
	})
})
