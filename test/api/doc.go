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

// Package api provides integration test utilities for the cp_internal
// authentication endpoints.
//
// # Configuration
//
// Configuration comes from the environment, optionally seeded from test/.env
// (see test/.env.example).  The shared client secret sent with a valid login
// is never committed, it must be provided as CP_INTERNAL_SHARED_SECRET.
//
// # Session Handling
//
// A login yields a cpinternal.Session which is handed explicitly to anything
// that needs authentication.  Suites establish it once in a BeforeAll of an
// Ordered container, so specs that depend on it always run after it and
// never share mutable package state.
//
// # Contract Checks
//
// Setting VALIDATE_RESPONSES=true checks every response against the API
// document embedded in pkg/openapi, in addition to the explicit assertions.
package api
