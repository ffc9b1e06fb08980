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
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/nscaledev/cp-internal-tests/pkg/cpinternal"
)

type TestConfig struct {
	BaseURL           string
	SharedSecret      string
	MerchantEmail     string
	MerchantPassword  string
	InvalidEmail      string
	InvalidPassword   string
	RequestTimeout    time.Duration
	TestTimeout       time.Duration
	SkipIntegration   bool
	DebugLogging      bool
	LogRequests       bool
	LogResponses      bool
	ValidateResponses bool
}

// LoadTestConfig loads configuration from environment variables and .env files.
// Returns an error if required configuration values are missing, unless the
// integration tests are being skipped anyway.
func LoadTestConfig() (*TestConfig, error) {
	loadEnvFile()

	config := &TestConfig{
		BaseURL:           getStringWithDefault("API_BASE_URL", cpinternal.DefaultBaseURL),
		SharedSecret:      os.Getenv("CP_INTERNAL_SHARED_SECRET"),
		MerchantEmail:     getStringWithDefault("TEST_MERCHANT_EMAIL", "merchant@foodics.com"),
		MerchantPassword:  getStringWithDefault("TEST_MERCHANT_PASSWORD", "123456"),
		InvalidEmail:      getStringWithDefault("TEST_INVALID_EMAIL", "wrong@foodics.com"),
		InvalidPassword:   getStringWithDefault("TEST_INVALID_PASSWORD", "wrongpassword"),
		RequestTimeout:    getDurationWithDefault("REQUEST_TIMEOUT", 30*time.Second),
		TestTimeout:       getDurationWithDefault("TEST_TIMEOUT", 5*time.Minute),
		SkipIntegration:   getBoolWithDefault("SKIP_INTEGRATION", false),
		DebugLogging:      getBoolWithDefault("DEBUG_LOGGING", false),
		LogRequests:       getBoolWithDefault("LOG_REQUESTS", false),
		LogResponses:      getBoolWithDefault("LOG_RESPONSES", false),
		ValidateResponses: getBoolWithDefault("VALIDATE_RESPONSES", false),
	}

	if config.SkipIntegration {
		return config, nil
	}

	// Validate required fields
	if err := validateRequiredFields(config); err != nil {
		return nil, err
	}

	return config, nil
}

// ClientOptions returns the client options implied by the configuration.
func (c *TestConfig) ClientOptions() *cpinternal.Options {
	return &cpinternal.Options{
		BaseURL:        c.BaseURL,
		RequestTimeout: c.RequestTimeout,
		LogRequests:    c.LogRequests || c.DebugLogging,
		LogResponses:   c.LogResponses || c.DebugLogging,
	}
}

// MerchantCredentials are the known good credentials, including the shared secret.
func (c *TestConfig) MerchantCredentials() cpinternal.Credentials {
	return cpinternal.Credentials{
		Email:        c.MerchantEmail,
		Password:     c.MerchantPassword,
		SharedSecret: c.SharedSecret,
	}
}

// getStringWithDefault gets a string from environment variable or returns default.
func getStringWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return defaultValue
}

// getDurationWithDefault gets a duration from environment variable or returns default.
func getDurationWithDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}

	return duration
}

// getBoolWithDefault gets a boolean from environment variable or returns default.
func getBoolWithDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}

	return boolValue
}

func loadEnvFile() {
	envPaths := []string{
		"../../test/.env",    // From test/api directory
		"../../../test/.env", // From test/api/suites directory
	}

	var envPath string

	for _, path := range envPaths {
		if _, err := os.Stat(path); err == nil {
			absPath, err := filepath.Abs(path)
			if err == nil {
				envPath = absPath
				break
			}
		}
	}

	if envPath == "" {
		// .env file not found - this is OK in CI/CD where env vars are set directly
		return
	}

	// Existing environment variables take precedence over the file.
	if err := godotenv.Load(envPath); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load .env file from %s: %v\n", envPath, err)
	}
}

// validateRequiredFields checks that all required configuration values are set.
func validateRequiredFields(config *TestConfig) error {
	var missing []string

	required := map[string]string{
		"API_BASE_URL":              config.BaseURL,
		"CP_INTERNAL_SHARED_SECRET": config.SharedSecret,
		"TEST_MERCHANT_EMAIL":       config.MerchantEmail,
		"TEST_MERCHANT_PASSWORD":    config.MerchantPassword,
	}

	for envVar, value := range required {
		if value == "" {
			missing = append(missing, envVar)
		}
	}

	if len(missing) > 0 {
		slices.Sort(missing)

		return fmt.Errorf("missing required configuration: %s. Please set these environment variables or add them to a .env file, or the gh secrets", strings.Join(missing, ", "))
	}

	return nil
}
