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

// Package probe runs the cp_internal authentication flow outside of a test
// runner, e.g. as a post deployment smoke check.
package probe

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spjmurray/go-util/pkg/set"

	"github.com/nscaledev/cp-internal-tests/pkg/cpinternal"

	utilerrors "k8s.io/apimachinery/pkg/util/errors"

	"sigs.k8s.io/controller-runtime/pkg/log"
)

const (
	// StepLogin logs in with valid credentials and establishes a session.
	StepLogin = "login"

	// StepWhoami checks the session resolves to the expected account.
	StepWhoami = "whoami"

	// StepReject checks invalid credentials are refused.
	StepReject = "reject"
)

var (
	ErrMissingOption = errors.New("missing required option")

	ErrUnknownStep = errors.New("unknown step")

	ErrStepDependency = errors.New("step dependency not selected")

	ErrIdentityMismatch = errors.New("identity does not match")

	ErrNotRejected = errors.New("invalid credentials were not rejected")
)

// Steps is every step in execution order.
func Steps() []string {
	return []string{StepLogin, StepWhoami, StepReject}
}

// Options define what the probe checks.
type Options struct {
	Email           string
	Password        string
	SharedSecret    string
	InvalidEmail    string
	InvalidPassword string
	Steps           []string
}

// AddFlags registers the probe flags, steps default to all of them.
func (o *Options) AddFlags(f *pflag.FlagSet) {
	f.StringVar(&o.Email, "email", "merchant@foodics.com", "Merchant account email")
	f.StringVar(&o.Password, "password", "123456", "Merchant account password")
	f.StringVar(&o.SharedSecret, "shared-secret", os.Getenv("CP_INTERNAL_SHARED_SECRET"), "Shared client secret sent with valid logins, defaults to $CP_INTERNAL_SHARED_SECRET")
	f.StringVar(&o.InvalidEmail, "invalid-email", "wrong@foodics.com", "Email used to check invalid logins are rejected")
	f.StringVar(&o.InvalidPassword, "invalid-password", "wrongpassword", "Password used to check invalid logins are rejected")
	f.StringSliceVar(&o.Steps, "steps", Steps(), "Steps to run, always executed in the order "+strings.Join(Steps(), ","))
}

// Validate checks the options are usable, returning every problem at once.
func (o *Options) Validate() error {
	var errs []error

	if slices.Contains(o.Steps, StepLogin) || slices.Contains(o.Steps, StepWhoami) {
		if o.Email == "" {
			errs = append(errs, fmt.Errorf("%w: email", ErrMissingOption))
		}

		if o.Password == "" {
			errs = append(errs, fmt.Errorf("%w: password", ErrMissingOption))
		}

		if o.SharedSecret == "" {
			errs = append(errs, fmt.Errorf("%w: shared-secret", ErrMissingOption))
		}
	}

	if slices.Contains(o.Steps, StepWhoami) && !slices.Contains(o.Steps, StepLogin) {
		errs = append(errs, fmt.Errorf("%w: %s needs %s", ErrStepDependency, StepWhoami, StepLogin))
	}

	var unknown []string

	for name := range set.New[string](o.Steps...).Difference(set.New[string](Steps()...)).All() {
		unknown = append(unknown, name)
	}

	if len(unknown) > 0 {
		slices.Sort(unknown)

		errs = append(errs, fmt.Errorf("%w: %s", ErrUnknownStep, strings.Join(unknown, ", ")))
	}

	return utilerrors.NewAggregate(errs)
}

// Status is the outcome of a step.
type Status string

const (
	StatusPassed  Status = "passed"
	StatusFailed  Status = "failed"
	StatusSkipped Status = "skipped"
)

// StepResult records a single step.
type StepResult struct {
	Name     string
	Status   Status
	Duration time.Duration
	Err      error
}

// Report is the result of a run, steps are in execution order.
type Report struct {
	Steps []StepResult
}

// Failed is true if any step failed.
func (r *Report) Failed() bool {
	return slices.ContainsFunc(r.Steps, func(step StepResult) bool {
		return step.Status == StatusFailed
	})
}

// Runner executes the authentication flow.
type Runner struct {
	client  cpinternal.Authenticator
	options *Options
}

// NewRunner returns a new runner.
func NewRunner(client cpinternal.Authenticator, options *Options) *Runner {
	return &Runner{
		client:  client,
		options: options,
	}
}

// Run executes the selected steps.  A failed login skips the identity check,
// as it needs the session, but the rejection check is independent and always
// runs when selected.
func (r *Runner) Run(ctx context.Context) *Report {
	log := log.FromContext(ctx)

	report := &Report{}

	var session *cpinternal.Session

	for _, name := range Steps() {
		if !slices.Contains(r.options.Steps, name) {
			continue
		}

		result := StepResult{
			Name: name,
		}

		if name == StepWhoami && session == nil {
			result.Status = StatusSkipped
			result.Err = cpinternal.ErrNoSession

			log.Info("step skipped", "step", name, "reason", result.Err.Error())

			report.Steps = append(report.Steps, result)

			continue
		}

		start := time.Now()

		var err error

		switch name {
		case StepLogin:
			session, err = r.login(ctx)
		case StepWhoami:
			err = r.whoami(ctx, session)
		case StepReject:
			err = r.reject(ctx)
		}

		result.Duration = time.Since(start)
		result.Status = StatusPassed

		if err != nil {
			result.Status = StatusFailed
			result.Err = err

			log.Error(err, "step failed", "step", name, "duration", result.Duration)
		} else {
			log.Info("step passed", "step", name, "duration", result.Duration)
		}

		report.Steps = append(report.Steps, result)
	}

	return report
}

func (r *Runner) login(ctx context.Context) (*cpinternal.Session, error) {
	credentials := cpinternal.Credentials{
		Email:        r.options.Email,
		Password:     r.options.Password,
		SharedSecret: r.options.SharedSecret,
	}

	response, err := r.client.Login(ctx, credentials.LoginRequest())
	if err != nil {
		return nil, err
	}

	session, err := cpinternal.NewSession(response.Token)
	if err != nil {
		return nil, err
	}

	if expiresAt, err := session.ExpiresAt(); err == nil {
		log.FromContext(ctx).Info("session established", "expires", expiresAt)
	}

	return session, nil
}

func (r *Runner) whoami(ctx context.Context, session *cpinternal.Session) error {
	identity, err := r.client.Whoami(ctx, session)
	if err != nil {
		return err
	}

	if !strings.Contains(identity.Email, r.options.Email) {
		return fmt.Errorf("%w: expected %q, got %q", ErrIdentityMismatch, r.options.Email, identity.Email)
	}

	return nil
}

func (r *Runner) reject(ctx context.Context) error {
	// Sent without the shared secret.
	credentials := cpinternal.Credentials{
		Email:    r.options.InvalidEmail,
		Password: r.options.InvalidPassword,
	}

	attempt, err := r.client.AttemptLogin(ctx, credentials.LoginRequest())
	if err != nil {
		return err
	}

	if attempt.StatusCode != http.StatusUnauthorized {
		return fmt.Errorf("%w: expected status %d, got %d", ErrNotRejected, http.StatusUnauthorized, attempt.StatusCode)
	}

	return nil
}
