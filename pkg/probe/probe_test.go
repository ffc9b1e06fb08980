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

package probe_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/go-logr/logr/testr"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/nscaledev/cp-internal-tests/pkg/cpinternal"
	"github.com/nscaledev/cp-internal-tests/pkg/cpinternal/mock"
	"github.com/nscaledev/cp-internal-tests/pkg/probe"

	"k8s.io/utils/ptr"

	"sigs.k8s.io/controller-runtime/pkg/log"
)

func options() *probe.Options {
	return &probe.Options{
		Email:           "merchant@foodics.com",
		Password:        "123456",
		SharedSecret:    "not-a-real-secret",
		InvalidEmail:    "wrong@foodics.com",
		InvalidPassword: "wrongpassword",
		Steps:           probe.Steps(),
	}
}

func validLogin() cpinternal.LoginRequest {
	return cpinternal.LoginRequest{
		Email:    "merchant@foodics.com",
		Password: "123456",
		Token:    ptr.To("not-a-real-secret"),
	}
}

func invalidLogin() cpinternal.LoginRequest {
	return cpinternal.LoginRequest{
		Email:    "wrong@foodics.com",
		Password: "wrongpassword",
	}
}

func contextWithLogger(t *testing.T) context.Context {
	t.Helper()

	return log.IntoContext(context.Background(), testr.New(t))
}

func statuses(report *probe.Report) []probe.Status {
	out := make([]probe.Status, len(report.Steps))

	for i := range report.Steps {
		out[i] = report.Steps[i].Status
	}

	return out
}

func TestRunPasses(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	client := mock.NewMockAuthenticator(ctrl)

	gomock.InOrder(
		client.EXPECT().Login(gomock.Any(), validLogin()).Return(&cpinternal.LoginResponse{Token: "abc"}, nil),
		client.EXPECT().Whoami(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, session *cpinternal.Session) (*cpinternal.Identity, error) {
			require.Equal(t, "abc", session.Token())

			return &cpinternal.Identity{Email: "merchant@foodics.com"}, nil
		}),
		client.EXPECT().AttemptLogin(gomock.Any(), invalidLogin()).Return(&cpinternal.LoginAttempt{StatusCode: http.StatusUnauthorized}, nil),
	)

	report := probe.NewRunner(client, options()).Run(contextWithLogger(t))
	require.False(t, report.Failed())
	require.Equal(t, []probe.Status{probe.StatusPassed, probe.StatusPassed, probe.StatusPassed}, statuses(report))
	require.Equal(t, probe.Steps(), []string{report.Steps[0].Name, report.Steps[1].Name, report.Steps[2].Name})
}

func TestRunLoginFailureSkipsWhoami(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	client := mock.NewMockAuthenticator(ctrl)

	loginErr := &cpinternal.UnexpectedStatusError{Expected: http.StatusOK, Actual: http.StatusInternalServerError}

	client.EXPECT().Login(gomock.Any(), validLogin()).Return(nil, loginErr)
	client.EXPECT().AttemptLogin(gomock.Any(), invalidLogin()).Return(&cpinternal.LoginAttempt{StatusCode: http.StatusUnauthorized}, nil)

	report := probe.NewRunner(client, options()).Run(contextWithLogger(t))
	require.True(t, report.Failed())
	require.Equal(t, []probe.Status{probe.StatusFailed, probe.StatusSkipped, probe.StatusPassed}, statuses(report))
	require.ErrorIs(t, report.Steps[0].Err, loginErr)
	require.ErrorIs(t, report.Steps[1].Err, cpinternal.ErrNoSession)
}

func TestRunEmptyTokenFailsLogin(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	client := mock.NewMockAuthenticator(ctrl)

	client.EXPECT().Login(gomock.Any(), validLogin()).Return(&cpinternal.LoginResponse{}, nil)
	client.EXPECT().AttemptLogin(gomock.Any(), invalidLogin()).Return(&cpinternal.LoginAttempt{StatusCode: http.StatusUnauthorized}, nil)

	report := probe.NewRunner(client, options()).Run(contextWithLogger(t))
	require.True(t, report.Failed())
	require.ErrorIs(t, report.Steps[0].Err, cpinternal.ErrEmptyToken)
	require.Equal(t, probe.StatusSkipped, report.Steps[1].Status)
}

func TestRunIdentityMismatch(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	client := mock.NewMockAuthenticator(ctrl)

	client.EXPECT().Login(gomock.Any(), validLogin()).Return(&cpinternal.LoginResponse{Token: "abc"}, nil)
	client.EXPECT().Whoami(gomock.Any(), gomock.Any()).Return(&cpinternal.Identity{Email: "someone@else.com"}, nil)

	o := options()
	o.Steps = []string{probe.StepLogin, probe.StepWhoami}

	report := probe.NewRunner(client, o).Run(contextWithLogger(t))
	require.True(t, report.Failed())
	require.ErrorIs(t, report.Steps[1].Err, probe.ErrIdentityMismatch)
}

func TestRunInvalidLoginAccepted(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	client := mock.NewMockAuthenticator(ctrl)

	client.EXPECT().AttemptLogin(gomock.Any(), invalidLogin()).Return(&cpinternal.LoginAttempt{StatusCode: http.StatusOK}, nil)

	o := options()
	o.Steps = []string{probe.StepReject}

	report := probe.NewRunner(client, o).Run(contextWithLogger(t))
	require.True(t, report.Failed())
	require.Len(t, report.Steps, 1)
	require.ErrorIs(t, report.Steps[0].Err, probe.ErrNotRejected)
}

func TestRunHonoursStepOrder(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	client := mock.NewMockAuthenticator(ctrl)

	gomock.InOrder(
		client.EXPECT().Login(gomock.Any(), validLogin()).Return(&cpinternal.LoginResponse{Token: "abc"}, nil),
		client.EXPECT().AttemptLogin(gomock.Any(), invalidLogin()).Return(&cpinternal.LoginAttempt{StatusCode: http.StatusUnauthorized}, nil),
	)

	o := options()
	o.Steps = []string{probe.StepReject, probe.StepLogin}

	report := probe.NewRunner(client, o).Run(contextWithLogger(t))
	require.False(t, report.Failed())
	require.Equal(t, probe.StepLogin, report.Steps[0].Name)
	require.Equal(t, probe.StepReject, report.Steps[1].Name)
}

func TestOptionsValidate(t *testing.T) {
	t.Parallel()

	require.NoError(t, options().Validate())

	o := options()
	o.SharedSecret = ""
	o.Steps = []string{probe.StepWhoami, "logout"}

	err := o.Validate()
	require.ErrorIs(t, err, probe.ErrMissingOption)
	require.ErrorIs(t, err, probe.ErrStepDependency)
	require.ErrorIs(t, err, probe.ErrUnknownStep)
	require.Contains(t, err.Error(), "logout")

	o = options()
	o.SharedSecret = ""
	o.Steps = []string{probe.StepReject}

	require.NoError(t, o.Validate())
}
