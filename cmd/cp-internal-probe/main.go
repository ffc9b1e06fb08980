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

package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/nscaledev/cp-internal-tests/pkg/cpinternal"
	"github.com/nscaledev/cp-internal-tests/pkg/openapi"
	"github.com/nscaledev/cp-internal-tests/pkg/probe"
	"github.com/unikorn-cloud/core/pkg/options"

	cr "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/log"
)

// commandOptions is everything the command line controls.
type commandOptions struct {
	core              options.CoreOptions
	client            cpinternal.Options
	probe             probe.Options
	validateResponses bool
	timeout           time.Duration
}

// AddFlags registers every flag, including the shared logging ones.
func (o *commandOptions) AddFlags(f *pflag.FlagSet) {
	o.core.AddFlags(f)
	o.client.AddFlags(f)
	o.probe.AddFlags(f)

	f.BoolVar(&o.validateResponses, "validate-responses", false, "Check responses against the embedded API document")
	f.DurationVar(&o.timeout, "timeout", 2*time.Minute, "Overall time allowed for the probe")
}

func main() {
	var o commandOptions

	o.AddFlags(pflag.CommandLine)

	pflag.Parse()

	o.core.SetupLogging()

	logger := log.Log.WithName("probe")

	if err := o.probe.Validate(); err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(cr.SetupSignalHandler(), o.timeout)
	defer cancel()

	ctx = log.IntoContext(ctx, logger)

	opts := []cpinternal.ClientOption{
		cpinternal.WithLogger(logger.WithName("client")),
	}

	if o.validateResponses {
		validator, err := openapi.NewValidator(ctx)
		if err != nil {
			fmt.Println(err)
			cancel()
			os.Exit(1)
		}

		opts = append(opts, cpinternal.WithResponseValidator(validator))
	}

	logger.Info("probe starting", "baseURL", o.client.BaseURL, "steps", o.probe.Steps)

	report := probe.NewRunner(cpinternal.NewAPIClient(&o.client, opts...), &o.probe).Run(ctx)

	for _, step := range report.Steps {
		if step.Err != nil {
			fmt.Printf("%-8s %-8s %s: %v\n", step.Name, step.Status, step.Duration.Round(time.Millisecond), step.Err)
			continue
		}

		fmt.Printf("%-8s %-8s %s\n", step.Name, step.Status, step.Duration.Round(time.Millisecond))
	}

	if report.Failed() {
		cancel()
		os.Exit(1)
	}
}
