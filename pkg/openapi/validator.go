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

package openapi

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
)

var (
	ErrUndocumentedPath = errors.New("path is not documented")

	ErrUndocumentedOperation = errors.New("operation is not documented")
)

//go:embed schema.yaml
var schema []byte

// Schema returns the parsed, but unvalidated, API document.
func Schema() (*openapi3.T, error) {
	doc, err := openapi3.NewLoader().LoadFromData(schema)
	if err != nil {
		return nil, fmt.Errorf("loading schema: %w", err)
	}

	return doc, nil
}

// Validator checks responses against the API document.
type Validator struct {
	doc *openapi3.T
}

// NewValidator loads and validates the embedded API document.
func NewValidator(ctx context.Context) (*Validator, error) {
	doc, err := Schema()
	if err != nil {
		return nil, err
	}

	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("validating schema: %w", err)
	}

	return &Validator{
		doc: doc,
	}, nil
}

// ValidateResponse checks a response to req, which was made against the
// documented path.  Statuses the document doesn't mention are rejected.
func (v *Validator) ValidateResponse(ctx context.Context, req *http.Request, path string, status int, header http.Header, body []byte) error {
	pathItem := v.doc.Paths.Find(path)
	if pathItem == nil {
		return fmt.Errorf("%w: %s", ErrUndocumentedPath, path)
	}

	operation := pathItem.GetOperation(req.Method)
	if operation == nil {
		return fmt.Errorf("%w: %s %s", ErrUndocumentedOperation, req.Method, path)
	}

	options := &openapi3filter.Options{
		IncludeResponseStatus: true,
		MultiError:            true,
	}

	input := &openapi3filter.ResponseValidationInput{
		RequestValidationInput: &openapi3filter.RequestValidationInput{
			Request: req,
			Route: &routers.Route{
				Spec:      v.doc,
				Path:      path,
				PathItem:  pathItem,
				Method:    req.Method,
				Operation: operation,
			},
			Options: options,
		},
		Status:  status,
		Header:  header,
		Options: options,
	}

	input.SetBodyBytes(body)

	if err := openapi3filter.ValidateResponse(ctx, input); err != nil {
		return fmt.Errorf("%s %s %d: %w", req.Method, path, status, err)
	}

	return nil
}
