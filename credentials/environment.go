// Copyright 2016 Amazon.com, Inc. or its affiliates. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License"). You may not
// use this file except in compliance with the License. A copy of the
// License is located at
//
// http://aws.amazon.com/apache2.0/
//
// or in the "license" file accompanying this file. This file is distributed
// on an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND,
// either express or implied. See the License for the specific language governing
// permissions and limitations under the License.

package credentials

import (
	"context"
	"os"
)

const (
	envAccessKeyID     = "AWS_ACCESS_KEY_ID"
	envSecretAccessKey = "AWS_SECRET_ACCESS_KEY"
	envSessionToken    = "AWS_SESSION_TOKEN"
)

// getenvFunc is the injection seam for the process environment. The Design
// Notes call out the environment as the only process-wide mutable state;
// tests substitute a synthetic map-backed function instead of mutating the
// real environment.
type getenvFunc func(string) string

// EnvironmentProvider resolves credentials from the process environment
// (§4.3). It never caches: the record is static with an expiration of
// "never", so every call simply re-reads the environment.
type EnvironmentProvider struct {
	getenv getenvFunc
}

// NewEnvironmentProvider returns a provider backed by the real process
// environment.
func NewEnvironmentProvider() *EnvironmentProvider {
	return &EnvironmentProvider{getenv: os.Getenv}
}

// Name implements Provider.
func (p *EnvironmentProvider) Name() string { return "environment" }

// Retrieve implements Provider.
func (p *EnvironmentProvider) Retrieve(ctx context.Context) (Credential, error) {
	accessKeyID := p.getenv(envAccessKeyID)
	secretAccessKey := p.getenv(envSecretAccessKey)
	if accessKeyID == "" || secretAccessKey == "" {
		return Credential{}, &Error{Kind: KindNotApplicable, Source: p.Name()}
	}

	return Credential{
		AccessKeyID:     accessKeyID,
		SecretAccessKey: secretAccessKey,
		SessionToken:    p.getenv(envSessionToken),
		Expiration:      neverExpires,
	}, nil
}

// Refresh implements Provider by re-validating the environment; there is no
// cache to invalidate.
func (p *EnvironmentProvider) Refresh(ctx context.Context) error {
	_, err := p.Retrieve(ctx)
	return err
}
