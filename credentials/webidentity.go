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
	"io"
	"os"
	"time"
)

const (
	envWebIdentityTokenFile = "AWS_WEB_IDENTITY_TOKEN_FILE"
	envRoleArn              = "AWS_ROLE_ARN"
	envRoleSessionName      = "AWS_ROLE_SESSION_NAME"
)

// WebIdentityProvider implements the §4.3 OIDC web-identity source: it
// exchanges a token file's contents for STS credentials via the unsigned
// AssumeRoleWithWebIdentity call.
type WebIdentityProvider struct {
	client  HTTPClient
	region  string
	timeout time.Duration
	cache   *cache
}

// NewWebIdentityProvider builds a web-identity provider. region selects the
// regional STS endpoint; an empty region uses the global sts.amazonaws.com.
func NewWebIdentityProvider(client HTTPClient, region string, refreshWindow, timeout time.Duration) *WebIdentityProvider {
	return &WebIdentityProvider{client: client, region: region, timeout: timeout, cache: newCache(refreshWindow)}
}

// Name implements Provider.
func (p *WebIdentityProvider) Name() string { return "web-identity" }

// Retrieve implements Provider.
func (p *WebIdentityProvider) Retrieve(ctx context.Context) (Credential, error) {
	return p.cache.get(ctx, p.fetch)
}

// Refresh implements Provider.
func (p *WebIdentityProvider) Refresh(ctx context.Context) error {
	_, err := p.cache.get(ctx, p.fetch)
	return err
}

func (p *WebIdentityProvider) fetch(ctx context.Context) (Credential, error) {
	tokenFile := os.Getenv(envWebIdentityTokenFile)
	roleArn := os.Getenv(envRoleArn)
	if tokenFile == "" || roleArn == "" {
		return Credential{}, &Error{Kind: KindNotApplicable, Source: p.Name()}
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	tokenBytes, err := os.ReadFile(tokenFile)
	if err != nil {
		return Credential{}, &Error{Kind: KindConfiguration, Source: p.Name(), Err: err}
	}

	sessionName := os.Getenv(envRoleSessionName)
	if sessionName == "" {
		sessionName = newSessionName()
	}

	req, err := newAssumeRoleWithWebIdentityRequest(ctx, p.region, roleArn, sessionName, string(tokenBytes))
	if err != nil {
		return Credential{}, &Error{Kind: KindConfiguration, Source: p.Name(), Err: err}
	}

	resp, err := doWithRetry(ctx, p.client, req)
	if err != nil {
		if ce, ok := err.(*Error); ok {
			return Credential{}, ce
		}
		return Credential{}, &Error{Kind: KindStsRejected, Source: p.Name(), Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Credential{}, &Error{Kind: KindMalformed, Source: p.Name(), Err: err}
	}

	return parseSTSCredentials(body, p.Name())
}
