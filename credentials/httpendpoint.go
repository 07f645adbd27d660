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
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

const (
	envContainerRelativeURI = "AWS_CONTAINER_CREDENTIALS_RELATIVE_URI"
	envContainerFullURI     = "AWS_CONTAINER_CREDENTIALS_FULL_URI"
	envContainerAuthToken   = "AWS_CONTAINER_AUTHORIZATION_TOKEN"

	containerDefaultHost = "169.254.170.2"
)

// HTTPEndpointProvider implements the §4.3 "container" / ECS source:
// task-role credentials served over plain HTTP at a host+path taken from the
// environment.
type HTTPEndpointProvider struct {
	client     HTTPClient
	url        string
	authHeader string
	timeout    time.Duration
	cache      *cache
}

// NewHTTPEndpointProviderFromEnvironment returns nil when neither
// AWS_CONTAINER_CREDENTIALS_RELATIVE_URI nor _FULL_URI is set; per §4.3 the
// provider is then omitted from the chain entirely rather than constructed
// in a permanently-declining state.
func NewHTTPEndpointProviderFromEnvironment(client HTTPClient, refreshWindow, timeout time.Duration) *HTTPEndpointProvider {
	authHeader := os.Getenv(envContainerAuthToken)

	if full := os.Getenv(envContainerFullURI); full != "" {
		return &HTTPEndpointProvider{client: client, url: full, authHeader: authHeader, timeout: timeout, cache: newCache(refreshWindow)}
	}
	if relative := os.Getenv(envContainerRelativeURI); relative != "" {
		return &HTTPEndpointProvider{client: client, url: "http://" + containerDefaultHost + relative, authHeader: authHeader, timeout: timeout, cache: newCache(refreshWindow)}
	}
	return nil
}

// Name implements Provider.
func (p *HTTPEndpointProvider) Name() string { return "http-endpoint" }

// Retrieve implements Provider.
func (p *HTTPEndpointProvider) Retrieve(ctx context.Context) (Credential, error) {
	return p.cache.get(ctx, p.fetch)
}

// Refresh implements Provider.
func (p *HTTPEndpointProvider) Refresh(ctx context.Context) error {
	_, err := p.cache.get(ctx, p.fetch)
	return err
}

func (p *HTTPEndpointProvider) fetch(ctx context.Context) (Credential, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return Credential{}, &Error{Kind: KindHttpEndpointUnavailable, Source: p.Name(), Err: err}
	}
	if p.authHeader != "" {
		req.Header.Set("Authorization", p.authHeader)
	}

	resp, err := doWithRetry(ctx, p.client, req)
	if err != nil {
		if ce, ok := err.(*Error); ok {
			return Credential{}, ce
		}
		return Credential{}, &Error{Kind: KindHttpEndpointUnavailable, Source: p.Name(), Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Credential{}, &Error{Kind: KindHttpEndpointUnavailable, Source: p.Name(), Err: err}
	}
	// Open Question 2: no 401 special-case here; any non-200 is a uniform
	// HttpEndpointUnavailable, consistent with how the chain already
	// recovers from a single source's error.
	if resp.StatusCode != http.StatusOK {
		return Credential{}, &Error{Kind: KindHttpEndpointUnavailable, Source: p.Name(), Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	cred, err := parseEnvelope(body, p.Name())
	if err != nil {
		return Credential{}, &Error{Kind: KindHttpEndpointUnavailable, Source: p.Name(), Err: err}
	}
	return cred, nil
}
