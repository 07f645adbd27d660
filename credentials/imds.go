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
	"strconv"
	"sync"
	"time"

	"github.com/aws/log-forwarder-agent/agent/log"
)

const (
	imdsHost            = "169.254.169.254"
	imdsTokenPath       = "http://" + imdsHost + "/latest/api/token"
	imdsRolePath        = "http://" + imdsHost + "/latest/meta-data/iam/security-credentials/"
	imdsTokenHeader     = "X-aws-ec2-metadata-token"
	imdsTokenTTLHeader  = "X-aws-ec2-metadata-token-ttl-seconds"
	imdsTokenTTLSeconds = 21600
)

// IMDSProvider implements the §4.2 instance-metadata protocol state
// machine: token acquisition, role discovery, and role-credential fetch,
// wrapped in the §3 cache.
type IMDSProvider struct {
	client  HTTPClient
	timeout time.Duration
	clock   func() time.Time

	credCache *cache

	tokenMu      sync.Mutex
	token        string
	tokenWindow  time.Duration
	tokenExpires time.Time

	log log.T
}

// NewIMDSProvider builds an IMDS provider. refreshWindow governs both the
// cached credential and the cached session token's staleness skew; timeout
// bounds each round-trip (token, role, credential).
func NewIMDSProvider(client HTTPClient, refreshWindow, timeout time.Duration, logger log.T) *IMDSProvider {
	return &IMDSProvider{
		client:      client,
		timeout:     timeout,
		clock:       time.Now,
		credCache:   newCache(refreshWindow),
		tokenWindow: refreshWindow,
		log:         logger,
	}
}

// Name implements Provider.
func (p *IMDSProvider) Name() string { return "imds" }

// Retrieve implements Provider.
func (p *IMDSProvider) Retrieve(ctx context.Context) (Credential, error) {
	return p.credCache.get(ctx, p.fetch)
}

// Refresh implements Provider.
func (p *IMDSProvider) Refresh(ctx context.Context) error {
	_, err := p.credCache.get(ctx, p.fetch)
	return err
}

func (p *IMDSProvider) fetch(ctx context.Context) (Credential, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	token, err := p.getToken(ctx, false)
	if err != nil {
		return Credential{}, err
	}

	role, status, err := p.doGet(ctx, imdsRolePath, token)
	if err != nil {
		return Credential{}, classifyGetErr(err, p.Name())
	}
	if status == http.StatusUnauthorized || status == http.StatusForbidden {
		if token, err = p.getToken(ctx, true); err != nil {
			return Credential{}, err
		}
		if role, status, err = p.doGet(ctx, imdsRolePath, token); err != nil {
			return Credential{}, classifyGetErr(err, p.Name())
		}
	}
	if status == http.StatusNotFound {
		// No role attached to this instance: decline silently (§4.2 step 2).
		return Credential{}, &Error{Kind: KindNotApplicable, Source: p.Name()}
	}
	if status != http.StatusOK {
		return Credential{}, &Error{Kind: KindImdsUnavailable, Source: p.Name(), Err: fmt.Errorf("role discovery status %d", status)}
	}

	body, status, err := p.doGet(ctx, imdsRolePath+string(role), token)
	if err != nil {
		return Credential{}, classifyGetErr(err, p.Name())
	}
	if status == http.StatusUnauthorized || status == http.StatusForbidden {
		if token, err = p.getToken(ctx, true); err != nil {
			return Credential{}, err
		}
		if body, status, err = p.doGet(ctx, imdsRolePath+string(role), token); err != nil {
			return Credential{}, classifyGetErr(err, p.Name())
		}
	}
	if status != http.StatusOK {
		return Credential{}, &Error{Kind: KindImdsUnavailable, Source: p.Name(), Err: fmt.Errorf("credential fetch status %d", status)}
	}

	cred, err := parseEnvelope(body, p.Name())
	if err != nil {
		// Open Question 1: an envelope missing its session token is rejected
		// the same as any other malformed IMDS response.
		return Credential{}, &Error{Kind: KindImdsUnavailable, Source: p.Name(), Err: err}
	}
	return cred, nil
}

// getToken performs §4.2 step 1. force bypasses the cached token, used when
// a downstream 401/403 indicates the server no longer honors it.
func (p *IMDSProvider) getToken(ctx context.Context, force bool) (string, error) {
	p.tokenMu.Lock()
	defer p.tokenMu.Unlock()

	if !force && p.token != "" && p.clock().Add(p.tokenWindow).Before(p.tokenExpires) {
		return p.token, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, imdsTokenPath, nil)
	if err != nil {
		return "", &Error{Kind: KindImdsUnavailable, Source: p.Name(), Err: err}
	}
	req.Header.Set(imdsTokenTTLHeader, strconv.Itoa(imdsTokenTTLSeconds))

	resp, err := doWithRetry(ctx, p.client, req)
	if err != nil {
		return "", classifyGetErr(err, p.Name())
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &Error{Kind: KindImdsUnavailable, Source: p.Name(), Err: fmt.Errorf("token request status %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &Error{Kind: KindImdsUnavailable, Source: p.Name(), Err: err}
	}

	p.token = string(body)
	p.tokenExpires = p.clock().Add(imdsTokenTTLSeconds * time.Second)
	return p.token, nil
}

func (p *IMDSProvider) doGet(ctx context.Context, url, token string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set(imdsTokenHeader, token)

	resp, err := doWithRetry(ctx, p.client, req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, err
	}
	return body, resp.StatusCode, nil
}

// classifyGetErr preserves a Timeout/Cancelled classification already
// attached by doWithRetry, otherwise wraps as ImdsUnavailable.
func classifyGetErr(err error, source string) error {
	if ce, ok := err.(*Error); ok {
		return ce
	}
	return &Error{Kind: KindImdsUnavailable, Source: source, Err: err}
}
