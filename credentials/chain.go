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
	"reflect"

	"github.com/aws/log-forwarder-agent/agent/appconfig"
	"github.com/aws/log-forwarder-agent/agent/log"
)

// ChainProvider composes source providers in a fixed priority order,
// returning the first that yields a non-stale credential (§4.5). It
// exclusively owns its sub-providers; there are no back-pointers.
type ChainProvider struct {
	providers []Provider
	log       log.T
}

// NewChainProvider builds a chain over providers in priority order. Nil
// entries (e.g. an absent http-endpoint provider, see
// NewHTTPEndpointProviderFromEnvironment) are dropped silently. A provider
// passed in as a typed nil pointer -- the common case when a constructor's
// concrete return value is forwarded straight into this variadic call --
// does not compare equal to the untyped nil interface, so isNilProvider
// checks the underlying pointer via reflection instead of p == nil.
func NewChainProvider(logger log.T, providers ...Provider) *ChainProvider {
	nonNil := make([]Provider, 0, len(providers))
	for _, p := range providers {
		if !isNilProvider(p) {
			nonNil = append(nonNil, p)
		}
	}
	return &ChainProvider{providers: nonNil, log: logger}
}

func isNilProvider(p Provider) bool {
	if p == nil {
		return true
	}
	v := reflect.ValueOf(p)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

// Name implements Provider.
func (c *ChainProvider) Name() string { return "chain" }

// Retrieve implements Provider. NotApplicable declines are silent; any
// other error is logged at debug level and the chain continues (Open
// Question 3). If every source declines, NoCredentialsAvailable is
// returned.
func (c *ChainProvider) Retrieve(ctx context.Context) (Credential, error) {
	for _, p := range c.providers {
		cred, err := p.Retrieve(ctx)
		if err == nil {
			return cred, nil
		}
		if !isNotApplicable(err) {
			c.log.Debugf("credentials: source %q declined: %v", p.Name(), err)
		}
	}
	return Credential{}, &Error{Kind: KindNoCredentialsAvailable, Source: c.Name()}
}

// Refresh implements Provider by forwarding to the first source that
// reports a successful refresh. Unlike Retrieve, success here does not
// imply the credential is usable; callers must follow up with Retrieve
// (§4.5).
func (c *ChainProvider) Refresh(ctx context.Context) error {
	for _, p := range c.providers {
		err := p.Refresh(ctx)
		if err == nil {
			return nil
		}
		if !isNotApplicable(err) {
			c.log.Debugf("credentials: source %q refresh failed: %v", p.Name(), err)
		}
	}
	return &Error{Kind: KindNoCredentialsAvailable, Source: c.Name()}
}

// NewDefaultChain builds the standard
// environment -> profile -> web-identity -> imds -> http-endpoint chain
// (§4.5), wiring in the host's HTTP client and appconfig-derived timeouts
// and refresh window.
func NewDefaultChain(cfg appconfig.CredentialsConfig, client HTTPClient, logger log.T) *ChainProvider {
	region := os.Getenv("AWS_REGION")

	return NewChainProvider(logger,
		NewEnvironmentProvider(),
		NewProfileProvider(cfg.ProfilePath, cfg.ProfileName),
		NewWebIdentityProvider(client, region, cfg.RefreshWindow, cfg.StsTimeout),
		NewIMDSProvider(client, cfg.RefreshWindow, cfg.ImdsTimeout, logger),
		NewHTTPEndpointProviderFromEnvironment(client, cfg.RefreshWindow, cfg.ImdsTimeout),
	)
}
