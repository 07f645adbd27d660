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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aws/log-forwarder-agent/agent/log"
)

type stubProvider struct {
	name string
	cred Credential
	err  error
}

func (s *stubProvider) Name() string { return s.name }
func (s *stubProvider) Retrieve(ctx context.Context) (Credential, error) {
	if s.err != nil {
		return Credential{}, s.err
	}
	return s.cred, nil
}
func (s *stubProvider) Refresh(ctx context.Context) error {
	_, err := s.Retrieve(ctx)
	return err
}

// Property 4: earlier providers take precedence over later ones.
func TestChainProviderPrecedence(t *testing.T) {
	first := &stubProvider{name: "first", cred: Credential{AccessKeyID: "FIRST"}}
	second := &stubProvider{name: "second", cred: Credential{AccessKeyID: "SECOND"}}

	chain := NewChainProvider(log.NewMockLog(), first, second)
	cred, err := chain.Retrieve(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "FIRST", cred.AccessKeyID)
}

// Property 5: a NotApplicable decline is silent and the chain advances to
// the next source without surfacing an error.
func TestChainProviderSkipsNotApplicable(t *testing.T) {
	declining := &stubProvider{name: "declining", err: &Error{Kind: KindNotApplicable, Source: "declining"}}
	winner := &stubProvider{name: "winner", cred: Credential{AccessKeyID: "WINNER"}}

	chain := NewChainProvider(log.NewMockLog(), declining, winner)
	cred, err := chain.Retrieve(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "WINNER", cred.AccessKeyID)
}

func TestChainProviderExhaustionReturnsNoCredentialsAvailable(t *testing.T) {
	declining := &stubProvider{name: "declining", err: &Error{Kind: KindNotApplicable, Source: "declining"}}

	chain := NewChainProvider(log.NewMockLog(), declining)
	_, err := chain.Retrieve(context.Background())

	var ce *Error
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, KindNoCredentialsAvailable, ce.Kind)
}

func TestChainProviderDropsNilProviders(t *testing.T) {
	winner := &stubProvider{name: "winner", cred: Credential{AccessKeyID: "WINNER"}}

	var absent *HTTPEndpointProvider
	chain := NewChainProvider(log.NewMockLog(), absent, winner)

	assert.Len(t, chain.providers, 1)
	cred, err := chain.Retrieve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "WINNER", cred.AccessKeyID)
}

func TestChainProviderContinuesPastNonNotApplicableErrors(t *testing.T) {
	broken := &stubProvider{name: "broken", err: &Error{Kind: KindMalformed, Source: "broken"}}
	winner := &stubProvider{name: "winner", cred: Credential{AccessKeyID: "WINNER"}}

	chain := NewChainProvider(log.NewMockLog(), broken, winner)
	cred, err := chain.Retrieve(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "WINNER", cred.AccessKeyID)
}
