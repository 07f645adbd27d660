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
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aws/log-forwarder-agent/agent/log"
)

const imdsCredentialBody = `{
	"Code": "Success",
	"AccessKeyId": "AKIAEXAMPLE",
	"SecretAccessKey": "secret",
	"Token": "token-value",
	"Expiration": "2030-01-01T00:00:00Z"
}`

// E2: token, role name, then credentials -- the full happy path.
func TestIMDSProviderHappyPath(t *testing.T) {
	client := NewSequencedHTTPClient(
		RoundTripResult{Response: newTestResponse(http.StatusOK, "token-abc")},
		RoundTripResult{Response: newTestResponse(http.StatusOK, "my-role")},
		RoundTripResult{Response: newTestResponse(http.StatusOK, imdsCredentialBody)},
	)

	p := NewIMDSProvider(client, 5*time.Minute, time.Second, log.NewMockLog())
	cred, err := p.Retrieve(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "AKIAEXAMPLE", cred.AccessKeyID)
	assert.Len(t, client.Calls(), 3)
	assert.Equal(t, http.MethodPut, client.Calls()[0].Method)
	assert.Equal(t, http.MethodGet, client.Calls()[1].Method)
}

// E3: role discovery 404s -- no role attached -- and the provider declines
// silently so the chain can fall through to the next source.
func TestIMDSProviderNoRoleIsNotApplicable(t *testing.T) {
	client := NewSequencedHTTPClient(
		RoundTripResult{Response: newTestResponse(http.StatusOK, "token-abc")},
		RoundTripResult{Response: newTestResponse(http.StatusNotFound, "")},
	)

	p := NewIMDSProvider(client, 5*time.Minute, time.Second, log.NewMockLog())
	_, err := p.Retrieve(context.Background())

	var ce *Error
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, KindNotApplicable, ce.Kind)
}

// A 401 on role discovery forces exactly one token refresh and retry.
func TestIMDSProviderRefreshesTokenOn401(t *testing.T) {
	client := NewSequencedHTTPClient(
		RoundTripResult{Response: newTestResponse(http.StatusOK, "token-abc")},
		RoundTripResult{Response: newTestResponse(http.StatusUnauthorized, "")},
		RoundTripResult{Response: newTestResponse(http.StatusOK, "token-def")},
		RoundTripResult{Response: newTestResponse(http.StatusOK, "my-role")},
		RoundTripResult{Response: newTestResponse(http.StatusOK, imdsCredentialBody)},
	)

	p := NewIMDSProvider(client, 5*time.Minute, time.Second, log.NewMockLog())
	cred, err := p.Retrieve(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "AKIAEXAMPLE", cred.AccessKeyID)
	assert.Len(t, client.Calls(), 5)
}

// E6: a malformed credentials envelope surfaces as ImdsUnavailable so the
// chain can advance to the next source.
func TestIMDSProviderMalformedCredentialsBody(t *testing.T) {
	client := NewSequencedHTTPClient(
		RoundTripResult{Response: newTestResponse(http.StatusOK, "token-abc")},
		RoundTripResult{Response: newTestResponse(http.StatusOK, "my-role")},
		RoundTripResult{Response: newTestResponse(http.StatusOK, "not json")},
	)

	p := NewIMDSProvider(client, 5*time.Minute, time.Second, log.NewMockLog())
	_, err := p.Retrieve(context.Background())

	var ce *Error
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, KindImdsUnavailable, ce.Kind)
}

func TestIMDSProviderUnexpectedRoleStatus(t *testing.T) {
	client := NewSequencedHTTPClient(
		RoundTripResult{Response: newTestResponse(http.StatusOK, "token-abc")},
		RoundTripResult{Response: newTestResponse(http.StatusInternalServerError, "")},
	)

	p := NewIMDSProvider(client, 5*time.Minute, time.Second, log.NewMockLog())
	_, err := p.Retrieve(context.Background())

	var ce *Error
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, KindImdsUnavailable, ce.Kind)
}

func TestIMDSProviderCachesToken(t *testing.T) {
	client := NewSequencedHTTPClient(
		RoundTripResult{Response: newTestResponse(http.StatusOK, "token-abc")},
		RoundTripResult{Response: newTestResponse(http.StatusOK, "my-role")},
		RoundTripResult{Response: newTestResponse(http.StatusOK, imdsCredentialBody)},
		RoundTripResult{Response: newTestResponse(http.StatusOK, "my-role")},
		RoundTripResult{Response: newTestResponse(http.StatusOK, imdsCredentialBody)},
	)

	p := NewIMDSProvider(client, time.Millisecond, time.Second, log.NewMockLog())
	now := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	p.clock = func() time.Time { return now }

	_, err := p.Retrieve(context.Background())
	require.NoError(t, err)

	p.credCache.store(Credential{Expiration: now})
	_, err = p.Retrieve(context.Background())
	require.NoError(t, err)

	assert.Len(t, client.Calls(), 5)
	var putCount int
	for _, call := range client.Calls() {
		if call.Method == http.MethodPut {
			putCount++
		}
	}
	assert.Equal(t, 1, putCount, "token should only be requested once while still fresh")
}
