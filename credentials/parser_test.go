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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnvelopeHappyPath(t *testing.T) {
	body := []byte(`{
		"Code": "Success",
		"AccessKeyId": "AKIAEXAMPLE",
		"SecretAccessKey": "secret",
		"Token": "token-value",
		"Expiration": "2030-01-01T00:00:00Z"
	}`)

	cred, err := parseEnvelope(body, "imds")
	require.NoError(t, err)
	assert.Equal(t, "AKIAEXAMPLE", cred.AccessKeyID)
	assert.Equal(t, "secret", cred.SecretAccessKey)
	assert.Equal(t, "token-value", cred.SessionToken)
	assert.Equal(t, time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC), cred.Expiration.UTC())
}

func TestParseEnvelopeIgnoresFieldOrderAndUnknownFields(t *testing.T) {
	body := []byte(`{
		"Expiration": "2030-01-01T00:00:00Z",
		"Vendor": "extension",
		"Token": "token-value",
		"SecretAccessKey": "secret",
		"AccessKeyId": "AKIAEXAMPLE"
	}`)

	cred, err := parseEnvelope(body, "imds")
	require.NoError(t, err)
	assert.Equal(t, "AKIAEXAMPLE", cred.AccessKeyID)
}

func TestParseEnvelopeMissingField(t *testing.T) {
	body := []byte(`{"AccessKeyId": "AKIAEXAMPLE", "SecretAccessKey": "secret", "Expiration": "2030-01-01T00:00:00Z"}`)

	_, err := parseEnvelope(body, "imds")
	var ce *Error
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, KindMissingField, ce.Kind)
}

func TestParseEnvelopeBadExpiration(t *testing.T) {
	body := []byte(`{"AccessKeyId": "a", "SecretAccessKey": "s", "Token": "t", "Expiration": "not-a-date"}`)

	_, err := parseEnvelope(body, "imds")
	var ce *Error
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, KindBadExpiration, ce.Kind)
}

func TestParseEnvelopeMalformedJSON(t *testing.T) {
	_, err := parseEnvelope([]byte(`not json`), "imds")
	var ce *Error
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, KindMalformed, ce.Kind)
}

// Property 6: marshalEnvelope . parseEnvelope round-trips a credential.
func TestMarshalParseEnvelopeRoundTrip(t *testing.T) {
	original := Credential{
		AccessKeyID:     "AKIAEXAMPLE",
		SecretAccessKey: "secret",
		SessionToken:    "token-value",
		Expiration:      time.Date(2030, 6, 15, 12, 30, 0, 0, time.UTC),
	}

	body, err := marshalEnvelope(original)
	require.NoError(t, err)

	roundTripped, err := parseEnvelope(body, "test")
	require.NoError(t, err)

	assert.Equal(t, original.AccessKeyID, roundTripped.AccessKeyID)
	assert.Equal(t, original.SecretAccessKey, roundTripped.SecretAccessKey)
	assert.Equal(t, original.SessionToken, roundTripped.SessionToken)
	assert.True(t, original.Expiration.Equal(roundTripped.Expiration))
}
