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
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const stsAssumeRoleWithWebIdentityBody = `<AssumeRoleWithWebIdentityResponse xmlns="https://sts.amazonaws.com/doc/2011-06-15/">
	<AssumeRoleWithWebIdentityResult>
		<Credentials>
			<AccessKeyId>AKIAEXAMPLE</AccessKeyId>
			<SecretAccessKey>secret</SecretAccessKey>
			<SessionToken>token-value</SessionToken>
			<Expiration>2030-01-01T00:00:00Z</Expiration>
		</Credentials>
	</AssumeRoleWithWebIdentityResult>
</AssumeRoleWithWebIdentityResponse>`

func TestWebIdentityProviderHappyPath(t *testing.T) {
	dir := t.TempDir()
	tokenPath := filepath.Join(dir, "token")
	require.NoError(t, os.WriteFile(tokenPath, []byte("oidc-token"), 0600))

	t.Setenv(envWebIdentityTokenFile, tokenPath)
	t.Setenv(envRoleArn, "arn:aws:iam::123456789012:role/example")
	t.Setenv(envRoleSessionName, "example-session")

	client := NewMockHTTPClient()
	client.On("Do", mock.Anything).Return(newTestResponse(http.StatusOK, stsAssumeRoleWithWebIdentityBody), nil)

	p := NewWebIdentityProvider(client, "", time.Minute, time.Second)
	cred, err := p.Retrieve(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "AKIAEXAMPLE", cred.AccessKeyID)
}

func TestWebIdentityProviderDeclinesWhenEnvAbsent(t *testing.T) {
	t.Setenv(envWebIdentityTokenFile, "")
	t.Setenv(envRoleArn, "")

	p := NewWebIdentityProvider(NewMockHTTPClient(), "", time.Minute, time.Second)
	_, err := p.Retrieve(context.Background())

	var ce *Error
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, KindNotApplicable, ce.Kind)
}

func TestWebIdentityProviderConfigurationErrorWhenTokenFileMissing(t *testing.T) {
	t.Setenv(envWebIdentityTokenFile, filepath.Join(t.TempDir(), "absent"))
	t.Setenv(envRoleArn, "arn:aws:iam::123456789012:role/example")

	p := NewWebIdentityProvider(NewMockHTTPClient(), "", time.Minute, time.Second)
	_, err := p.Retrieve(context.Background())

	var ce *Error
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, KindConfiguration, ce.Kind)
}
