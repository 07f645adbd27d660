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
)

func fakeGetenv(values map[string]string) getenvFunc {
	return func(key string) string { return values[key] }
}

func TestEnvironmentProviderHappyPath(t *testing.T) {
	p := &EnvironmentProvider{getenv: fakeGetenv(map[string]string{
		envAccessKeyID:     "AKIAEXAMPLE",
		envSecretAccessKey: "secret",
		envSessionToken:    "token",
	})}

	cred, err := p.Retrieve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "AKIAEXAMPLE", cred.AccessKeyID)
	assert.Equal(t, "token", cred.SessionToken)
	assert.Equal(t, neverExpires, cred.Expiration)
}

func TestEnvironmentProviderDeclinesWhenAbsent(t *testing.T) {
	p := &EnvironmentProvider{getenv: fakeGetenv(nil)}

	_, err := p.Retrieve(context.Background())
	var ce *Error
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, KindNotApplicable, ce.Kind)
}

func TestEnvironmentProviderSessionTokenOptional(t *testing.T) {
	p := &EnvironmentProvider{getenv: fakeGetenv(map[string]string{
		envAccessKeyID:     "AKIAEXAMPLE",
		envSecretAccessKey: "secret",
	})}

	cred, err := p.Retrieve(context.Background())
	require.NoError(t, err)
	assert.Empty(t, cred.SessionToken)
}

func TestEnvironmentProviderRefresh(t *testing.T) {
	p := &EnvironmentProvider{getenv: fakeGetenv(map[string]string{
		envAccessKeyID:     "AKIAEXAMPLE",
		envSecretAccessKey: "secret",
	})}
	assert.NoError(t, p.Refresh(context.Background()))
}
