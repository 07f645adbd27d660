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

package appconfig

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParserAppliesDefaultsWhenEmpty(t *testing.T) {
	config := Config{}
	parser(&config)

	assert.Equal(t, DefaultAgentName, config.Agent.Name)
	assert.Equal(t, DefaultRefreshWindow, config.Credentials.RefreshWindow)
	assert.Equal(t, DefaultImdsTimeout, config.Credentials.ImdsTimeout)
	assert.Equal(t, DefaultStsTimeout, config.Credentials.StsTimeout)
	assert.Equal(t, DefaultProfileName, config.Credentials.ProfileName)
}

func TestParserClampsOutOfRangeDurations(t *testing.T) {
	config := Config{
		Credentials: CredentialsConfig{
			RefreshWindow: time.Hour,
			ImdsTimeout:   -1,
			StsTimeout:    5 * time.Minute,
		},
	}
	parser(&config)

	assert.Equal(t, DefaultRefreshWindow, config.Credentials.RefreshWindow)
	assert.Equal(t, DefaultImdsTimeout, config.Credentials.ImdsTimeout)
	assert.Equal(t, DefaultStsTimeout, config.Credentials.StsTimeout)
}

func TestParserPreservesProfileName(t *testing.T) {
	config := Config{
		Credentials: CredentialsConfig{ProfileName: "prod"},
	}
	parser(&config)

	assert.Equal(t, "prod", config.Credentials.ProfileName)
}
