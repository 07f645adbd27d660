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

import "time"

// AgentInfo carries identifying information about the running agent process.
type AgentInfo struct {
	Name    string
	Version string
	Region  string
}

// CredentialsConfig holds the tunables of the credential resolution core.
type CredentialsConfig struct {
	// RefreshWindow is the skew subtracted from an expiration to decide staleness.
	RefreshWindow time.Duration

	// ImdsTimeout bounds a single IMDS request.
	ImdsTimeout time.Duration

	// StsTimeout bounds a single STS request.
	StsTimeout time.Duration

	// ProfilePath overrides $AWS_SHARED_CREDENTIALS_FILE when non-empty.
	ProfilePath string

	// ProfileName overrides $AWS_PROFILE when non-empty.
	ProfileName string
}

// Config is the top-level configuration surface of the agent.
type Config struct {
	Agent       AgentInfo
	Credentials CredentialsConfig
}
