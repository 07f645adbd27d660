// Copyright 2016 Amazon.com, Inc. or its affiliates. All Rights Reserved.
//
// Licensed under the Amazon Software License (the "License"). You may not
// use this file except in compliance with the License. A copy of the
// License is located at
//
// http://aws.amazon.com/asl/
//
// or in the "license" file accompanying this file. This file is distributed
// on an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND,
// express or implied. See the License for the specific language governing
// permissions and limitations under the License.

// Package appconfig manages the configuration of the agent.
package appconfig

import "time"

const (
	// DefaultAgentName is reported in log lines and the cmd entry point's startup banner.
	DefaultAgentName = "log-forwarder-agent"

	AppConfigFileName    = "log-forwarder-agent.json"
	SeelogConfigFileName = "seelog.xml"

	// DefaultRefreshWindow is the skew subtracted from a credential's expiration
	// to decide it is stale and due for refresh.
	DefaultRefreshWindow = 5 * time.Minute

	// DefaultImdsTimeout bounds a single IMDS round-trip (token, role, or credential fetch).
	DefaultImdsTimeout = 5 * time.Second

	// DefaultStsTimeout bounds a single STS round-trip.
	DefaultStsTimeout = 30 * time.Second

	// DefaultProfileName is used when $AWS_PROFILE is unset.
	DefaultProfileName = "default"

	minRefreshWindow = 30 * time.Second
	maxRefreshWindow = 30 * time.Minute

	minImdsTimeout = 1 * time.Second
	maxImdsTimeout = 60 * time.Second

	minStsTimeout = 1 * time.Second
	maxStsTimeout = 120 * time.Second
)
