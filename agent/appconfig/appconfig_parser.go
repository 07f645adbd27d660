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

// config validator will apply limits and assign default values

package appconfig

import "time"

func parser(config *Config) {
	config.Agent.Name = getStringValue(config.Agent.Name, DefaultAgentName)

	config.Credentials.RefreshWindow = getDurationValue(
		config.Credentials.RefreshWindow,
		minRefreshWindow,
		maxRefreshWindow,
		DefaultRefreshWindow)

	config.Credentials.ImdsTimeout = getDurationValue(
		config.Credentials.ImdsTimeout,
		minImdsTimeout,
		maxImdsTimeout,
		DefaultImdsTimeout)

	config.Credentials.StsTimeout = getDurationValue(
		config.Credentials.StsTimeout,
		minStsTimeout,
		maxStsTimeout,
		DefaultStsTimeout)

	config.Credentials.ProfileName = getStringValue(config.Credentials.ProfileName, DefaultProfileName)
}

// getStringValue returns the default value if config is empty, else the config value
func getStringValue(configValue string, defaultValue string) string {
	if configValue == "" {
		return defaultValue
	}
	return configValue
}

// getDurationValue returns the default if config value is below min or above max
func getDurationValue(configValue, minValue, maxValue, defaultValue time.Duration) time.Duration {
	if configValue <= 0 || configValue < minValue || configValue > maxValue {
		return defaultValue
	}
	return configValue
}
