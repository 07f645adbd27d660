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

// Package appconfig manages the configuration of the agent.
package appconfig

import (
	"os"
	"sync"
)

var (
	lock         sync.RWMutex
	loadedConfig *Config
)

// Loader abstracts GetConfig so callers that need a resolved Config (e.g.
// cmd/credential-agent at startup) can be exercised against a Mock instead
// of the process environment.
type Loader interface {
	GetConfig(reload bool) Config
}

type envLoader struct{}

func (envLoader) GetConfig(reload bool) Config { return GetConfig(reload) }

// DefaultLoader reads configuration from the process environment via GetConfig.
var DefaultLoader Loader = envLoader{}

// GetConfig loads the agent configuration from the process environment,
// validating and defaulting every field. The result is cached; pass reload
// to force re-reading the environment.
func GetConfig(reload bool) Config {
	lock.RLock()
	if !reload && loadedConfig != nil {
		defer lock.RUnlock()
		return *loadedConfig
	}
	lock.RUnlock()

	lock.Lock()
	defer lock.Unlock()

	config := Config{
		Agent: AgentInfo{
			Name:    DefaultAgentName,
			Version: os.Getenv("AGENT_VERSION"),
			Region:  os.Getenv("AWS_REGION"),
		},
		Credentials: CredentialsConfig{
			RefreshWindow: DefaultRefreshWindow,
			ImdsTimeout:   DefaultImdsTimeout,
			StsTimeout:    DefaultStsTimeout,
			ProfilePath:   os.Getenv("AWS_SHARED_CREDENTIALS_FILE"),
			ProfileName:   os.Getenv("AWS_PROFILE"),
		},
	}

	parser(&config)

	loadedConfig = &config
	return config
}
