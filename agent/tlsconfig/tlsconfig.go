// Copyright 2020 Amazon.com, Inc. or its affiliates. All Rights Reserved.
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

// Package tlsconfig builds the shared *tls.Config injected into the
// providers (STS, web-identity) that speak HTTPS. It is built once at
// plugin init and referenced read-only by every provider for the
// lifetime of the process.
package tlsconfig

import (
	"crypto/tls"
)

// GetDefaultTLSConfig returns a *tls.Config seeded with the host's system
// certificate pool. Callers must not mutate the returned pool.
func GetDefaultTLSConfig() (*tls.Config, error) {
	pool, err := getSystemCertPool()
	if err != nil {
		return nil, err
	}

	return &tls.Config{
		RootCAs:    pool,
		MinVersion: tls.VersionTLS12,
	}, nil
}
