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

import "net/http"

// Signer applies request signing (SigV4 or equivalent) to an outbound
// request using a base Credential. Signing itself is out of scope for this
// package (§1 Non-goals); callers inject a concrete implementation for
// signed calls like AssumeRole, or rely on NoopSigner for calls that
// authenticate some other way.
type Signer interface {
	Sign(req *http.Request, cred Credential, service, region string) error
}

// NoopSigner leaves the request unsigned. AssumeRoleWithWebIdentity
// authenticates via the token in the request body rather than SigV4, so the
// web-identity provider uses this by default.
type NoopSigner struct{}

// Sign implements Signer by doing nothing.
func (NoopSigner) Sign(req *http.Request, cred Credential, service, region string) error {
	return nil
}
