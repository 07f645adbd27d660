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
	"time"

	"github.com/Jeffail/gabs"
)

// parseEnvelope extracts a Credential from the JSON envelope shared by the
// IMDS role-credential endpoint and the container endpoint (§4.1, §6).
// Unknown fields are ignored and field order does not matter -- gabs walks
// the parsed document by path rather than unmarshalling into a fixed struct,
// which is what lets this tolerate vendor extensions to the envelope.
func parseEnvelope(body []byte, source string) (Credential, error) {
	parsed, err := gabs.ParseJSON(body)
	if err != nil {
		return Credential{}, &Error{Kind: KindMalformed, Source: source, Err: err}
	}

	accessKeyID, ok := stringField(parsed, "AccessKeyId")
	if !ok {
		return Credential{}, &Error{Kind: KindMissingField, Source: source, Err: errMissingField("AccessKeyId")}
	}

	secretAccessKey, ok := stringField(parsed, "SecretAccessKey")
	if !ok {
		return Credential{}, &Error{Kind: KindMissingField, Source: source, Err: errMissingField("SecretAccessKey")}
	}

	token, ok := stringField(parsed, "Token")
	if !ok {
		return Credential{}, &Error{Kind: KindMissingField, Source: source, Err: errMissingField("Token")}
	}

	expirationStr, ok := stringField(parsed, "Expiration")
	if !ok {
		return Credential{}, &Error{Kind: KindMissingField, Source: source, Err: errMissingField("Expiration")}
	}

	expiration, err := time.Parse(time.RFC3339, expirationStr)
	if err != nil {
		return Credential{}, &Error{Kind: KindBadExpiration, Source: source, Err: err}
	}

	return Credential{
		AccessKeyID:     accessKeyID,
		SecretAccessKey: secretAccessKey,
		SessionToken:    token,
		Expiration:      expiration,
	}, nil
}

func stringField(parsed *gabs.Container, path string) (string, bool) {
	value, ok := parsed.Path(path).Data().(string)
	if !ok || value == "" {
		return "", false
	}
	return value, true
}

// marshalEnvelope serializes a Credential back into the shared JSON envelope
// shape. Used by the round-trip fixture test (§8 property 6); not exercised
// by any production path.
func marshalEnvelope(cred Credential) ([]byte, error) {
	doc := gabs.New()
	if _, err := doc.Set(cred.AccessKeyID, "AccessKeyId"); err != nil {
		return nil, err
	}
	if _, err := doc.Set(cred.SecretAccessKey, "SecretAccessKey"); err != nil {
		return nil, err
	}
	if _, err := doc.Set(cred.SessionToken, "Token"); err != nil {
		return nil, err
	}
	if _, err := doc.Set(cred.Expiration.UTC().Format(time.RFC3339), "Expiration"); err != nil {
		return nil, err
	}
	return doc.Bytes(), nil
}
