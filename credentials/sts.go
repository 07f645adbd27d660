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
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/twinj/uuid"
)

const (
	stsVersion     = "2011-06-15"
	stsDefaultHost = "sts.amazonaws.com"
)

func stsEndpoint(region string) string {
	if region == "" {
		return "https://" + stsDefaultHost
	}
	return fmt.Sprintf("https://sts.%s.amazonaws.com", strings.ToLower(region))
}

// newSessionName generates a random session name of length well above the
// §4.4 minimum of 8, used whenever the caller doesn't supply a stable one.
func newSessionName() string {
	return "log-forwarder-agent-" + uuid.NewV4().String()
}

func newSTSRequest(ctx context.Context, region string, values url.Values) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, stsEndpoint(region), strings.NewReader(values.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req, nil
}

// newAssumeRoleRequest builds the standard AssumeRole query-parameter body
// (§4.4); the caller is responsible for signing it with the base credential.
func newAssumeRoleRequest(ctx context.Context, region, roleArn, sessionName, externalID string, duration time.Duration) (*http.Request, error) {
	values := url.Values{
		"Action":          {"AssumeRole"},
		"Version":         {stsVersion},
		"RoleArn":         {roleArn},
		"RoleSessionName": {sessionName},
	}
	if externalID != "" {
		values.Set("ExternalId", externalID)
	}
	if duration > 0 {
		values.Set("DurationSeconds", fmt.Sprintf("%d", int(duration.Seconds())))
	}
	return newSTSRequest(ctx, region, values)
}

// newAssumeRoleWithWebIdentityRequest builds the unsigned
// AssumeRoleWithWebIdentity body; the token itself authenticates the call.
func newAssumeRoleWithWebIdentityRequest(ctx context.Context, region, roleArn, sessionName, token string) (*http.Request, error) {
	values := url.Values{
		"Action":           {"AssumeRoleWithWebIdentity"},
		"Version":          {stsVersion},
		"RoleArn":          {roleArn},
		"RoleSessionName":  {sessionName},
		"WebIdentityToken": {token},
	}
	return newSTSRequest(ctx, region, values)
}

// stsCredentialsXML mirrors the <Credentials> element of an AssumeRole /
// AssumeRoleWithWebIdentity response.
type stsCredentialsXML struct {
	AccessKeyID     string `xml:"AccessKeyId"`
	SecretAccessKey string `xml:"SecretAccessKey"`
	SessionToken    string `xml:"SessionToken"`
	Expiration      string `xml:"Expiration"`
}

// stsErrorXML mirrors STS's <Error><Code>/<Message> shape.
type stsErrorXML struct {
	Code    string `xml:"Code"`
	Message string `xml:"Message"`
}

// parseSTSCredentials scans the response body for a <Credentials> element at
// any depth and decodes it. Real STS wraps it in
// <AssumeRoleResponse>/<AssumeRoleResult>; some fixtures emit the element
// bare. Walking tokens instead of unmarshalling into a fixed nested struct
// means both shapes parse identically.
func parseSTSCredentials(body []byte, source string) (Credential, error) {
	if stsErr, ok := findSTSError(body); ok {
		return Credential{}, &Error{Kind: KindStsRejected, Source: source, Err: fmt.Errorf("%s: %s", stsErr.Code, stsErr.Message)}
	}

	decoder := xml.NewDecoder(bytes.NewReader(body))
	for {
		tok, err := decoder.Token()
		if err != nil {
			return Credential{}, &Error{Kind: KindMalformed, Source: source, Err: err}
		}

		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "Credentials" {
			continue
		}

		var creds stsCredentialsXML
		if err := decoder.DecodeElement(&creds, &start); err != nil {
			return Credential{}, &Error{Kind: KindMalformed, Source: source, Err: err}
		}

		if creds.AccessKeyID == "" || creds.SecretAccessKey == "" || creds.SessionToken == "" {
			return Credential{}, &Error{Kind: KindMissingField, Source: source, Err: errMissingField("Credentials")}
		}

		expiration, err := time.Parse(time.RFC3339, creds.Expiration)
		if err != nil {
			return Credential{}, &Error{Kind: KindBadExpiration, Source: source, Err: err}
		}

		return Credential{
			AccessKeyID:     creds.AccessKeyID,
			SecretAccessKey: creds.SecretAccessKey,
			SessionToken:    creds.SessionToken,
			Expiration:      expiration,
		}, nil
	}
}

// findSTSError scans for an <Error> element at any depth, the way
// STS reports AssumeRole failures.
func findSTSError(body []byte) (stsErrorXML, bool) {
	decoder := xml.NewDecoder(bytes.NewReader(body))
	for {
		tok, err := decoder.Token()
		if err != nil {
			return stsErrorXML{}, false
		}

		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "Error" {
			continue
		}

		var errXML stsErrorXML
		if err := decoder.DecodeElement(&errXML, &start); err != nil {
			return stsErrorXML{}, false
		}
		return errXML, true
	}
}
