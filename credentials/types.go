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

// Package credentials resolves AWS-style signing credentials from a
// prioritized sequence of sources -- environment, shared profile file,
// web identity, instance metadata, and a container HTTP endpoint -- caching
// them with expiration-driven, single-flight refresh.
package credentials

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// neverExpires is the sentinel expiration for long-lived static sources
// (environment, profile) that carry no session token lifetime.
var neverExpires = time.Date(9999, time.January, 1, 0, 0, 0, 0, time.UTC)

// Credential is an immutable snapshot of resolved signing material. Callers
// own the value they receive and may hold onto it independently of the
// provider that produced it.
type Credential struct {
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string
	Expiration      time.Time
}

// IsStale reports whether the credential is due for refresh: now plus the
// refresh window has reached or passed the expiration instant.
func (c Credential) IsStale(now time.Time, refreshWindow time.Duration) bool {
	return !now.Add(refreshWindow).Before(c.Expiration)
}

// Kind is the closed error taxonomy surfaced by the credential core (§7).
type Kind int

const (
	// KindNotApplicable means a source declines; the chain continues silently.
	KindNotApplicable Kind = iota
	// KindConfiguration means a malformed profile file or unparsable env value.
	KindConfiguration
	// KindImdsUnavailable means a network-level failure or unexpected status from IMDS.
	KindImdsUnavailable
	// KindHttpEndpointUnavailable means a network-level failure or unexpected status from the container endpoint.
	KindHttpEndpointUnavailable
	// KindMalformed means the response body was not valid JSON/XML.
	KindMalformed
	// KindMissingField means a required field was absent from an otherwise valid response.
	KindMissingField
	// KindBadExpiration means the expiration timestamp could not be parsed.
	KindBadExpiration
	// KindStsRejected means STS returned an error code, propagated verbatim.
	KindStsRejected
	// KindCancelled means the caller's context was cancelled mid-refresh.
	KindCancelled
	// KindTimeout means a per-request deadline elapsed.
	KindTimeout
	// KindNoCredentialsAvailable means the chain exhausted every source.
	KindNoCredentialsAvailable
)

func (k Kind) String() string {
	switch k {
	case KindNotApplicable:
		return "NotApplicable"
	case KindConfiguration:
		return "Configuration"
	case KindImdsUnavailable:
		return "ImdsUnavailable"
	case KindHttpEndpointUnavailable:
		return "HttpEndpointUnavailable"
	case KindMalformed:
		return "Malformed"
	case KindMissingField:
		return "MissingField"
	case KindBadExpiration:
		return "BadExpiration"
	case KindStsRejected:
		return "StsRejected"
	case KindCancelled:
		return "Cancelled"
	case KindTimeout:
		return "Timeout"
	case KindNoCredentialsAvailable:
		return "NoCredentialsAvailable"
	default:
		return "Unknown"
	}
}

// Error wraps a Kind with the source provider that raised it and, where
// applicable, the underlying cause. It satisfies errors.Is/errors.As via Kind
// equality and Unwrap.
type Error struct {
	Kind   Kind
	Source string
	Err    error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("credentials: %s: %s", e.Source, e.Kind)
	}
	return fmt.Sprintf("credentials: %s: %s: %v", e.Source, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, &Error{Kind: X}) match on Kind alone, regardless of
// Source or wrapped cause.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

func isNotApplicable(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == KindNotApplicable
}

func errMissingField(field string) error {
	return fmt.Errorf("missing required field %q", field)
}

// Provider is the uniform interface every credential source, and the chain
// that composes them, implements. The source's manually-maintained function
// table (get_credentials/refresh/sync_mode_hint/async_mode_hint/destroy) is
// expressed here as a Go interface with context-based cancellation standing
// in for the sync/async mode switch -- see the Design Notes' concurrency
// rewrite: a provider is uniformly non-blocking from the caller's
// perspective, and a synchronous caller simply blocks on ctx completion.
type Provider interface {
	// Name identifies the source for logging and error attribution.
	Name() string

	// Retrieve returns a fresh credential, serving from cache when possible
	// and fetching (single-flight) when stale or cold.
	Retrieve(ctx context.Context) (Credential, error)

	// Refresh forces a cache invalidation check and, if stale, a fetch. It
	// does not guarantee the result is usable; callers should follow with
	// Retrieve.
	Refresh(ctx context.Context) error
}
