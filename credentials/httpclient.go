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
	"context"
	"net/http"

	"github.com/cenkalti/backoff/v4"

	"github.com/aws/log-forwarder-agent/agent/backoffconfig"
)

// HTTPClient is the injected HTTP transport seam used by every
// network-backed provider (§3's "HTTP client handle"). The host wires a
// pooled *http.Client in; tests wire a mock.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// backoffRetry is a seam so tests can substitute a synchronous, non-waiting
// retrier without changing call sites.
var backoffRetry = backoff.Retry

// doWithRetry issues req against client, retrying only transport-level
// failures (connection refused, DNS, i/o timeout) with the teacher's default
// exponential backoff policy. A non-2xx status or a body-parse failure is
// handled by the caller and never retried here: retrying those would
// violate the single-flight "exactly one fetch" guarantee the cache
// provides against deterministic mock responses.
func doWithRetry(ctx context.Context, client HTTPClient, req *http.Request) (*http.Response, error) {
	var resp *http.Response

	policy, err := backoffconfig.GetDefaultExponentialBackoff()
	if err != nil {
		return nil, err
	}

	op := func() error {
		var doErr error
		resp, doErr = client.Do(req.WithContext(ctx))
		return doErr
	}

	if err := backoffRetry(op, backoff.WithContext(policy, ctx)); err != nil {
		switch ctx.Err() {
		case context.DeadlineExceeded:
			return nil, &Error{Kind: KindTimeout, Err: err}
		case context.Canceled:
			return nil, &Error{Kind: KindCancelled, Err: err}
		default:
			return nil, err
		}
	}
	return resp, nil
}
