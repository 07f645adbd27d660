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
	"time"

	"github.com/aws/log-forwarder-agent/agent/log"
	"github.com/carlescere/scheduler"
)

// Refresher periodically calls a Provider's Refresh ahead of expiration, so
// that a subsequent Retrieve finds a warm cache instead of paying the
// network round-trip on the caller's time budget.
type Refresher struct {
	provider Provider
	log      log.T
	timeout  time.Duration
	job      *scheduler.Job
}

// NewRefresher builds a refresher for provider; timeout bounds each
// background Refresh call.
func NewRefresher(logger log.T, provider Provider, timeout time.Duration) *Refresher {
	return &Refresher{provider: provider, log: logger, timeout: timeout}
}

// Start begins the periodic refresh loop, running every frequencyMinutes;
// that interval should be comfortably shorter than the provider's
// RefreshWindow. It is a no-op if already started.
func (r *Refresher) Start(frequencyMinutes int) error {
	if r.job != nil {
		return nil
	}
	job, err := scheduler.Every(frequencyMinutes).Minutes().Run(r.refreshOnce)
	if err != nil {
		return r.log.Errorf("credentials: unable to start refresher, %v", err)
	}
	r.job = job
	return nil
}

// Stop halts the periodic refresh loop. Safe to call on an unstarted or
// already-stopped refresher.
func (r *Refresher) Stop() {
	if r.job != nil {
		r.job.Quit <- true
		r.job = nil
	}
}

func (r *Refresher) refreshOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	if err := r.provider.Refresh(ctx); err != nil && !isNotApplicable(err) {
		r.log.Debugf("credentials: background refresh failed: %v", err)
	}
}
