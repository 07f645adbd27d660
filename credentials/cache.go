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
	"sync"
	"time"

	"github.com/aws/log-forwarder-agent/agent/times"
	"golang.org/x/sync/singleflight"
)

// cache holds a single provider's cached Credential and collapses concurrent
// refreshes of a stale or cold cache into one fetch (§4.6, §8 property 3).
// Every network-backed provider embeds one.
type cache struct {
	mu     sync.RWMutex
	cred   Credential
	have   bool
	window time.Duration
	group  singleflight.Group
	clock  times.Clock
}

func newCache(refreshWindow time.Duration) *cache {
	return &cache{window: refreshWindow, clock: times.DefaultClock}
}

// get returns the cached credential if fresh, otherwise invokes fetch. Many
// concurrent callers arriving on a stale cache share a single invocation of
// fetch via singleflight, keyed on "refresh" regardless of which caller
// triggers it. Only the triggering caller's ctx is threaded into fetch --
// DoChan has no way to merge N independent contexts into one -- so if that
// specific caller's ctx is cancelled while the fetch is in flight, fetch
// observes the cancellation and the shared call fails for every waiter, not
// just the one that cancelled. A waiting (non-triggering) caller whose own
// ctx is cancelled instead stops waiting immediately via the select below,
// without affecting the in-flight fetch or any other waiter. See
// TestCacheTriggeringCallerCancelAbortsSharedFetch.
func (c *cache) get(ctx context.Context, fetch func(context.Context) (Credential, error)) (Credential, error) {
	if cred, ok := c.fresh(); ok {
		return cred, nil
	}

	ch := c.group.DoChan("refresh", func() (interface{}, error) {
		if cred, ok := c.fresh(); ok {
			return cred, nil
		}
		cred, err := fetch(ctx)
		if err != nil {
			return Credential{}, err
		}
		c.store(cred)
		return cred, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return Credential{}, res.Err
		}
		return res.Val.(Credential), nil
	case <-ctx.Done():
		return Credential{}, &Error{Kind: KindCancelled, Err: ctx.Err()}
	}
}

func (c *cache) fresh() (Credential, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.have && !c.cred.IsStale(c.clock.Now(), c.window) {
		return c.cred, true
	}
	return Credential{}, false
}

func (c *cache) store(cred Credential) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cred = cred
	c.have = true
}
