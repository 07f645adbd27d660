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
	"io"
	"net/http"

	"github.com/stretchr/testify/mock"
)

// newTestResponse builds an *http.Response with the given status and body,
// suitable for stubbing HTTPClient.Do in tests.
func newTestResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewReader([]byte(body))),
		Header:     make(http.Header),
	}
}

// MockHTTPClient stands for a mocked HTTPClient.
type MockHTTPClient struct {
	mock.Mock
}

// NewMockHTTPClient returns an instance of MockHTTPClient with no
// expectations set; callers attach their own .On("Do", ...) responses.
func NewMockHTTPClient() *MockHTTPClient {
	return new(MockHTTPClient)
}

// Do mocks the Do function.
func (_m *MockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	ret := _m.Called(req)

	var r0 *http.Response
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*http.Response)
	}
	return r0, ret.Error(1)
}

// SequencedHTTPClient serves a fixed sequence of responses in order, one per
// call to Do, regardless of request content. It exists for protocol tests
// (e.g. IMDS token-then-role-then-credentials) where matching on request
// shape would be more brittle than asserting call order.
type SequencedHTTPClient struct {
	responses []RoundTripResult
	calls     []*http.Request
}

// RoundTripResult is one canned response (or error) for SequencedHTTPClient.
type RoundTripResult struct {
	Response *http.Response
	Err      error
}

// NewSequencedHTTPClient builds a client that returns results in order.
func NewSequencedHTTPClient(results ...RoundTripResult) *SequencedHTTPClient {
	return &SequencedHTTPClient{responses: results}
}

// Do implements HTTPClient.
func (c *SequencedHTTPClient) Do(req *http.Request) (*http.Response, error) {
	c.calls = append(c.calls, req)
	idx := len(c.calls) - 1
	if idx >= len(c.responses) {
		return nil, &Error{Kind: KindImdsUnavailable, Source: "test", Err: http.ErrHandlerTimeout}
	}
	res := c.responses[idx]
	return res.Response, res.Err
}

// Calls returns every request observed so far, in order.
func (c *SequencedHTTPClient) Calls() []*http.Request { return c.calls }
