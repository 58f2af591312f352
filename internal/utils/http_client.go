// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	readRetryCount   = 2
	readRetryWait    = 100 * time.Millisecond
	readRetryMaxWait = time.Second
)

// HTTPClient is a resty client preconfigured for a JSON backend.
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient returns a client bound to baseURL. Reads that fail at the
// transport level are retried a few times; writes are never retried.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json").
		SetRetryCount(readRetryCount).
		SetRetryWaitTime(readRetryWait).
		SetRetryMaxWaitTime(readRetryMaxWait).
		AddRetryCondition(retryReads)

	return &HTTPClient{Client: client}
}

func retryReads(r *resty.Response, err error) bool {
	if err == nil || r == nil || r.Request == nil {
		return false
	}
	return r.Request.Method == http.MethodGet
}
