// Copyright (C) 2025 ConsentHound Contributors
//
// This file is part of ConsentHound.
//
// ConsentHound is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// ConsentHound is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package rest

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticCredential struct{}

func (s staticCredential) GetToken(_ context.Context, _ policy.TokenRequestOptions) (azcore.AccessToken, error) {
	return azcore.AccessToken{Token: "test-token", ExpiresOn: time.Now().Add(time.Hour)}, nil
}

func newTestClient(t *testing.T, serverUrl string, delays *[]time.Duration) *restClient {
	t.Helper()
	base, err := url.Parse(serverUrl)
	require.NoError(t, err)

	return &restClient{
		base:       base,
		httpClient: &http.Client{},
		credential: staticCredential{},
		retryBase:  time.Millisecond,
		log:        logr.Discard(),
		sleep: func(d time.Duration) {
			*delays = append(*delays, d)
		},
	}
}

func TestGetRetriesThrottledRequests(t *testing.T) {
	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if requests.Add(1) <= 2 {
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(`{"value":[]}`))
	}))
	defer server.Close()

	var delays []time.Duration
	client := newTestClient(t, server.URL, &delays)

	res, err := client.Get(context.Background(), "/v1.0/oauth2PermissionGrants", nil)
	require.NoError(t, err)
	defer res.Body.Close()

	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, int32(3), requests.Load())
	assert.Len(t, delays, 2)
}

func TestGetExhaustsRetryBudgetOnServerErrors(t *testing.T) {
	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	var delays []time.Duration
	client := newTestClient(t, server.URL, &delays)

	_, err := client.Get(context.Background(), "/v1.0/servicePrincipals", nil)
	require.Error(t, err)

	var transient *TransientError
	require.True(t, errors.As(err, &transient))
	assert.Equal(t, http.StatusInternalServerError, transient.StatusCode)
	assert.Equal(t, MaxRetries+1, transient.Attempts)
	assert.Equal(t, int32(MaxRetries+1), requests.Load())
}

func TestGetDoesNotRetryClientErrors(t *testing.T) {
	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error":{"code":"Authorization_RequestDenied","message":"Insufficient privileges"}}`))
	}))
	defer server.Close()

	var delays []time.Duration
	client := newTestClient(t, server.URL, &delays)

	_, err := client.Get(context.Background(), "/v1.0/users", nil)
	require.Error(t, err)

	var permanent *PermanentError
	require.True(t, errors.As(err, &permanent))
	assert.Equal(t, http.StatusForbidden, permanent.StatusCode)
	assert.Equal(t, "Authorization_RequestDenied", permanent.Code)
	assert.Equal(t, int32(1), requests.Load())
	assert.Empty(t, delays)
}

func TestIsNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":{"code":"Request_ResourceNotFound","message":"deleted"}}`))
	}))
	defer server.Close()

	var delays []time.Duration
	client := newTestClient(t, server.URL, &delays)

	_, err := client.Get(context.Background(), "/v1.0/users/nope", nil)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestRetryAfterIsCapped(t *testing.T) {
	res := &http.Response{Header: http.Header{"Retry-After": []string{"9999"}}}
	delay, ok := retryAfter(res)
	require.True(t, ok)
	assert.Equal(t, maxRetryAfter, delay)
}

func TestBackoffNeverExceedsCap(t *testing.T) {
	for attempt := 0; attempt <= 10; attempt++ {
		assert.LessOrEqual(t, Backoff(DefaultRetryBase, attempt), maxBackoff)
	}
}
