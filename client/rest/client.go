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
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/consenthound/consenthound/constants"
	"github.com/go-logr/logr"
)

// RestClient issues authenticated, retrying GET requests against the Graph
// API. The audit is read-only, so no other verb is exposed.
type RestClient interface {
	Authenticate(ctx context.Context) error
	Get(ctx context.Context, path string, params url.Values) (*http.Response, error)
	TenantId() string
	CloseIdleConnections()
}

type Config struct {
	BaseUrl       string
	TenantId      string
	ClientId      string
	ClientSecret  string
	CertPath      string
	KeyPath       string
	KeyPassphrase string
	Username      string
	Password      string
	ProxyUrl      string

	// RetryBase overrides the backoff schedule base; zero means
	// DefaultRetryBase.
	RetryBase time.Duration

	Log logr.Logger
}

type restClient struct {
	base       *url.URL
	httpClient *http.Client
	credential azcore.TokenCredential
	retryBase  time.Duration
	log        logr.Logger
	sleep      func(time.Duration)

	mu       sync.Mutex
	token    azcore.AccessToken
	tenantId string
}

func NewRestClient(config Config) (RestClient, error) {
	baseUrl := config.BaseUrl
	if baseUrl == "" {
		baseUrl = constants.GraphBaseUrl
	}
	base, err := url.Parse(baseUrl)
	if err != nil {
		return nil, fmt.Errorf("invalid base url %s: %w", baseUrl, err)
	}

	httpClient, err := NewHTTPClient(config.ProxyUrl)
	if err != nil {
		return nil, err
	}

	credential, err := newCredential(config)
	if err != nil {
		return nil, err
	}

	return &restClient{
		base:       base,
		httpClient: httpClient,
		credential: credential,
		retryBase:  config.RetryBase,
		log:        config.Log,
		sleep:      time.Sleep,
		tenantId:   config.TenantId,
	}, nil
}

// Authenticate acquires an initial token and logs the roles granted to the
// credential so operators can spot missing read permissions before the run
// starts. The engine itself never assumes a particular permission set.
func (s *restClient) Authenticate(ctx context.Context) error {
	token, err := s.freshToken(ctx)
	if err != nil {
		return err
	}

	claims := decodeTokenClaims(token.Token)
	if s.tenantId == "" {
		s.mu.Lock()
		s.tenantId = claims.TenantId
		s.mu.Unlock()
	}
	s.log.Info("authenticated to graph", "tenant", claims.TenantId, "roles", claims.Roles)
	return nil
}

func (s *restClient) TenantId() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tenantId
}

// Get issues a GET against path (either an API-relative path such as
// /v1.0/oauth2PermissionGrants or an absolute nextLink URL), retrying
// throttled and server-side failures per the backoff policy.
func (s *restClient) Get(ctx context.Context, path string, params url.Values) (*http.Response, error) {
	endpoint, err := s.resolve(path, params)
	if err != nil {
		return nil, err
	}

	token, err := s.freshToken(ctx)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token.Token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", constants.UserAgent())

	return s.send(req)
}

func (s *restClient) resolve(path string, params url.Values) (*url.URL, error) {
	if endpoint, err := url.Parse(path); err != nil {
		return nil, fmt.Errorf("invalid request path %s: %w", path, err)
	} else if endpoint.IsAbs() {
		// nextLink URLs already carry their query parameters.
		return endpoint, nil
	} else {
		resolved := s.base.ResolveReference(endpoint)
		if params != nil {
			resolved.RawQuery = params.Encode()
		}
		return resolved, nil
	}
}

// send drives the retry loop. 429 and 5xx responses honor Retry-After when
// present and otherwise back off exponentially; any other non-2xx status is
// surfaced immediately as a PermanentError.
func (s *restClient) send(req *http.Request) (*http.Response, error) {
	if req.Method != http.MethodGet {
		return nil, fmt.Errorf("refusing to send non-GET request to %s", req.URL)
	}

	for attempt := 0; ; attempt++ {
		res, err := s.httpClient.Do(req)
		if err != nil {
			if IsClosedConnectionErr(err) && attempt < MaxRetries {
				s.log.V(1).Info("connection closed by remote host, retrying", "url", req.URL.String(), "attempt", attempt+1)
				s.sleep(Backoff(s.retryBase, attempt))
				continue
			}
			return nil, err
		}

		if res.StatusCode == http.StatusTooManyRequests || res.StatusCode >= http.StatusInternalServerError {
			if attempt < MaxRetries {
				delay, ok := retryAfter(res)
				if !ok {
					delay = Backoff(s.retryBase, attempt)
				}
				s.log.V(1).Info("retrying request", "url", req.URL.String(), "status", res.StatusCode, "delay", delay.String(), "attempt", attempt+1, "maxRetries", MaxRetries)
				drain(res)
				s.sleep(delay)
				continue
			}
			drain(res)
			return nil, &TransientError{
				StatusCode: res.StatusCode,
				URL:        req.URL.String(),
				Attempts:   attempt + 1,
			}
		}

		if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
			return nil, newPermanentError(res)
		}

		return res, nil
	}
}

// Decode unmarshals a response body into value and closes it.
func Decode(body io.ReadCloser, value any) error {
	defer body.Close()
	return json.NewDecoder(body).Decode(value)
}

func (s *restClient) freshToken(ctx context.Context) (azcore.AccessToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.token.Token != "" && time.Until(s.token.ExpiresOn) > 2*time.Minute {
		return s.token, nil
	}

	token, err := s.credential.GetToken(ctx, policy.TokenRequestOptions{
		Scopes: []string{constants.GraphDefaultScope},
	})
	if err != nil {
		return azcore.AccessToken{}, fmt.Errorf("unable to acquire graph token: %w", err)
	}
	s.token = token
	return token, nil
}

func (s *restClient) CloseIdleConnections() {
	s.httpClient.CloseIdleConnections()
}

func drain(res *http.Response) {
	io.Copy(io.Discard, io.LimitReader(res.Body, 1<<20))
	res.Body.Close()
}
