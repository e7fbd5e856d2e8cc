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

package audit

import (
	"context"
	"net/http"
	"sync"
	"testing"

	"github.com/consenthound/consenthound/client"
	"github.com/consenthound/consenthound/client/query"
	"github.com/consenthound/consenthound/client/rest"
	"github.com/consenthound/consenthound/models"
	"github.com/consenthound/consenthound/models/azure"
	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAzureClient is an in-memory AzureClient that counts lookups.
type fakeAzureClient struct {
	mu        sync.Mutex
	spCalls   map[string]int
	userCalls map[string]int
	sps       map[string]azure.ServicePrincipal
	users     map[string]azure.User

	// bulkSPs feeds ListServicePrincipals regardless of filter.
	bulkSPs []azure.ServicePrincipal
}

func newFakeAzureClient() *fakeAzureClient {
	return &fakeAzureClient{
		spCalls:   map[string]int{},
		userCalls: map[string]int{},
		sps:       map[string]azure.ServicePrincipal{},
		users:     map[string]azure.User{},
	}
}

func (s *fakeAzureClient) TenantId() string      { return "test-tenant" }
func (s *fakeAzureClient) CloseIdleConnections() {}

func (s *fakeAzureClient) GetServicePrincipal(ctx context.Context, id string) (azure.ServicePrincipal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.spCalls[id]++
	if sp, ok := s.sps[id]; ok {
		return sp, nil
	}
	return azure.ServicePrincipal{}, &rest.PermanentError{StatusCode: http.StatusNotFound, URL: "/servicePrincipals/" + id}
}

func (s *fakeAzureClient) GetUser(ctx context.Context, id string) (azure.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userCalls[id]++
	if user, ok := s.users[id]; ok {
		return user, nil
	}
	return azure.User{}, &rest.PermanentError{StatusCode: http.StatusNotFound, URL: "/users/" + id}
}

func (s *fakeAzureClient) ListServicePrincipals(ctx context.Context, params query.GraphParams) <-chan client.AzureResult[azure.ServicePrincipal] {
	out := make(chan client.AzureResult[azure.ServicePrincipal])
	go func() {
		defer close(out)
		for _, sp := range s.bulkSPs {
			out <- client.AzureResult[azure.ServicePrincipal]{Ok: sp}
		}
	}()
	return out
}

func (s *fakeAzureClient) ListUsers(ctx context.Context, params query.GraphParams) <-chan client.AzureResult[azure.User] {
	out := make(chan client.AzureResult[azure.User])
	close(out)
	return out
}

func (s *fakeAzureClient) ListOAuth2PermissionGrants(ctx context.Context, params query.GraphParams) <-chan client.AzureResult[azure.OAuth2PermissionGrant] {
	out := make(chan client.AzureResult[azure.OAuth2PermissionGrant])
	close(out)
	return out
}

func (s *fakeAzureClient) ListAppRoleAssignedTo(ctx context.Context, resourceId string, params query.GraphParams) <-chan client.AzureResult[azure.AppRoleAssignment] {
	out := make(chan client.AzureResult[azure.AppRoleAssignment])
	close(out)
	return out
}

func TestResolverCoalescesConcurrentLookups(t *testing.T) {
	fake := newFakeAzureClient()
	fake.sps["sp1"] = azure.ServicePrincipal{
		DirectoryObject: azure.DirectoryObject{Id: "sp1"},
		AppId:           "app1",
		DisplayName:     "Widget Sync",
	}
	resolver := NewResolver(fake, logr.Discard())

	var (
		wg   sync.WaitGroup
		refs = make([]models.EntityRef, 16)
	)
	for i := range refs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			refs[i] = resolver.ServicePrincipal(context.Background(), "sp1")
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, fake.spCalls["sp1"], "concurrent requests for the same id must coalesce into one fetch")
	for _, ref := range refs {
		assert.Equal(t, "Widget Sync", ref.DisplayName)
		assert.Equal(t, "app1", ref.AppId)
	}
}

func TestResolverRepeatLookupsHitCache(t *testing.T) {
	fake := newFakeAzureClient()
	fake.users["u1"] = azure.User{
		DirectoryObject:   azure.DirectoryObject{Id: "u1"},
		DisplayName:       "Avery Quinn",
		UserPrincipalName: "avery@contoso.com",
	}
	resolver := NewResolver(fake, logr.Discard())

	for i := 0; i < 5; i++ {
		ref := resolver.User(context.Background(), "u1")
		assert.Equal(t, "avery@contoso.com", ref.UserPrincipalName)
	}
	assert.Equal(t, 1, fake.userCalls["u1"])
}

func TestResolverDeletedObjectDegradesToSentinel(t *testing.T) {
	fake := newFakeAzureClient()
	resolver := NewResolver(fake, logr.Discard())

	ref := resolver.ServicePrincipal(context.Background(), "gone")

	assert.True(t, ref.Unresolved)
	assert.Equal(t, "gone", ref.Id)
	assert.Equal(t, models.UnresolvedDisplayName, ref.DisplayName)

	// The sentinel is cached too.
	resolver.ServicePrincipal(context.Background(), "gone")
	assert.Equal(t, 1, fake.spCalls["gone"])
}

func TestWarmToleratesDuplicateBulkRows(t *testing.T) {
	fake := newFakeAzureClient()
	// Paging under directory churn can return the same object twice.
	fake.bulkSPs = []azure.ServicePrincipal{
		{DirectoryObject: azure.DirectoryObject{Id: "sp1"}, AppId: "app1", DisplayName: "Widget Sync"},
		{DirectoryObject: azure.DirectoryObject{Id: "sp1"}, AppId: "app1", DisplayName: "Widget Sync"},
	}
	resolver := NewResolver(fake, logr.Discard())

	resolver.WarmServicePrincipals(context.Background(), []string{"sp1"})

	ref := resolver.ServicePrincipal(context.Background(), "sp1")
	assert.Equal(t, "Widget Sync", ref.DisplayName)
	assert.False(t, ref.Unresolved)
	assert.Zero(t, fake.spCalls["sp1"])
}

func TestResolverEmptyIdIsSentinelWithoutFetch(t *testing.T) {
	fake := newFakeAzureClient()
	resolver := NewResolver(fake, logr.Discard())

	ref := resolver.User(context.Background(), "")
	assert.True(t, ref.Unresolved)
	assert.Empty(t, fake.userCalls)
}

func TestWarmServicePrincipalsBulkFillsCache(t *testing.T) {
	fake := newFakeAzureClient()
	fake.bulkSPs = []azure.ServicePrincipal{
		{DirectoryObject: azure.DirectoryObject{Id: "sp1"}, AppId: "app1", DisplayName: "First"},
		{DirectoryObject: azure.DirectoryObject{Id: "sp2"}, AppId: "app2", DisplayName: "Second"},
	}
	resolver := NewResolver(fake, logr.Discard())

	resolver.WarmServicePrincipals(context.Background(), []string{"sp1", "sp2", "missing"})

	require.Equal(t, "First", resolver.ServicePrincipal(context.Background(), "sp1").DisplayName)
	require.Equal(t, "Second", resolver.ServicePrincipal(context.Background(), "sp2").DisplayName)
	// Bulk-resolved ids never hit the per-id endpoint.
	assert.Zero(t, fake.spCalls["sp1"])
	assert.Zero(t, fake.spCalls["sp2"])

	// The id the bulk lookup did not return fell back to a per-id fetch
	// and degraded to the sentinel.
	missing := resolver.ServicePrincipal(context.Background(), "missing")
	assert.True(t, missing.Unresolved)
	assert.Equal(t, 1, fake.spCalls["missing"])
}
