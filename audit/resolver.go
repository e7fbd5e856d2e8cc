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
	"sync"

	"github.com/consenthound/consenthound/client"
	"github.com/consenthound/consenthound/client/query"
	"github.com/consenthound/consenthound/models"
	"github.com/go-logr/logr"
)

// bulkLookupChunk bounds how many ids go into one `id in (...)` filter;
// Graph rejects overly long filter expressions.
const bulkLookupChunk = 15

type entityKind string

const (
	kindServicePrincipal entityKind = "servicePrincipal"
	kindUser             entityKind = "user"
)

type cacheKey struct {
	kind entityKind
	id   string
}

type cacheEntry struct {
	ready  chan struct{}
	filled bool
	ref    models.EntityRef
}

// Resolver resolves directory object ids to display metadata for the
// lifetime of one audit run. The cache is shared between the concurrently
// running flows; the first caller to request an id performs the fetch and
// concurrent callers wait on the same entry, so every finding renders a
// given entity identically and no id is fetched twice.
//
// Resolution never fails: a lookup error degrades to the sentinel EntityRef
// with the id preserved and is logged as a warning.
type Resolver struct {
	client client.AzureClient
	log    logr.Logger

	mu    sync.Mutex
	cache map[cacheKey]*cacheEntry
}

func NewResolver(azClient client.AzureClient, log logr.Logger) *Resolver {
	return &Resolver{
		client: azClient,
		log:    log,
		cache:  map[cacheKey]*cacheEntry{},
	}
}

// ServicePrincipal resolves a service principal object id.
func (s *Resolver) ServicePrincipal(ctx context.Context, id string) models.EntityRef {
	return s.resolve(ctx, kindServicePrincipal, id)
}

// User resolves a user object id.
func (s *Resolver) User(ctx context.Context, id string) models.EntityRef {
	return s.resolve(ctx, kindUser, id)
}

func (s *Resolver) resolve(ctx context.Context, kind entityKind, id string) models.EntityRef {
	if id == "" {
		return models.UnresolvedEntity(id)
	}

	entry, owner := s.claim(kind, id)
	if !owner {
		select {
		case <-entry.ready:
			return entry.ref
		case <-ctx.Done():
			return models.UnresolvedEntity(id)
		}
	}

	s.fill(entry, s.fetch(ctx, kind, id))
	return entry.ref
}

// claim returns the cache entry for (kind, id) and whether the caller owns
// the fetch for it.
func (s *Resolver) claim(kind entityKind, id string) (*cacheEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := cacheKey{kind: kind, id: id}
	if entry, ok := s.cache[key]; ok {
		return entry, false
	}
	entry := &cacheEntry{ready: make(chan struct{})}
	s.cache[key] = entry
	return entry, true
}

// fill publishes ref on entry exactly once. Bulk lookups can yield the
// same object on two pages under directory churn, so later fills for an
// already published entry are ignored.
func (s *Resolver) fill(entry *cacheEntry, ref models.EntityRef) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if entry.filled {
		return
	}
	entry.filled = true
	entry.ref = ref
	close(entry.ready)
}

func (s *Resolver) fetch(ctx context.Context, kind entityKind, id string) models.EntityRef {
	switch kind {
	case kindUser:
		user, err := s.client.GetUser(ctx, id)
		if err != nil {
			s.log.V(0).Info("unable to resolve user, reporting as unknown", "id", id, "reason", err.Error())
			return models.UnresolvedEntity(id)
		}
		return models.EntityRef{
			Id:                user.Id,
			DisplayName:       user.DisplayName,
			UserPrincipalName: user.UserPrincipalName,
		}
	default:
		sp, err := s.client.GetServicePrincipal(ctx, id)
		if err != nil {
			s.log.V(0).Info("unable to resolve service principal, reporting as unknown", "id", id, "reason", err.Error())
			return models.UnresolvedEntity(id)
		}
		return models.EntityRef{
			Id:            sp.Id,
			DisplayName:   sp.DisplayName,
			AppId:         sp.AppId,
			PublisherName: sp.VerifiedPublisherName,
		}
	}
}

// WarmServicePrincipals pre-fetches a batch of service principal ids with
// GET `id in (...)` lookups, so per-finding resolution hits the cache. Ids
// already cached or in flight are skipped; ids the lookup does not return
// fall back to per-id fetches (and ultimately the sentinel).
func (s *Resolver) WarmServicePrincipals(ctx context.Context, ids []string) {
	s.warm(ctx, kindServicePrincipal, ids)
}

// WarmUsers pre-fetches a batch of user ids.
func (s *Resolver) WarmUsers(ctx context.Context, ids []string) {
	s.warm(ctx, kindUser, ids)
}

func (s *Resolver) warm(ctx context.Context, kind entityKind, ids []string) {
	var (
		claimed = map[string]*cacheEntry{}
		order   []string
	)
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, dup := claimed[id]; dup {
			continue
		}
		if entry, owner := s.claim(kind, id); owner {
			claimed[id] = entry
			order = append(order, id)
		}
	}

	for start := 0; start < len(order); start += bulkLookupChunk {
		end := start + bulkLookupChunk
		if end > len(order) {
			end = len(order)
		}
		s.warmChunk(ctx, kind, order[start:end], claimed)
	}
}

func (s *Resolver) warmChunk(ctx context.Context, kind entityKind, ids []string, claimed map[string]*cacheEntry) {
	params := query.GraphParams{Filter: query.InFilter("id", ids)}
	remaining := map[string]struct{}{}
	for _, id := range ids {
		remaining[id] = struct{}{}
	}

	switch kind {
	case kindUser:
		params.Select = client.UserSelect
		for item := range s.client.ListUsers(ctx, params) {
			if item.Error != nil {
				s.log.V(1).Info("bulk user lookup failed, falling back to per-id resolution", "reason", item.Error.Error())
				break
			}
			if entry, ok := claimed[item.Ok.Id]; ok {
				s.fill(entry, models.EntityRef{
					Id:                item.Ok.Id,
					DisplayName:       item.Ok.DisplayName,
					UserPrincipalName: item.Ok.UserPrincipalName,
				})
				delete(remaining, item.Ok.Id)
			}
		}
	default:
		params.Select = client.ServicePrincipalSelect
		for item := range s.client.ListServicePrincipals(ctx, params) {
			if item.Error != nil {
				s.log.V(1).Info("bulk service principal lookup failed, falling back to per-id resolution", "reason", item.Error.Error())
				break
			}
			if entry, ok := claimed[item.Ok.Id]; ok {
				s.fill(entry, models.EntityRef{
					Id:            item.Ok.Id,
					DisplayName:   item.Ok.DisplayName,
					AppId:         item.Ok.AppId,
					PublisherName: item.Ok.VerifiedPublisherName,
				})
				delete(remaining, item.Ok.Id)
			}
		}
	}

	// Anything the bulk lookup did not return gets a per-id attempt so a
	// deleted object degrades to the sentinel instead of wedging waiters.
	for _, id := range ids {
		if _, missing := remaining[id]; missing {
			s.fill(claimed[id], s.fetch(ctx, kind, id))
		}
	}
}
