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

// Package client exposes the read-only Microsoft Graph surface the audit
// consumes: paged collection listings and single-object lookups.
package client

import (
	"context"

	"github.com/consenthound/consenthound/client/query"
	"github.com/consenthound/consenthound/client/rest"
	"github.com/consenthound/consenthound/models/azure"
)

//go:generate go run go.uber.org/mock/mockgen -destination=./mocks/client.go -package=mocks -source=client.go AzureClient

// AzureClient is the Graph API surface consumed by the audit engine.
type AzureClient interface {
	TenantId() string
	GetServicePrincipal(ctx context.Context, id string) (azure.ServicePrincipal, error)
	GetUser(ctx context.Context, id string) (azure.User, error)
	ListOAuth2PermissionGrants(ctx context.Context, params query.GraphParams) <-chan AzureResult[azure.OAuth2PermissionGrant]
	ListServicePrincipals(ctx context.Context, params query.GraphParams) <-chan AzureResult[azure.ServicePrincipal]
	ListUsers(ctx context.Context, params query.GraphParams) <-chan AzureResult[azure.User]
	ListAppRoleAssignedTo(ctx context.Context, resourceId string, params query.GraphParams) <-chan AzureResult[azure.AppRoleAssignment]
	CloseIdleConnections()
}

type azureClient struct {
	msgraph rest.RestClient
}

// NewClient builds the Graph client and performs the initial token
// acquisition so credential problems surface before any collection starts.
func NewClient(ctx context.Context, config rest.Config) (AzureClient, error) {
	msgraph, err := rest.NewRestClient(config)
	if err != nil {
		return nil, err
	}
	if err := msgraph.Authenticate(ctx); err != nil {
		return nil, err
	}
	return &azureClient{msgraph: msgraph}, nil
}

// NewClientForRest wraps an existing rest client; used by tests.
func NewClientForRest(msgraph rest.RestClient) AzureClient {
	return &azureClient{msgraph: msgraph}
}

func (s *azureClient) TenantId() string {
	return s.msgraph.TenantId()
}

func (s *azureClient) CloseIdleConnections() {
	s.msgraph.CloseIdleConnections()
}
