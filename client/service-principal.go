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

package client

import (
	"context"
	"fmt"

	"github.com/consenthound/consenthound/client/query"
	"github.com/consenthound/consenthound/constants"
	"github.com/consenthound/consenthound/models/azure"
)

// ServicePrincipalSelect is the property set resolution requests.
var ServicePrincipalSelect = []string{"id", "appId", "displayName", "verifiedPublisher"}

// ListServicePrincipals streams service principals, usually narrowed by a
// $filter such as `appId eq '...'` or an `id in (...)` bulk lookup.
// https://learn.microsoft.com/en-us/graph/api/serviceprincipal-list?view=graph-rest-1.0
func (s *azureClient) ListServicePrincipals(ctx context.Context, params query.GraphParams) <-chan AzureResult[azure.ServicePrincipal] {
	var (
		out  = make(chan AzureResult[azure.ServicePrincipal])
		path = fmt.Sprintf("/%s/servicePrincipals", constants.GraphApiVersion)
	)

	if params.Top == 0 {
		params.Top = 999
	}

	go getAzureObjectList[azure.ServicePrincipal](s.msgraph, ctx, path, params, out)

	return out
}

// GetServicePrincipal fetches a single service principal by object id.
func (s *azureClient) GetServicePrincipal(ctx context.Context, id string) (azure.ServicePrincipal, error) {
	path := fmt.Sprintf("/%s/servicePrincipals/%s", constants.GraphApiVersion, id)
	return getAzureObject[azure.ServicePrincipal](s.msgraph, ctx, path, query.GraphParams{Select: ServicePrincipalSelect})
}

// ListAppRoleAssignedTo streams app role assignments granted on the given
// resource service principal. Listing from the resource side keeps the audit
// to a single collection instead of a walk over every service principal.
// https://learn.microsoft.com/en-us/graph/api/serviceprincipal-list-approleassignedto?view=graph-rest-1.0
func (s *azureClient) ListAppRoleAssignedTo(ctx context.Context, resourceId string, params query.GraphParams) <-chan AzureResult[azure.AppRoleAssignment] {
	var (
		out  = make(chan AzureResult[azure.AppRoleAssignment])
		path = fmt.Sprintf("/%s/servicePrincipals/%s/appRoleAssignedTo", constants.GraphApiVersion, resourceId)
	)

	if params.Top == 0 {
		params.Top = 999
	}

	go getAzureObjectList[azure.AppRoleAssignment](s.msgraph, ctx, path, params, out)

	return out
}
