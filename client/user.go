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

// UserSelect is the property set resolution requests.
var UserSelect = []string{"id", "displayName", "userPrincipalName"}

// ListUsers streams users, usually narrowed by an `id in (...)` bulk lookup.
// https://learn.microsoft.com/en-us/graph/api/user-list?view=graph-rest-1.0
func (s *azureClient) ListUsers(ctx context.Context, params query.GraphParams) <-chan AzureResult[azure.User] {
	var (
		out  = make(chan AzureResult[azure.User])
		path = fmt.Sprintf("/%s/users", constants.GraphApiVersion)
	)

	if params.Top == 0 {
		params.Top = 999
	}

	go getAzureObjectList[azure.User](s.msgraph, ctx, path, params, out)

	return out
}

// GetUser fetches a single user by object id.
func (s *azureClient) GetUser(ctx context.Context, id string) (azure.User, error) {
	path := fmt.Sprintf("/%s/users/%s", constants.GraphApiVersion, id)
	return getAzureObject[azure.User](s.msgraph, ctx, path, query.GraphParams{Select: UserSelect})
}
