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

package azure

// AppRoleAssignment represents an application-only role granted to a
// principal (commonly a service principal) on a resource application.
// See https://learn.microsoft.com/en-us/graph/api/resources/approleassignment?view=graph-rest-1.0
type AppRoleAssignment struct {
	DirectoryObject

	// Id of the appRole declared on the resource application.
	AppRoleId string `json:"appRoleId,omitempty"`

	// Object id of the assigned principal.
	PrincipalId string `json:"principalId,omitempty"`

	// Display name of the assigned principal, as denormalized by Graph.
	PrincipalDisplayName string `json:"principalDisplayName,omitempty"`

	// Type of the assigned principal: "User", "Group" or "ServicePrincipal".
	PrincipalType string `json:"principalType,omitempty"`

	// Object id of the resource service principal the role is defined on.
	ResourceId string `json:"resourceId,omitempty"`

	// Display name of the resource service principal.
	ResourceDisplayName string `json:"resourceDisplayName,omitempty"`

	CreatedDateTime string `json:"createdDateTime,omitempty"`
}
