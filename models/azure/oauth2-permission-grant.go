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

// OAuth2PermissionGrant represents a delegated permission grant: a user (or
// every user in the tenant) has consented to a client application acting on
// their behalf with the listed scopes.
// See https://learn.microsoft.com/en-us/graph/api/resources/oauth2permissiongrant?view=graph-rest-1.0
type OAuth2PermissionGrant struct {
	DirectoryObject

	// Object id of the client service principal the consent was granted to.
	ClientId string `json:"clientId,omitempty"`

	// Consent type. Possible values are: "AllPrincipals", "Principal".
	ConsentType string `json:"consentType,omitempty"`

	// Id of the user the grant is for; empty when consentType is "AllPrincipals".
	PrincipalId string `json:"principalId,omitempty"`

	// Object id of the resource service principal the scopes apply to.
	ResourceId string `json:"resourceId,omitempty"`

	// Space-delimited list of claim values for delegated permissions.
	Scope string `json:"scope,omitempty"`

	// Start and expiry of the grant. Graph keeps returning these legacy
	// properties; expiryTime in particular is useful audit context.
	StartTime  string `json:"startTime,omitempty"`
	ExpiryTime string `json:"expiryTime,omitempty"`
}
