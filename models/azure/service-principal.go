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

import "encoding/json"

// ServicePrincipal represents the tenant-local instance of an application.
// Only the properties the audit selects are modeled.
type ServicePrincipal struct {
	DirectoryObject

	// Application (client) id of the backing application.
	AppId string `json:"appId,omitempty"`

	DisplayName string `json:"displayName,omitempty"`

	// Roles the backing application declares; app role assignments
	// reference these by id.
	AppRoles []AppRole `json:"appRoles,omitempty"`

	// Display name of the verified publisher, flattened from the
	// verifiedPublisher complex type on unmarshal.
	VerifiedPublisherName string `json:"-"`
}

// AppRole is a role declared on an application, assignable to clients with
// application-only permissions.
type AppRole struct {
	Id          string `json:"id,omitempty"`
	DisplayName string `json:"displayName,omitempty"`

	// Claim value emitted in tokens, e.g. "Directory.ReadWrite.All".
	Value string `json:"value,omitempty"`
}

// VerifiedPublisher is the Graph complex type carrying MPN verification info.
type VerifiedPublisher struct {
	DisplayName         *string `json:"displayName,omitempty"`
	VerifiedPublisherId *string `json:"verifiedPublisherId,omitempty"`
}

type servicePrincipalAlias ServicePrincipal

type servicePrincipalUnmarshalJSON struct {
	*servicePrincipalAlias
	VerifiedPublisher *VerifiedPublisher `json:"verifiedPublisher,omitempty"`
}

func (s *ServicePrincipal) UnmarshalJSON(data []byte) error {
	aux := servicePrincipalUnmarshalJSON{servicePrincipalAlias: (*servicePrincipalAlias)(s)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	if aux.VerifiedPublisher != nil && aux.VerifiedPublisher.DisplayName != nil {
		s.VerifiedPublisherName = *aux.VerifiedPublisher.DisplayName
	}

	return nil
}
