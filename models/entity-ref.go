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

package models

// UnresolvedDisplayName is the placeholder rendered for directory objects
// that could not be resolved (deleted or inaccessible).
const UnresolvedDisplayName = "Unknown"

// EntityRef is a resolved directory object as it appears in a finding.
// References that fail to resolve degrade to a sentinel with the id
// preserved; a dangling reference never fails the audit.
type EntityRef struct {
	Id                string `json:"id"`
	DisplayName       string `json:"displayName"`
	AppId             string `json:"appId,omitempty"`
	PublisherName     string `json:"publisherName,omitempty"`
	UserPrincipalName string `json:"userPrincipalName,omitempty"`
	Unresolved        bool   `json:"unresolved,omitempty"`
}

// UnresolvedEntity is the sentinel for a dangling reference.
func UnresolvedEntity(id string) EntityRef {
	return EntityRef{
		Id:          id,
		DisplayName: UnresolvedDisplayName,
		Unresolved:  true,
	}
}
