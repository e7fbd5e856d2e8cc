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

package enums

// FindingType discriminates the two kinds of rows an audit run emits.
type FindingType string

const (
	FindingDelegatedGrant    FindingType = "DELEGATED_GRANT"
	FindingAppRoleAssignment FindingType = "APP_ROLE_ASSIGNMENT"
)

func (s FindingType) String() string {
	return string(s)
}

// ConsentType mirrors the consentType property of an oauth2PermissionGrant.
// Application is not a Graph consent type; it marks app-only role assignments
// in report output.
type ConsentType string

const (
	ConsentTypePrincipal     ConsentType = "Principal"
	ConsentTypeAllPrincipals ConsentType = "AllPrincipals"
	ConsentTypeApplication   ConsentType = "Application"
)
