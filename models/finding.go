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

import (
	"strings"

	"github.com/consenthound/consenthound/enums"
)

// Finding is one audited grant or role assignment, fully denormalized.
// Findings are value objects: built once from a raw record plus resolved
// entities and a classification verdict, never mutated afterwards.
type Finding struct {
	FindingType enums.FindingType `json:"findingType"`
	Client      EntityRef         `json:"client"`
	Resource    EntityRef         `json:"resource"`

	// Principal is nil for app-only role assignments and tenant-wide grants.
	Principal *EntityRef `json:"principal,omitempty"`

	ConsentType enums.ConsentType `json:"consentType"`

	// Scopes holds delegated scopes in grant order, or the singleton
	// resolved role value for an app role assignment.
	Scopes []string `json:"scopes"`

	// RiskyItems is the subset of Scopes matched by the rule set, in the
	// original scope order, deduplicated.
	RiskyItems []string `json:"riskyItems"`

	RiskyCount  int                `json:"riskyCount"`
	RiskReasons []enums.RiskReason `json:"riskReasons"`
	RiskNotes   string             `json:"riskNotes,omitempty"`

	// CreatedDateTime is the grant start time or the assignment creation
	// time as returned by Graph; ExpiryTime is set for delegated grants
	// only. Both are informational and excluded from the sort key.
	CreatedDateTime string `json:"createdDateTime,omitempty"`
	ExpiryTime      string `json:"expiryTime,omitempty"`
}

func (s Finding) Risky() bool {
	return s.RiskyCount > 0 || len(s.RiskReasons) > 0
}

func (s Finding) RiskReason() string {
	return enums.JoinRiskReasons(s.RiskReasons)
}

func (s Finding) JoinedScopes() string {
	return strings.Join(s.Scopes, " ")
}

func (s Finding) PrincipalDisplayName() string {
	if s.Principal == nil {
		if s.FindingType == enums.FindingDelegatedGrant {
			// Tenant-wide consent applies to every user.
			return "All Users"
		}
		return ""
	}
	return s.Principal.DisplayName
}

func (s Finding) PrincipalUPN() string {
	if s.Principal == nil {
		return ""
	}
	return s.Principal.UserPrincipalName
}

func (s Finding) PrincipalId() string {
	if s.Principal == nil {
		return ""
	}
	return s.Principal.Id
}
