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
	"testing"

	"github.com/consenthound/consenthound/enums"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyTenantWideConsentAlwaysFlags(t *testing.T) {
	rules := DefaultRuleSet()

	// A harmless scope list still gets flagged under tenant-wide consent.
	verdict := Classify([]string{"User.Read"}, enums.ConsentTypeAllPrincipals, rules.Scopes, enums.RiskReasonRiskyScope)

	require.Contains(t, verdict.Reasons, enums.RiskReasonTenantWideConsent)
	assert.Empty(t, verdict.RiskyItems)
	assert.NotEmpty(t, verdict.Notes)
}

func TestClassifyMatchedScopesAccumulate(t *testing.T) {
	rules := DefaultRuleSet()

	verdict := Classify(
		[]string{"User.Read", "Mail.Read", "Files.ReadWrite.All", "Mail.Read"},
		enums.ConsentTypePrincipal,
		rules.Scopes,
		enums.RiskReasonRiskyScope,
	)

	// Matches keep original scope order and deduplicate.
	assert.Equal(t, []string{"Mail.Read", "Files.ReadWrite.All"}, verdict.RiskyItems)
	assert.Equal(t, []enums.RiskReason{enums.RiskReasonRiskyScope}, verdict.Reasons)
	assert.Contains(t, verdict.Notes, "Mail.Read")
	assert.Contains(t, verdict.Notes, "Files.ReadWrite.All")
}

func TestClassifyTenantWideReasonOrdersFirst(t *testing.T) {
	rules := DefaultRuleSet()

	verdict := Classify([]string{"Mail.Read"}, enums.ConsentTypeAllPrincipals, rules.Scopes, enums.RiskReasonRiskyScope)

	require.Len(t, verdict.Reasons, 2)
	assert.Equal(t, enums.RiskReasonTenantWideConsent, verdict.Reasons[0])
	assert.Equal(t, enums.RiskReasonRiskyScope, verdict.Reasons[1])
	assert.Equal(t, "TenantWideConsent+RiskyScope", enums.JoinRiskReasons(verdict.Reasons))
}

func TestClassifyCleanInputIsNotFlagged(t *testing.T) {
	rules := DefaultRuleSet()

	verdict := Classify([]string{"User.Read", "openid", "profile"}, enums.ConsentTypePrincipal, rules.Scopes, enums.RiskReasonRiskyScope)

	assert.Empty(t, verdict.RiskyItems)
	assert.Empty(t, verdict.Reasons)
	assert.Empty(t, verdict.Notes)
	assert.Equal(t, "None", enums.JoinRiskReasons(verdict.Reasons))
}

func TestClassifyAppRoleUsesRoleReason(t *testing.T) {
	rules := DefaultRuleSet()

	verdict := Classify([]string{"Directory.ReadWrite.All"}, enums.ConsentTypeApplication, rules.Roles, enums.RiskReasonRiskyGraphAppRole)

	assert.Equal(t, []string{"Directory.ReadWrite.All"}, verdict.RiskyItems)
	assert.Equal(t, []enums.RiskReason{enums.RiskReasonRiskyGraphAppRole}, verdict.Reasons)
	assert.Contains(t, verdict.Notes, "risky app roles")
}

func TestClassifyIsDeterministic(t *testing.T) {
	rules := DefaultRuleSet()
	scopes := []string{"Mail.ReadWrite", "Sites.Read.All", "offline_access"}

	first := Classify(scopes, enums.ConsentTypeAllPrincipals, rules.Scopes, enums.RiskReasonRiskyScope)
	second := Classify(scopes, enums.ConsentTypeAllPrincipals, rules.Scopes, enums.RiskReasonRiskyScope)

	assert.Equal(t, first.RiskyItems, second.RiskyItems)
	assert.Equal(t, first.Reasons, second.Reasons)
	assert.Equal(t, first.Notes, second.Notes)
}
